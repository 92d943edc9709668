package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/procat-rse/procatsrv/internal/apis"
	"github.com/procat-rse/procatsrv/internal/config"
	"github.com/procat-rse/procatsrv/internal/httpx"
	"github.com/procat-rse/procatsrv/internal/server/middleware"
	"github.com/procat-rse/procatsrv/pkg/api"
	"github.com/rs/zerolog/log"
)

type ProCatServer struct {
	Router *chi.Mux
}

func CreateNewServer() (*ProCatServer, error) {
	s := &ProCatServer{}
	s.Router = chi.NewRouter()
	return s, nil
}

func (s *ProCatServer) MountHandlers() {
	s.Router.Use(httpx.RequestLogger)
	if config.Config().Server.HandleCORS {
		s.Router.Use(s.HandleCORS)
	}
	s.Router.Use(middleware.LoadContext)
	s.Router.Get("/version", s.getVersion)
	s.Router.Group(func(r chi.Router) {
		r.Use(middleware.LoadDB)
		apis.Router(r)
	})
}

func (s *ProCatServer) getVersion(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("GetVersion")
	rsp := &api.VersionResponse{
		Version: api.Version,
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}

func (s *ProCatServer) HandleCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", config.Config().Server.CORSOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-ProCat-User")

		if r.Method == "OPTIONS" {
			log.Ctx(r.Context()).Debug().Msg("OPTIONS request")
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
