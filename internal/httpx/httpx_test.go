package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/procat-rse/procatsrv/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHttpError(t *testing.T) {
	t.Run("httpx error passes through", func(t *testing.T) {
		err := ErrNotFound("project")
		got := ToHttpError(err)
		assert.Equal(t, http.StatusNotFound, got.StatusCode)
		assert.Equal(t, "project not found", got.Description)
	})

	t.Run("apperrors carry their status code", func(t *testing.T) {
		appErr := apperrors.New("funding rejected").SetStatusCode(http.StatusConflict)
		got := ToHttpError(appErr)
		assert.Equal(t, http.StatusConflict, got.StatusCode)
		assert.Equal(t, "funding rejected", got.Description)
	})

	t.Run("apperrors without a status code become 500", func(t *testing.T) {
		got := ToHttpError(apperrors.New("broken"))
		assert.Equal(t, http.StatusInternalServerError, got.StatusCode)
	})

	t.Run("unknown errors hide their detail", func(t *testing.T) {
		got := ToHttpError(errors.New("dsn password leaked"))
		assert.Equal(t, http.StatusInternalServerError, got.StatusCode)
		assert.Equal(t, "internal error", got.Description)
	})
}

func TestWrapHttpRsp(t *testing.T) {
	t.Run("success with location", func(t *testing.T) {
		handler := WrapHttpRsp(func(r *http.Request) (*Response, error) {
			return &Response{
				StatusCode: http.StatusCreated,
				Location:   "/projects/42",
				Response:   map[string]string{"name": "Widget Analysis"},
			}, nil
		})

		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest("POST", "/projects", nil))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "/projects/42", rr.Header().Get("Location"))
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"name": "Widget Analysis"}`, rr.Body.String())
	})

	t.Run("error becomes a json envelope", func(t *testing.T) {
		handler := WrapHttpRsp(func(r *http.Request) (*Response, error) {
			return nil, ErrInvalidRequest()
		})

		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest("GET", "/projects", nil))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error": "invalid request"}`, rr.Body.String())
	})

	t.Run("nil response defaults to 200", func(t *testing.T) {
		handler := WrapHttpRsp(func(r *http.Request) (*Response, error) {
			return nil, nil
		})

		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest("GET", "/projects", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
