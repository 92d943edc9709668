package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/procat-rse/procatsrv/internal/apperrors"
	"github.com/rs/zerolog/log"
)

// Response is what API handlers return on success. Response is marshalled
// as the JSON body; Location, if set, becomes the Location header.
type Response struct {
	StatusCode int
	Location   string
	Response   any
}

// Error is an HTTP-ready error. Handlers may return one directly, or
// return an apperrors.Error which gets mapped to one.
type Error struct {
	StatusCode  int
	Description string
}

func (e *Error) Error() string {
	return e.Description
}

// Send writes the error to the response writer as a JSON envelope.
func (e *Error) Send(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": e.Description})
}

func ErrInvalidRequest() *Error {
	return &Error{StatusCode: http.StatusBadRequest, Description: "invalid request"}
}

func ErrUnableToReadRequest() *Error {
	return &Error{StatusCode: http.StatusBadRequest, Description: "unable to read request"}
}

func ErrNotFound(what string) *Error {
	return &Error{StatusCode: http.StatusNotFound, Description: what + " not found"}
}

func ErrApplicationError(desc string) *Error {
	return &Error{StatusCode: http.StatusInternalServerError, Description: desc}
}

// RequestHandler is the handler shape used by the apis package.
type RequestHandler func(r *http.Request) (*Response, error)

// WrapHttpRsp adapts a RequestHandler to http.HandlerFunc, converting
// errors to JSON error envelopes.
func WrapHttpRsp(h RequestHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rsp, err := h(r)
		if err != nil {
			ToHttpError(err).Send(w)
			return
		}
		if rsp == nil {
			rsp = &Response{StatusCode: http.StatusOK}
		}
		if rsp.Location != "" {
			w.Header().Set("Location", rsp.Location)
		}
		SendJsonRsp(r.Context(), w, rsp.StatusCode, rsp.Response)
	}
}

// ToHttpError maps any error to an *Error. apperrors carry their own
// status codes; anything else is an internal error with the detail kept
// out of the response body.
func ToHttpError(err error) *Error {
	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var appErr apperrors.Error
	if errors.As(err, &appErr) {
		statusCode := appErr.StatusCode()
		if statusCode == 0 {
			statusCode = http.StatusInternalServerError
		}
		return &Error{
			StatusCode:  statusCode,
			Description: appErr.ErrorAll(),
		}
	}
	return &Error{
		StatusCode:  http.StatusInternalServerError,
		Description: "internal error",
	}
}

// SendJsonRsp writes v as the JSON response body with the given status.
// A nil v sends the status code with an empty body.
func SendJsonRsp(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to encode json response")
	}
}
