package taskqueue

import (
	"net/http"

	"github.com/procat-rse/procatsrv/internal/apperrors"
)

var (
	ErrQueue       apperrors.Error = apperrors.New("error in task queue")
	ErrBadPayload  apperrors.Error = ErrQueue.New("unable to encode job payload").SetStatusCode(http.StatusBadRequest)
	ErrUnknownJob  apperrors.Error = ErrQueue.New("no handler registered for job")
	ErrJobNotFound apperrors.Error = ErrQueue.New("job not found").SetStatusCode(http.StatusNotFound)
)
