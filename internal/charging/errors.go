package charging

import (
	"net/http"

	"github.com/procat-rse/procatsrv/internal/apperrors"
)

var (
	ErrCharging       apperrors.Error = apperrors.New("error in generating charges")
	ErrFutureMonth    apperrors.Error = ErrCharging.New("report month must not be in the future").SetStatusCode(http.StatusBadRequest)
	ErrEffortExceeded apperrors.Error = ErrCharging.New("total chargeable days exceed the effort left").SetStatusCode(http.StatusConflict)
	ErrNoReport       apperrors.Error = ErrCharging.New("no report archived for that month").SetStatusCode(http.StatusNotFound)
)
