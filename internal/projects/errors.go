package projects

import (
	"net/http"

	"github.com/procat-rse/procatsrv/internal/apperrors"
)

var (
	ErrProject            apperrors.Error = apperrors.New("error in processing project")
	ErrMissingFields      apperrors.Error = ErrProject.New("all fields are mandatory unless project status is 'Draft'").SetStatusCode(http.StatusBadRequest)
	ErrDatesOutOfOrder    apperrors.Error = ErrProject.New("the end date must be after the start date").SetStatusCode(http.StatusBadRequest)
	ErrMissingFunding     apperrors.Error = ErrProject.New("all funding fields are mandatory unless source is 'Internal'").SetStatusCode(http.StatusBadRequest)
	ErrInvalidCapacity    apperrors.Error = ErrProject.New("capacity must be between 0 and 1").SetStatusCode(http.StatusBadRequest)
	ErrProjectNotFound    apperrors.Error = ErrProject.New("project not found").SetStatusCode(http.StatusNotFound)
	ErrInvalidEnumeration apperrors.Error = ErrProject.New("invalid enumeration value").SetStatusCode(http.StatusBadRequest)
)
