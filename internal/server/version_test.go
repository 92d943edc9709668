package server

import (
	"net/http"
	"testing"

	"github.com/procat-rse/procatsrv/pkg/api"
	"github.com/stretchr/testify/require"
)

func TestGetVersion(t *testing.T) {
	req, _ := http.NewRequest("GET", "/version", nil)

	response := executeTestRequest(t, req)

	require.Equal(t, http.StatusOK, response.Code)
	checkHeader(t, response.Result().Header)

	compareJson(t,
		&api.VersionResponse{
			Version: api.Version,
		}, response.Body.String())
}
