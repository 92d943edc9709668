package apis

import (
	"io"
	"net/http"

	"github.com/procat-rse/procatsrv/internal/httpx"
	"github.com/procat-rse/procatsrv/internal/importer"
)

const maxImportBody = 8 << 20

// importProjects accepts a YAML or JSON document of projects and funding
// and loads it after schema validation.
func importProjects(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBody))
	if err != nil {
		return nil, httpx.ErrUnableToReadRequest()
	}
	doc, err := importer.Parse(body)
	if err != nil {
		return nil, err
	}
	result, err := importer.Import(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusCreated, Response: result}, nil
}
