package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorChains(t *testing.T) {
	root := New("error in processing widgets")
	notFound := root.New("widget not found").SetStatusCode(http.StatusNotFound)

	assert.Equal(t, "widget not found", notFound.Error())
	assert.ErrorIs(t, notFound, root)
	assert.Equal(t, http.StatusNotFound, notFound.StatusCode())

	// derived errors keep the parent's status code
	child := notFound.New("widget archive not found")
	assert.ErrorIs(t, child, notFound)
	assert.ErrorIs(t, child, root)
	assert.Equal(t, http.StatusNotFound, child.StatusCode())
}

func TestMsgKeepsIdentity(t *testing.T) {
	root := New("error in processing widgets")
	specific := root.New("widget rejected")

	renamed := specific.Msg("widget rejected: too heavy")
	assert.Equal(t, "widget rejected: too heavy", renamed.Error())
	assert.ErrorIs(t, renamed, specific)
	assert.ErrorIs(t, renamed, root)
}

func TestErrWrapsCauses(t *testing.T) {
	root := New("error in processing widgets")
	cause := errors.New("connection refused")

	wrapped := root.Err(cause)
	assert.ErrorIs(t, wrapped, root)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "error in processing widgets", wrapped.Error())
}

func TestErrorAll(t *testing.T) {
	root := New("error in processing widgets")
	cause := errors.New("connection refused")

	terse := root.Err(cause)
	assert.Equal(t, "error in processing widgets", terse.ErrorAll())

	expanded := root.SetExpandError(true).Err(cause)
	assert.Contains(t, expanded.ErrorAll(), "connection refused")
}
