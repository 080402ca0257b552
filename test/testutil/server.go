// Package testutil provides shared fixtures for integration-style tests:
// HTTP file servers, contribution archives and GPG signing material.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// ServeFiles starts an HTTP server rooted at dir and shuts it down when the
// test finishes. Files written into dir after the call are served too, so a
// test may start the server first and lay out fixtures afterwards.
func ServeFiles(t *testing.T, dir string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.FileServer(http.Dir(dir)))
	t.Cleanup(srv.Close)
	return srv
}
