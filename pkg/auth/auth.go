// Package auth applies stored credentials to outgoing HTTP requests. Index
// sources and archives served from private mirrors configure one
// authenticator per host; requests to other hosts stay untouched.
package auth

import "net/http"

// Authenticator decorates a request with credentials before it is sent.
type Authenticator interface {
	Apply(req *http.Request) error
}

// BasicAuth holds HTTP Basic Authentication credentials.
type BasicAuth struct {
	Username string
	Password string
}

// Apply implements Authenticator.
func (b BasicAuth) Apply(req *http.Request) error {
	req.SetBasicAuth(b.Username, b.Password)
	return nil
}

// HeaderAuth sends fixed custom headers, for mirrors keyed by API tokens.
type HeaderAuth struct {
	Headers map[string]string
}

// Apply implements Authenticator.
func (h HeaderAuth) Apply(req *http.Request) error {
	for k, v := range h.Headers {
		req.Header.Set(k, v)
	}
	return nil
}

// BearerAuth sends an OAuth style bearer token.
type BearerAuth struct {
	Token string
}

// Apply implements Authenticator.
func (b BearerAuth) Apply(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+b.Token)
	return nil
}
