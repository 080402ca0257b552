package config

import "github.com/glorpus-work/boardman/pkg/auth"

// AuthConfig holds the credential variants for one source host. Exactly one
// variant should be set; when several are, the first in field order wins.
type AuthConfig struct {
	Basic  *BasicAuth  `yaml:"basic,omitempty"`
	Header *HeaderAuth `yaml:"header,omitempty"`
	Bearer *BearerAuth `yaml:"bearer,omitempty"`
}

// BasicAuth holds configuration for HTTP Basic Authentication.
type BasicAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// HeaderAuth holds configuration for custom header based authentication.
type HeaderAuth struct {
	Headers map[string]string `yaml:"headers"`
}

// BearerAuth holds configuration for bearer token authentication.
type BearerAuth struct {
	Token string `yaml:"token"`
}

func (ac *AuthConfig) toAuthenticator() auth.Authenticator {
	switch {
	case ac.Basic != nil:
		return auth.BasicAuth{Username: ac.Basic.Username, Password: ac.Basic.Password}
	case ac.Header != nil:
		return auth.HeaderAuth{Headers: ac.Header.Headers}
	case ac.Bearer != nil:
		return auth.BearerAuth{Token: ac.Bearer.Token}
	}
	return nil
}

// ToAuthMap converts the configured credentials into authenticators keyed by
// host name. Returns nil when nothing is configured.
func (c *Config) ToAuthMap() map[string]auth.Authenticator {
	result := make(map[string]auth.Authenticator, len(c.Auth))
	for host, ac := range c.Auth {
		if ac == nil {
			continue
		}
		if a := ac.toAuthenticator(); a != nil {
			result[host] = a
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
