// Package auth supplies the boolean authorization check consumed by the
// boundary layer. The full credential subsystem lives elsewhere; the catalog
// itself performs no authorization.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Authorizer decides whether a request may perform editor mutations
type Authorizer interface {
	Authorized(r *http.Request) bool
}

// StaticToken authorizes requests carrying a configured bearer token
type StaticToken struct {
	token string
}

// NewStaticToken creates a bearer-token authorizer. An empty token authorizes
// nothing.
func NewStaticToken(token string) *StaticToken {
	return &StaticToken{token: token}
}

// Authorized reports whether the request carries the configured token
func (a *StaticToken) Authorized(r *http.Request) bool {
	if a.token == "" {
		return false
	}

	header := r.Header.Get("Authorization")
	presented, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(presented), []byte(a.token)) == 1
}
