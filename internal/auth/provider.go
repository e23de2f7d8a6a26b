// Package auth resolves the opaque token a client attaches into a user id.
// The token itself is an external collaborator; handlers only see the
// session context carried on the request.
package auth

import (
	"net/http"

	"github.com/apgomes/blogmod/internal/model"
	"github.com/rs/zerolog"
)

type Provider interface {
	// WithHeaderAuthorization wraps a handler so that a valid token on the
	// request makes the user id available via UserIDFromRequest.
	WithHeaderAuthorization() func(http.Handler) http.Handler

	// UserIDFromRequest returns the user bound to the request's session.
	UserIDFromRequest(r *http.Request) (model.UserID, error)
}

var authLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	authLogger = l
}
