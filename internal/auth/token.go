package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/apgomes/blogmod/internal/model"
)

// StaticTokenAuthProvider accepts a single pre-shared bearer token and binds
// it to a fixed user id. Meant for single-author deployments and tests.
type StaticTokenAuthProvider struct { // implements Provider
	token  string
	userID model.UserID
}

func NewStaticTokenAuthProvider(token string, userID model.UserID) *StaticTokenAuthProvider {
	return &StaticTokenAuthProvider{
		token:  token,
		userID: userID,
	}
}

func (p *StaticTokenAuthProvider) WithHeaderAuthorization() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token != "" && p.token != "" &&
				subtle.ConstantTimeCompare([]byte(token), []byte(p.token)) == 1 {
				r = r.WithContext(ContextWithUserID(r.Context(), p.userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (p *StaticTokenAuthProvider) UserIDFromRequest(r *http.Request) (model.UserID, error) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		return "", errors.New("no user in request context")
	}
	return userID, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
