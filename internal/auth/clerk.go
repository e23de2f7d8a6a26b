package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/apgomes/blogmod/internal/db"
	"github.com/apgomes/blogmod/internal/model"
	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	clerkuser "github.com/clerk/clerk-sdk-go/v2/user"
)

type ClerkAuthProvider struct { // implements Provider
	db db.DB

	headerExtractor clerkhttp.AuthorizationOption
}

func NewClerkAuthProvider(database db.DB, clerkKey string) *ClerkAuthProvider {
	clerk.SetKey(clerkKey)

	return &ClerkAuthProvider{
		db: database,

		headerExtractor: clerkhttp.AuthorizationJWTExtractor(func(r *http.Request) string {
			// Prefer the Authorization header the SPA attaches; fall back to
			// the session cookie for same-site navigation.
			if token := bearerToken(r); token != "" {
				return token
			}
			cookie, err := r.Cookie("__session")
			if err != nil || cookie == nil {
				return ""
			}
			return cookie.Value
		}),
	}
}

func (c *ClerkAuthProvider) WithHeaderAuthorization() func(http.Handler) http.Handler {
	return clerkhttp.WithHeaderAuthorization(c.headerExtractor)
}

func (c *ClerkAuthProvider) UserIDFromRequest(r *http.Request) (model.UserID, error) {
	claims, ok := clerk.SessionClaimsFromContext(r.Context())
	if !ok {
		return "", errors.New("failed to get session claims from context")
	}

	usr, err := clerkuser.Get(r.Context(), claims.Subject)
	if err != nil {
		return "", err
	}

	return model.UserID(usr.ID), nil
}

// HandleWebhookUser keeps the local users table in sync with Clerk.
func (c *ClerkAuthProvider) HandleWebhookUser(w http.ResponseWriter, r *http.Request) {
	type EventPayload struct {
		Data struct {
			clerk.User
		} `json:"data"`

		Type string `json:"type"`
	}

	var payload EventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		authLogger.Error().Err(err).Msg("Error decoding user webhook payload")
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	usr := payload.Data.User

	switch payload.Type {
	case "user.created":
		username := ""
		if usr.Username != nil {
			username = *usr.Username
		}

		_, err := c.db.Exec("INSERT INTO users (id, username) VALUES (?, ?)", usr.ID, username)
		if err != nil {
			authLogger.Error().Err(err).Str("user_id", usr.ID).Msg("Error inserting user")
			http.Error(w, "Error saving user", http.StatusInternalServerError)
			return
		}

		authLogger.Info().Str("user_id", usr.ID).Msg("User created")
		w.WriteHeader(http.StatusCreated)
	case "user.updated":
		w.WriteHeader(http.StatusNoContent)
	case "user.deleted":
		_, err := c.db.Exec("DELETE FROM users WHERE id = ?", usr.ID)
		if err != nil {
			authLogger.Error().Err(err).Str("user_id", usr.ID).Msg("Error deleting user")
			http.Error(w, "Error deleting user", http.StatusInternalServerError)
			return
		}

		authLogger.Info().Str("user_id", usr.ID).Msg("User deleted")
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Invalid event type", http.StatusBadRequest)
	}
}
