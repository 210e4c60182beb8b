// FilePath: api/middleware/api.middleware.auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Nerzal/gocloak/v13"
	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/models"
	"github.com/bkeeper/hub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

type KeycloakConfig struct {
	URL          string
	Realm        string
	ClientID     string
	ClientSecret string
}

type KeycloakMiddleware struct {
	client   *gocloak.GoCloak
	config   KeycloakConfig
	profiles repository.ProfileRepository
}

// UserContext carries the authenticated caller through the request.
// ProfileID is the collaborative-store profile, created on first login.
type UserContext struct {
	ID        string `json:"id"`
	ProfileID string `json:"profile_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

type contextKey string

const userContextKey contextKey = "user"

func NewKeycloakMiddleware(config KeycloakConfig, profiles repository.ProfileRepository) *KeycloakMiddleware {
	return &KeycloakMiddleware{
		client:   gocloak.NewClient(config.URL),
		config:   config,
		profiles: profiles,
	}
}

// Authenticate validates the token and adds the user to the context.
// Requests without a valid token are rejected.
func (k *KeycloakMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			handleError(w, errors.NewAuthError("no token provided", nil))
			return
		}
		user, err := k.resolveUser(r.Context(), token)
		if err != nil {
			handleError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// OptionalAuthenticate resolves a user when a valid token is present
// and otherwise lets the request through anonymously. Anonymous
// requests run against the device-local store.
func (k *KeycloakMiddleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, err := k.resolveUser(r.Context(), token)
		if err != nil {
			nuts.L.Warnf("[Auth] Ignoring invalid token on optional route: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

func (k *KeycloakMiddleware) resolveUser(ctx context.Context, token string) (*UserContext, error) {
	result, err := k.client.RetrospectToken(ctx, token, k.config.ClientID, k.config.ClientSecret, k.config.Realm)
	if err != nil || result.Active == nil || !*result.Active {
		return nil, errors.NewAuthError("invalid token", err)
	}
	claims, err := k.client.GetUserInfo(ctx, token, k.config.Realm)
	if err != nil {
		return nil, errors.NewAuthError("failed to get user info", err)
	}
	user := &UserContext{ID: deref(claims.Sub), Username: deref(claims.PreferredUsername), Email: deref(claims.Email)}
	profile, err := k.ensureProfile(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ProfileID = profile.ID
	return user, nil
}

// ensureProfile finds the caller's profile, creating it on first login
func (k *KeycloakMiddleware) ensureProfile(ctx context.Context, user *UserContext) (*models.Profile, error) {
	profile, err := k.profiles.GetByUserID(ctx, user.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}
	profile = &models.Profile{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.Username,
	}
	if err := k.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	nuts.L.Infof("[Auth] Created profile %s for user %s", profile.ID, user.ID)
	return profile, nil
}

// UserFromContext returns the authenticated user, or nil when anonymous
func UserFromContext(ctx context.Context) *UserContext {
	user, _ := ctx.Value(userContextKey).(*UserContext)
	return user
}

func withUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func extractToken(r *http.Request) string {
	bearerToken := r.Header.Get("Authorization")
	if len(strings.Split(bearerToken, " ")) == 2 {
		return strings.Split(bearerToken, " ")[1]
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func handleError(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(*errors.APIError); ok {
		http.Error(w, apiErr.Message, apiErr.Code)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
