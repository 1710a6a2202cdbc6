// internal/middleware/session.go
package middleware

import (
	"context"
	"net/http"

	"yanindayim/internal/config"
	"yanindayim/internal/model"
	"yanindayim/internal/webutil"

	"github.com/gorilla/sessions"
)

// SessionManager wraps the gorilla cookie store. The session carries only the
// small identity record {id, name, email, role}; everything else lives in the
// database.
type SessionManager struct {
	store      *sessions.CookieStore
	cookieName string
}

func NewSessionManager(cfg *config.Config) *SessionManager {
	store := sessions.NewCookieStore([]byte(cfg.Session.SecretKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{
		store:      store,
		cookieName: cfg.Session.CookieName,
	}
}

// Middleware resolves the session cookie and, when a user is logged in, puts
// the typed identity record into the request context. Endpoints decide for
// themselves what an absent identity means.
func (sm *SessionManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := sm.userFromRequest(r); ok {
			ctx := context.WithValue(r.Context(), model.SessionUserKey, user)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func (sm *SessionManager) userFromRequest(r *http.Request) (model.SessionUser, bool) {
	// Get never fails fatally: a broken cookie yields a fresh empty session.
	session, _ := sm.store.Get(r, sm.cookieName)

	id, ok := session.Values["user_id"].(uint)
	if !ok || id == 0 {
		return model.SessionUser{}, false
	}
	name, _ := session.Values["user_name"].(string)
	email, _ := session.Values["user_email"].(string)
	role, _ := session.Values["user_role"].(string)

	return model.SessionUser{ID: id, Name: name, Email: email, Role: role}, true
}

// SetUser seeds the session with the identity record after login/register.
func (sm *SessionManager) SetUser(w http.ResponseWriter, r *http.Request, user model.SessionUser) error {
	session, _ := sm.store.Get(r, sm.cookieName)
	session.Values["user_id"] = user.ID
	session.Values["user_name"] = user.Name
	session.Values["user_email"] = user.Email
	session.Values["user_role"] = user.Role
	return session.Save(r, w)
}

// Clear drops the session on logout.
func (sm *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := sm.store.Get(r, sm.cookieName)
	session.Options.MaxAge = -1
	session.Values = map[interface{}]interface{}{}
	return session.Save(r, w)
}

// GetSessionUser returns the logged-in identity from the context, if any.
func GetSessionUser(ctx context.Context) (model.SessionUser, bool) {
	user, ok := ctx.Value(model.SessionUserKey).(model.SessionUser)
	return user, ok
}

// RequireAdmin rejects requests whose session lacks the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		user, ok := GetSessionUser(r.Context())
		if !ok {
			logger.Warn("Admin endpoint hit without a session", "path", r.URL.Path)
			appErr := model.NewAppError("UNAUTHORIZED", "Oturum açmanız gerekiyor.", "", model.ErrForbidden)
			webutil.HandleError(w, logger, appErr)
			return
		}
		if !user.IsAdmin() {
			logger.Warn("Admin endpoint hit by non-admin user", "user_id", user.ID, "path", r.URL.Path)
			appErr := model.NewAppError("FORBIDDEN", "Bu işlem için yönetici yetkisi gerekiyor.", "", model.ErrForbidden)
			webutil.HandleError(w, logger, appErr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TestSessionMiddleware injects a fixed identity, bypassing the cookie store.
// Only handler tests use it.
func TestSessionMiddleware(user model.SessionUser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), model.SessionUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
