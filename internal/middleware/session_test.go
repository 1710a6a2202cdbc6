// internal/middleware/session_test.go
package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"yanindayim/internal/config"
	"yanindayim/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		user     *model.SessionUser
		wantCode int
		wantErr  string
	}{
		{
			name:     "no session",
			user:     nil,
			wantCode: http.StatusForbidden,
			wantErr:  "UNAUTHORIZED",
		},
		{
			name:     "regular user",
			user:     &model.SessionUser{ID: 1, Role: model.RoleUser},
			wantCode: http.StatusForbidden,
			wantErr:  "FORBIDDEN",
		},
		{
			name:     "admin passes",
			user:     &model.SessionUser{ID: 1, Role: model.RoleAdmin},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var handler http.Handler = RequireAdmin(okHandler())
			if tt.user != nil {
				handler = TestSessionMiddleware(*tt.user)(handler)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/admin/guides", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantErr != "" {
				var resp model.APIErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantErr, resp.Error.Code)
			}
		})
	}
}

func TestSessionManager_RoundTrip(t *testing.T) {
	sm := NewSessionManager(&config.Config{
		Session: config.SessionConfig{
			SecretKey:  "test-secret",
			CookieName: "test_session",
			MaxAge:     3600,
		},
	})

	user := model.SessionUser{ID: 5, Name: "Ayşe", Email: "ayse@example.com", Role: model.RoleUser}

	// Login writes the cookie.
	loginRec := httptest.NewRecorder()
	loginReq := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	require.NoError(t, sm.SetUser(loginRec, loginReq, user))
	cookies := loginRec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// The next request carries it and the middleware resolves the identity.
	var got model.SessionUser
	var ok bool
	handler := sm.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetSessionUser(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, ok)
	assert.Equal(t, user, got)
}

func TestSessionManager_NoCookieMeansAnonymous(t *testing.T) {
	sm := NewSessionManager(&config.Config{
		Session: config.SessionConfig{SecretKey: "test-secret", CookieName: "test_session"},
	})

	var ok bool
	handler := sm.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = GetSessionUser(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestSessionManager_ClearLogsOut(t *testing.T) {
	sm := NewSessionManager(&config.Config{
		Session: config.SessionConfig{SecretKey: "test-secret", CookieName: "test_session", MaxAge: 3600},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	require.NoError(t, sm.Clear(rec, req))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Negative(t, cookies[0].MaxAge, "logout must expire the cookie")
}
