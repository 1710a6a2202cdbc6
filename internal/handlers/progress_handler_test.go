// internal/handlers/progress_handler_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"yanindayim/internal/middleware"
	"yanindayim/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProgressService records calls and replays scripted responses.
type stubProgressService struct {
	saveUserID uint
	saveReq    *model.SaveProgressRequest
	getResp    *model.ProgressResponse
}

func (s *stubProgressService) Save(ctx context.Context, userID uint, req *model.SaveProgressRequest) error {
	s.saveUserID = userID
	s.saveReq = req
	return nil
}

func (s *stubProgressService) Complete(ctx context.Context, userID uint, req *model.CompleteProgressRequest) error {
	return nil
}

func (s *stubProgressService) Get(ctx context.Context, userID, guideID uint) (*model.ProgressResponse, error) {
	return s.getResp, nil
}

func (s *stubProgressService) Profile(ctx context.Context, user model.SessionUser) (*model.ProfileResponse, error) {
	return &model.ProfileResponse{Success: true, User: &user}, nil
}

func newProgressRouter(svc *stubProgressService, user *model.SessionUser) http.Handler {
	h := NewProgressHandler(svc, nil)
	r := chi.NewRouter()
	if user != nil {
		r.Use(middleware.TestSessionMiddleware(*user))
	}
	r.Post("/api/progress/save", h.Save)
	r.Post("/api/progress/complete", h.Complete)
	r.Get("/api/progress/{guideID}", h.Get)
	r.Get("/api/profile", h.Profile)
	return r
}

func TestProgressHandler_SaveWithoutSession(t *testing.T) {
	router := newProgressRouter(&stubProgressService{}, nil)

	body := bytes.NewBufferString(`{"guide_id": 10, "current_step": 2, "total_steps": 5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/progress/save", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Not logged in is a normal result for this endpoint, not a protocol error.
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_LOGGED_IN", resp.Error.Code)
	assert.Equal(t, "Oturum açmanız gerekiyor.", resp.Error.Message)
}

func TestProgressHandler_SaveWithSession(t *testing.T) {
	svc := &stubProgressService{}
	router := newProgressRouter(svc, &model.SessionUser{ID: 7, Name: "Ayşe", Role: model.RoleUser})

	body := bytes.NewBufferString(`{"guide_id": 10, "current_step": 2, "total_steps": 5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/progress/save", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true}`, rec.Body.String())

	assert.Equal(t, uint(7), svc.saveUserID)
	require.NotNil(t, svc.saveReq)
	assert.Equal(t, uint(10), svc.saveReq.GuideID)
	assert.Equal(t, 2, svc.saveReq.CurrentStep)
}

func TestProgressHandler_SaveRejectsMissingGuideID(t *testing.T) {
	svc := &stubProgressService{}
	router := newProgressRouter(svc, &model.SessionUser{ID: 7})

	body := bytes.NewBufferString(`{"current_step": 2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/progress/save", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.saveReq, "the service must not be called on validation failure")
}

func TestProgressHandler_GetAnonymous(t *testing.T) {
	router := newProgressRouter(&stubProgressService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/progress/10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": false, "logged_in": false, "current_step": null}`, rec.Body.String())
}

func TestProgressHandler_GetNotStarted(t *testing.T) {
	svc := &stubProgressService{getResp: &model.ProgressResponse{Success: true, LoggedIn: true}}
	router := newProgressRouter(svc, &model.SessionUser{ID: 7})

	req := httptest.NewRequest(http.MethodGet, "/api/progress/10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true, "logged_in": true, "current_step": null}`, rec.Body.String())
}

func TestProgressHandler_GetInvalidGuideID(t *testing.T) {
	router := newProgressRouter(&stubProgressService{}, &model.SessionUser{ID: 7})

	req := httptest.NewRequest(http.MethodGet, "/api/progress/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

func TestProgressHandler_ProfileWithoutSession(t *testing.T) {
	router := newProgressRouter(&stubProgressService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_LOGGED_IN", resp.Error.Code)
}
