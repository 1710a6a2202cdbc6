// internal/handlers/guide_handler_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"yanindayim/internal/middleware"
	"yanindayim/internal/model"
	"yanindayim/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGuideDetailService struct {
	service.GuideService
	guide *model.Guide
}

func (s *stubGuideDetailService) Get(ctx context.Context, guideID uint) (*model.Guide, error) {
	if s.guide == nil {
		return nil, model.NewAppError("NOT_FOUND", "Rehber bulunamadı.", "", model.ErrNotFound)
	}
	return s.guide, nil
}

func newGuideRouter(svc service.GuideService, user *model.SessionUser) http.Handler {
	h := NewGuideHandler(svc, nil)
	r := chi.NewRouter()
	if user != nil {
		r.Use(middleware.TestSessionMiddleware(*user))
	}
	r.Get("/api/guides/{guideID}", h.GetGuide)
	return r
}

func getGuide(t *testing.T, router http.Handler, id string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/guides/"+id, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGuideHandler_GetPublishedGuideAnonymous(t *testing.T) {
	svc := &stubGuideDetailService{guide: &model.Guide{ID: 10, Title: "Fatura Ödeme", Status: model.GuideStatusPublished}}
	rec := getGuide(t, newGuideRouter(svc, nil), "10")

	require.Equal(t, http.StatusOK, rec.Code)

	var guide model.Guide
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &guide))
	assert.Equal(t, "Fatura Ödeme", guide.Title)
}

func TestGuideHandler_GetDraftGuideAnonymousIsNotFound(t *testing.T) {
	svc := &stubGuideDetailService{guide: &model.Guide{ID: 10, Title: "Taslak", Status: model.GuideStatusDraft}}
	rec := getGuide(t, newGuideRouter(svc, nil), "10")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "Rehber bulunamadı.", resp.Error.Message)
}

func TestGuideHandler_GetDraftGuideRegularUserIsNotFound(t *testing.T) {
	svc := &stubGuideDetailService{guide: &model.Guide{ID: 10, Title: "Taslak", Status: model.GuideStatusDraft}}
	user := model.SessionUser{ID: 2, Role: model.RoleUser}
	rec := getGuide(t, newGuideRouter(svc, &user), "10")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGuideHandler_GetDraftGuideAdminSeesIt(t *testing.T) {
	svc := &stubGuideDetailService{guide: &model.Guide{ID: 10, Title: "Taslak", Status: model.GuideStatusDraft}}
	admin := model.SessionUser{ID: 1, Role: model.RoleAdmin}
	rec := getGuide(t, newGuideRouter(svc, &admin), "10")

	require.Equal(t, http.StatusOK, rec.Code)

	var guide model.Guide
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &guide))
	assert.Equal(t, "Taslak", guide.Title)
}
