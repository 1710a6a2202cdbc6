// internal/service/companion_service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"yanindayim/internal/config"
	"yanindayim/internal/model"
	"yanindayim/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingMailer captures outgoing mail instead of sending it.
type recordingMailer struct {
	recipients []string
	bodies     []string
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, body string) error {
	m.recipients = append(m.recipients, to)
	m.bodies = append(m.bodies, body)
	return nil
}

func newCompanionService(db *gorm.DB, mailer Mailer) CompanionService {
	return NewCompanionService(
		db,
		repository.NewGormContactRepository(),
		repository.NewGormAlertRepository(),
		repository.NewGormGuideRepository(),
		mailer,
		config.AppConfig{MaxTrustedContacts: 3, SearchLimit: 10, HomeGuideLimit: 6},
	)
}

func TestCompanionService_AddContactEnforcesCap(t *testing.T) {
	db := setupTestDB(t)
	svc := newCompanionService(db, &recordingMailer{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.AddContact(ctx, 1, &model.AddContactRequest{
			Name:  fmt.Sprintf("Kişi %d", i+1),
			Phone: "05550000000",
		})
		require.NoError(t, err)
	}

	_, err := svc.AddContact(ctx, 1, &model.AddContactRequest{Name: "Dördüncü", Phone: "05550000001"})
	require.Error(t, err)

	var appErr *model.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CONTACT_LIMIT", appErr.Detail.Code)
	assert.Equal(t, "En fazla 3 güvenilir kişi ekleyebilirsiniz", appErr.Detail.Message)

	// The cap is per user.
	_, err = svc.AddContact(ctx, 2, &model.AddContactRequest{Name: "Başka Kullanıcı", Phone: "05550000002"})
	assert.NoError(t, err)
}

func TestCompanionService_AddContactDefaultsRelationshipLabel(t *testing.T) {
	db := setupTestDB(t)
	svc := newCompanionService(db, &recordingMailer{})

	contact, err := svc.AddContact(context.Background(), 1, &model.AddContactRequest{Name: "Fatma", Phone: "05550000000"})
	require.NoError(t, err)
	assert.Equal(t, "Yakın", contact.RelationshipLabel)
}

func TestCompanionService_DeleteContactFreesSlot(t *testing.T) {
	db := setupTestDB(t)
	svc := newCompanionService(db, &recordingMailer{})
	ctx := context.Background()

	var firstID uint
	for i := 0; i < 3; i++ {
		contact, err := svc.AddContact(ctx, 1, &model.AddContactRequest{
			Name:  fmt.Sprintf("Kişi %d", i+1),
			Phone: "05550000000",
		})
		require.NoError(t, err)
		if i == 0 {
			firstID = contact.ID
		}
	}

	require.NoError(t, svc.DeleteContact(ctx, 1, firstID))

	contacts, err := svc.ListContacts(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, contacts, 2)

	_, err = svc.AddContact(ctx, 1, &model.AddContactRequest{Name: "Yeni Kişi", Phone: "05550000003"})
	assert.NoError(t, err)

	// Soft delete: the row stays for alert history.
	var total int64
	require.NoError(t, db.Model(&model.TrustedContact{}).Count(&total).Error)
	assert.Equal(t, int64(4), total)
}

func TestCompanionService_DeleteContactOfAnotherUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newCompanionService(db, &recordingMailer{})
	ctx := context.Background()

	contact, err := svc.AddContact(ctx, 1, &model.AddContactRequest{Name: "Ayşe", Phone: "05550000000"})
	require.NoError(t, err)

	err = svc.DeleteContact(ctx, 2, contact.ID)
	require.Error(t, err)

	var appErr *model.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Detail.Code)
	assert.Equal(t, "Kişi bulunamadı", appErr.Detail.Message)
}

func TestCompanionService_NotifyWithoutContacts(t *testing.T) {
	db := setupTestDB(t)
	svc := newCompanionService(db, &recordingMailer{})

	user := model.SessionUser{ID: 1, Name: "Ayşe"}
	_, err := svc.Notify(context.Background(), user, &model.NotifyRequest{})
	require.Error(t, err)

	var appErr *model.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NO_CONTACTS", appErr.Detail.Code)
	assert.Equal(t, "Güvenilir kişi eklenmemiş", appErr.Detail.Message)

	var count int64
	require.NoError(t, db.Model(&model.CompanionAlert{}).Count(&count).Error)
	assert.Zero(t, count, "no alert rows may be written when there is nobody to notify")
}

func TestCompanionService_NotifyFansOutToAllContacts(t *testing.T) {
	db := setupTestDB(t)
	mailer := &recordingMailer{}
	svc := newCompanionService(db, mailer)
	ctx := context.Background()

	guide := model.Guide{Title: "Fatura Ödeme", Status: model.GuideStatusPublished}
	require.NoError(t, db.Create(&guide).Error)

	_, err := svc.AddContact(ctx, 1, &model.AddContactRequest{Name: "Fatma", Phone: "05550000000", Email: "fatma@example.com"})
	require.NoError(t, err)
	_, err = svc.AddContact(ctx, 1, &model.AddContactRequest{Name: "Mehmet", Phone: "05550000001"})
	require.NoError(t, err)

	user := model.SessionUser{ID: 1, Name: "Ayşe"}
	resp, err := svc.Notify(ctx, user, &model.NotifyRequest{
		GuideID:          &guide.ID,
		StepNumber:       3,
		FrustrationCount: 4,
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, []string{"Fatma", "Mehmet"}, resp.Notified)
	assert.Equal(t, "Fatma, Mehmet bilgilendirildi", resp.Message)

	var alerts []model.CompanionAlert
	require.NoError(t, db.Order("id ASC").Find(&alerts).Error)
	require.Len(t, alerts, 2)

	wantMessage := `Ayşe, "Fatura Ödeme" rehberinin 3. adımında zorlanıyor ve 4 kez yardım istedi. Lütfen kendisine destek olun.`
	for _, alert := range alerts {
		assert.Equal(t, alerts[0].EventID, alert.EventID, "all alerts of one notify call share the event id")
		assert.Equal(t, wantMessage, alert.Message)
		assert.Equal(t, 3, alert.StepNumber)
		assert.Equal(t, 4, alert.FrustrationCount)
	}

	// Only the contact with an email address gets mail.
	assert.Equal(t, []string{"fatma@example.com"}, mailer.recipients)
	require.Len(t, mailer.bodies, 1)
	assert.Equal(t, wantMessage, mailer.bodies[0])
}

func TestCompanionService_AlertHistoryNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := newCompanionService(db, &recordingMailer{})
	ctx := context.Background()

	_, err := svc.AddContact(ctx, 1, &model.AddContactRequest{Name: "Fatma", Phone: "05550000000"})
	require.NoError(t, err)

	user := model.SessionUser{ID: 1, Name: "Ayşe"}
	_, err = svc.Notify(ctx, user, &model.NotifyRequest{StepNumber: 1})
	require.NoError(t, err)
	_, err = svc.Notify(ctx, user, &model.NotifyRequest{StepNumber: 2})
	require.NoError(t, err)

	alerts, err := svc.AlertHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, 2, alerts[0].StepNumber, "newest alert comes first")
	assert.Equal(t, 1, alerts[1].StepNumber)

	// Other users see their own history only.
	other, err := svc.AlertHistory(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCompanionService_NotifyDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := newCompanionService(db, &recordingMailer{})
	ctx := context.Background()

	_, err := svc.AddContact(ctx, 1, &model.AddContactRequest{Name: "Fatma", Phone: "05550000000"})
	require.NoError(t, err)

	// No guide, no step, no name: everything falls back to a readable default.
	resp, err := svc.Notify(ctx, model.SessionUser{ID: 1}, &model.NotifyRequest{})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	var alert model.CompanionAlert
	require.NoError(t, db.First(&alert).Error)
	assert.Equal(t, 1, alert.StepNumber)
	assert.Equal(t, 3, alert.FrustrationCount)
	assert.Contains(t, alert.Message, "Kullanıcı")
	assert.Contains(t, alert.Message, "Bilinmeyen Rehber")
}
