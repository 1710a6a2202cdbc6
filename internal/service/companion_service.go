// internal/service/companion_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yanindayim/internal/config"
	"yanindayim/internal/middleware"
	"yanindayim/internal/model"
	"yanindayim/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanionService interface {
	ListContacts(ctx context.Context, userID uint) ([]model.ContactResponse, error)
	AddContact(ctx context.Context, userID uint, req *model.AddContactRequest) (*model.ContactResponse, error)
	DeleteContact(ctx context.Context, userID, contactID uint) error
	Notify(ctx context.Context, user model.SessionUser, req *model.NotifyRequest) (*model.NotifyResponse, error)
	AlertHistory(ctx context.Context, userID uint) ([]model.CompanionAlert, error)
}

type companionService struct {
	db          *gorm.DB
	contactRepo repository.ContactRepository
	alertRepo   repository.AlertRepository
	guideRepo   repository.GuideRepository
	mailer      Mailer
	appCfg      config.AppConfig
}

func NewCompanionService(db *gorm.DB, contactRepo repository.ContactRepository, alertRepo repository.AlertRepository, guideRepo repository.GuideRepository, mailer Mailer, appCfg config.AppConfig) CompanionService {
	return &companionService{
		db:          db,
		contactRepo: contactRepo,
		alertRepo:   alertRepo,
		guideRepo:   guideRepo,
		mailer:      mailer,
		appCfg:      appCfg,
	}
}

// formatCompanionMessage builds the human-friendly alert text shown to the
// trusted contact.
func formatCompanionMessage(userName, guideTitle string, stepNumber, frustrationCount int) string {
	return fmt.Sprintf(
		"%s, \"%s\" rehberinin %d. adımında zorlanıyor ve %d kez yardım istedi. Lütfen kendisine destek olun.",
		userName, guideTitle, stepNumber, frustrationCount,
	)
}

func (s *companionService) ListContacts(ctx context.Context, userID uint) ([]model.ContactResponse, error) {
	contacts, err := s.contactRepo.FindActiveByUser(ctx, s.db, userID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing contacts", "error", err, "user_id", userID)
		return nil, model.ErrInternalServer
	}

	out := make([]model.ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, model.ContactResponse{
			ID:                c.ID,
			Name:              c.Name,
			Phone:             c.Phone,
			RelationshipLabel: c.RelationshipLabel,
		})
	}
	return out, nil
}

// AddContact registers a trusted contact. The active-contact count is checked
// inside the same transaction as the insert so two concurrent adds cannot
// both squeeze past the cap.
func (s *companionService) AddContact(ctx context.Context, userID uint, req *model.AddContactRequest) (*model.ContactResponse, error) {
	logger := middleware.GetLogger(ctx)

	label := req.RelationshipLabel
	if label == "" {
		label = "Yakın"
	}

	contact := &model.TrustedContact{
		UserID:            userID,
		Name:              req.Name,
		Phone:             req.Phone,
		Email:             req.Email,
		RelationshipLabel: label,
		IsActive:          true,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := s.contactRepo.CountActiveByUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		if count >= int64(s.appCfg.MaxTrustedContacts) {
			return model.NewAppError("CONTACT_LIMIT",
				fmt.Sprintf("En fazla %d güvenilir kişi ekleyebilirsiniz", s.appCfg.MaxTrustedContacts),
				"", model.ErrConflict)
		}
		return s.contactRepo.Create(ctx, tx, contact)
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		logger.Error("Transaction failed for AddContact", "error", err, "user_id", userID)
		return nil, model.ErrInternalServer
	}

	return &model.ContactResponse{
		ID:                contact.ID,
		Name:              contact.Name,
		Phone:             contact.Phone,
		RelationshipLabel: contact.RelationshipLabel,
	}, nil
}

// DeleteContact deactivates a contact, freeing a slot under the cap. Only the
// owner may delete; anything else reads as not found.
func (s *companionService) DeleteContact(ctx context.Context, userID, contactID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.contactRepo.Deactivate(ctx, tx, userID, contactID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "Kişi bulunamadı", "", model.ErrNotFound)
		}
		middleware.GetLogger(ctx).Error("Transaction failed for DeleteContact", "error", err, "user_id", userID)
		return model.ErrInternalServer
	}
	return nil
}

// Notify fans one distress event out to every active contact. All alert rows
// are written in one transaction and share one event id; with zero contacts
// nothing is written and the caller gets a clear error. Email delivery is
// best effort after commit and never fails the request.
func (s *companionService) Notify(ctx context.Context, user model.SessionUser, req *model.NotifyRequest) (*model.NotifyResponse, error) {
	logger := middleware.GetLogger(ctx)

	stepNumber := req.StepNumber
	if stepNumber < 1 {
		stepNumber = 1
	}
	frustrationCount := req.FrustrationCount
	if frustrationCount < 1 {
		frustrationCount = 3
	}

	userName := user.Name
	if userName == "" {
		userName = "Kullanıcı"
	}

	guideTitle := "Bilinmeyen Rehber"
	if req.GuideID != nil {
		if guide, err := s.guideRepo.FindByID(ctx, s.db, *req.GuideID); err == nil {
			guideTitle = guide.Title
		}
	}

	message := formatCompanionMessage(userName, guideTitle, stepNumber, frustrationCount)
	eventID := uuid.New()

	var contacts []model.TrustedContact
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		contacts, err = s.contactRepo.FindActiveByUser(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		if len(contacts) == 0 {
			return model.NewAppError("NO_CONTACTS", "Güvenilir kişi eklenmemiş", "", model.ErrInvalidInput)
		}

		alerts := make([]model.CompanionAlert, 0, len(contacts))
		for _, c := range contacts {
			alerts = append(alerts, model.CompanionAlert{
				EventID:          eventID,
				UserID:           user.ID,
				ContactID:        c.ID,
				GuideID:          req.GuideID,
				StepNumber:       stepNumber,
				FrustrationCount: frustrationCount,
				Message:          message,
			})
		}
		return s.alertRepo.CreateBatch(ctx, tx, alerts)
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		logger.Error("Transaction failed for Notify", "error", err, "user_id", user.ID)
		return nil, model.ErrInternalServer
	}

	notified := make([]string, 0, len(contacts))
	for _, c := range contacts {
		notified = append(notified, c.Name)
		if c.Email != "" {
			if mailErr := s.mailer.Send(ctx, c.Email, "Yanındayım: Destek isteği", message); mailErr != nil {
				logger.Warn("Companion alert email failed", "error", mailErr, "contact_id", c.ID)
			}
		}
	}

	return &model.NotifyResponse{
		Success:  true,
		Notified: notified,
		Message:  fmt.Sprintf("%s bilgilendirildi", strings.Join(notified, ", ")),
	}, nil
}

// AlertHistory lists the user's past companion alerts, newest first.
func (s *companionService) AlertHistory(ctx context.Context, userID uint) ([]model.CompanionAlert, error) {
	alerts, err := s.alertRepo.ListByUser(ctx, s.db, userID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing companion alerts", "error", err, "user_id", userID)
		return nil, model.ErrInternalServer
	}
	return alerts, nil
}
