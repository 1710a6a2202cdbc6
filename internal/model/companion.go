// internal/model/companion.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// TrustedContact is a person notified when companion mode fires.
// At most MaxActiveContacts rows per user may have IsActive=true; deletion is
// soft so past alerts keep a valid contact reference.
type TrustedContact struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;index" json:"user_id"`
	Name              string    `gorm:"not null" json:"name"`
	Phone             string    `gorm:"not null" json:"phone"`
	Email             string    `json:"email,omitempty"`
	RelationshipLabel string    `gorm:"default:Yakın" json:"relationship_label"`
	IsActive          bool      `gorm:"not null;default:true" json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}

func (TrustedContact) TableName() string {
	return "trusted_contacts"
}

// CompanionAlert is one notification record, append-only. All alerts created
// by a single notify call share the same EventID.
type CompanionAlert struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	EventID          uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	ContactID        uint      `gorm:"not null" json:"contact_id"`
	GuideID          *uint     `json:"guide_id,omitempty"`
	StepNumber       int       `gorm:"not null;default:1" json:"step_number"`
	FrustrationCount int       `gorm:"not null" json:"frustration_count"`
	Message          string    `gorm:"type:text;not null" json:"message"`
	CreatedAt        time.Time `json:"created_at"`
}

func (CompanionAlert) TableName() string {
	return "companion_alerts"
}

// AddContactRequest registers a trusted contact.
type AddContactRequest struct {
	Name              string `json:"name" validate:"required"`
	Phone             string `json:"phone" validate:"required"`
	Email             string `json:"email" validate:"omitempty,email"`
	RelationshipLabel string `json:"relationship_label"`
}

// ContactResponse is the public shape of a contact.
type ContactResponse struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	RelationshipLabel string `json:"relationship_label"`
}

// NotifyRequest fires companion mode for the current user.
type NotifyRequest struct {
	GuideID          *uint `json:"guide_id"`
	StepNumber       int   `json:"step_number"`
	FrustrationCount int   `json:"frustration_count"`
}

// NotifyResponse lists who was alerted.
type NotifyResponse struct {
	Success  bool     `json:"success"`
	Notified []string `json:"notified"`
	Message  string   `json:"message"`
}
