package model

import "time"

const (
	GuideStatusDraft     = "draft"
	GuideStatusPublished = "published"
)

// Guide is an ordered sequence of steps teaching one task.
// HelpOptions is stored as an opaque JSON string authored by the admin UI or
// the AI generator; the backend never interprets it.
type Guide struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null;index" json:"title"`
	Content     string    `gorm:"type:text" json:"content"`
	Status      string    `gorm:"type:varchar(20);not null;default:draft" json:"status"`
	ImageURL    string    `json:"image_url"`
	Priority    int       `gorm:"default:0" json:"priority"`
	HelpOptions string    `gorm:"type:text" json:"help_options"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Steps are kept in step_number order; deleting a guide removes them.
	Steps []GuideStep `gorm:"foreignKey:GuideID;constraint:OnDelete:CASCADE" json:"steps,omitempty"`
}

func (Guide) TableName() string {
	return "guides"
}

// GuideStep is one instruction unit within a guide.
// StepNumber is the ordering key; uniqueness within a guide is not enforced.
type GuideStep struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	GuideID     uint   `gorm:"not null;index" json:"guide_id"`
	StepNumber  int    `gorm:"not null;default:1" json:"step_number"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `json:"image_url"`
}

func (GuideStep) TableName() string {
	return "guide_steps"
}

// GuideStepInput is one step of an admin create/update request.
type GuideStepInput struct {
	StepNumber  int    `json:"step_number"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// CreateGuideRequest assembles the admin form's parallel arrays; index i of
// each slice describes step i. Steps may be omitted entirely.
type CreateGuideRequest struct {
	Title            string   `json:"title" validate:"required"`
	Content          string   `json:"content"`
	Status           string   `json:"status" validate:"omitempty,oneof=draft published"`
	ImageURL         string   `json:"image_url"`
	Priority         int      `json:"priority"`
	HelpOptions      string   `json:"help_options"`
	StepTitles       []string `json:"step_titles"`
	StepDescriptions []string `json:"step_descriptions"`
	StepImages       []string `json:"step_images"`
	StepNumbers      []int    `json:"step_numbers"`
	GenerateAIImages bool     `json:"generate_ai_images"`
}

// CreateStructuredGuideRequest carries the steps as a single JSON blob, as
// produced by the AI generator round trip.
type CreateStructuredGuideRequest struct {
	Title            string `json:"title" validate:"required"`
	Status           string `json:"status" validate:"omitempty,oneof=draft published"`
	StepsJSON        string `json:"steps_json" validate:"required"`
	HelpOptionsJSON  string `json:"help_options_json"`
	GenerateAIImages bool   `json:"generate_ai_images"`
}

// UpdateGuideRequest updates guide fields; when the step arrays are empty the
// existing steps are preserved, otherwise they are replaced wholesale.
type UpdateGuideRequest struct {
	Title            string   `json:"title" validate:"required"`
	Content          string   `json:"content"`
	Status           string   `json:"status" validate:"omitempty,oneof=draft published"`
	ImageURL         string   `json:"image_url"`
	Priority         int      `json:"priority"`
	HelpOptions      string   `json:"help_options"`
	StepTitles       []string `json:"step_titles"`
	StepDescriptions []string `json:"step_descriptions"`
	StepImages       []string `json:"step_images"`
	StepNumbers      []int    `json:"step_numbers"`
	GenerateAIImages bool     `json:"generate_ai_images"`
}

// GenerateGuideRequest asks the AI gateway for a full guide draft.
type GenerateGuideRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// GuideSearchResult is the trimmed search payload.
type GuideSearchResult struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Type     string `json:"type,omitempty"`
}
