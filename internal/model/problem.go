// internal/model/problem.go
package model

import "time"

// StepProblem is an append-only "user got stuck here" telemetry row.
type StepProblem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GuideID    uint      `gorm:"not null;index" json:"guide_id"`
	StepNumber int       `gorm:"not null" json:"step_number"`
	CreatedAt  time.Time `json:"created_at"`
}

func (StepProblem) TableName() string {
	return "step_problems"
}

// ReportProblemRequest describes a stuck event. GuideID/StepNumber are
// optional; History carries guidance strings the user already tried without
// success, which forces an AI answer that avoids repeating them.
type ReportProblemRequest struct {
	GuideID     *uint    `json:"guide_id"`
	StepNumber  *int     `json:"step_number"`
	ProblemType string   `json:"problem_type"`
	CustomText  string   `json:"custom_text"`
	History     []string `json:"history"`
}

// GuidanceResponse carries the resolved help text.
type GuidanceResponse struct {
	Success  bool   `json:"success"`
	Guidance string `json:"guidance"`
}
