// internal/model/scenario.go
package model

import "time"

const (
	ScenarioActionHangup  = "hangup"
	ScenarioActionBelieve = "believe"
)

// FraudScenario is one fraud-awareness quiz item. Immutable once authored;
// admins may only create and delete.
type FraudScenario struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Scenario      string    `gorm:"type:text;not null" json:"scenario"`
	CorrectAction string    `gorm:"type:varchar(20);not null" json:"correct_action"`
	Explanation   string    `gorm:"type:text;not null" json:"explanation"`
	Difficulty    int       `gorm:"not null;default:1" json:"difficulty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (FraudScenario) TableName() string {
	return "fraud_scenarios"
}

type CreateScenarioRequest struct {
	Scenario      string `json:"scenario" validate:"required"`
	CorrectAction string `json:"correct_action" validate:"required,oneof=hangup believe"`
	Explanation   string `json:"explanation" validate:"required"`
	Difficulty    int    `json:"difficulty"`
}

// ScenarioResponse is what the safety quiz endpoint returns; Difficulty stays
// server-side so the client cannot pre-filter.
type ScenarioResponse struct {
	Scenario      string `json:"scenario"`
	CorrectAction string `json:"correct_action"`
	Explanation   string `json:"explanation"`
}
