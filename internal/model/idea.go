// internal/model/idea.go
package model

import "time"

// Idea is a user-submitted guide suggestion. Title is the dedup key; a repeat
// submission bumps Count instead of inserting a new row.
type Idea struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null;index" json:"title"`
	Count     int       `gorm:"not null;default:1" json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

func (Idea) TableName() string {
	return "ideas"
}

type CreateIdeaRequest struct {
	Title string `json:"title" validate:"required"`
}
