package models

import "time"

// WorkflowConfig holds the minimum dwell time for one pipeline edge.
// The three step names are fixed; rows are seeded at first boot and
// only minimum_minutes / is_active change afterwards.
type WorkflowConfig struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	StepName       string    `json:"step_name" gorm:"size:40;uniqueIndex"`
	MinimumMinutes int       `json:"minimum_minutes"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
