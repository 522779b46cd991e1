package models

import (
	"time"

	"gorm.io/datatypes"
)

// Insight is generated commentary about a student. The snapshot that fed the
// generator is stored alongside the text so past insights stay reproducible.
// Append-only.
type Insight struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	StudentID     uint           `gorm:"index;not null" json:"student_id"`
	InputSnapshot datatypes.JSON `json:"input_snapshot"`
	Text          string         `gorm:"type:text;not null" json:"text"`
	GeneratedAt   time.Time      `json:"generated_at"`
}
