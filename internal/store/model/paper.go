package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type PaperStatus string

// Per-row state machine: a row without a paper record is NotSubmitted;
// a submitted paper starts Pending and terminates in Succeeded or Failed.
// Terminal states are only left by a fresh submit, which re-enters Pending.
const (
	PaperStatusPending   PaperStatus = "pending"
	PaperStatusSucceeded PaperStatus = "succeeded"
	PaperStatusFailed    PaperStatus = "failed"
)

type Paper struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt *time.Time
	SessionID uuid.UUID   `gorm:"not null;uniqueIndex:papers_session_row;type:VARCHAR(255);"`
	RowIdx    int         `gorm:"not null;uniqueIndex:papers_session_row"`
	Date      string      `gorm:"not null;type:VARCHAR(32)"`
	Signature string      `gorm:"not null;type:VARCHAR(255)"`
	Status    PaperStatus `gorm:"not null;type:VARCHAR(16)"`
	Error     *string     `gorm:"type:TEXT"`
	Filename  *string     `gorm:"type:VARCHAR(255)"`
}

type PaperList []Paper

func (p Paper) String() string {
	val, _ := json.Marshal(p)
	return string(val)
}
