package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt *time.Time
	Filename  string `gorm:"not null;type:VARCHAR(255)"`
	Format    string `gorm:"not null;type:VARCHAR(16)"`
	Columns   string `gorm:"type:TEXT"` // JSON array of column headers
	Rows      []Row  `gorm:"foreignKey:SessionID;references:ID;constraint:OnDelete:CASCADE;"`
}

// Row is one ingested spreadsheet row. The index within the session is its
// stable identifier; cell data is immutable once ingested, only the
// selection flag is mutated.
type Row struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	SessionID   uuid.UUID `gorm:"not null;uniqueIndex:rows_session_idx;type:VARCHAR(255);"`
	Idx         int       `gorm:"not null;uniqueIndex:rows_session_idx"`
	Name        string    `gorm:"type:TEXT"`
	Description string    `gorm:"type:TEXT"`
	Location    string    `gorm:"type:TEXT"`
	Cells       string    `gorm:"type:TEXT"` // JSON array of all cell values
	Selected    bool      `gorm:"not null;default:false"`
}

type SessionList []Session

func (s Session) String() string {
	val, _ := json.Marshal(s)
	return string(val)
}

func (s *Session) ColumnHeaders() []string {
	var headers []string
	_ = json.Unmarshal([]byte(s.Columns), &headers)
	return headers
}

func (r *Row) CellValues() []string {
	var cells []string
	_ = json.Unmarshal([]byte(r.Cells), &cells)
	return cells
}
