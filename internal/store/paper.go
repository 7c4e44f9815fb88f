package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/opengi/papergen/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Paper interface {
	Submit(ctx context.Context, paper *model.Paper) error
	Get(ctx context.Context, sessionID uuid.UUID, rowIdx int) (*model.Paper, error)
	List(ctx context.Context, sessionID uuid.UUID) (model.PaperList, error)
	CompleteFromPending(ctx context.Context, sessionID uuid.UUID, rowIdx int, status model.PaperStatus, reason *string, filename *string) (bool, error)
}

type PaperStore struct {
	db *gorm.DB
}

var _ Paper = (*PaperStore)(nil)

func NewPaperStore(db *gorm.DB) Paper {
	return &PaperStore{db: db}
}

// Submit records a generation request for a row and (re-)enters it at
// pending. A previous paper for the same row, terminal or not, is replaced.
func (s *PaperStore) Submit(ctx context.Context, paper *model.Paper) error {
	paper.Status = model.PaperStatusPending
	paper.Error = nil
	paper.Filename = nil

	result := s.getDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "row_idx"}},
		DoUpdates: clause.AssignmentColumns([]string{"date", "signature", "status", "error", "filename", "updated_at"}),
	}).Create(paper)
	return result.Error
}

func (s *PaperStore) Get(ctx context.Context, sessionID uuid.UUID, rowIdx int) (*model.Paper, error) {
	var paper model.Paper
	result := s.getDB(ctx).First(&paper, "session_id = ? AND row_idx = ?", sessionID, rowIdx)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &paper, nil
}

func (s *PaperStore) List(ctx context.Context, sessionID uuid.UUID) (model.PaperList, error) {
	var papers model.PaperList
	result := s.getDB(ctx).Where("session_id = ?", sessionID).Order("row_idx ASC").Find(&papers)
	if result.Error != nil {
		return nil, result.Error
	}
	return papers, nil
}

// CompleteFromPending transitions a row's paper from pending to a terminal
// status. The pending guard is part of the WHERE clause so that duplicate or
// late completions never overwrite a terminal state. Returns false when no
// transition was applied.
func (s *PaperStore) CompleteFromPending(ctx context.Context, sessionID uuid.UUID, rowIdx int, status model.PaperStatus, reason *string, filename *string) (bool, error) {
	now := time.Now()
	result := s.getDB(ctx).Model(&model.Paper{}).
		Where("session_id = ? AND row_idx = ? AND status = ?", sessionID, rowIdx, model.PaperStatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"error":      reason,
			"filename":   filename,
			"updated_at": &now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *PaperStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
