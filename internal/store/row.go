package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/opengi/papergen/internal/store/model"
	"gorm.io/gorm"
)

type Row interface {
	List(ctx context.Context, sessionID uuid.UUID) ([]model.Row, error)
	Get(ctx context.Context, sessionID uuid.UUID, idx int) (*model.Row, error)
	ListSelected(ctx context.Context, sessionID uuid.UUID) ([]model.Row, error)
	Toggle(ctx context.Context, sessionID uuid.UUID, idx int) error
	SetAll(ctx context.Context, sessionID uuid.UUID, selected bool) error
}

type RowStore struct {
	db *gorm.DB
}

var _ Row = (*RowStore)(nil)

func NewRowStore(db *gorm.DB) Row {
	return &RowStore{db: db}
}

func (s *RowStore) List(ctx context.Context, sessionID uuid.UUID) ([]model.Row, error) {
	var rows []model.Row
	result := s.getDB(ctx).Where("session_id = ?", sessionID).Order("idx ASC").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}

func (s *RowStore) Get(ctx context.Context, sessionID uuid.UUID, idx int) (*model.Row, error) {
	var row model.Row
	result := s.getDB(ctx).First(&row, "session_id = ? AND idx = ?", sessionID, idx)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &row, nil
}

// ListSelected returns the selected rows preserving their original order.
func (s *RowStore) ListSelected(ctx context.Context, sessionID uuid.UUID) ([]model.Row, error) {
	var rows []model.Row
	result := s.getDB(ctx).Where("session_id = ? AND selected = ?", sessionID, true).Order("idx ASC").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}

// Toggle flips the selection flag of one row. Toggling a row index that is
// not part of the session is a no-op.
func (s *RowStore) Toggle(ctx context.Context, sessionID uuid.UUID, idx int) error {
	result := s.getDB(ctx).Model(&model.Row{}).
		Where("session_id = ? AND idx = ?", sessionID, idx).
		Update("selected", gorm.Expr("NOT selected"))
	return result.Error
}

func (s *RowStore) SetAll(ctx context.Context, sessionID uuid.UUID, selected bool) error {
	result := s.getDB(ctx).Model(&model.Row{}).
		Where("session_id = ?", sessionID).
		Update("selected", selected)
	return result.Error
}

func (s *RowStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
