package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/opengi/papergen/internal/store"
)

// SelectionService mutates the per-session row selection. All selection
// state lives in the store; the UI only observes it.
type SelectionService struct {
	store store.Store
}

func NewSelectionService(store store.Store) *SelectionService {
	return &SelectionService{store: store}
}

// Toggle flips membership of one row in the selection. Toggling a row
// index unknown to the session is a no-op.
func (s *SelectionService) Toggle(ctx context.Context, sessionID uuid.UUID, rowIdx int) error {
	if err := s.ensureSession(ctx, sessionID); err != nil {
		return err
	}
	return s.store.Row().Toggle(ctx, sessionID, rowIdx)
}

func (s *SelectionService) SelectAll(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.ensureSession(ctx, sessionID); err != nil {
		return err
	}
	return s.store.Row().SetAll(ctx, sessionID, true)
}

func (s *SelectionService) ClearAll(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.ensureSession(ctx, sessionID); err != nil {
		return err
	}
	return s.store.Row().SetAll(ctx, sessionID, false)
}

// Selected returns the selected row indices in their original row order.
func (s *SelectionService) Selected(ctx context.Context, sessionID uuid.UUID) ([]int, error) {
	if err := s.ensureSession(ctx, sessionID); err != nil {
		return nil, err
	}

	rows, err := s.store.Row().ListSelected(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	selected := make([]int, 0, len(rows))
	for _, row := range rows {
		selected = append(selected, row.Idx)
	}
	return selected, nil
}

func (s *SelectionService) ensureSession(ctx context.Context, sessionID uuid.UUID) error {
	if _, err := s.store.Session().Get(ctx, sessionID); err != nil {
		if err == store.ErrRecordNotFound {
			return NewErrSessionNotFound(sessionID)
		}
		return err
	}
	return nil
}
