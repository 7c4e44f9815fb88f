package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/opengi/papergen/internal/generator"
	"github.com/opengi/papergen/internal/store"
	"github.com/opengi/papergen/internal/store/model"
	"go.uber.org/zap"
)

// GenerationForm carries the metadata attached to every paper built from
// the current selection.
type GenerationForm struct {
	Date      string
	Signature string
}

type PaperService struct {
	store      store.Store
	dispatcher *generator.Dispatcher
}

func NewPaperService(store store.Store, dispatcher *generator.Dispatcher) *PaperService {
	return &PaperService{store: store, dispatcher: dispatcher}
}

// Generate builds one generation request per selected row and submits the
// batch. Validation is all-or-nothing: an empty selection or unset
// date/signature fails before any request is constructed, and a failure to
// record any pending row rolls back the whole submission.
func (s *PaperService) Generate(ctx context.Context, sessionID uuid.UUID, form GenerationForm) (model.PaperList, error) {
	logger := zap.S().Named("paper_service")

	if _, err := s.store.Session().Get(ctx, sessionID); err != nil {
		if err == store.ErrRecordNotFound {
			return nil, NewErrSessionNotFound(sessionID)
		}
		return nil, err
	}

	if form.Date == "" {
		return nil, NewErrMissingMetadata("date")
	}
	if form.Signature == "" {
		return nil, NewErrMissingMetadata("signature")
	}

	rows, err := s.store.Row().ListSelected(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, NewErrEmptySelection(sessionID)
	}

	// Requests preserve the rows' original relative order.
	requests := make([]generator.Request, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, generator.Request{
			SessionID:   sessionID,
			RowIdx:      row.Idx,
			Name:        row.Name,
			Description: row.Description,
			Location:    row.Location,
			Cells:       row.CellValues(),
			Date:        form.Date,
			Signature:   form.Signature,
		})
	}

	txCtx, err := s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	papers := make(model.PaperList, 0, len(requests))
	for _, req := range requests {
		paper := &model.Paper{
			CreatedAt: time.Now(),
			SessionID: sessionID,
			RowIdx:    req.RowIdx,
			Date:      req.Date,
			Signature: req.Signature,
		}
		if err := s.store.Paper().Submit(txCtx, paper); err != nil {
			if _, rbErr := store.Rollback(txCtx); rbErr != nil {
				logger.Errorf("failed to rollback submission: %v", rbErr)
			}
			return nil, err
		}
		papers = append(papers, *paper)
	}

	if _, err := store.Commit(txCtx); err != nil {
		return nil, err
	}

	if err := s.dispatcher.Enqueue(ctx, requests); err != nil {
		return nil, err
	}

	logger.Infof("submitted %d generation requests for session %s", len(requests), sessionID)
	return papers, nil
}

// Statuses lists per-row generation statuses for a session. Rows never
// submitted have no entry.
func (s *PaperService) Statuses(ctx context.Context, sessionID uuid.UUID) (model.PaperList, error) {
	if _, err := s.store.Session().Get(ctx, sessionID); err != nil {
		if err == store.ErrRecordNotFound {
			return nil, NewErrSessionNotFound(sessionID)
		}
		return nil, err
	}
	return s.store.Paper().List(ctx, sessionID)
}
