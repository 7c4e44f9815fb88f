package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opengi/papergen/internal/ingest"
	"github.com/opengi/papergen/internal/store"
	"github.com/opengi/papergen/internal/store/model"
	"github.com/opengi/papergen/pkg/metrics"
	"go.uber.org/zap"
)

type SessionService struct {
	store store.Store
}

func NewSessionService(store store.Store) *SessionService {
	return &SessionService{store: store}
}

// CreateSession ingests an uploaded spreadsheet into a fresh session. Rows
// of a new session always start unselected; nothing carries over from a
// previous upload.
func (s *SessionService) CreateSession(ctx context.Context, filename string, content []byte) (*model.Session, error) {
	logger := zap.S().Named("session_service")

	format, err := detectFormat(filename, content)
	if err != nil {
		metrics.IncreaseUploadsTotalMetric("rejected")
		return nil, err
	}

	sheet, err := ingest.Parse(content, format)
	if err != nil {
		metrics.IncreaseUploadsTotalMetric("failed")
		return nil, NewErrSpreadsheetCorrupted(err.Error())
	}

	headers, _ := json.Marshal(sheet.Headers)
	session := &model.Session{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		Filename:  filepath.Base(filename),
		Format:    format,
		Columns:   string(headers),
		Rows:      make([]model.Row, 0, len(sheet.Rows)),
	}

	for _, row := range sheet.Rows {
		cells, _ := json.Marshal(row.Cells)
		session.Rows = append(session.Rows, model.Row{
			SessionID:   session.ID,
			Idx:         row.Idx,
			Name:        row.Name,
			Description: row.Description,
			Location:    row.Location,
			Cells:       string(cells),
		})
	}

	if err := s.store.Session().Create(ctx, session); err != nil {
		metrics.IncreaseUploadsTotalMetric("failed")
		return nil, err
	}

	metrics.IncreaseUploadsTotalMetric("accepted")
	metrics.AddRowsIngestedMetric(len(session.Rows))
	logger.Infof("session %s created from %s with %d rows", session.ID, session.Filename, len(session.Rows))

	return session, nil
}

func (s *SessionService) GetSession(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	session, err := s.store.Session().Get(ctx, id)
	if err != nil {
		if err == store.ErrRecordNotFound {
			return nil, NewErrSessionNotFound(id)
		}
		return nil, err
	}
	return session, nil
}

func (s *SessionService) ListSessions(ctx context.Context) (model.SessionList, error) {
	return s.store.Session().List(ctx)
}

func (s *SessionService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	return s.store.Session().Delete(ctx, id)
}

func (s *SessionService) ListRows(ctx context.Context, sessionID uuid.UUID) ([]model.Row, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.store.Row().List(ctx, sessionID)
}

// detectFormat validates the extension and, for Excel uploads, the content
// signature. Legacy .xls workbooks are not supported.
func detectFormat(filename string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		if !ingest.IsExcelFile(content) {
			return "", NewErrSpreadsheetCorrupted("content is not a valid Excel workbook")
		}
		return "xlsx", nil
	case ".csv":
		return "csv", nil
	default:
		return "", NewErrUnsupportedFormat(ext)
	}
}
