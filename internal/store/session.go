package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/opengi/papergen/internal/store/model"
	"gorm.io/gorm"
)

type Session interface {
	Create(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id uuid.UUID) (*model.Session, error)
	List(ctx context.Context) (model.SessionList, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SessionStore struct {
	db *gorm.DB
}

var _ Session = (*SessionStore)(nil)

func NewSessionStore(db *gorm.DB) Session {
	return &SessionStore{db: db}
}

// Create persists the session together with its ingested rows.
func (s *SessionStore) Create(ctx context.Context, session *model.Session) error {
	result := s.getDB(ctx).Create(session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return result.Error
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	var session model.Session
	result := s.getDB(ctx).First(&session, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &session, nil
}

func (s *SessionStore) List(ctx context.Context) (model.SessionList, error) {
	var sessions model.SessionList
	result := s.getDB(ctx).Preload("Rows").Order("created_at DESC").Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}
	return sessions, nil
}

// Delete removes the session together with its rows and papers. The cascade
// is explicit so it does not depend on the driver enforcing foreign keys.
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Paper{}, "session_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Row{}, "session_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Session{}, "id = ?", id).Error
	})
}

func (s *SessionStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
