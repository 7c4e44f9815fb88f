package store

import (
	"context"

	"github.com/opengi/papergen/internal/store/model"
	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Session() Session
	Row() Row
	Paper() Paper
	InitialMigration() error
	Close() error
}

type DataStore struct {
	db      *gorm.DB
	session Session
	row     Row
	paper   Paper
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		session: NewSessionStore(db),
		row:     NewRowStore(db),
		paper:   NewPaperStore(db),
		db:      db,
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Session() Session {
	return s.session
}

func (s *DataStore) Row() Row {
	return s.row
}

func (s *DataStore) Paper() Paper {
	return s.paper
}

func (s *DataStore) InitialMigration() error {
	return s.db.AutoMigrate(&model.Session{}, &model.Row{}, &model.Paper{})
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
