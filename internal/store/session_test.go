package store_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opengi/papergen/internal/config"
	"github.com/opengi/papergen/internal/store"
	"github.com/opengi/papergen/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

const (
	insertSessionStm = "INSERT INTO sessions (id, created_at, filename, format, columns) VALUES ('%s', CURRENT_TIMESTAMP, '%s', 'csv', '[\"GI Name\",\"GI Description\",\"GI Location\"]');"
)

var _ = Describe("session store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(Succeed())
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM papers;")
		gormdb.Exec("DELETE FROM rows;")
		gormdb.Exec("DELETE FROM sessions;")
	})

	Context("create", func() {
		It("persists the session together with its rows", func() {
			session := &model.Session{
				ID:        uuid.New(),
				CreatedAt: time.Now(),
				Filename:  "responses.csv",
				Format:    "csv",
				Columns:   `["GI Name","GI Description","GI Location"]`,
				Rows: []model.Row{
					{Idx: 0, Name: "Darjeeling Tea", Description: "muscatel flavour", Location: "West Bengal", Cells: `["Darjeeling Tea","muscatel flavour","West Bengal"]`},
					{Idx: 1, Name: "Kanchipuram Silk", Description: "handwoven silk", Location: "Tamil Nadu", Cells: `["Kanchipuram Silk","handwoven silk","Tamil Nadu"]`},
				},
			}
			for i := range session.Rows {
				session.Rows[i].SessionID = session.ID
			}

			Expect(s.Session().Create(context.TODO(), session)).To(Succeed())

			got, err := s.Session().Get(context.TODO(), session.ID)
			Expect(err).To(BeNil())
			Expect(got.Filename).To(Equal("responses.csv"))
			Expect(got.ColumnHeaders()).To(HaveLen(3))

			rows, err := s.Row().List(context.TODO(), session.ID)
			Expect(err).To(BeNil())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].Selected).To(BeFalse())
			Expect(rows[1].Selected).To(BeFalse())
		})
	})

	Context("get", func() {
		It("returns ErrRecordNotFound for an unknown session", func() {
			_, err := s.Session().Get(context.TODO(), uuid.New())
			Expect(err).To(Equal(store.ErrRecordNotFound))
		})
	})

	Context("list", func() {
		It("lists all sessions", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertSessionStm, uuid.NewString(), "first.csv"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertSessionStm, uuid.NewString(), "second.csv"))
			Expect(tx.Error).To(BeNil())

			sessions, err := s.Session().List(context.TODO())
			Expect(err).To(BeNil())
			Expect(sessions).To(HaveLen(2))
		})

		It("lists no sessions when none exist", func() {
			sessions, err := s.Session().List(context.TODO())
			Expect(err).To(BeNil())
			Expect(sessions).To(HaveLen(0))
		})

		It("lists sessions with their rows loaded", func() {
			sessionID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertSessionStm, sessionID.String(), "counted.csv"))
			Expect(tx.Error).To(BeNil())
			for i := 0; i < 2; i++ {
				tx = gormdb.Exec(fmt.Sprintf(insertRowStm, sessionID.String(), i, fmt.Sprintf("gi-%d", i), "FALSE"))
				Expect(tx.Error).To(BeNil())
			}

			sessions, err := s.Session().List(context.TODO())
			Expect(err).To(BeNil())
			Expect(sessions).To(HaveLen(1))
			Expect(sessions[0].Rows).To(HaveLen(2))
		})
	})

	Context("delete", func() {
		It("deletes the session", func() {
			sessionID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertSessionStm, sessionID.String(), "gone.csv"))
			Expect(tx.Error).To(BeNil())

			Expect(s.Session().Delete(context.TODO(), sessionID)).To(Succeed())

			_, err := s.Session().Get(context.TODO(), sessionID)
			Expect(err).To(Equal(store.ErrRecordNotFound))
		})

		It("deletes the session's rows and papers with it", func() {
			sessionID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertSessionStm, sessionID.String(), "full.csv"))
			Expect(tx.Error).To(BeNil())
			for i := 0; i < 2; i++ {
				tx = gormdb.Exec(fmt.Sprintf(insertRowStm, sessionID.String(), i, fmt.Sprintf("gi-%d", i), "FALSE"))
				Expect(tx.Error).To(BeNil())
			}
			tx = gormdb.Exec(fmt.Sprintf(insertPaperStm, sessionID.String(), 0, "succeeded"))
			Expect(tx.Error).To(BeNil())

			Expect(s.Session().Delete(context.TODO(), sessionID)).To(Succeed())

			rows, err := s.Row().List(context.TODO(), sessionID)
			Expect(err).To(BeNil())
			Expect(rows).To(HaveLen(0))

			papers, err := s.Paper().List(context.TODO(), sessionID)
			Expect(err).To(BeNil())
			Expect(papers).To(HaveLen(0))
		})
	})
})
