package service_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/opengi/papergen/internal/config"
	"github.com/opengi/papergen/internal/service"
	"github.com/opengi/papergen/internal/store"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

const sampleCSV = `GI Name,GI Description,GI Location,Proof of Origin
Darjeeling Tea,muscatel flavour,West Bengal,tea board records
Kanchipuram Silk,handwoven silk,Tamil Nadu,weaver society records
Feni,cashew spirit,Goa,distillery records
`

var _ = Describe("session service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		srv    *service.SessionService
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(Succeed())

		srv = service.NewSessionService(s)
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
		It("ingests a csv upload into a fresh session", func() {
			session, err := srv.CreateSession(context.TODO(), "responses.csv", []byte(sampleCSV))
			Expect(err).To(BeNil())
			Expect(session.Format).To(Equal("csv"))
			Expect(session.ColumnHeaders()).To(HaveLen(4))
			Expect(session.Rows).To(HaveLen(3))

			rows, err := srv.ListRows(context.TODO(), session.ID)
			Expect(err).To(BeNil())
			Expect(rows).To(HaveLen(3))
			for _, row := range rows {
				Expect(row.Selected).To(BeFalse())
			}
			Expect(rows[0].Name).To(Equal("Darjeeling Tea"))
			Expect(rows[2].Location).To(Equal("Goa"))
		})

		It("strips the directory from the uploaded filename", func() {
			session, err := srv.CreateSession(context.TODO(), "../uploads/responses.csv", []byte(sampleCSV))
			Expect(err).To(BeNil())
			Expect(session.Filename).To(Equal("responses.csv"))
		})

		It("rejects an unsupported extension", func() {
			_, err := srv.CreateSession(context.TODO(), "responses.pdf", []byte(sampleCSV))
			Expect(err).To(BeAssignableToTypeOf(&service.ErrUnsupportedFormat{}))
		})

		It("rejects an xlsx upload whose content is not a workbook", func() {
			_, err := srv.CreateSession(context.TODO(), "responses.xlsx", []byte("plain text"))
			Expect(err).To(BeAssignableToTypeOf(&service.ErrFileCorrupted{}))
		})

		It("rejects a csv with no data rows", func() {
			_, err := srv.CreateSession(context.TODO(), "responses.csv", []byte("GI Name,GI Description,GI Location\n"))
			Expect(err).To(BeAssignableToTypeOf(&service.ErrFileCorrupted{}))
		})

		It("starts every new upload with an empty selection", func() {
			selectionSrv := service.NewSelectionService(s)

			first, err := srv.CreateSession(context.TODO(), "first.csv", []byte(sampleCSV))
			Expect(err).To(BeNil())
			Expect(selectionSrv.SelectAll(context.TODO(), first.ID)).To(Succeed())

			second, err := srv.CreateSession(context.TODO(), "second.csv", []byte(sampleCSV))
			Expect(err).To(BeNil())

			selected, err := selectionSrv.Selected(context.TODO(), second.ID)
			Expect(err).To(BeNil())
			Expect(selected).To(HaveLen(0))
		})
	})

	Context("get", func() {
		It("returns a not found error for an unknown session", func() {
			_, err := srv.GetSession(context.TODO(), uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("delete", func() {
		It("deletes the session", func() {
			session, err := srv.CreateSession(context.TODO(), "responses.csv", []byte(sampleCSV))
			Expect(err).To(BeNil())

			Expect(srv.DeleteSession(context.TODO(), session.ID)).To(Succeed())

			_, err = srv.GetSession(context.TODO(), session.ID)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})
})

var _ = Describe("selection service", Ordered, func() {
	var (
		s         store.Store
		gormdb    *gorm.DB
		srv       *service.SelectionService
		sessionID uuid.UUID
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(Succeed())

		srv = service.NewSelectionService(s)
	})

	AfterAll(func() {
		s.Close()
	})

	BeforeEach(func() {
		session, err := service.NewSessionService(s).CreateSession(context.TODO(), "responses.csv", []byte(sampleCSV))
		Expect(err).To(BeNil())
		sessionID = session.ID
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM rows;")
		gormdb.Exec("DELETE FROM sessions;")
	})

	It("toggle adds and removes a row from the selection", func() {
		Expect(srv.Toggle(context.TODO(), sessionID, 1)).To(Succeed())

		selected, err := srv.Selected(context.TODO(), sessionID)
		Expect(err).To(BeNil())
		Expect(selected).To(Equal([]int{1}))

		Expect(srv.Toggle(context.TODO(), sessionID, 1)).To(Succeed())

		selected, err = srv.Selected(context.TODO(), sessionID)
		Expect(err).To(BeNil())
		Expect(selected).To(HaveLen(0))
	})

	It("toggle of an unknown row index changes nothing", func() {
		Expect(srv.Toggle(context.TODO(), sessionID, 99)).To(Succeed())

		selected, err := srv.Selected(context.TODO(), sessionID)
		Expect(err).To(BeNil())
		Expect(selected).To(HaveLen(0))
	})

	It("select all then clear", func() {
		Expect(srv.SelectAll(context.TODO(), sessionID)).To(Succeed())

		selected, err := srv.Selected(context.TODO(), sessionID)
		Expect(err).To(BeNil())
		Expect(selected).To(Equal([]int{0, 1, 2}))

		Expect(srv.ClearAll(context.TODO(), sessionID)).To(Succeed())

		selected, err = srv.Selected(context.TODO(), sessionID)
		Expect(err).To(BeNil())
		Expect(selected).To(HaveLen(0))
	})

	It("selected preserves the row order regardless of toggle order", func() {
		Expect(srv.Toggle(context.TODO(), sessionID, 2)).To(Succeed())
		Expect(srv.Toggle(context.TODO(), sessionID, 0)).To(Succeed())

		selected, err := srv.Selected(context.TODO(), sessionID)
		Expect(err).To(BeNil())
		Expect(selected).To(Equal([]int{0, 2}))
	})

	It("rejects operations on an unknown session", func() {
		err := srv.SelectAll(context.TODO(), uuid.New())
		Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
	})
})
