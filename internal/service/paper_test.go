package service_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/opengi/papergen/internal/config"
	"github.com/opengi/papergen/internal/generator"
	"github.com/opengi/papergen/internal/service"
	"github.com/opengi/papergen/internal/store"
	"github.com/opengi/papergen/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("paper service", Ordered, func() {
	var (
		s            store.Store
		gormdb       *gorm.DB
		srv          *service.PaperService
		selectionSrv *service.SelectionService
		sessionID    uuid.UUID
		cancel       context.CancelFunc
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(Succeed())

		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())

		gen := generator.Func(func(_ context.Context, req generator.Request) (string, error) {
			return generator.ArtifactFilename(req.Name, req.Date), nil
		})
		dispatcher := generator.NewDispatcher(s, gen, 2)
		dispatcher.Start(ctx)

		srv = service.NewPaperService(s, dispatcher)
		selectionSrv = service.NewSelectionService(s)
	})

	AfterAll(func() {
		cancel()
		s.Close()
	})

	BeforeEach(func() {
		session, err := service.NewSessionService(s).CreateSession(context.TODO(), "responses.csv", []byte(sampleCSV))
		Expect(err).To(BeNil())
		sessionID = session.ID
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM papers;")
		gormdb.Exec("DELETE FROM rows;")
		gormdb.Exec("DELETE FROM sessions;")
	})

	form := func() service.GenerationForm {
		return service.GenerationForm{Date: "2026-01-05", Signature: "Registrar"}
	}

	Context("validation", func() {
		It("rejects a request without a date", func() {
			Expect(selectionSrv.SelectAll(context.TODO(), sessionID)).To(Succeed())

			_, err := srv.Generate(context.TODO(), sessionID, service.GenerationForm{Signature: "Registrar"})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidGenerationForm{}))

			papers, err := srv.Statuses(context.TODO(), sessionID)
			Expect(err).To(BeNil())
			Expect(papers).To(HaveLen(0))
		})

		It("rejects a request without a signature", func() {
			Expect(selectionSrv.SelectAll(context.TODO(), sessionID)).To(Succeed())

			_, err := srv.Generate(context.TODO(), sessionID, service.GenerationForm{Date: "2026-01-05"})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidGenerationForm{}))
		})

		It("rejects a request with an empty selection", func() {
			_, err := srv.Generate(context.TODO(), sessionID, form())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidGenerationForm{}))

			papers, err := srv.Statuses(context.TODO(), sessionID)
			Expect(err).To(BeNil())
			Expect(papers).To(HaveLen(0))
		})

		It("rejects an unknown session", func() {
			_, err := srv.Generate(context.TODO(), uuid.New(), form())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})

		It("reports not found for an unknown session even with an incomplete form", func() {
			_, err := srv.Generate(context.TODO(), uuid.New(), service.GenerationForm{Signature: "Registrar"})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})

	Context("generate", func() {
		It("submits one paper per selected row in row order", func() {
			Expect(selectionSrv.Toggle(context.TODO(), sessionID, 2)).To(Succeed())
			Expect(selectionSrv.Toggle(context.TODO(), sessionID, 0)).To(Succeed())

			papers, err := srv.Generate(context.TODO(), sessionID, form())
			Expect(err).To(BeNil())
			Expect(papers).To(HaveLen(2))
			Expect(papers[0].RowIdx).To(Equal(0))
			Expect(papers[1].RowIdx).To(Equal(2))
			Expect(papers[0].Status).To(Equal(model.PaperStatusPending))

			Eventually(func() bool {
				statuses, err := srv.Statuses(context.TODO(), sessionID)
				if err != nil || len(statuses) != 2 {
					return false
				}
				for _, p := range statuses {
					if p.Status != model.PaperStatusSucceeded {
						return false
					}
				}
				return true
			}).Should(BeTrue())
		})

		It("leaves unselected rows unsubmitted", func() {
			Expect(selectionSrv.Toggle(context.TODO(), sessionID, 1)).To(Succeed())

			_, err := srv.Generate(context.TODO(), sessionID, form())
			Expect(err).To(BeNil())

			papers, err := srv.Statuses(context.TODO(), sessionID)
			Expect(err).To(BeNil())
			Expect(papers).To(HaveLen(1))
			Expect(papers[0].RowIdx).To(Equal(1))
		})

		It("re-submits a completed row at pending", func() {
			Expect(selectionSrv.Toggle(context.TODO(), sessionID, 0)).To(Succeed())

			_, err := srv.Generate(context.TODO(), sessionID, form())
			Expect(err).To(BeNil())

			Eventually(func() model.PaperStatus {
				paper, err := s.Paper().Get(context.TODO(), sessionID, 0)
				if err != nil {
					return ""
				}
				return paper.Status
			}).Should(Equal(model.PaperStatusSucceeded))

			papers, err := srv.Generate(context.TODO(), sessionID, service.GenerationForm{Date: "2026-02-06", Signature: "Registrar"})
			Expect(err).To(BeNil())
			Expect(papers).To(HaveLen(1))
			Expect(papers[0].Date).To(Equal("2026-02-06"))
			Expect(papers[0].Status).To(Equal(model.PaperStatusPending))
		})
	})

	Context("statuses", func() {
		It("rejects an unknown session", func() {
			_, err := srv.Statuses(context.TODO(), uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})
})
