package postgres_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/assignment"
	assignmentPostgres "github.com/frahmantamala/asset-management/internal/assignment/postgres"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	assignmentDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assignment"
	staffDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/staff"
	"github.com/frahmantamala/asset-management/internal/testdb"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestAssignmentPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Assignment Postgres Suite")
}

var _ = Describe("Assignment PostgreSQL Repository", func() {
	var (
		db     *gorm.DB
		repo   assignment.RepositoryAPI
		ctx    context.Context
		laptop *assetDatamodel.Asset
		member *staffDatamodel.Staff
	)

	BeforeEach(func() {
		var err error
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())
		repo = assignmentPostgres.NewAssignmentRepository(db)
		ctx = context.Background()

		laptop = &assetDatamodel.Asset{SerialNumber: "SN-1", Model: "XPS", Type: "Laptop", Status: "Available"}
		member = &staffDatamodel.Staff{EmployeeID: "E-1", Name: "Made"}
		Expect(db.Create(laptop).Error).To(Succeed())
		Expect(db.Create(member).Error).To(Succeed())
	})

	It("should allow only one open assignment per asset", func() {
		Expect(repo.Create(ctx, &assignmentDatamodel.Assignment{AssetID: laptop.ID, StaffID: member.ID, IssueDate: time.Now()})).To(Succeed())
		err := repo.Create(ctx, &assignmentDatamodel.Assignment{AssetID: laptop.ID, StaffID: member.ID, IssueDate: time.Now()})
		Expect(err).To(HaveOccurred())
	})

	It("should allow any number of closed assignments", func() {
		for i := 0; i < 3; i++ {
			a := &assignmentDatamodel.Assignment{AssetID: laptop.ID, StaffID: member.ID, IssueDate: time.Now()}
			Expect(repo.Create(ctx, a)).To(Succeed())
			Expect(repo.Close(ctx, a.ID, time.Now())).To(Succeed())
		}

		open, err := repo.GetOpenByAsset(ctx, laptop.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(open).To(BeNil())
	})

	It("should load the open assignment with names", func() {
		Expect(repo.Create(ctx, &assignmentDatamodel.Assignment{AssetID: laptop.ID, StaffID: member.ID, IssueDate: time.Now()})).To(Succeed())

		row, err := repo.GetOpenWithNames(ctx, laptop.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(row.StaffName).To(Equal("Made"))
		Expect(row.AssetSerialNumber).To(Equal("SN-1"))
	})

	Describe("with the service", func() {
		var service *assignment.Service

		BeforeEach(func() {
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
			service = assignment.NewService(repo, nil, logger)
		})

		assetStatus := func() string {
			var a assetDatamodel.Asset
			Expect(db.First(&a, laptop.ID).Error).To(Succeed())
			return a.Status
		}

		It("should commit the assignment and the status together", func() {
			_, err := service.Issue(ctx, laptop.ID, assignment.IssueDTO{StaffID: member.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(assetStatus()).To(Equal("Issued"))

			_, err = service.Issue(ctx, laptop.ID, assignment.IssueDTO{StaffID: member.ID})
			Expect(err).To(MatchError(internal.ErrAssetAlreadyIssued))

			result, err := service.Return(ctx, laptop.ID, assignment.ReturnDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Assignment).NotTo(BeNil())
			Expect(assetStatus()).To(Equal("Available"))
		})

		It("should roll back the status when the staff member is missing", func() {
			_, err := service.Issue(ctx, laptop.ID, assignment.IssueDTO{StaffID: 999})
			Expect(err).To(MatchError(internal.ErrStaffNotFound))
			Expect(assetStatus()).To(Equal("Available"))

			var count int64
			Expect(db.Model(&assignmentDatamodel.Assignment{}).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})
	})
})
