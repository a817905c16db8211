package postgres_test

import (
	"context"
	"testing"
	"time"

	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	assignmentDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assignment"
	staffDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/staff"
	"github.com/frahmantamala/asset-management/internal/staff"
	staffPostgres "github.com/frahmantamala/asset-management/internal/staff/postgres"
	"github.com/frahmantamala/asset-management/internal/testdb"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestStaffPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Staff Postgres Suite")
}

var _ = Describe("Staff PostgreSQL Repository", func() {
	var (
		db    *gorm.DB
		repo  staff.RepositoryAPI
		ctx   context.Context
		alice *staffDatamodel.Staff
		bob   *staffDatamodel.Staff
	)

	BeforeEach(func() {
		var err error
		db, err = testdb.Open()
		Expect(err).NotTo(HaveOccurred())
		repo = staffPostgres.NewStaffRepository(db)
		ctx = context.Background()

		alice = &staffDatamodel.Staff{EmployeeID: "E-1", Name: "Alice", Department: "Engineering"}
		bob = &staffDatamodel.Staff{EmployeeID: "E-2", Name: "Bob", Department: "Sales"}
		Expect(repo.Create(ctx, alice)).To(Succeed())
		Expect(repo.Create(ctx, bob)).To(Succeed())

		laptop := &assetDatamodel.Asset{SerialNumber: "L-1", Model: "XPS", Type: "Laptop", Status: "Issued"}
		phone := &assetDatamodel.Asset{SerialNumber: "P-1", Model: "Pixel", Type: "Mobile Phone", Status: "Issued"}
		old := &assetDatamodel.Asset{SerialNumber: "O-1", Model: "Latitude", Type: "Laptop", Status: "Available"}
		for _, a := range []*assetDatamodel.Asset{laptop, phone, old} {
			Expect(db.Create(a).Error).To(Succeed())
		}

		returned := time.Now().Add(-time.Hour)
		Expect(db.Create(&assignmentDatamodel.Assignment{AssetID: laptop.ID, StaffID: alice.ID, IssueDate: time.Now()}).Error).To(Succeed())
		Expect(db.Create(&assignmentDatamodel.Assignment{AssetID: phone.ID, StaffID: alice.ID, IssueDate: time.Now()}).Error).To(Succeed())
		Expect(db.Create(&assignmentDatamodel.Assignment{AssetID: old.ID, StaffID: alice.ID, IssueDate: returned.Add(-time.Hour), ReturnDate: &returned}).Error).To(Succeed())
	})

	It("should count only open assignments in the list", func() {
		rows, err := repo.List(ctx, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(2))
		Expect(rows[0].Name).To(Equal("Alice"))
		Expect(rows[0].ActiveAssignments).To(Equal(int64(2)))
		Expect(rows[1].ActiveAssignments).To(BeZero())
	})

	It("should search by name, employee id and department", func() {
		rows, err := repo.List(ctx, "sales")
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(1))
		Expect(rows[0].Name).To(Equal("Bob"))
	})

	It("should split open and returned assignments", func() {
		open, err := repo.ListOpenAssignments(ctx, alice.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(open).To(HaveLen(2))

		returned, err := repo.ListReturnedAssignments(ctx, alice.ID, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(returned).To(HaveLen(1))
		Expect(returned[0].AssetSerialNumber).To(Equal("O-1"))
		Expect(returned[0].StaffName).To(Equal("Alice"))
	})

	It("should look up by employee id", func() {
		found, err := repo.GetByEmployeeID(ctx, "E-2")
		Expect(err).NotTo(HaveOccurred())
		Expect(found.ID).To(Equal(bob.ID))

		missing, err := repo.GetByEmployeeID(ctx, "E-404")
		Expect(err).NotTo(HaveOccurred())
		Expect(missing).To(BeNil())
	})

	It("should delete a member with their returned assignments", func() {
		monitor := &assetDatamodel.Asset{SerialNumber: "M-1", Model: "U2720Q", Type: "Monitor", Status: "Available"}
		Expect(db.Create(monitor).Error).To(Succeed())
		returned := time.Now().Add(-time.Hour)
		Expect(db.Create(&assignmentDatamodel.Assignment{AssetID: monitor.ID, StaffID: bob.ID, IssueDate: returned.Add(-time.Hour), ReturnDate: &returned}).Error).To(Succeed())

		Expect(repo.Delete(ctx, bob.ID)).To(Succeed())
		gone, err := repo.GetByID(ctx, bob.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(gone).To(BeNil())

		var count int64
		Expect(db.Model(&assignmentDatamodel.Assignment{}).Where("asset_id = ?", monitor.ID).Count(&count).Error).To(Succeed())
		Expect(count).To(BeZero())
	})
})
