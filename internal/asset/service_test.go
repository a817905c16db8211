package asset_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/asset"
	accessoryDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/accessory"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	assignmentDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assignment"
	repairDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/repair"
	"github.com/frahmantamala/asset-management/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAssetService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Asset Service Suite")
}

// MockRepository implements asset.RepositoryAPI for testing
type MockRepository struct {
	assets      map[int64]*assetDatamodel.Asset
	assignments []*assignmentDatamodel.AssignmentWithNames
	repairs     []*repairDatamodel.Repair
	nextID      int64
	shouldFail  bool
	failError   error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		assets: make(map[int64]*assetDatamodel.Asset),
		nextID: 1,
	}
}

func (m *MockRepository) WithinTx(ctx context.Context, fn func(repo asset.RepositoryAPI) error) error {
	return fn(m)
}

func (m *MockRepository) Create(ctx context.Context, a *assetDatamodel.Asset) error {
	if m.shouldFail {
		return m.failError
	}
	a.ID = m.nextID
	m.nextID++
	m.assets[a.ID] = a
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*assetDatamodel.Asset, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	a, ok := m.assets[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *MockRepository) GetBySerialNumber(ctx context.Context, serial string) (*assetDatamodel.Asset, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, a := range m.assets {
		if a.SerialNumber == serial {
			return a, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) List(ctx context.Context, filter asset.ListFilter) ([]*assetDatamodel.AssetWithAssignee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var rows []*assetDatamodel.AssetWithAssignee
	for _, a := range m.assets {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		rows = append(rows, &assetDatamodel.AssetWithAssignee{Asset: *a})
	}
	return rows, nil
}

func (m *MockRepository) Update(ctx context.Context, a *assetDatamodel.Asset) error {
	if m.shouldFail {
		return m.failError
	}
	m.assets[a.ID] = a
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.assets, id)
	return nil
}

func (m *MockRepository) CloseOpenAssignments(ctx context.Context, assetID int64, returnDate time.Time) (int64, error) {
	if m.shouldFail {
		return 0, m.failError
	}
	var n int64
	for _, as := range m.assignments {
		if as.AssetID == assetID && as.ReturnDate == nil {
			d := returnDate
			as.ReturnDate = &d
			n++
		}
	}
	return n, nil
}

func (m *MockRepository) ListRepairs(ctx context.Context, assetID int64) ([]*repairDatamodel.Repair, error) {
	var out []*repairDatamodel.Repair
	for _, r := range m.repairs {
		if r.AssetID == assetID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockRepository) ListAssignments(ctx context.Context, assetID int64) ([]*assignmentDatamodel.AssignmentWithNames, error) {
	var out []*assignmentDatamodel.AssignmentWithNames
	for _, as := range m.assignments {
		if as.AssetID == assetID {
			out = append(out, as)
		}
	}
	return out, nil
}

func (m *MockRepository) ListAccessoryLogs(ctx context.Context, assetID int64) ([]*accessoryDatamodel.LogWithDetails, error) {
	return nil, nil
}

// recordingPublisher captures published events
type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

func (m *MockRepository) openAssignments(assetID int64) int {
	n := 0
	for _, as := range m.assignments {
		if as.AssetID == assetID && as.ReturnDate == nil {
			n++
		}
	}
	return n
}

var _ = Describe("Asset Service", func() {
	var (
		service   *asset.Service
		mockRepo  *MockRepository
		publisher *recordingPublisher
		logger    *slog.Logger
		ctx       context.Context
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		mockRepo = NewMockRepository()
		publisher = &recordingPublisher{}
		service = asset.NewService(mockRepo, publisher, logger)
		ctx = context.Background()
	})

	validCreate := func() asset.CreateAssetDTO {
		return asset.CreateAssetDTO{
			SerialNumber: "SN-001",
			Model:        "ThinkPad T14",
			Type:         asset.TypeLaptop,
			SpecsRAM:     "16GB",
		}
	}

	Describe("CreateAsset", func() {
		It("should default the status to Available", func() {
			a, err := service.CreateAsset(ctx, validCreate())
			Expect(err).NotTo(HaveOccurred())
			Expect(a.ID).To(Equal(int64(1)))
			Expect(a.Status).To(Equal(asset.StatusAvailable))
			Expect(publisher.types()).To(ConsistOf(events.EventTypeInventoryChanged))
		})

		It("should reject creating an asset as Issued", func() {
			dto := validCreate()
			dto.Status = asset.StatusIssued

			_, err := service.CreateAsset(ctx, dto)
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should reject an unknown type", func() {
			dto := validCreate()
			dto.Type = "Toaster"

			_, err := service.CreateAsset(ctx, dto)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			details := appErr.Details.(internal.ValidationErrors)
			Expect(details.Errors[0].Field).To(Equal("type"))
			Expect(details.Errors[0].Code).To(Equal(string(internal.ErrCodeInvalidType)))
		})

		It("should accept the Mobile Phone type", func() {
			dto := validCreate()
			dto.Type = asset.TypeMobilePhone

			a, err := service.CreateAsset(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Type).To(Equal("Mobile Phone"))
		})

		It("should reject a duplicate serial number", func() {
			_, err := service.CreateAsset(ctx, validCreate())
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateAsset(ctx, validCreate())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateSerialNumber))
			Expect(appErr.StatusCode).To(Equal(409))
		})

		It("should wrap repository failures as internal errors", func() {
			mockRepo.shouldFail = true
			mockRepo.failError = errors.New("connection refused")

			_, err := service.CreateAsset(ctx, validCreate())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
			Expect(errors.Unwrap(appErr)).To(MatchError("connection refused"))
		})
	})

	Describe("UpdateAsset", func() {
		var created *asset.Asset

		BeforeEach(func() {
			var err error
			created, err = service.CreateAsset(ctx, validCreate())
			Expect(err).NotTo(HaveOccurred())
			publisher.events = nil
		})

		update := func(status string) asset.UpdateAssetDTO {
			return asset.UpdateAssetDTO{
				SerialNumber: created.SerialNumber,
				Model:        created.Model,
				Type:         created.Type,
				Status:       status,
				SpecsRAM:     created.SpecsRAM,
			}
		}

		markIssued := func() {
			mockRepo.assets[created.ID].Status = asset.StatusIssued
			mockRepo.assignments = append(mockRepo.assignments, &assignmentDatamodel.AssignmentWithNames{
				Assignment: assignmentDatamodel.Assignment{ID: 10, AssetID: created.ID, StaffID: 3, IssueDate: time.Now().Add(-48 * time.Hour)},
				StaffName:  "Dana",
			})
		}

		It("should close the open assignment when an issued asset becomes Available", func() {
			markIssued()

			a, err := service.UpdateAsset(ctx, created.ID, update(asset.StatusAvailable))
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Status).To(Equal(asset.StatusAvailable))
			Expect(mockRepo.openAssignments(created.ID)).To(Equal(0))
			Expect(publisher.types()).To(ConsistOf(events.EventTypeAssetStatusChanged))
		})

		It("should close the open assignment when an issued asset is scrapped", func() {
			markIssued()

			_, err := service.UpdateAsset(ctx, created.ID, update(asset.StatusScrap))
			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.openAssignments(created.ID)).To(Equal(0))
		})

		It("should keep the assignment open when an issued asset goes to Repair", func() {
			markIssued()

			_, err := service.UpdateAsset(ctx, created.ID, update(asset.StatusRepair))
			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.openAssignments(created.ID)).To(Equal(1))
		})

		It("should not allow a raw edit into Issued", func() {
			_, err := service.UpdateAsset(ctx, created.ID, update(asset.StatusIssued))
			Expect(err).To(MatchError(internal.ErrInvalidTransition))
			Expect(mockRepo.assets[created.ID].Status).To(Equal(asset.StatusAvailable))
		})

		It("should allow editing other fields of an issued asset", func() {
			markIssued()
			dto := update(asset.StatusIssued)
			dto.SpecsRAM = "32GB"

			a, err := service.UpdateAsset(ctx, created.ID, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.SpecsRAM).To(Equal("32GB"))
			Expect(mockRepo.openAssignments(created.ID)).To(Equal(1))
			Expect(publisher.types()).To(ConsistOf(events.EventTypeInventoryChanged))
		})

		It("should return not found for a missing asset", func() {
			_, err := service.UpdateAsset(ctx, 999, update(asset.StatusAvailable))
			Expect(err).To(MatchError(internal.ErrAssetNotFound))
		})
	})

	Describe("AssetHistory", func() {
		It("should report the current assignee", func() {
			a, err := service.CreateAsset(ctx, validCreate())
			Expect(err).NotTo(HaveOccurred())

			returned := time.Now().Add(-24 * time.Hour)
			mockRepo.assignments = []*assignmentDatamodel.AssignmentWithNames{
				{Assignment: assignmentDatamodel.Assignment{ID: 2, AssetID: a.ID, StaffID: 2}, StaffName: "Current"},
				{Assignment: assignmentDatamodel.Assignment{ID: 1, AssetID: a.ID, StaffID: 1, ReturnDate: &returned}, StaffName: "Former"},
			}
			mockRepo.repairs = []*repairDatamodel.Repair{{ID: 1, AssetID: a.ID, FaultDescription: "Fan noise"}}

			h, err := service.AssetHistory(ctx, a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*h.Asset.AssignedTo).To(Equal("Current"))
			Expect(h.Assignments).To(HaveLen(2))
			Expect(h.Repairs).To(HaveLen(1))
			Expect(h.AccessoryLogs).To(BeEmpty())
		})

		It("should return not found for a missing asset", func() {
			_, err := service.AssetHistory(ctx, 42)
			Expect(err).To(MatchError(internal.ErrAssetNotFound))
		})
	})

	Describe("DeleteAsset", func() {
		It("should delete an existing asset", func() {
			a, err := service.CreateAsset(ctx, validCreate())
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteAsset(ctx, a.ID)).To(Succeed())
			Expect(mockRepo.assets).To(BeEmpty())
		})

		It("should return not found for a missing asset", func() {
			Expect(service.DeleteAsset(ctx, 5)).To(MatchError(internal.ErrAssetNotFound))
		})
	})
})
