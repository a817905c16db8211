package dashboard_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/dashboard"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDashboardService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dashboard Service Suite")
}

type MockRepository struct {
	counts    []dashboard.StatusCount
	faulty    int64
	repairs   []dashboard.RecentRepair
	countErr  error
	lastLimit int
}

func (m *MockRepository) CountAssets(ctx context.Context) ([]dashboard.StatusCount, error) {
	return m.counts, m.countErr
}

func (m *MockRepository) CountCameras(ctx context.Context, status string) (int64, error) {
	if status != "Faulty" {
		return 0, nil
	}
	return m.faulty, nil
}

func (m *MockRepository) RecentRepairs(ctx context.Context, limit int) ([]dashboard.RecentRepair, error) {
	m.lastLimit = limit
	return m.repairs, nil
}

func (m *MockRepository) RecentAssignments(ctx context.Context, limit int) ([]dashboard.RecentAssignment, error) {
	return nil, nil
}

var _ = Describe("Dashboard Service", func() {
	var (
		service  *dashboard.Service
		mockRepo *MockRepository
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		mockRepo = &MockRepository{}
		service = dashboard.NewService(mockRepo, logger)
	})

	It("should total assets overall and per tracked type", func() {
		mockRepo.counts = []dashboard.StatusCount{
			{Type: "Laptop", Status: "Issued", Total: 4},
			{Type: "Laptop", Status: "Available", Total: 2},
			{Type: "Mobile Phone", Status: "Repair", Total: 1},
			{Type: "Monitor", Status: "Available", Total: 3},
			{Type: "Printer", Status: "Scrap", Total: 1},
		}
		mockRepo.faulty = 2

		summary, err := service.Summary(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.Assets).To(Equal(dashboard.AssetCounts{Total: 11, Issued: 4, Available: 5, Repair: 1, Scrap: 1}))
		Expect(summary.Laptops).To(Equal(dashboard.AssetCounts{Total: 6, Issued: 4, Available: 2}))
		Expect(summary.MobilePhones).To(Equal(dashboard.AssetCounts{Total: 1, Repair: 1}))
		Expect(summary.FaultyCameras).To(Equal(int64(2)))
		Expect(summary.RecentRepairs).NotTo(BeNil())
		Expect(summary.RecentAssignments).NotTo(BeNil())
		Expect(mockRepo.lastLimit).To(Equal(dashboard.RecentLimit))
	})

	It("should wrap store failures as internal errors", func() {
		mockRepo.countErr = errors.New("connection refused")

		_, err := service.Summary(context.Background())
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
	})
})
