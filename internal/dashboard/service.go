package dashboard

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/asset-management/internal"
)

const cameraStatusFaulty = "Faulty"

type RepositoryAPI interface {
	CountAssets(ctx context.Context) ([]StatusCount, error)
	CountCameras(ctx context.Context, status string) (int64, error)
	RecentRepairs(ctx context.Context, limit int) ([]RecentRepair, error)
	RecentAssignments(ctx context.Context, limit int) ([]RecentAssignment, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	counts, err := s.repo.CountAssets(ctx)
	if err != nil {
		s.logger.Error("failed to count assets", "error", err)
		return nil, internal.NewInternalError("failed to load dashboard", err)
	}

	faulty, err := s.repo.CountCameras(ctx, cameraStatusFaulty)
	if err != nil {
		s.logger.Error("failed to count cameras", "error", err)
		return nil, internal.NewInternalError("failed to load dashboard", err)
	}

	repairs, err := s.repo.RecentRepairs(ctx, RecentLimit)
	if err != nil {
		s.logger.Error("failed to list recent repairs", "error", err)
		return nil, internal.NewInternalError("failed to load dashboard", err)
	}

	assignments, err := s.repo.RecentAssignments(ctx, RecentLimit)
	if err != nil {
		s.logger.Error("failed to list recent assignments", "error", err)
		return nil, internal.NewInternalError("failed to load dashboard", err)
	}

	summary := &Summary{
		FaultyCameras:     faulty,
		RecentRepairs:     repairs,
		RecentAssignments: assignments,
	}
	summary.Assets, summary.Laptops, summary.MobilePhones = summarize(counts)
	if summary.RecentRepairs == nil {
		summary.RecentRepairs = []RecentRepair{}
	}
	if summary.RecentAssignments == nil {
		summary.RecentAssignments = []RecentAssignment{}
	}

	s.logger.Debug("dashboard loaded", "assets", summary.Assets.Total, "faulty_cameras", faulty)
	return summary, nil
}
