package assignment

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/asset-management/internal"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	assignmentDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assignment"
	staffDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/staff"
	"github.com/frahmantamala/asset-management/internal/core/events"
)

type RepositoryAPI interface {
	WithinTx(ctx context.Context, fn func(repo RepositoryAPI) error) error
	GetAsset(ctx context.Context, id int64) (*assetDatamodel.Asset, error)
	GetStaff(ctx context.Context, id int64) (*staffDatamodel.Staff, error)
	SetAssetStatus(ctx context.Context, assetID int64, status string) error
	Create(ctx context.Context, a *assignmentDatamodel.Assignment) error
	GetByID(ctx context.Context, id int64) (*assignmentDatamodel.Assignment, error)
	// GetOpenByAsset returns the most recently issued open assignment of the asset.
	GetOpenByAsset(ctx context.Context, assetID int64) (*assignmentDatamodel.Assignment, error)
	GetOpenWithNames(ctx context.Context, assetID int64) (*assignmentDatamodel.AssignmentWithNames, error)
	Close(ctx context.Context, id int64, returnDate time.Time) error
}

type Service struct {
	repo      RepositoryAPI
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Issue hands an asset to a staff member. The assignment insert and the status change commit
// together; an asset with an open assignment cannot be issued again.
func (s *Service) Issue(ctx context.Context, assetID int64, dto IssueDTO) (*Assignment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	issueDate, err := internal.ParseDate(dto.IssueDate, internal.Today())
	if err != nil {
		return nil, err
	}

	var created *assignmentDatamodel.Assignment
	err = s.repo.WithinTx(ctx, func(repo RepositoryAPI) error {
		a, err := repo.GetAsset(ctx, assetID)
		if err != nil {
			return internal.NewInternalError("failed to get asset", err)
		}
		if a == nil {
			return internal.ErrAssetNotFound
		}

		member, err := repo.GetStaff(ctx, dto.StaffID)
		if err != nil {
			return internal.NewInternalError("failed to get staff member", err)
		}
		if member == nil {
			return internal.ErrStaffNotFound
		}

		open, err := repo.GetOpenByAsset(ctx, assetID)
		if err != nil {
			return internal.NewInternalError("failed to check open assignment", err)
		}
		if open != nil {
			return internal.ErrAssetAlreadyIssued
		}

		created = &assignmentDatamodel.Assignment{
			AssetID:   assetID,
			StaffID:   dto.StaffID,
			IssueDate: issueDate,
		}
		if err := repo.Create(ctx, created); err != nil {
			return internal.NewInternalError("failed to create assignment", err)
		}
		if err := repo.SetAssetStatus(ctx, assetID, assetStatusIssued); err != nil {
			return internal.NewInternalError("failed to update asset status", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("issue failed", "error", err, "asset_id", assetID, "staff_id", dto.StaffID)
		return nil, err
	}

	s.logger.Info("asset issued",
		"asset_id", assetID,
		"staff_id", dto.StaffID,
		"assignment_id", created.ID,
		"issue_date", issueDate.Format(internal.DateLayout))

	s.publish(ctx, events.NewInventoryEvent(events.EventTypeAssetIssued, "asset", assetID, events.ActionUpdated,
		map[string]int64{"assignment_id": created.ID, "staff_id": dto.StaffID}))
	return FromDataModel(created), nil
}

// Return makes the asset Available and closes its assignment. A missing assignment is only
// logged; the status change still happens.
func (s *Service) Return(ctx context.Context, assetID int64, dto ReturnDTO) (*ReturnResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	returnDate, err := internal.ParseDate(dto.ReturnDate, internal.Today())
	if err != nil {
		return nil, err
	}

	var closed *assignmentDatamodel.Assignment
	err = s.repo.WithinTx(ctx, func(repo RepositoryAPI) error {
		a, err := repo.GetAsset(ctx, assetID)
		if err != nil {
			return internal.NewInternalError("failed to get asset", err)
		}
		if a == nil {
			return internal.ErrAssetNotFound
		}

		if err := repo.SetAssetStatus(ctx, assetID, assetStatusAvailable); err != nil {
			return internal.NewInternalError("failed to update asset status", err)
		}

		target, err := s.resolveOpenAssignment(ctx, repo, assetID, dto.AssignmentID)
		if err != nil {
			return err
		}
		if target == nil {
			s.logger.Warn("no open assignment found on return", "asset_id", assetID)
			return nil
		}

		if err := repo.Close(ctx, target.ID, returnDate); err != nil {
			return internal.NewInternalError("failed to close assignment", err)
		}
		target.ReturnDate = &returnDate
		closed = target
		return nil
	})
	if err != nil {
		s.logger.Warn("return failed", "error", err, "asset_id", assetID)
		return nil, err
	}

	result := &ReturnResult{AssetID: assetID, AssetStatus: assetStatusAvailable}
	related := map[string]int64{}
	if closed != nil {
		result.Assignment = FromDataModel(closed)
		related["assignment_id"] = closed.ID
		related["staff_id"] = closed.StaffID
	}

	s.logger.Info("asset returned", "asset_id", assetID, "assignment_closed", closed != nil)
	s.publish(ctx, events.NewInventoryEvent(events.EventTypeAssetReturned, "asset", assetID, events.ActionUpdated, related))
	return result, nil
}

// resolveOpenAssignment prefers the requested assignment and falls back to the most recent open
// one when the id is absent or does not name an open assignment of this asset.
func (s *Service) resolveOpenAssignment(ctx context.Context, repo RepositoryAPI, assetID int64, assignmentID *int64) (*assignmentDatamodel.Assignment, error) {
	if assignmentID != nil {
		target, err := repo.GetByID(ctx, *assignmentID)
		if err != nil {
			return nil, internal.NewInternalError("failed to get assignment", err)
		}
		if target != nil && target.AssetID == assetID && target.ReturnDate == nil {
			return target, nil
		}
		s.logger.Warn("requested assignment is not open for this asset",
			"asset_id", assetID,
			"assignment_id", *assignmentID)
	}

	open, err := repo.GetOpenByAsset(ctx, assetID)
	if err != nil {
		return nil, internal.NewInternalError("failed to find open assignment", err)
	}
	return open, nil
}

// CurrentAssignment returns the open assignment of an asset, used to reprint handover data.
func (s *Service) CurrentAssignment(ctx context.Context, assetID int64) (*Assignment, error) {
	a, err := s.repo.GetAsset(ctx, assetID)
	if err != nil {
		s.logger.Error("failed to get asset", "error", err, "asset_id", assetID)
		return nil, internal.NewInternalError("failed to get asset", err)
	}
	if a == nil {
		return nil, internal.ErrAssetNotFound
	}

	open, err := s.repo.GetOpenWithNames(ctx, assetID)
	if err != nil {
		s.logger.Error("failed to get open assignment", "error", err, "asset_id", assetID)
		return nil, internal.NewInternalError("failed to get assignment", err)
	}
	if open == nil {
		return nil, internal.ErrAssignmentNotFound
	}
	return FromJoined(open), nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
