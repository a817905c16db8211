package asset

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/asset-management/internal"
	accessoryDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/accessory"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	assignmentDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assignment"
	repairDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/repair"
	"github.com/frahmantamala/asset-management/internal/core/events"
)

type RepositoryAPI interface {
	WithinTx(ctx context.Context, fn func(repo RepositoryAPI) error) error
	Create(ctx context.Context, asset *assetDatamodel.Asset) error
	GetByID(ctx context.Context, id int64) (*assetDatamodel.Asset, error)
	GetBySerialNumber(ctx context.Context, serial string) (*assetDatamodel.Asset, error)
	List(ctx context.Context, filter ListFilter) ([]*assetDatamodel.AssetWithAssignee, error)
	Update(ctx context.Context, asset *assetDatamodel.Asset) error
	Delete(ctx context.Context, id int64) error
	// CloseOpenAssignments stamps returnDate on every open assignment of the asset.
	CloseOpenAssignments(ctx context.Context, assetID int64, returnDate time.Time) (int64, error)
	ListRepairs(ctx context.Context, assetID int64) ([]*repairDatamodel.Repair, error)
	ListAssignments(ctx context.Context, assetID int64) ([]*assignmentDatamodel.AssignmentWithNames, error)
	ListAccessoryLogs(ctx context.Context, assetID int64) ([]*accessoryDatamodel.LogWithDetails, error)
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

func (s *Service) CreateAsset(ctx context.Context, dto CreateAssetDTO) (*Asset, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("asset validation failed", "error", err)
		return nil, err
	}

	existing, err := s.repo.GetBySerialNumber(ctx, dto.SerialNumber)
	if err != nil {
		s.logger.Error("failed to check serial number", "error", err, "serial_number", dto.SerialNumber)
		return nil, internal.NewInternalError("failed to create asset", err)
	}
	if existing != nil {
		return nil, internal.NewConflictError("An asset with this serial number already exists", internal.ErrCodeDuplicateSerialNumber)
	}

	status := dto.Status
	if status == "" {
		status = StatusAvailable
	}

	row := &assetDatamodel.Asset{
		SerialNumber:   dto.SerialNumber,
		Model:          dto.Model,
		Type:           dto.Type,
		Status:         status,
		SpecsProcessor: dto.SpecsProcessor,
		SpecsRAM:       dto.SpecsRAM,
		SpecsStorage:   dto.SpecsStorage,
		SpecsStorage2:  dto.SpecsStorage2,
		SpecsOS:        dto.SpecsOS,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create asset", "error", err, "serial_number", dto.SerialNumber)
		return nil, internal.NewInternalError("failed to create asset", err)
	}

	s.logger.Info("asset created", "asset_id", row.ID, "serial_number", row.SerialNumber, "type", row.Type)
	s.publish(ctx, events.NewChangedEvent("asset", row.ID, events.ActionCreated))
	return FromDataModel(row), nil
}

func (s *Service) GetAsset(ctx context.Context, id int64) (*Asset, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get asset", "error", err, "asset_id", id)
		return nil, internal.NewInternalError("failed to get asset", err)
	}
	if row == nil {
		return nil, internal.ErrAssetNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) ListAssets(ctx context.Context, filter ListFilter) ([]*Asset, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list assets", "error", err)
		return nil, internal.NewInternalError("failed to list assets", err)
	}

	assets := make([]*Asset, 0, len(rows))
	for _, row := range rows {
		assets = append(assets, FromListRow(row))
	}
	return assets, nil
}

// UpdateAsset applies a raw edit. Moving to Available or Scrap closes the open assignments in
// the same transaction, so an asset is Issued exactly when it has an open assignment.
func (s *Service) UpdateAsset(ctx context.Context, id int64, dto UpdateAssetDTO) (*Asset, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("asset validation failed", "error", err, "asset_id", id)
		return nil, err
	}

	var (
		updated    *assetDatamodel.Asset
		previous   string
		closedRows int64
	)
	err := s.repo.WithinTx(ctx, func(repo RepositoryAPI) error {
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return internal.NewInternalError("failed to get asset", err)
		}
		if current == nil {
			return internal.ErrAssetNotFound
		}
		if dto.Status == StatusIssued && current.Status != StatusIssued {
			return internal.ErrInvalidTransition
		}
		if dto.SerialNumber != current.SerialNumber {
			clash, err := repo.GetBySerialNumber(ctx, dto.SerialNumber)
			if err != nil {
				return internal.NewInternalError("failed to update asset", err)
			}
			if clash != nil {
				return internal.NewConflictError("An asset with this serial number already exists", internal.ErrCodeDuplicateSerialNumber)
			}
		}

		previous = current.Status
		current.SerialNumber = dto.SerialNumber
		current.Model = dto.Model
		current.Type = dto.Type
		current.Status = dto.Status
		current.SpecsProcessor = dto.SpecsProcessor
		current.SpecsRAM = dto.SpecsRAM
		current.SpecsStorage = dto.SpecsStorage
		current.SpecsStorage2 = dto.SpecsStorage2
		current.SpecsOS = dto.SpecsOS

		if err := repo.Update(ctx, current); err != nil {
			return internal.NewInternalError("failed to update asset", err)
		}

		if ClosesAssignments(dto.Status) {
			closedRows, err = repo.CloseOpenAssignments(ctx, id, time.Now())
			if err != nil {
				return internal.NewInternalError("failed to close assignments", err)
			}
		}

		updated = current
		return nil
	})
	if err != nil {
		s.logger.Error("failed to update asset", "error", err, "asset_id", id)
		return nil, err
	}

	s.logger.Info("asset updated",
		"asset_id", id,
		"previous_status", previous,
		"status", updated.Status,
		"closed_assignments", closedRows)

	if previous != updated.Status {
		s.publish(ctx, events.NewInventoryEvent(events.EventTypeAssetStatusChanged, "asset", id, events.ActionUpdated, nil))
	} else {
		s.publish(ctx, events.NewChangedEvent("asset", id, events.ActionUpdated))
	}
	return FromDataModel(updated), nil
}

func (s *Service) DeleteAsset(ctx context.Context, id int64) error {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get asset", "error", err, "asset_id", id)
		return internal.NewInternalError("failed to delete asset", err)
	}
	if row == nil {
		return internal.ErrAssetNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete asset", "error", err, "asset_id", id)
		return internal.NewInternalError("failed to delete asset", err)
	}

	s.logger.Info("asset deleted", "asset_id", id, "serial_number", row.SerialNumber)
	s.publish(ctx, events.NewChangedEvent("asset", id, events.ActionDeleted))
	return nil
}

func (s *Service) AssetHistory(ctx context.Context, id int64) (*History, error) {
	a, err := s.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}

	repairs, err := s.repo.ListRepairs(ctx, id)
	if err != nil {
		s.logger.Error("failed to list repairs", "error", err, "asset_id", id)
		return nil, internal.NewInternalError("failed to load asset history", err)
	}
	assignments, err := s.repo.ListAssignments(ctx, id)
	if err != nil {
		s.logger.Error("failed to list assignments", "error", err, "asset_id", id)
		return nil, internal.NewInternalError("failed to load asset history", err)
	}
	logs, err := s.repo.ListAccessoryLogs(ctx, id)
	if err != nil {
		s.logger.Error("failed to list accessory logs", "error", err, "asset_id", id)
		return nil, internal.NewInternalError("failed to load asset history", err)
	}

	for _, as := range assignments {
		if as.ReturnDate == nil {
			name := as.StaffName
			a.AssignedTo = &name
			break
		}
	}

	return newHistory(a, repairs, assignments, logs), nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
