package repair

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/asset-management/internal"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	repairDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/repair"
	"github.com/frahmantamala/asset-management/internal/core/events"
)

const DefaultRecentLimit = 5

type RepositoryAPI interface {
	WithinTx(ctx context.Context, fn func(repo RepositoryAPI) error) error
	GetAsset(ctx context.Context, id int64) (*assetDatamodel.Asset, error)
	SetAssetStatus(ctx context.Context, assetID int64, status string) error
	Create(ctx context.Context, r *repairDatamodel.Repair) error
	// List returns repairs newest first; limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]*repairDatamodel.RepairWithAsset, error)
}

type Service struct {
	repo              RepositoryAPI
	publisher         events.Publisher
	defaultTechnician string
	logger            *slog.Logger
}

func NewService(repo RepositoryAPI, publisher events.Publisher, defaultTechnician string, logger *slog.Logger) *Service {
	return &Service{
		repo:              repo,
		publisher:         publisher,
		defaultTechnician: defaultTechnician,
		logger:            logger,
	}
}

// LogRepair records a repair and puts the asset into Repair, whatever its previous status.
func (s *Service) LogRepair(ctx context.Context, dto LogRepairDTO) (*Repair, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	date, err := internal.ParseDate(dto.Date, internal.Today())
	if err != nil {
		return nil, err
	}

	technician := dto.Technician
	if technician == "" {
		technician = internal.TechnicianFromContext(ctx, s.defaultTechnician)
	}

	var created *repairDatamodel.Repair
	err = s.repo.WithinTx(ctx, func(repo RepositoryAPI) error {
		a, err := repo.GetAsset(ctx, dto.AssetID)
		if err != nil {
			return internal.NewInternalError("failed to get asset", err)
		}
		if a == nil {
			return internal.ErrAssetNotFound
		}

		parts := dto.PartsReplaced
		if dto.CannibalizedFromID != nil {
			donor, err := repo.GetAsset(ctx, *dto.CannibalizedFromID)
			if err != nil {
				return internal.NewInternalError("failed to get donor asset", err)
			}
			if donor == nil {
				return internal.ErrAssetNotFound.WithDetails(map[string]int64{"cannibalized_from_id": *dto.CannibalizedFromID})
			}
			parts = donorNote(parts, donor.Model, donor.SerialNumber)
		}

		created = &repairDatamodel.Repair{
			AssetID:          dto.AssetID,
			FaultDescription: dto.FaultDescription,
			PartsReplaced:    parts,
			Cost:             dto.Cost,
			Date:             date,
			Technician:       technician,
		}
		if err := repo.Create(ctx, created); err != nil {
			return internal.NewInternalError("failed to log repair", err)
		}
		if err := repo.SetAssetStatus(ctx, dto.AssetID, assetStatusRepair); err != nil {
			return internal.NewInternalError("failed to update asset status", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("log repair failed", "error", err, "asset_id", dto.AssetID)
		return nil, err
	}

	s.logger.Info("repair logged",
		"repair_id", created.ID,
		"asset_id", created.AssetID,
		"cost", created.Cost,
		"technician", created.Technician)

	s.publish(ctx, events.NewInventoryEvent(events.EventTypeRepairLogged, "asset", created.AssetID, events.ActionUpdated,
		map[string]int64{"repair_id": created.ID}))
	return FromDataModel(created), nil
}

func (s *Service) ListRepairs(ctx context.Context) ([]*Repair, error) {
	return s.list(ctx, 0)
}

func (s *Service) ListRecentRepairs(ctx context.Context, limit int) ([]*Repair, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.list(ctx, limit)
}

func (s *Service) list(ctx context.Context, limit int) ([]*Repair, error) {
	rows, err := s.repo.List(ctx, limit)
	if err != nil {
		s.logger.Error("failed to list repairs", "error", err)
		return nil, internal.NewInternalError("failed to list repairs", err)
	}

	out := make([]*Repair, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromJoined(row))
	}
	return out, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
