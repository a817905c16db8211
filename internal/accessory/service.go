package accessory

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/asset-management/internal"
	accessoryDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/accessory"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	"github.com/frahmantamala/asset-management/internal/core/events"
	"github.com/frahmantamala/asset-management/internal/core/specs"
)

type RepositoryAPI interface {
	WithinTx(ctx context.Context, fn func(repo RepositoryAPI) error) error
	Create(ctx context.Context, a *accessoryDatamodel.Accessory) error
	GetByID(ctx context.Context, id int64) (*accessoryDatamodel.Accessory, error)
	List(ctx context.Context, filter ListFilter) ([]*accessoryDatamodel.AccessoryWithAsset, error)
	Update(ctx context.Context, a *accessoryDatamodel.Accessory) error
	Delete(ctx context.Context, id int64) error
	DeleteLogs(ctx context.Context, accessoryID int64) error
	CreateLog(ctx context.Context, l *accessoryDatamodel.Log) error
	ListLogs(ctx context.Context, accessoryID int64) ([]*accessoryDatamodel.LogWithDetails, error)
	ListLogsByAsset(ctx context.Context, assetID int64) ([]*accessoryDatamodel.LogWithDetails, error)
	GetAsset(ctx context.Context, id int64) (*assetDatamodel.Asset, error)
	UpdateAssetSpecs(ctx context.Context, a *assetDatamodel.Asset) error
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

func (s *Service) CreateAccessory(ctx context.Context, dto CreateAccessoryDTO) (*Accessory, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	status := dto.Status
	if status == "" {
		status = StatusAvailable
	}

	row := &accessoryDatamodel.Accessory{
		Type:         dto.Type,
		Brand:        dto.Brand,
		Model:        dto.Model,
		SerialNumber: dto.SerialNumber,
		Status:       status,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create accessory", "error", err)
		return nil, internal.NewInternalError("failed to create accessory", err)
	}

	s.logger.Info("accessory created", "accessory_id", row.ID, "type", row.Type, "model", row.Model)
	s.publish(ctx, events.NewChangedEvent("accessory", row.ID, events.ActionCreated))
	return FromDataModel(row), nil
}

func (s *Service) GetAccessory(ctx context.Context, id int64) (*Detail, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get accessory", "error", err, "accessory_id", id)
		return nil, internal.NewInternalError("failed to get accessory", err)
	}
	if row == nil {
		return nil, internal.ErrAccessoryNotFound
	}

	logs, err := s.repo.ListLogs(ctx, id)
	if err != nil {
		s.logger.Error("failed to list accessory logs", "error", err, "accessory_id", id)
		return nil, internal.NewInternalError("failed to get accessory", err)
	}

	detail := &Detail{Accessory: FromDataModel(row), Logs: make([]LogEntry, 0, len(logs))}
	for _, l := range logs {
		detail.Logs = append(detail.Logs, logFromJoined(l))
	}
	return detail, nil
}

func (s *Service) ListAccessories(ctx context.Context, filter ListFilter) ([]*Accessory, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list accessories", "error", err)
		return nil, internal.NewInternalError("failed to list accessories", err)
	}

	out := make([]*Accessory, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromJoined(row))
	}
	return out, nil
}

// UpdateAccessory edits the descriptive fields. Moving into or out of Installed is reserved for
// Install and Remove, which keep the host's specs in step.
func (s *Service) UpdateAccessory(ctx context.Context, id int64, dto UpdateAccessoryDTO) (*Accessory, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get accessory", "error", err, "accessory_id", id)
		return nil, internal.NewInternalError("failed to update accessory", err)
	}
	if row == nil {
		return nil, internal.ErrAccessoryNotFound
	}

	if (row.Status == StatusInstalled) != (dto.Status == StatusInstalled) {
		return nil, internal.NewValidationError("Accessories are installed and removed through the install and remove operations", internal.ErrCodeInvalidTransition)
	}
	if row.Status == StatusInstalled && (row.Type != dto.Type || row.Model != dto.Model) {
		return nil, internal.NewValidationError("Remove the accessory before changing its type or model", internal.ErrCodeInvalidTransition)
	}

	row.Type = dto.Type
	row.Brand = dto.Brand
	row.Model = dto.Model
	row.SerialNumber = dto.SerialNumber
	row.Status = dto.Status
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update accessory", "error", err, "accessory_id", id)
		return nil, internal.NewInternalError("failed to update accessory", err)
	}

	s.logger.Info("accessory updated", "accessory_id", id, "status", row.Status)
	s.publish(ctx, events.NewChangedEvent("accessory", id, events.ActionUpdated))
	return FromDataModel(row), nil
}

// DeleteAccessory removes the accessory together with its log rows in one transaction.
func (s *Service) DeleteAccessory(ctx context.Context, id int64) error {
	err := s.repo.WithinTx(ctx, func(repo RepositoryAPI) error {
		row, err := repo.GetByID(ctx, id)
		if err != nil {
			return internal.NewInternalError("failed to get accessory", err)
		}
		if row == nil {
			return internal.ErrAccessoryNotFound
		}
		if row.Status == StatusInstalled {
			return internal.NewConflictError("Remove the accessory from its asset before deleting it", internal.ErrCodeReferencedEntityExists)
		}
		if err := repo.DeleteLogs(ctx, id); err != nil {
			return internal.NewInternalError("failed to delete accessory logs", err)
		}
		if err := repo.Delete(ctx, id); err != nil {
			return internal.NewInternalError("failed to delete accessory", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("delete accessory failed", "error", err, "accessory_id", id)
		return err
	}

	s.logger.Info("accessory deleted", "accessory_id", id)
	s.publish(ctx, events.NewChangedEvent("accessory", id, events.ActionDeleted))
	return nil
}

// Install fits an Available accessory into an asset. The accessory row, the asset's spec fields
// and the log entry commit together.
func (s *Service) Install(ctx context.Context, accessoryID int64, dto ChangeDTO) (*ChangeResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	technician := internal.TechnicianFromContext(ctx, s.defaultTechnician)

	var result *ChangeResult
	err := s.repo.WithinTx(ctx, func(repo RepositoryAPI) error {
		acc, host, err := s.load(ctx, repo, accessoryID, dto.AssetID)
		if err != nil {
			return err
		}
		if acc.Status != StatusAvailable {
			return internal.ErrAccessoryNotAvailable
		}

		item := FromDataModel(acc)
		if applyInstall(host, item) {
			if err := repo.UpdateAssetSpecs(ctx, host); err != nil {
				return internal.NewInternalError("failed to update asset specs", err)
			}
		}

		assetID := host.ID
		acc.Status = StatusInstalled
		acc.AssetID = &assetID
		if err := repo.Update(ctx, acc); err != nil {
			return internal.NewInternalError("failed to update accessory", err)
		}

		entry, err := s.writeLog(ctx, repo, acc.ID, host.ID, ActionInstalled, technician)
		if err != nil {
			return err
		}

		result = &ChangeResult{Accessory: FromDataModel(acc), Asset: specsOf(host), Log: entry}
		return nil
	})
	if err != nil {
		s.logger.Warn("install failed", "error", err, "accessory_id", accessoryID, "asset_id", dto.AssetID)
		return nil, err
	}

	s.logger.Info("accessory installed",
		"accessory_id", accessoryID,
		"asset_id", dto.AssetID,
		"specs_ram", result.Asset.SpecsRAM,
		"specs_storage", result.Asset.SpecsStorage,
		"specs_storage_2", result.Asset.SpecsStorage2,
		"technician", technician)

	s.publish(ctx, events.NewInventoryEvent(events.EventTypeAccessoryInstalled, "accessory", accessoryID, events.ActionUpdated,
		map[string]int64{"asset_id": dto.AssetID}))
	return result, nil
}

// Remove takes an Installed accessory out of the asset it is installed in and returns it to
// stock.
func (s *Service) Remove(ctx context.Context, accessoryID int64, dto ChangeDTO) (*ChangeResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	technician := internal.TechnicianFromContext(ctx, s.defaultTechnician)

	var result *ChangeResult
	err := s.repo.WithinTx(ctx, func(repo RepositoryAPI) error {
		acc, host, err := s.load(ctx, repo, accessoryID, dto.AssetID)
		if err != nil {
			return err
		}
		if acc.Status != StatusInstalled {
			return internal.ErrAccessoryNotInstalled
		}
		if acc.AssetID == nil || *acc.AssetID != host.ID {
			return internal.ErrAccessoryHostMismatch
		}

		item := FromDataModel(acc)
		changed, matched := applyRemove(host, item)
		if !matched {
			s.logger.Warn("removed accessory not found in asset specs",
				"accessory_id", acc.ID,
				"asset_id", host.ID,
				"label", item.Label())
		}
		if changed {
			if err := repo.UpdateAssetSpecs(ctx, host); err != nil {
				return internal.NewInternalError("failed to update asset specs", err)
			}
		}

		acc.Status = StatusAvailable
		acc.AssetID = nil
		if err := repo.Update(ctx, acc); err != nil {
			return internal.NewInternalError("failed to update accessory", err)
		}

		entry, err := s.writeLog(ctx, repo, acc.ID, host.ID, ActionRemoved, technician)
		if err != nil {
			return err
		}

		result = &ChangeResult{Accessory: FromDataModel(acc), Asset: specsOf(host), Log: entry}
		return nil
	})
	if err != nil {
		s.logger.Warn("remove failed", "error", err, "accessory_id", accessoryID, "asset_id", dto.AssetID)
		return nil, err
	}

	s.logger.Info("accessory removed",
		"accessory_id", accessoryID,
		"asset_id", dto.AssetID,
		"specs_ram", result.Asset.SpecsRAM,
		"specs_storage", result.Asset.SpecsStorage,
		"specs_storage_2", result.Asset.SpecsStorage2,
		"technician", technician)

	s.publish(ctx, events.NewInventoryEvent(events.EventTypeAccessoryRemoved, "accessory", accessoryID, events.ActionUpdated,
		map[string]int64{"asset_id": dto.AssetID}))
	return result, nil
}

// AssetConfiguration lists what is installed in an asset, its upgrade log and the stock that
// could be installed.
func (s *Service) AssetConfiguration(ctx context.Context, assetID int64) (*Configuration, error) {
	host, err := s.repo.GetAsset(ctx, assetID)
	if err != nil {
		s.logger.Error("failed to get asset", "error", err, "asset_id", assetID)
		return nil, internal.NewInternalError("failed to load configuration", err)
	}
	if host == nil {
		return nil, internal.ErrAssetNotFound
	}

	installed, err := s.ListAccessories(ctx, ListFilter{Status: StatusInstalled, AssetID: &assetID})
	if err != nil {
		return nil, err
	}
	available, err := s.ListAccessories(ctx, ListFilter{Status: StatusAvailable})
	if err != nil {
		return nil, err
	}
	logs, err := s.repo.ListLogsByAsset(ctx, assetID)
	if err != nil {
		s.logger.Error("failed to list accessory logs", "error", err, "asset_id", assetID)
		return nil, internal.NewInternalError("failed to load configuration", err)
	}

	cfg := &Configuration{
		Asset:     specsOf(host),
		Installed: installed,
		Available: available,
		Logs:      make([]LogEntry, 0, len(logs)),
	}
	for _, l := range logs {
		cfg.Logs = append(cfg.Logs, logFromJoined(l))
	}
	return cfg, nil
}

func (s *Service) load(ctx context.Context, repo RepositoryAPI, accessoryID, assetID int64) (*accessoryDatamodel.Accessory, *assetDatamodel.Asset, error) {
	acc, err := repo.GetByID(ctx, accessoryID)
	if err != nil {
		return nil, nil, internal.NewInternalError("failed to get accessory", err)
	}
	if acc == nil {
		return nil, nil, internal.ErrAccessoryNotFound
	}

	host, err := repo.GetAsset(ctx, assetID)
	if err != nil {
		return nil, nil, internal.NewInternalError("failed to get asset", err)
	}
	if host == nil {
		return nil, nil, internal.ErrAssetNotFound
	}
	return acc, host, nil
}

func (s *Service) writeLog(ctx context.Context, repo RepositoryAPI, accessoryID, assetID int64, action, technician string) (LogEntry, error) {
	l := &accessoryDatamodel.Log{
		AccessoryID: accessoryID,
		AssetID:     assetID,
		Action:      action,
		Date:        time.Now().UTC(),
		Technician:  technician,
	}
	if err := repo.CreateLog(ctx, l); err != nil {
		return LogEntry{}, internal.NewInternalError("failed to write accessory log", err)
	}
	return logFromDataModel(l), nil
}

// applyInstall merges the accessory into the host's spec fields and reports whether any changed.
func applyInstall(host *assetDatamodel.Asset, item *Accessory) bool {
	switch specs.FamilyOf(item.Type) {
	case specs.FamilyRAM:
		host.SpecsRAM = specs.AddRAM(host.SpecsRAM, item.Label())
		return true
	case specs.FamilyStorage:
		host.SpecsStorage, host.SpecsStorage2 = specs.AddStorage(host.SpecsStorage, host.SpecsStorage2, item.Label())
		return true
	default:
		return false
	}
}

// applyRemove reverses applyInstall. matched is false for storage whose label no longer appears
// in either slot.
func applyRemove(host *assetDatamodel.Asset, item *Accessory) (changed, matched bool) {
	switch specs.FamilyOf(item.Type) {
	case specs.FamilyRAM:
		before := host.SpecsRAM
		host.SpecsRAM = specs.RemoveRAM(host.SpecsRAM, item.Label())
		return host.SpecsRAM != before, true
	case specs.FamilyStorage:
		var ok bool
		host.SpecsStorage, host.SpecsStorage2, ok = specs.RemoveStorage(host.SpecsStorage, host.SpecsStorage2, item.Label())
		return ok, ok
	default:
		return false, true
	}
}

func specsOf(a *assetDatamodel.Asset) AssetSpecs {
	return AssetSpecs{
		AssetID:       a.ID,
		SpecsRAM:      a.SpecsRAM,
		SpecsStorage:  a.SpecsStorage,
		SpecsStorage2: a.SpecsStorage2,
	}
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
