package cctv

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/asset-management/internal"
	cctvDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/cctv"
	"github.com/frahmantamala/asset-management/internal/core/events"
)

type RepositoryAPI interface {
	WithinTx(ctx context.Context, fn func(repo RepositoryAPI) error) error
	Create(ctx context.Context, c *cctvDatamodel.Camera) error
	GetByID(ctx context.Context, id int64) (*cctvDatamodel.Camera, error)
	List(ctx context.Context, filter ListFilter) ([]*cctvDatamodel.Camera, error)
	Update(ctx context.Context, c *cctvDatamodel.Camera) error
	Delete(ctx context.Context, id int64) error
	CreateRepair(ctx context.Context, r *cctvDatamodel.Repair) error
	ListRepairs(ctx context.Context, cctvID int64) ([]*cctvDatamodel.Repair, error)
	DeleteRepairs(ctx context.Context, cctvID int64) error
	ListFloorOrder(ctx context.Context) ([]FloorOrder, error)
	ListPremiseNames(ctx context.Context) ([]string, error)
}

type Service struct {
	repo              RepositoryAPI
	publisher         events.Publisher
	defaultTechnician string
	defaultPremise    string
	logger            *slog.Logger
}

func NewService(repo RepositoryAPI, publisher events.Publisher, defaultTechnician, defaultPremise string, logger *slog.Logger) *Service {
	return &Service{
		repo:              repo,
		publisher:         publisher,
		defaultTechnician: defaultTechnician,
		defaultPremise:    defaultPremise,
		logger:            logger,
	}
}

func (s *Service) CreateCamera(ctx context.Context, dto CameraDTO) (*Camera, error) {
	row, err := s.fromDTO(dto)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create camera", "error", err)
		return nil, internal.NewInternalError("failed to create camera", err)
	}

	s.logger.Info("camera created", "cctv_id", row.ID, "premise", row.Premise, "floor", row.Floor)
	s.publish(ctx, events.NewChangedEvent("cctv", row.ID, events.ActionCreated))
	return FromDataModel(row), nil
}

// AddStockCamera registers a spare unit: In Stock, kept in storage, not on any floor.
func (s *Service) AddStockCamera(ctx context.Context, dto StockCameraDTO) (*Camera, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	premise := dto.Premise
	if premise == "" {
		premise = s.defaultPremise
	}
	row := &cctvDatamodel.Camera{
		Premise:        premise,
		Floor:          UnassignedFloor,
		CameraLocation: StockLocation,
		SerialNumber:   dto.SerialNumber,
		Model:          dto.Model,
		Status:         StatusInStock,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to add stock camera", "error", err)
		return nil, internal.NewInternalError("failed to add stock camera", err)
	}

	s.logger.Info("stock camera added", "cctv_id", row.ID, "model", row.Model)
	s.publish(ctx, events.NewChangedEvent("cctv", row.ID, events.ActionCreated))
	return FromDataModel(row), nil
}

func (s *Service) GetCamera(ctx context.Context, id int64) (*Camera, error) {
	row, err := s.get(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) ListCameras(ctx context.Context, filter ListFilter) ([]*Camera, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list cameras", "error", err)
		return nil, internal.NewInternalError("failed to list cameras", err)
	}

	out := make([]*Camera, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) UpdateCamera(ctx context.Context, id int64, dto CameraDTO) (*Camera, error) {
	next, err := s.fromDTO(dto)
	if err != nil {
		return nil, err
	}

	row, err := s.get(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	previous := row.Status

	row.Premise = next.Premise
	row.Floor = next.Floor
	row.CameraLocation = next.CameraLocation
	row.SerialNumber = next.SerialNumber
	row.Model = next.Model
	row.Status = next.Status
	row.InstallDate = next.InstallDate
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update camera", "error", err, "cctv_id", id)
		return nil, internal.NewInternalError("failed to update camera", err)
	}

	s.logger.Info("camera updated", "cctv_id", id, "status", row.Status)
	if previous != row.Status {
		s.publish(ctx, events.NewInventoryEvent(events.EventTypeCameraStatusChanged, "cctv", id, events.ActionUpdated, nil))
	} else {
		s.publish(ctx, events.NewChangedEvent("cctv", id, events.ActionUpdated))
	}
	return FromDataModel(row), nil
}

func (s *Service) SetStatus(ctx context.Context, id int64, dto StatusDTO) (*Camera, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.get(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	if row.Status == dto.Status {
		return FromDataModel(row), nil
	}

	previous := row.Status
	row.Status = dto.Status
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to set camera status", "error", err, "cctv_id", id)
		return nil, internal.NewInternalError("failed to set camera status", err)
	}

	s.logger.Info("camera status changed", "cctv_id", id, "from", previous, "to", row.Status)
	s.publish(ctx, events.NewInventoryEvent(events.EventTypeCameraStatusChanged, "cctv", id, events.ActionUpdated, nil))
	return FromDataModel(row), nil
}

// DeleteCamera removes the camera and its repair log in one transaction.
func (s *Service) DeleteCamera(ctx context.Context, id int64) error {
	err := s.repo.WithinTx(ctx, func(repo RepositoryAPI) error {
		if _, err := s.get(ctx, repo, id); err != nil {
			return err
		}
		if err := repo.DeleteRepairs(ctx, id); err != nil {
			return internal.NewInternalError("failed to delete camera repairs", err)
		}
		if err := repo.Delete(ctx, id); err != nil {
			return internal.NewInternalError("failed to delete camera", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("delete camera failed", "error", err, "cctv_id", id)
		return err
	}

	s.logger.Info("camera deleted", "cctv_id", id)
	s.publish(ctx, events.NewChangedEvent("cctv", id, events.ActionDeleted))
	return nil
}

func (s *Service) LogCameraRepair(ctx context.Context, dto LogRepairDTO) (*Repair, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	date, err := internal.ParseDate(dto.Date, internal.Today())
	if err != nil {
		return nil, err
	}

	if _, err := s.get(ctx, s.repo, dto.CCTVID); err != nil {
		return nil, err
	}

	row := &cctvDatamodel.Repair{
		CCTVID:           dto.CCTVID,
		FaultDescription: dto.FaultDescription,
		ActionTaken:      dto.ActionTaken,
		Cost:             dto.Cost,
		Date:             date,
		Technician:       s.technician(ctx, dto.Technician),
	}
	if err := s.repo.CreateRepair(ctx, row); err != nil {
		s.logger.Error("failed to log camera repair", "error", err, "cctv_id", dto.CCTVID)
		return nil, internal.NewInternalError("failed to log camera repair", err)
	}

	s.logger.Info("camera repair logged", "repair_id", row.ID, "cctv_id", row.CCTVID, "technician", row.Technician)
	s.publish(ctx, events.NewChangedEvent("cctv", row.CCTVID, events.ActionUpdated))
	return repairFromDataModel(row), nil
}

func (s *Service) CameraHistory(ctx context.Context, id int64) (*History, error) {
	row, err := s.get(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	repairs, err := s.repo.ListRepairs(ctx, id)
	if err != nil {
		s.logger.Error("failed to list camera repairs", "error", err, "cctv_id", id)
		return nil, internal.NewInternalError("failed to load camera history", err)
	}

	history := &History{Camera: FromDataModel(row), Repairs: make([]*Repair, 0, len(repairs))}
	for _, r := range repairs {
		history.Repairs = append(history.Repairs, repairFromDataModel(r))
	}
	return history, nil
}

// Replace takes the camera oldID off its mount and puts the In Stock camera dto.NewCameraID in
// its place. Both camera rows and both audit rows commit together.
func (s *Service) Replace(ctx context.Context, oldID int64, dto ReplaceDTO) (*ReplaceResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if dto.NewCameraID == oldID {
		return nil, internal.ErrReplacementSameCamera
	}
	date, err := internal.ParseDate(dto.Date, internal.Today())
	if err != nil {
		return nil, err
	}
	technician := s.technician(ctx, dto.Technician)

	var result *ReplaceResult
	err = s.repo.WithinTx(ctx, func(repo RepositoryAPI) error {
		removed, err := s.get(ctx, repo, oldID)
		if err != nil {
			return err
		}
		installed, err := s.get(ctx, repo, dto.NewCameraID)
		if err != nil {
			return err
		}
		if installed.Status != StatusInStock {
			return internal.ErrCameraNotInStock
		}

		location, floor, premise := removed.CameraLocation, removed.Floor, removed.Premise

		removed.Status = dto.OldStatus
		removed.CameraLocation = location + removedSuffix
		removed.Floor = UnassignedFloor
		if err := repo.Update(ctx, removed); err != nil {
			return internal.NewInternalError("failed to update removed camera", err)
		}

		installDate := date
		installed.Status = StatusWorking
		installed.CameraLocation = location
		installed.Floor = floor
		installed.Premise = premise
		installed.InstallDate = &installDate
		if err := repo.Update(ctx, installed); err != nil {
			return internal.NewInternalError("failed to update installed camera", err)
		}

		removedLog := &cctvDatamodel.Repair{
			CCTVID:           removed.ID,
			FaultDescription: "Replaced",
			ActionTaken:      replacedBy(installed.Model, installed.SerialNumber),
			Date:             date,
			Technician:       technician,
		}
		if err := repo.CreateRepair(ctx, removedLog); err != nil {
			return internal.NewInternalError("failed to log replacement", err)
		}

		installedLog := &cctvDatamodel.Repair{
			CCTVID:           installed.ID,
			FaultDescription: "Installation",
			ActionTaken:      installedToReplace(removed.Model, removed.SerialNumber),
			Date:             date,
			Technician:       technician,
		}
		if err := repo.CreateRepair(ctx, installedLog); err != nil {
			return internal.NewInternalError("failed to log installation", err)
		}

		result = &ReplaceResult{
			Removed:      FromDataModel(removed),
			Installed:    FromDataModel(installed),
			RemovedLog:   repairFromDataModel(removedLog),
			InstalledLog: repairFromDataModel(installedLog),
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("camera replacement failed", "error", err, "cctv_id", oldID, "new_cctv_id", dto.NewCameraID)
		return nil, err
	}

	s.logger.Info("camera replaced",
		"cctv_id", oldID,
		"new_cctv_id", dto.NewCameraID,
		"old_status", dto.OldStatus,
		"location", result.Installed.CameraLocation,
		"technician", technician)

	s.publish(ctx, events.NewInventoryEvent(events.EventTypeCameraReplaced, "cctv", oldID, events.ActionUpdated,
		map[string]int64{"new_cctv_id": dto.NewCameraID}))
	return result, nil
}

func (s *Service) Overview(ctx context.Context, query OverviewQuery) (*Overview, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cameras, err := s.ListCameras(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	floors, err := s.repo.ListFloorOrder(ctx)
	if err != nil {
		s.logger.Error("failed to list floors", "error", err)
		return nil, internal.NewInternalError("failed to load overview", err)
	}
	premises, err := s.repo.ListPremiseNames(ctx)
	if err != nil {
		s.logger.Error("failed to list premises", "error", err)
		return nil, internal.NewInternalError("failed to load overview", err)
	}
	if len(premises) == 0 {
		premises = []string{s.defaultPremise}
	}

	overview := BuildOverview(cameras, floors, query.Premise, s.defaultPremise, query.Search, query.Sort)
	overview.Premises = premises
	return overview, nil
}

func (s *Service) fromDTO(dto CameraDTO) (*cctvDatamodel.Camera, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := &cctvDatamodel.Camera{
		Premise:        dto.Premise,
		Floor:          dto.Floor,
		CameraLocation: dto.CameraLocation,
		SerialNumber:   dto.SerialNumber,
		Model:          dto.Model,
		Status:         dto.Status,
	}
	if row.Premise == "" {
		row.Premise = s.defaultPremise
	}
	if row.Status == "" {
		row.Status = StatusWorking
	}
	if dto.InstallDate != "" {
		d, err := internal.ParseDate(dto.InstallDate, internal.Today())
		if err != nil {
			return nil, internal.NewValidationFieldError("install_date", "install_date must be formatted as YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
		row.InstallDate = &d
	}
	return row, nil
}

func (s *Service) get(ctx context.Context, repo RepositoryAPI, id int64) (*cctvDatamodel.Camera, error) {
	row, err := repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get camera", "error", err, "cctv_id", id)
		return nil, internal.NewInternalError("failed to get camera", err)
	}
	if row == nil {
		return nil, internal.ErrCameraNotFound
	}
	return row, nil
}

func (s *Service) technician(ctx context.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return internal.TechnicianFromContext(ctx, s.defaultTechnician)
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
