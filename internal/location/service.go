package location

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/asset-management/internal"
	locationDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/location"
	"github.com/frahmantamala/asset-management/internal/core/events"
)

type RepositoryAPI interface {
	ListPremises(ctx context.Context) ([]*locationDatamodel.Premise, error)
	GetPremise(ctx context.Context, id int64) (*locationDatamodel.Premise, error)
	GetPremiseByName(ctx context.Context, name string) (*locationDatamodel.Premise, error)
	CreatePremise(ctx context.Context, p *locationDatamodel.Premise) error
	DeletePremise(ctx context.Context, id int64) error

	ListFloors(ctx context.Context) ([]*locationDatamodel.Floor, error)
	GetFloor(ctx context.Context, id int64) (*locationDatamodel.Floor, error)
	GetFloorByName(ctx context.Context, name string) (*locationDatamodel.Floor, error)
	CreateFloor(ctx context.Context, f *locationDatamodel.Floor) error
	DeleteFloor(ctx context.Context, id int64) error
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

func (s *Service) ListPremises(ctx context.Context) ([]*Lookup, error) {
	rows, err := s.repo.ListPremises(ctx)
	if err != nil {
		s.logger.Error("failed to list premises", "error", err)
		return nil, internal.NewInternalError("failed to list premises", err)
	}

	out := make([]*Lookup, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromPremise(row))
	}
	return out, nil
}

func (s *Service) CreatePremise(ctx context.Context, dto LookupDTO) (*Lookup, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetPremiseByName(ctx, dto.Name)
	if err != nil {
		s.logger.Error("failed to check premise name", "error", err, "name", dto.Name)
		return nil, internal.NewInternalError("failed to create premise", err)
	}
	if existing != nil {
		return nil, internal.NewConflictError("A premise with this name already exists", internal.ErrCodeDuplicateName)
	}

	row := &locationDatamodel.Premise{Name: dto.Name, SortOrder: dto.SortOrder}
	if err := s.repo.CreatePremise(ctx, row); err != nil {
		s.logger.Error("failed to create premise", "error", err, "name", dto.Name)
		return nil, internal.NewInternalError("failed to create premise", err)
	}

	s.logger.Info("premise created", "premise_id", row.ID, "name", row.Name)
	s.publish(ctx, events.NewChangedEvent("premise", row.ID, events.ActionCreated))
	return FromPremise(row), nil
}

// DeletePremise leaves cameras untouched; they keep the premise name they were recorded with.
func (s *Service) DeletePremise(ctx context.Context, id int64) error {
	row, err := s.repo.GetPremise(ctx, id)
	if err != nil {
		s.logger.Error("failed to get premise", "error", err, "premise_id", id)
		return internal.NewInternalError("failed to delete premise", err)
	}
	if row == nil {
		return internal.ErrPremiseNotFound
	}

	if err := s.repo.DeletePremise(ctx, id); err != nil {
		s.logger.Error("failed to delete premise", "error", err, "premise_id", id)
		return internal.NewInternalError("failed to delete premise", err)
	}

	s.logger.Info("premise deleted", "premise_id", id, "name", row.Name)
	s.publish(ctx, events.NewChangedEvent("premise", id, events.ActionDeleted))
	return nil
}

func (s *Service) ListFloors(ctx context.Context) ([]*Lookup, error) {
	rows, err := s.repo.ListFloors(ctx)
	if err != nil {
		s.logger.Error("failed to list floors", "error", err)
		return nil, internal.NewInternalError("failed to list floors", err)
	}

	out := make([]*Lookup, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromFloor(row))
	}
	return out, nil
}

func (s *Service) CreateFloor(ctx context.Context, dto LookupDTO) (*Lookup, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetFloorByName(ctx, dto.Name)
	if err != nil {
		s.logger.Error("failed to check floor name", "error", err, "name", dto.Name)
		return nil, internal.NewInternalError("failed to create floor", err)
	}
	if existing != nil {
		return nil, internal.NewConflictError("A floor with this name already exists", internal.ErrCodeDuplicateName)
	}

	row := &locationDatamodel.Floor{Name: dto.Name, SortOrder: dto.SortOrder}
	if err := s.repo.CreateFloor(ctx, row); err != nil {
		s.logger.Error("failed to create floor", "error", err, "name", dto.Name)
		return nil, internal.NewInternalError("failed to create floor", err)
	}

	s.logger.Info("floor created", "floor_id", row.ID, "name", row.Name, "sort_order", row.SortOrder)
	s.publish(ctx, events.NewChangedEvent("floor", row.ID, events.ActionCreated))
	return FromFloor(row), nil
}

// DeleteFloor removes the lookup row only. Cameras on that floor then sort after mapped floors.
func (s *Service) DeleteFloor(ctx context.Context, id int64) error {
	row, err := s.repo.GetFloor(ctx, id)
	if err != nil {
		s.logger.Error("failed to get floor", "error", err, "floor_id", id)
		return internal.NewInternalError("failed to delete floor", err)
	}
	if row == nil {
		return internal.ErrFloorNotFound
	}

	if err := s.repo.DeleteFloor(ctx, id); err != nil {
		s.logger.Error("failed to delete floor", "error", err, "floor_id", id)
		return internal.NewInternalError("failed to delete floor", err)
	}

	s.logger.Info("floor deleted", "floor_id", id, "name", row.Name)
	s.publish(ctx, events.NewChangedEvent("floor", id, events.ActionDeleted))
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
