package staff

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/asset-management/internal"
	assignmentDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assignment"
	staffDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/staff"
	"github.com/frahmantamala/asset-management/internal/core/events"
)

type RepositoryAPI interface {
	Create(ctx context.Context, s *staffDatamodel.Staff) error
	GetByID(ctx context.Context, id int64) (*staffDatamodel.Staff, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*staffDatamodel.Staff, error)
	List(ctx context.Context, search string) ([]*staffDatamodel.StaffWithCount, error)
	Update(ctx context.Context, s *staffDatamodel.Staff) error
	Delete(ctx context.Context, id int64) error
	CountOpenAssignments(ctx context.Context, staffID int64) (int64, error)
	ListOpenAssignments(ctx context.Context, staffID int64) ([]*assignmentDatamodel.AssignmentWithNames, error)
	ListReturnedAssignments(ctx context.Context, staffID int64, limit int) ([]*assignmentDatamodel.AssignmentWithNames, error)
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

func (s *Service) CreateStaff(ctx context.Context, dto StaffDTO) (*Staff, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.ensureUniqueEmployeeID(ctx, dto.EmployeeID, 0); err != nil {
		return nil, err
	}

	row := &staffDatamodel.Staff{
		EmployeeID: dto.EmployeeID,
		Name:       dto.Name,
		Department: dto.Department,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create staff", "error", err, "employee_id", dto.EmployeeID)
		return nil, internal.NewInternalError("failed to create staff member", err)
	}

	s.logger.Info("staff created", "staff_id", row.ID, "employee_id", row.EmployeeID)
	s.publish(ctx, events.NewChangedEvent("staff", row.ID, events.ActionCreated))
	return FromDataModel(row), nil
}

func (s *Service) GetStaff(ctx context.Context, id int64) (*Staff, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get staff", "error", err, "staff_id", id)
		return nil, internal.NewInternalError("failed to get staff member", err)
	}
	if row == nil {
		return nil, internal.ErrStaffNotFound
	}

	member := FromDataModel(row)
	member.ActiveAssignments, err = s.repo.CountOpenAssignments(ctx, id)
	if err != nil {
		s.logger.Error("failed to count assignments", "error", err, "staff_id", id)
		return nil, internal.NewInternalError("failed to get staff member", err)
	}
	return member, nil
}

func (s *Service) ListStaff(ctx context.Context, search string) ([]*Staff, error) {
	rows, err := s.repo.List(ctx, search)
	if err != nil {
		s.logger.Error("failed to list staff", "error", err)
		return nil, internal.NewInternalError("failed to list staff", err)
	}

	out := make([]*Staff, 0, len(rows))
	for _, row := range rows {
		member := FromDataModel(&row.Staff)
		member.ActiveAssignments = row.ActiveAssignments
		out = append(out, member)
	}
	return out, nil
}

func (s *Service) UpdateStaff(ctx context.Context, id int64, dto StaffDTO) (*Staff, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get staff", "error", err, "staff_id", id)
		return nil, internal.NewInternalError("failed to update staff member", err)
	}
	if row == nil {
		return nil, internal.ErrStaffNotFound
	}

	if dto.EmployeeID != row.EmployeeID {
		if err := s.ensureUniqueEmployeeID(ctx, dto.EmployeeID, id); err != nil {
			return nil, err
		}
	}

	row.EmployeeID = dto.EmployeeID
	row.Name = dto.Name
	row.Department = dto.Department
	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update staff", "error", err, "staff_id", id)
		return nil, internal.NewInternalError("failed to update staff member", err)
	}

	s.logger.Info("staff updated", "staff_id", id)
	s.publish(ctx, events.NewChangedEvent("staff", id, events.ActionUpdated))
	return FromDataModel(row), nil
}

// DeleteStaff refuses to delete someone who still holds assets.
func (s *Service) DeleteStaff(ctx context.Context, id int64) error {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get staff", "error", err, "staff_id", id)
		return internal.NewInternalError("failed to delete staff member", err)
	}
	if row == nil {
		return internal.ErrStaffNotFound
	}

	open, err := s.repo.CountOpenAssignments(ctx, id)
	if err != nil {
		return internal.NewInternalError("failed to delete staff member", err)
	}
	if open > 0 {
		return internal.NewConflictError("Staff member still holds issued assets", internal.ErrCodeReferencedEntityExists)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete staff", "error", err, "staff_id", id)
		return internal.NewInternalError("failed to delete staff member", err)
	}

	s.logger.Info("staff deleted", "staff_id", id)
	s.publish(ctx, events.NewChangedEvent("staff", id, events.ActionDeleted))
	return nil
}

// StaffProfile lists the assets a person currently holds and their latest returns.
func (s *Service) StaffProfile(ctx context.Context, id int64) (*Profile, error) {
	member, err := s.GetStaff(ctx, id)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.ListOpenAssignments(ctx, id)
	if err != nil {
		s.logger.Error("failed to list open assignments", "error", err, "staff_id", id)
		return nil, internal.NewInternalError("failed to load staff profile", err)
	}
	returned, err := s.repo.ListReturnedAssignments(ctx, id, RecentReturnsLimit)
	if err != nil {
		s.logger.Error("failed to list returned assignments", "error", err, "staff_id", id)
		return nil, internal.NewInternalError("failed to load staff profile", err)
	}

	profile := &Profile{
		Staff:            member,
		ActiveAssets:     make([]AssignedAsset, 0, len(active)),
		RecentlyReturned: make([]AssignedAsset, 0, len(returned)),
	}
	for _, a := range active {
		profile.ActiveAssets = append(profile.ActiveAssets, toAssignedAsset(a))
	}
	for _, a := range returned {
		profile.RecentlyReturned = append(profile.RecentlyReturned, toAssignedAsset(a))
	}
	return profile, nil
}

func (s *Service) ensureUniqueEmployeeID(ctx context.Context, employeeID string, selfID int64) error {
	existing, err := s.repo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		s.logger.Error("failed to check employee id", "error", err, "employee_id", employeeID)
		return internal.NewInternalError("failed to check employee id", err)
	}
	if existing != nil && existing.ID != selfID {
		return internal.NewConflictError("A staff member with this employee id already exists", internal.ErrCodeDuplicateEmployeeID)
	}
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
