package postgres

import (
	"context"
	"errors"
	"strings"

	assignmentDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assignment"
	staffDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/staff"
	"github.com/frahmantamala/asset-management/internal/staff"
	"gorm.io/gorm"
)

const assignmentColumns = "assignments.*, staff.name AS staff_name, assets.model AS asset_model, assets.serial_number AS asset_serial_number, assets.type AS asset_type"

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) staff.RepositoryAPI {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, s *staffDatamodel.Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*staffDatamodel.Staff, error) {
	var s staffDatamodel.Staff
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *StaffRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*staffDatamodel.Staff, error) {
	var s staffDatamodel.Staff
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *StaffRepository) List(ctx context.Context, search string) ([]*staffDatamodel.StaffWithCount, error) {
	var rows []*staffDatamodel.StaffWithCount

	openCounts := r.db.
		Table("assignments").
		Select("staff_id, COUNT(*) AS active_assignments").
		Where("return_date IS NULL").
		Group("staff_id")

	q := r.db.WithContext(ctx).
		Table("staff").
		Select("staff.*, COALESCE(open_counts.active_assignments, 0) AS active_assignments").
		Joins("LEFT JOIN (?) AS open_counts ON open_counts.staff_id = staff.id", openCounts)

	if term := strings.TrimSpace(search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(staff.name) LIKE ? OR LOWER(staff.employee_id) LIKE ? OR LOWER(staff.department) LIKE ?", like, like, like)
	}

	err := q.Order("staff.name ASC").Scan(&rows).Error
	return rows, err
}

func (r *StaffRepository) Update(ctx context.Context, s *staffDatamodel.Staff) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// Delete also drops the person's returned assignments, so those rows leave the asset history
// of every asset involved.
func (r *StaffRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("staff_id = ?", id).Delete(&assignmentDatamodel.Assignment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&staffDatamodel.Staff{}).Error
	})
}

func (r *StaffRepository) CountOpenAssignments(ctx context.Context, staffID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&assignmentDatamodel.Assignment{}).
		Where("staff_id = ? AND return_date IS NULL", staffID).
		Count(&n).Error
	return n, err
}

func (r *StaffRepository) ListOpenAssignments(ctx context.Context, staffID int64) ([]*assignmentDatamodel.AssignmentWithNames, error) {
	var rows []*assignmentDatamodel.AssignmentWithNames
	err := r.assignments(ctx, staffID).
		Where("assignments.return_date IS NULL").
		Order("assignments.issue_date DESC, assignments.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *StaffRepository) ListReturnedAssignments(ctx context.Context, staffID int64, limit int) ([]*assignmentDatamodel.AssignmentWithNames, error) {
	var rows []*assignmentDatamodel.AssignmentWithNames
	err := r.assignments(ctx, staffID).
		Where("assignments.return_date IS NOT NULL").
		Order("assignments.return_date DESC, assignments.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *StaffRepository) assignments(ctx context.Context, staffID int64) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("assignments").
		Select(assignmentColumns).
		Joins("JOIN staff ON staff.id = assignments.staff_id").
		Joins("JOIN assets ON assets.id = assignments.asset_id").
		Where("assignments.staff_id = ?", staffID)
}
