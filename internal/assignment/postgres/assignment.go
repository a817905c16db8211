package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/asset-management/internal/assignment"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	assignmentDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assignment"
	staffDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/staff"
	"gorm.io/gorm"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) assignment.RepositoryAPI {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) WithinTx(ctx context.Context, fn func(repo assignment.RepositoryAPI) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AssignmentRepository{db: tx})
	})
}

func (r *AssignmentRepository) GetAsset(ctx context.Context, id int64) (*assetDatamodel.Asset, error) {
	var a assetDatamodel.Asset
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) GetStaff(ctx context.Context, id int64) (*staffDatamodel.Staff, error) {
	var s staffDatamodel.Staff
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *AssignmentRepository) SetAssetStatus(ctx context.Context, assetID int64, status string) error {
	return r.db.WithContext(ctx).
		Model(&assetDatamodel.Asset{}).
		Where("id = ?", assetID).
		Update("status", status).Error
}

func (r *AssignmentRepository) Create(ctx context.Context, a *assignmentDatamodel.Assignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id int64) (*assignmentDatamodel.Assignment, error) {
	var a assignmentDatamodel.Assignment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) GetOpenByAsset(ctx context.Context, assetID int64) (*assignmentDatamodel.Assignment, error) {
	var a assignmentDatamodel.Assignment
	err := r.db.WithContext(ctx).
		Where("asset_id = ? AND return_date IS NULL", assetID).
		Order("issue_date DESC, id DESC").
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) GetOpenWithNames(ctx context.Context, assetID int64) (*assignmentDatamodel.AssignmentWithNames, error) {
	var rows []*assignmentDatamodel.AssignmentWithNames
	err := r.db.WithContext(ctx).
		Table("assignments").
		Select("assignments.*, staff.name AS staff_name, assets.model AS asset_model, assets.serial_number AS asset_serial_number, assets.type AS asset_type").
		Joins("JOIN staff ON staff.id = assignments.staff_id").
		Joins("JOIN assets ON assets.id = assignments.asset_id").
		Where("assignments.asset_id = ? AND assignments.return_date IS NULL", assetID).
		Order("assignments.issue_date DESC, assignments.id DESC").
		Limit(1).
		Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *AssignmentRepository) Close(ctx context.Context, id int64, returnDate time.Time) error {
	return r.db.WithContext(ctx).
		Model(&assignmentDatamodel.Assignment{}).
		Where("id = ?", id).
		Update("return_date", returnDate).Error
}
