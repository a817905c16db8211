package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/frahmantamala/asset-management/internal/asset"
	accessoryDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/accessory"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	assignmentDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assignment"
	repairDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/repair"
	"gorm.io/gorm"
)

type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) asset.RepositoryAPI {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) WithinTx(ctx context.Context, fn func(repo asset.RepositoryAPI) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AssetRepository{db: tx})
	})
}

func (r *AssetRepository) Create(ctx context.Context, a *assetDatamodel.Asset) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssetRepository) GetByID(ctx context.Context, id int64) (*assetDatamodel.Asset, error) {
	var a assetDatamodel.Asset
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssetRepository) GetBySerialNumber(ctx context.Context, serial string) (*assetDatamodel.Asset, error) {
	var a assetDatamodel.Asset
	err := r.db.WithContext(ctx).Where("serial_number = ?", serial).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AssetRepository) List(ctx context.Context, filter asset.ListFilter) ([]*assetDatamodel.AssetWithAssignee, error) {
	var rows []*assetDatamodel.AssetWithAssignee

	q := r.db.WithContext(ctx).
		Table("assets").
		Select("assets.*, staff.name AS assigned_to").
		Joins("LEFT JOIN assignments ON assignments.asset_id = assets.id AND assignments.return_date IS NULL").
		Joins("LEFT JOIN staff ON staff.id = assignments.staff_id")

	if filter.Status != "" {
		q = q.Where("assets.status = ?", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("assets.type = ?", filter.Type)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(assets.serial_number) LIKE ? OR LOWER(assets.model) LIKE ? OR LOWER(COALESCE(staff.name, '')) LIKE ?", like, like, like)
	}

	err := q.Order("assets.id DESC").Scan(&rows).Error
	return rows, err
}

func (r *AssetRepository) Update(ctx context.Context, a *assetDatamodel.Asset) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// Delete removes the asset with its repairs, assignments and accessory logs, and returns any
// installed accessories to stock.
func (r *AssetRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("asset_id = ?", id).Delete(&repairDatamodel.Repair{}).Error; err != nil {
			return err
		}
		if err := tx.Where("asset_id = ?", id).Delete(&assignmentDatamodel.Assignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("asset_id = ?", id).Delete(&accessoryDatamodel.Log{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&accessoryDatamodel.Accessory{}).
			Where("asset_id = ?", id).
			Updates(map[string]interface{}{"asset_id": nil, "status": "Available"}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&assetDatamodel.Asset{}).Error
	})
}

func (r *AssetRepository) CloseOpenAssignments(ctx context.Context, assetID int64, returnDate time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&assignmentDatamodel.Assignment{}).
		Where("asset_id = ? AND return_date IS NULL", assetID).
		Update("return_date", returnDate)
	return res.RowsAffected, res.Error
}

func (r *AssetRepository) ListRepairs(ctx context.Context, assetID int64) ([]*repairDatamodel.Repair, error) {
	var repairs []*repairDatamodel.Repair
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("date DESC, id DESC").
		Find(&repairs).Error
	return repairs, err
}

func (r *AssetRepository) ListAssignments(ctx context.Context, assetID int64) ([]*assignmentDatamodel.AssignmentWithNames, error) {
	var rows []*assignmentDatamodel.AssignmentWithNames
	err := r.db.WithContext(ctx).
		Table("assignments").
		Select("assignments.*, staff.name AS staff_name, assets.model AS asset_model, assets.serial_number AS asset_serial_number, assets.type AS asset_type").
		Joins("JOIN staff ON staff.id = assignments.staff_id").
		Joins("JOIN assets ON assets.id = assignments.asset_id").
		Where("assignments.asset_id = ?", assetID).
		Order("assignments.issue_date DESC, assignments.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *AssetRepository) ListAccessoryLogs(ctx context.Context, assetID int64) ([]*accessoryDatamodel.LogWithDetails, error) {
	var rows []*accessoryDatamodel.LogWithDetails
	err := r.db.WithContext(ctx).
		Table("accessory_logs").
		Select("accessory_logs.*, accessories.type AS accessory_type, accessories.brand AS accessory_brand, accessories.model AS accessory_model, assets.model AS asset_model, assets.serial_number AS asset_serial_number").
		Joins("JOIN accessories ON accessories.id = accessory_logs.accessory_id").
		Joins("JOIN assets ON assets.id = accessory_logs.asset_id").
		Where("accessory_logs.asset_id = ?", assetID).
		Order("accessory_logs.date DESC, accessory_logs.id DESC").
		Scan(&rows).Error
	return rows, err
}
