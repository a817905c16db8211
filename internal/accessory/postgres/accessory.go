package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/asset-management/internal/accessory"
	accessoryDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/accessory"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	"gorm.io/gorm"
)

const logSelect = "accessory_logs.*, accessories.type AS accessory_type, accessories.brand AS accessory_brand, accessories.model AS accessory_model, assets.model AS asset_model, assets.serial_number AS asset_serial_number"

type AccessoryRepository struct {
	db *gorm.DB
}

func NewAccessoryRepository(db *gorm.DB) accessory.RepositoryAPI {
	return &AccessoryRepository{db: db}
}

func (r *AccessoryRepository) WithinTx(ctx context.Context, fn func(repo accessory.RepositoryAPI) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AccessoryRepository{db: tx})
	})
}

func (r *AccessoryRepository) Create(ctx context.Context, a *accessoryDatamodel.Accessory) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AccessoryRepository) GetByID(ctx context.Context, id int64) (*accessoryDatamodel.Accessory, error) {
	var a accessoryDatamodel.Accessory
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AccessoryRepository) List(ctx context.Context, filter accessory.ListFilter) ([]*accessoryDatamodel.AccessoryWithAsset, error) {
	var rows []*accessoryDatamodel.AccessoryWithAsset

	q := r.db.WithContext(ctx).
		Table("accessories").
		Select("accessories.*, assets.model AS asset_model, assets.serial_number AS asset_serial_number").
		Joins("LEFT JOIN assets ON assets.id = accessories.asset_id")

	if filter.Status != "" {
		q = q.Where("accessories.status = ?", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("accessories.type = ?", filter.Type)
	}
	if filter.AssetID != nil {
		q = q.Where("accessories.asset_id = ?", *filter.AssetID)
	}

	err := q.Order("accessories.type ASC, accessories.id DESC").Scan(&rows).Error
	return rows, err
}

func (r *AccessoryRepository) Update(ctx context.Context, a *accessoryDatamodel.Accessory) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AccessoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&accessoryDatamodel.Accessory{}).Error
}

func (r *AccessoryRepository) DeleteLogs(ctx context.Context, accessoryID int64) error {
	return r.db.WithContext(ctx).Where("accessory_id = ?", accessoryID).Delete(&accessoryDatamodel.Log{}).Error
}

func (r *AccessoryRepository) CreateLog(ctx context.Context, l *accessoryDatamodel.Log) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *AccessoryRepository) ListLogs(ctx context.Context, accessoryID int64) ([]*accessoryDatamodel.LogWithDetails, error) {
	return r.listLogs(ctx, "accessory_logs.accessory_id = ?", accessoryID)
}

func (r *AccessoryRepository) ListLogsByAsset(ctx context.Context, assetID int64) ([]*accessoryDatamodel.LogWithDetails, error) {
	return r.listLogs(ctx, "accessory_logs.asset_id = ?", assetID)
}

func (r *AccessoryRepository) listLogs(ctx context.Context, where string, id int64) ([]*accessoryDatamodel.LogWithDetails, error) {
	var rows []*accessoryDatamodel.LogWithDetails
	err := r.db.WithContext(ctx).
		Table("accessory_logs").
		Select(logSelect).
		Joins("JOIN accessories ON accessories.id = accessory_logs.accessory_id").
		Joins("JOIN assets ON assets.id = accessory_logs.asset_id").
		Where(where, id).
		Order("accessory_logs.date DESC, accessory_logs.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *AccessoryRepository) GetAsset(ctx context.Context, id int64) (*assetDatamodel.Asset, error) {
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

// UpdateAssetSpecs writes only the three spec columns.
func (r *AccessoryRepository) UpdateAssetSpecs(ctx context.Context, a *assetDatamodel.Asset) error {
	return r.db.WithContext(ctx).
		Model(&assetDatamodel.Asset{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"specs_ram":       a.SpecsRAM,
			"specs_storage":   a.SpecsStorage,
			"specs_storage_2": a.SpecsStorage2,
		}).Error
}
