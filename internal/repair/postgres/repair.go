package postgres

import (
	"context"
	"errors"

	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	repairDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/repair"
	"github.com/frahmantamala/asset-management/internal/repair"
	"gorm.io/gorm"
)

type RepairRepository struct {
	db *gorm.DB
}

func NewRepairRepository(db *gorm.DB) repair.RepositoryAPI {
	return &RepairRepository{db: db}
}

func (r *RepairRepository) WithinTx(ctx context.Context, fn func(repo repair.RepositoryAPI) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RepairRepository{db: tx})
	})
}

func (r *RepairRepository) GetAsset(ctx context.Context, id int64) (*assetDatamodel.Asset, error) {
	var a assetDatamodel.Asset
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *RepairRepository) SetAssetStatus(ctx context.Context, assetID int64, status string) error {
	return r.db.WithContext(ctx).
		Model(&assetDatamodel.Asset{}).
		Where("id = ?", assetID).
		Update("status", status).Error
}

func (r *RepairRepository) Create(ctx context.Context, rep *repairDatamodel.Repair) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *RepairRepository) List(ctx context.Context, limit int) ([]*repairDatamodel.RepairWithAsset, error) {
	var rows []*repairDatamodel.RepairWithAsset
	q := r.db.WithContext(ctx).
		Table("repairs").
		Select("repairs.*, assets.model AS asset_model, assets.serial_number AS asset_serial_number").
		Joins("JOIN assets ON assets.id = repairs.asset_id").
		Order("repairs.date DESC, repairs.id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Scan(&rows).Error
	return rows, err
}
