package postgres

import (
	"context"
	"errors"

	locationDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/location"
	"github.com/frahmantamala/asset-management/internal/location"
	"gorm.io/gorm"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) location.RepositoryAPI {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) ListPremises(ctx context.Context) ([]*locationDatamodel.Premise, error) {
	var premises []*locationDatamodel.Premise
	err := r.db.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&premises).Error
	return premises, err
}

func (r *LocationRepository) GetPremise(ctx context.Context, id int64) (*locationDatamodel.Premise, error) {
	var p locationDatamodel.Premise
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *LocationRepository) GetPremiseByName(ctx context.Context, name string) (*locationDatamodel.Premise, error) {
	var p locationDatamodel.Premise
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *LocationRepository) CreatePremise(ctx context.Context, p *locationDatamodel.Premise) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *LocationRepository) DeletePremise(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&locationDatamodel.Premise{}).Error
}

func (r *LocationRepository) ListFloors(ctx context.Context) ([]*locationDatamodel.Floor, error) {
	var floors []*locationDatamodel.Floor
	err := r.db.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&floors).Error
	return floors, err
}

func (r *LocationRepository) GetFloor(ctx context.Context, id int64) (*locationDatamodel.Floor, error) {
	var f locationDatamodel.Floor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *LocationRepository) GetFloorByName(ctx context.Context, name string) (*locationDatamodel.Floor, error) {
	var f locationDatamodel.Floor
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *LocationRepository) CreateFloor(ctx context.Context, f *locationDatamodel.Floor) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *LocationRepository) DeleteFloor(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&locationDatamodel.Floor{}).Error
}
