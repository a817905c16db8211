package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/asset-management/internal/cctv"
	cctvDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/cctv"
	locationDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/location"
	"gorm.io/gorm"
)

type CCTVRepository struct {
	db *gorm.DB
}

func NewCCTVRepository(db *gorm.DB) cctv.RepositoryAPI {
	return &CCTVRepository{db: db}
}

func (r *CCTVRepository) WithinTx(ctx context.Context, fn func(repo cctv.RepositoryAPI) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CCTVRepository{db: tx})
	})
}

func (r *CCTVRepository) Create(ctx context.Context, c *cctvDatamodel.Camera) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CCTVRepository) GetByID(ctx context.Context, id int64) (*cctvDatamodel.Camera, error) {
	var c cctvDatamodel.Camera
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CCTVRepository) List(ctx context.Context, filter cctv.ListFilter) ([]*cctvDatamodel.Camera, error) {
	var cameras []*cctvDatamodel.Camera

	q := r.db.WithContext(ctx).Model(&cctvDatamodel.Camera{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Premise != "" {
		q = q.Where("premise = ?", filter.Premise)
	}

	err := q.Order("id ASC").Find(&cameras).Error
	return cameras, err
}

func (r *CCTVRepository) Update(ctx context.Context, c *cctvDatamodel.Camera) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CCTVRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&cctvDatamodel.Camera{}).Error
}

func (r *CCTVRepository) CreateRepair(ctx context.Context, repair *cctvDatamodel.Repair) error {
	return r.db.WithContext(ctx).Create(repair).Error
}

func (r *CCTVRepository) ListRepairs(ctx context.Context, cctvID int64) ([]*cctvDatamodel.Repair, error) {
	var repairs []*cctvDatamodel.Repair
	err := r.db.WithContext(ctx).
		Where("cctv_id = ?", cctvID).
		Order("date DESC, id DESC").
		Find(&repairs).Error
	return repairs, err
}

func (r *CCTVRepository) DeleteRepairs(ctx context.Context, cctvID int64) error {
	return r.db.WithContext(ctx).Where("cctv_id = ?", cctvID).Delete(&cctvDatamodel.Repair{}).Error
}

func (r *CCTVRepository) ListFloorOrder(ctx context.Context) ([]cctv.FloorOrder, error) {
	var floors []*locationDatamodel.Floor
	if err := r.db.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&floors).Error; err != nil {
		return nil, err
	}

	out := make([]cctv.FloorOrder, 0, len(floors))
	for _, f := range floors {
		out = append(out, cctv.FloorOrder{Name: f.Name, SortOrder: f.SortOrder})
	}
	return out, nil
}

func (r *CCTVRepository) ListPremiseNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&locationDatamodel.Premise{}).
		Order("sort_order ASC, name ASC").
		Pluck("name", &names).Error
	return names, err
}
