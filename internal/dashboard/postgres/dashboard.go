package postgres

import (
	"context"

	"github.com/frahmantamala/asset-management/internal/dashboard"
	"github.com/jmoiron/sqlx"
)

// DashboardRepository reads the dashboard aggregates with plain SQL through sqlx. Nullable
// text columns are coalesced to empty strings.
type DashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) dashboard.RepositoryAPI {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) CountAssets(ctx context.Context) ([]dashboard.StatusCount, error) {
	var rows []dashboard.StatusCount
	err := r.db.SelectContext(ctx, &rows, `
		SELECT type, status, COUNT(*) AS total
		FROM assets
		GROUP BY type, status`)
	return rows, err
}

func (r *DashboardRepository) CountCameras(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM cctv WHERE status = ?`), status)
	return n, err
}

func (r *DashboardRepository) RecentRepairs(ctx context.Context, limit int) ([]dashboard.RecentRepair, error) {
	var rows []dashboard.RecentRepair
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT repairs.id, repairs.asset_id, COALESCE(assets.model, '') AS asset_model,
			assets.serial_number AS asset_serial_number, repairs.fault_description,
			repairs.cost, repairs.date, COALESCE(repairs.technician, '') AS technician
		FROM repairs
		JOIN assets ON assets.id = repairs.asset_id
		ORDER BY repairs.date DESC, repairs.id DESC
		LIMIT ?`), limit)
	return rows, err
}

func (r *DashboardRepository) RecentAssignments(ctx context.Context, limit int) ([]dashboard.RecentAssignment, error) {
	var rows []dashboard.RecentAssignment
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT assignments.id, assignments.asset_id, COALESCE(assets.model, '') AS asset_model,
			assets.serial_number AS asset_serial_number, assets.type AS asset_type,
			assignments.staff_id, staff.name AS staff_name,
			assignments.issue_date, assignments.return_date
		FROM assignments
		JOIN assets ON assets.id = assignments.asset_id
		JOIN staff ON staff.id = assignments.staff_id
		ORDER BY assignments.issue_date DESC, assignments.id DESC
		LIMIT ?`), limit)
	return rows, err
}
