// Package testdb opens isolated in-memory SQLite databases carrying the full schema, for
// repository and handler tests.
package testdb

import (
	"fmt"

	accessoryDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/accessory"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	assignmentDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assignment"
	cctvDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/cctv"
	locationDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/location"
	repairDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/repair"
	staffDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/staff"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table in creation order.
func Models() []interface{} {
	return []interface{}{
		&assetDatamodel.Asset{},
		&staffDatamodel.Staff{},
		&assignmentDatamodel.Assignment{},
		&repairDatamodel.Repair{},
		&accessoryDatamodel.Accessory{},
		&accessoryDatamodel.Log{},
		&cctvDatamodel.Camera{},
		&cctvDatamodel.Repair{},
		&locationDatamodel.Premise{},
		&locationDatamodel.Floor{},
	}
}

// Open returns a fresh database. It is pinned to a single connection, so code running inside
// a transaction must only use the transaction handle.
func Open() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=private", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, err
	}
	return db, nil
}
