package cmd

import (
	"fmt"
	"log"
	"time"

	accessoryDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/accessory"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	assignmentDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assignment"
	cctvDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/cctv"
	locationDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/location"
	repairDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/repair"
	staffDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/staff"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		if clearData {
			if err := clearInventory(db); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			fmt.Println("Cleared existing inventory data")
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			return seedInventory(tx, cfg.Inventory.DefaultPremise, cfg.Inventory.DefaultTechnician)
		}); err != nil {
			log.Fatalf("failed to seed: %v", err)
		}

		fmt.Println("Seeding completed")
	},
}

// clearInventory deletes children before parents so the foreign keys hold.
func clearInventory(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&accessoryDatamodel.Log{},
			&accessoryDatamodel.Accessory{},
			&repairDatamodel.Repair{},
			&assignmentDatamodel.Assignment{},
			&cctvDatamodel.Repair{},
			&cctvDatamodel.Camera{},
			&assetDatamodel.Asset{},
			&staffDatamodel.Staff{},
			&locationDatamodel.Floor{},
			&locationDatamodel.Premise{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func seedInventory(tx *gorm.DB, defaultPremise, technician string) error {
	// lookups are upserted by name so seeding twice is harmless
	premises := []locationDatamodel.Premise{
		{Name: defaultPremise, SortOrder: 0},
		{Name: "Warehouse", SortOrder: 1},
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&premises).Error; err != nil {
		return fmt.Errorf("premises: %w", err)
	}

	floors := []locationDatamodel.Floor{
		{Name: "Ground Floor", SortOrder: 0},
		{Name: "1st Floor", SortOrder: 1},
		{Name: "2nd Floor", SortOrder: 2},
		{Name: "Basement", SortOrder: 3},
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&floors).Error; err != nil {
		return fmt.Errorf("floors: %w", err)
	}

	var existing int64
	if err := tx.Model(&assetDatamodel.Asset{}).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		fmt.Println("assets already present; skipping sample inventory")
		return nil
	}

	assets := []assetDatamodel.Asset{
		{SerialNumber: "PF3K9XA1", Model: "ThinkPad T14 Gen 3", Type: "Laptop", Status: "Available", SpecsProcessor: "Intel Core i5-1245U", SpecsRAM: "8GB", SpecsStorage: "256GB SSD", SpecsOS: "Windows 11 Pro"},
		{SerialNumber: "C02FK1ZXMD6M", Model: "MacBook Air M2", Type: "Laptop", Status: "Available", SpecsProcessor: "Apple M2", SpecsRAM: "16GB", SpecsStorage: "512GB SSD", SpecsOS: "macOS"},
		{SerialNumber: "8CG2301KQP", Model: "HP EliteDesk 800 G6", Type: "Desktop", Status: "Available", SpecsProcessor: "Intel Core i7-10700", SpecsRAM: "16GB", SpecsStorage: "512GB SSD", SpecsOS: "Windows 10 Pro"},
		{SerialNumber: "R58T20ABCDE", Model: "Galaxy A54", Type: "Mobile Phone", Status: "Available"},
		{SerialNumber: "CN0V1DYL", Model: "Dell P2422H", Type: "Monitor", Status: "Repair"},
	}
	if err := tx.Create(&assets).Error; err != nil {
		return fmt.Errorf("assets: %w", err)
	}

	staff := []staffDatamodel.Staff{
		{EmployeeID: "EMP-001", Name: "Rina Hartono", Department: "Finance"},
		{EmployeeID: "EMP-002", Name: "Budi Santoso", Department: "Operations"},
		{EmployeeID: "EMP-003", Name: "Maya Putri", Department: "IT"},
	}
	if err := tx.Create(&staff).Error; err != nil {
		return fmt.Errorf("staff: %w", err)
	}

	issued := time.Now().UTC().AddDate(0, -2, 0).Truncate(24 * time.Hour)
	if err := tx.Create(&assignmentDatamodel.Assignment{
		AssetID:   assets[0].ID,
		StaffID:   staff[0].ID,
		IssueDate: issued,
	}).Error; err != nil {
		return fmt.Errorf("assignments: %w", err)
	}
	if err := tx.Model(&assets[0]).Update("status", "Issued").Error; err != nil {
		return err
	}

	if err := tx.Create(&repairDatamodel.Repair{
		AssetID:          assets[4].ID,
		FaultDescription: "Backlight flickers",
		Cost:             0,
		Date:             time.Now().UTC().AddDate(0, 0, -3).Truncate(24 * time.Hour),
		Technician:       technician,
	}).Error; err != nil {
		return fmt.Errorf("repairs: %w", err)
	}

	accessories := []accessoryDatamodel.Accessory{
		{Type: "RAM", Brand: "Kingston", Model: "8GB DDR4 3200", Status: "Available"},
		{Type: "RAM", Brand: "Crucial", Model: "16GB DDR4 3200", Status: "Available"},
		{Type: "SSD", Brand: "Samsung", Model: "Samsung 980 1TB", Status: "Available"},
		{Type: "Mouse", Brand: "Logitech", Model: "M185", Status: "Available"},
	}
	if err := tx.Create(&accessories).Error; err != nil {
		return fmt.Errorf("accessories: %w", err)
	}

	installed := time.Now().UTC().AddDate(-1, 0, 0).Truncate(24 * time.Hour)
	cameras := []cctvDatamodel.Camera{
		{Premise: defaultPremise, Floor: "Ground Floor", CameraLocation: "Main Entrance", SerialNumber: "HK-1001", Model: "Hikvision DS-2CD1043", Status: "Working", InstallDate: &installed},
		{Premise: defaultPremise, Floor: "Ground Floor", CameraLocation: "Lobby", SerialNumber: "HK-1002", Model: "Hikvision DS-2CD1043", Status: "Faulty", InstallDate: &installed},
		{Premise: defaultPremise, Floor: "1st Floor", CameraLocation: "Server Room", SerialNumber: "DH-2001", Model: "Dahua IPC-HDW1230", Status: "Working", InstallDate: &installed},
		{Premise: "Warehouse", Floor: "Basement", CameraLocation: "Loading Bay", SerialNumber: "DH-2002", Model: "Dahua IPC-HDW1230", Status: "Working", InstallDate: &installed},
		{Premise: defaultPremise, Floor: "Unassigned", CameraLocation: "Storage", SerialNumber: "HK-1003", Model: "Hikvision DS-2CD1043", Status: "In Stock"},
	}
	if err := tx.Create(&cameras).Error; err != nil {
		return fmt.Errorf("cctv: %w", err)
	}

	fmt.Printf("Seeded %d assets, %d staff, %d accessories, %d cameras\n", len(assets), len(staff), len(accessories), len(cameras))
	return nil
}
