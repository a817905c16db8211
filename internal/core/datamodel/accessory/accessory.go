package accessory

import "time"

type Accessory struct {
	ID           int64     `gorm:"primaryKey"`
	Type         string    `gorm:"column:type;not null"`
	Brand        string    `gorm:"column:brand"`
	Model        string    `gorm:"column:model"`
	SerialNumber string    `gorm:"column:serial_number"`
	Status       string    `gorm:"column:status;not null;default:Available"`
	AssetID      *int64    `gorm:"column:asset_id;index"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Accessory) TableName() string {
	return "accessories"
}

type AccessoryWithAsset struct {
	Accessory
	AssetModel        *string `gorm:"column:asset_model"`
	AssetSerialNumber *string `gorm:"column:asset_serial_number"`
}

// Log is an append-only audit row; rows are only removed together with their accessory.
type Log struct {
	ID          int64     `gorm:"primaryKey"`
	AccessoryID int64     `gorm:"column:accessory_id;not null;index"`
	AssetID     int64     `gorm:"column:asset_id;not null;index"`
	Action      string    `gorm:"column:action;not null"`
	Date        time.Time `gorm:"column:date;not null"`
	Technician  string    `gorm:"column:technician"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Log) TableName() string {
	return "accessory_logs"
}

type LogWithDetails struct {
	Log
	AccessoryType     string `gorm:"column:accessory_type"`
	AccessoryBrand    string `gorm:"column:accessory_brand"`
	AccessoryModel    string `gorm:"column:accessory_model"`
	AssetModel        string `gorm:"column:asset_model"`
	AssetSerialNumber string `gorm:"column:asset_serial_number"`
}
