package repair

import "time"

type Repair struct {
	ID               int64     `gorm:"primaryKey"`
	AssetID          int64     `gorm:"column:asset_id;not null;index"`
	FaultDescription string    `gorm:"column:fault_description;not null"`
	PartsReplaced    string    `gorm:"column:parts_replaced"`
	Cost             float64   `gorm:"column:cost"`
	Date             time.Time `gorm:"column:date;not null"`
	Technician       string    `gorm:"column:technician"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Repair) TableName() string {
	return "repairs"
}

type RepairWithAsset struct {
	Repair
	AssetModel        string `gorm:"column:asset_model"`
	AssetSerialNumber string `gorm:"column:asset_serial_number"`
}
