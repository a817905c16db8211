package asset

import "time"

type Asset struct {
	ID             int64     `gorm:"primaryKey"`
	SerialNumber   string    `gorm:"column:serial_number;uniqueIndex;not null"`
	Model          string    `gorm:"column:model"`
	Type           string    `gorm:"column:type;not null"`
	Status         string    `gorm:"column:status;not null;default:Available"`
	SpecsProcessor string    `gorm:"column:specs_processor"`
	SpecsRAM       string    `gorm:"column:specs_ram"`
	SpecsStorage   string    `gorm:"column:specs_storage"`
	SpecsStorage2  string    `gorm:"column:specs_storage_2"`
	SpecsOS        string    `gorm:"column:specs_os"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Asset) TableName() string {
	return "assets"
}

// AssetWithAssignee is the list row: the asset plus the staff name on its open assignment.
type AssetWithAssignee struct {
	Asset
	AssignedTo *string `gorm:"column:assigned_to"`
}
