package assignment

import "time"

// Assignment links an asset to a staff member. ReturnDate nil means the assignment is open;
// the partial unique index keeps at most one open row per asset.
type Assignment struct {
	ID         int64      `gorm:"primaryKey"`
	AssetID    int64      `gorm:"column:asset_id;not null;index;uniqueIndex:idx_assignments_open_asset,where:return_date IS NULL"`
	StaffID    int64      `gorm:"column:staff_id;not null;index"`
	IssueDate  time.Time  `gorm:"column:issue_date;not null"`
	ReturnDate *time.Time `gorm:"column:return_date"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// AssignmentWithNames is the joined read shape used by history and dashboard listings.
type AssignmentWithNames struct {
	Assignment
	StaffName         string `gorm:"column:staff_name"`
	AssetModel        string `gorm:"column:asset_model"`
	AssetSerialNumber string `gorm:"column:asset_serial_number"`
	AssetType         string `gorm:"column:asset_type"`
}
