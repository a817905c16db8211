package staff

import "time"

type Staff struct {
	ID         int64     `gorm:"primaryKey"`
	EmployeeID string    `gorm:"column:employee_id;uniqueIndex;not null"`
	Name       string    `gorm:"column:name;not null"`
	Department string    `gorm:"column:department"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Staff) TableName() string {
	return "staff"
}

type StaffWithCount struct {
	Staff
	ActiveAssignments int64 `gorm:"column:active_assignments"`
}
