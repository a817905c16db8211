package cctv

import "time"

type Camera struct {
	ID             int64      `gorm:"primaryKey"`
	Premise        string     `gorm:"column:premise"`
	Floor          string     `gorm:"column:floor"`
	CameraLocation string     `gorm:"column:camera_location"`
	SerialNumber   string     `gorm:"column:serial_number"`
	Model          string     `gorm:"column:model"`
	Status         string     `gorm:"column:status;not null;default:Working"`
	InstallDate    *time.Time `gorm:"column:install_date"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Camera) TableName() string {
	return "cctv"
}

type Repair struct {
	ID               int64     `gorm:"primaryKey"`
	CCTVID           int64     `gorm:"column:cctv_id;not null;index"`
	FaultDescription string    `gorm:"column:fault_description;not null"`
	ActionTaken      string    `gorm:"column:action_taken"`
	Cost             float64   `gorm:"column:cost"`
	Date             time.Time `gorm:"column:date;not null"`
	Technician       string    `gorm:"column:technician"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Repair) TableName() string {
	return "cctv_repairs"
}
