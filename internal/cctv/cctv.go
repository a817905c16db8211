package cctv

import (
	"fmt"
	"time"

	cctvDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/cctv"
)

const (
	StatusWorking = "Working"
	StatusFaulty  = "Faulty"
	StatusInStock = "In Stock"
	StatusDamaged = "Damaged"
)

var Statuses = []string{StatusWorking, StatusFaulty, StatusInStock, StatusDamaged}

const (
	UnassignedFloor = "Unassigned"
	StockLocation   = "Storage"
	removedSuffix   = " (Removed)"
)

type Camera struct {
	ID             int64      `json:"id"`
	Premise        string     `json:"premise"`
	Floor          string     `json:"floor"`
	CameraLocation string     `json:"camera_location"`
	SerialNumber   string     `json:"serial_number"`
	Model          string     `json:"model"`
	Status         string     `json:"status"`
	InstallDate    *time.Time `json:"install_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func FromDataModel(c *cctvDatamodel.Camera) *Camera {
	return &Camera{
		ID:             c.ID,
		Premise:        c.Premise,
		Floor:          c.Floor,
		CameraLocation: c.CameraLocation,
		SerialNumber:   c.SerialNumber,
		Model:          c.Model,
		Status:         c.Status,
		InstallDate:    c.InstallDate,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

type Repair struct {
	ID               int64     `json:"id"`
	CCTVID           int64     `json:"cctv_id"`
	FaultDescription string    `json:"fault_description"`
	ActionTaken      string    `json:"action_taken"`
	Cost             float64   `json:"cost"`
	Date             time.Time `json:"date"`
	Technician       string    `json:"technician"`
}

func repairFromDataModel(r *cctvDatamodel.Repair) *Repair {
	return &Repair{
		ID:               r.ID,
		CCTVID:           r.CCTVID,
		FaultDescription: r.FaultDescription,
		ActionTaken:      r.ActionTaken,
		Cost:             r.Cost,
		Date:             r.Date,
		Technician:       r.Technician,
	}
}

type History struct {
	Camera  *Camera   `json:"camera"`
	Repairs []*Repair `json:"repairs"`
}

// ReplaceResult holds both cameras after a swap together with the two audit rows.
type ReplaceResult struct {
	Removed      *Camera `json:"removed"`
	Installed    *Camera `json:"installed"`
	RemovedLog   *Repair `json:"removed_log"`
	InstalledLog *Repair `json:"installed_log"`
}

func replacedBy(model, serial string) string {
	return fmt.Sprintf("Replaced by %s (SN: %s)", model, serial)
}

func installedToReplace(model, serial string) string {
	return fmt.Sprintf("Installed to replace %s (SN: %s)", model, serial)
}
