package asset

import (
	"time"

	accessoryDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/accessory"
	assetDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/asset"
	assignmentDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assignment"
	repairDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/repair"
)

const (
	StatusAvailable = "Available"
	StatusIssued    = "Issued"
	StatusRepair    = "Repair"
	StatusScrap     = "Scrap"
)

const (
	TypeLaptop      = "Laptop"
	TypeDesktop     = "Desktop"
	TypeMobilePhone = "Mobile Phone"
	TypeMonitor     = "Monitor"
	TypePrinter     = "Printer"
	TypeNetworking  = "Networking"
	TypePeripheral  = "Peripheral"
)

var (
	Statuses = []string{StatusAvailable, StatusIssued, StatusRepair, StatusScrap}
	Types    = []string{TypeLaptop, TypeDesktop, TypeMobilePhone, TypeMonitor, TypePrinter, TypeNetworking, TypePeripheral}
)

type Asset struct {
	ID             int64     `json:"id"`
	SerialNumber   string    `json:"serial_number"`
	Model          string    `json:"model"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	SpecsProcessor string    `json:"specs_processor"`
	SpecsRAM       string    `json:"specs_ram"`
	SpecsStorage   string    `json:"specs_storage"`
	SpecsStorage2  string    `json:"specs_storage_2"`
	SpecsOS        string    `json:"specs_os"`
	AssignedTo     *string   `json:"assigned_to,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ClosesAssignments reports whether moving into status ends any open assignment.
func ClosesAssignments(status string) bool {
	return status == StatusAvailable || status == StatusScrap
}

func ToDataModel(a *Asset) *assetDatamodel.Asset {
	return &assetDatamodel.Asset{
		ID:             a.ID,
		SerialNumber:   a.SerialNumber,
		Model:          a.Model,
		Type:           a.Type,
		Status:         a.Status,
		SpecsProcessor: a.SpecsProcessor,
		SpecsRAM:       a.SpecsRAM,
		SpecsStorage:   a.SpecsStorage,
		SpecsStorage2:  a.SpecsStorage2,
		SpecsOS:        a.SpecsOS,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func FromDataModel(a *assetDatamodel.Asset) *Asset {
	return &Asset{
		ID:             a.ID,
		SerialNumber:   a.SerialNumber,
		Model:          a.Model,
		Type:           a.Type,
		Status:         a.Status,
		SpecsProcessor: a.SpecsProcessor,
		SpecsRAM:       a.SpecsRAM,
		SpecsStorage:   a.SpecsStorage,
		SpecsStorage2:  a.SpecsStorage2,
		SpecsOS:        a.SpecsOS,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func FromListRow(row *assetDatamodel.AssetWithAssignee) *Asset {
	a := FromDataModel(&row.Asset)
	a.AssignedTo = row.AssignedTo
	return a
}

type RepairEntry struct {
	ID               int64     `json:"id"`
	FaultDescription string    `json:"fault_description"`
	PartsReplaced    string    `json:"parts_replaced"`
	Cost             float64   `json:"cost"`
	Date             time.Time `json:"date"`
	Technician       string    `json:"technician"`
}

type AssignmentEntry struct {
	ID         int64      `json:"id"`
	StaffID    int64      `json:"staff_id"`
	StaffName  string     `json:"staff_name"`
	IssueDate  time.Time  `json:"issue_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}

type AccessoryLogEntry struct {
	ID             int64     `json:"id"`
	AccessoryID    int64     `json:"accessory_id"`
	AccessoryType  string    `json:"accessory_type"`
	AccessoryBrand string    `json:"accessory_brand"`
	AccessoryModel string    `json:"accessory_model"`
	Action         string    `json:"action"`
	Date           time.Time `json:"date"`
	Technician     string    `json:"technician"`
}

// History is everything recorded against one asset, each list newest first.
type History struct {
	Asset         *Asset              `json:"asset"`
	Repairs       []RepairEntry       `json:"repairs"`
	Assignments   []AssignmentEntry   `json:"assignments"`
	AccessoryLogs []AccessoryLogEntry `json:"accessory_logs"`
}

func newHistory(a *Asset, repairs []*repairDatamodel.Repair, assignments []*assignmentDatamodel.AssignmentWithNames, logs []*accessoryDatamodel.LogWithDetails) *History {
	h := &History{
		Asset:         a,
		Repairs:       make([]RepairEntry, 0, len(repairs)),
		Assignments:   make([]AssignmentEntry, 0, len(assignments)),
		AccessoryLogs: make([]AccessoryLogEntry, 0, len(logs)),
	}
	for _, r := range repairs {
		h.Repairs = append(h.Repairs, RepairEntry{
			ID:               r.ID,
			FaultDescription: r.FaultDescription,
			PartsReplaced:    r.PartsReplaced,
			Cost:             r.Cost,
			Date:             r.Date,
			Technician:       r.Technician,
		})
	}
	for _, as := range assignments {
		h.Assignments = append(h.Assignments, AssignmentEntry{
			ID:         as.ID,
			StaffID:    as.StaffID,
			StaffName:  as.StaffName,
			IssueDate:  as.IssueDate,
			ReturnDate: as.ReturnDate,
		})
	}
	for _, l := range logs {
		h.AccessoryLogs = append(h.AccessoryLogs, AccessoryLogEntry{
			ID:             l.ID,
			AccessoryID:    l.AccessoryID,
			AccessoryType:  l.AccessoryType,
			AccessoryBrand: l.AccessoryBrand,
			AccessoryModel: l.AccessoryModel,
			Action:         l.Action,
			Date:           l.Date,
			Technician:     l.Technician,
		})
	}
	return h
}
