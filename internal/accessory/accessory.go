package accessory

import (
	"time"

	accessoryDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/accessory"
)

const (
	StatusAvailable = "Available"
	StatusInstalled = "Installed"
	StatusFaulty    = "Faulty"
)

const (
	ActionInstalled = "Installed"
	ActionRemoved   = "Removed"
)

var Types = []string{"RAM", "Storage", "HDD", "SSD", "Othe Storage", "Other Storage", "Mouse", "Keyboard", "Monitor", "Adapter", "Cable", "Other"}

type Accessory struct {
	ID                int64     `json:"id"`
	Type              string    `json:"type"`
	Brand             string    `json:"brand"`
	Model             string    `json:"model"`
	SerialNumber      string    `json:"serial_number"`
	Status            string    `json:"status"`
	AssetID           *int64    `json:"asset_id,omitempty"`
	AssetModel        *string   `json:"asset_model,omitempty"`
	AssetSerialNumber *string   `json:"asset_serial_number,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Label is the text merged into the host asset's spec fields.
func (a *Accessory) Label() string {
	return a.Model
}

func FromDataModel(a *accessoryDatamodel.Accessory) *Accessory {
	return &Accessory{
		ID:           a.ID,
		Type:         a.Type,
		Brand:        a.Brand,
		Model:        a.Model,
		SerialNumber: a.SerialNumber,
		Status:       a.Status,
		AssetID:      a.AssetID,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func FromJoined(a *accessoryDatamodel.AccessoryWithAsset) *Accessory {
	out := FromDataModel(&a.Accessory)
	out.AssetModel = a.AssetModel
	out.AssetSerialNumber = a.AssetSerialNumber
	return out
}

type LogEntry struct {
	ID                int64     `json:"id"`
	AccessoryID       int64     `json:"accessory_id"`
	AssetID           int64     `json:"asset_id"`
	Action            string    `json:"action"`
	Date              time.Time `json:"date"`
	Technician        string    `json:"technician"`
	AccessoryType     string    `json:"accessory_type,omitempty"`
	AccessoryBrand    string    `json:"accessory_brand,omitempty"`
	AccessoryModel    string    `json:"accessory_model,omitempty"`
	AssetModel        string    `json:"asset_model,omitempty"`
	AssetSerialNumber string    `json:"asset_serial_number,omitempty"`
}

func logFromDataModel(l *accessoryDatamodel.Log) LogEntry {
	return LogEntry{
		ID:          l.ID,
		AccessoryID: l.AccessoryID,
		AssetID:     l.AssetID,
		Action:      l.Action,
		Date:        l.Date,
		Technician:  l.Technician,
	}
}

func logFromJoined(l *accessoryDatamodel.LogWithDetails) LogEntry {
	entry := logFromDataModel(&l.Log)
	entry.AccessoryType = l.AccessoryType
	entry.AccessoryBrand = l.AccessoryBrand
	entry.AccessoryModel = l.AccessoryModel
	entry.AssetModel = l.AssetModel
	entry.AssetSerialNumber = l.AssetSerialNumber
	return entry
}

// Detail is one accessory with its full install/remove log.
type Detail struct {
	Accessory *Accessory `json:"accessory"`
	Logs      []LogEntry `json:"logs"`
}

// AssetSpecs is the spec snapshot of the host asset after an install or remove.
type AssetSpecs struct {
	AssetID       int64  `json:"asset_id"`
	SpecsRAM      string `json:"specs_ram"`
	SpecsStorage  string `json:"specs_storage"`
	SpecsStorage2 string `json:"specs_storage_2"`
}

type ChangeResult struct {
	Accessory *Accessory `json:"accessory"`
	Asset     AssetSpecs `json:"asset"`
	Log       LogEntry   `json:"log"`
}

// Configuration is the component view of one asset.
type Configuration struct {
	Asset     AssetSpecs   `json:"asset"`
	Installed []*Accessory `json:"installed"`
	Available []*Accessory `json:"available"`
	Logs      []LogEntry   `json:"logs"`
}
