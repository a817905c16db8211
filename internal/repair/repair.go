package repair

import (
	"fmt"
	"time"

	repairDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/repair"
)

const assetStatusRepair = "Repair"

type Repair struct {
	ID                int64     `json:"id"`
	AssetID           int64     `json:"asset_id"`
	FaultDescription  string    `json:"fault_description"`
	PartsReplaced     string    `json:"parts_replaced"`
	Cost              float64   `json:"cost"`
	Date              time.Time `json:"date"`
	Technician        string    `json:"technician"`
	AssetModel        string    `json:"asset_model,omitempty"`
	AssetSerialNumber string    `json:"asset_serial_number,omitempty"`
}

func FromDataModel(r *repairDatamodel.Repair) *Repair {
	return &Repair{
		ID:               r.ID,
		AssetID:          r.AssetID,
		FaultDescription: r.FaultDescription,
		PartsReplaced:    r.PartsReplaced,
		Cost:             r.Cost,
		Date:             r.Date,
		Technician:       r.Technician,
	}
}

func FromJoined(r *repairDatamodel.RepairWithAsset) *Repair {
	out := FromDataModel(&r.Repair)
	out.AssetModel = r.AssetModel
	out.AssetSerialNumber = r.AssetSerialNumber
	return out
}

// donorNote records the asset a part was taken from.
func donorNote(parts, model, serial string) string {
	return fmt.Sprintf("%s (Taken from %s #%s)", parts, model, serial)
}
