package assignment

import (
	"time"

	assignmentDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assignment"
)

const (
	assetStatusAvailable = "Available"
	assetStatusIssued    = "Issued"
)

type Assignment struct {
	ID                int64      `json:"id"`
	AssetID           int64      `json:"asset_id"`
	StaffID           int64      `json:"staff_id"`
	IssueDate         time.Time  `json:"issue_date"`
	ReturnDate        *time.Time `json:"return_date,omitempty"`
	StaffName         string     `json:"staff_name,omitempty"`
	AssetModel        string     `json:"asset_model,omitempty"`
	AssetSerialNumber string     `json:"asset_serial_number,omitempty"`
	AssetType         string     `json:"asset_type,omitempty"`
}

func (a *Assignment) IsOpen() bool {
	return a.ReturnDate == nil
}

func FromDataModel(a *assignmentDatamodel.Assignment) *Assignment {
	return &Assignment{
		ID:         a.ID,
		AssetID:    a.AssetID,
		StaffID:    a.StaffID,
		IssueDate:  a.IssueDate,
		ReturnDate: a.ReturnDate,
	}
}

func FromJoined(a *assignmentDatamodel.AssignmentWithNames) *Assignment {
	out := FromDataModel(&a.Assignment)
	out.StaffName = a.StaffName
	out.AssetModel = a.AssetModel
	out.AssetSerialNumber = a.AssetSerialNumber
	out.AssetType = a.AssetType
	return out
}

// ReturnResult reports the outcome of a return. Assignment is nil when no open assignment was
// found; the asset is made Available regardless.
type ReturnResult struct {
	AssetID     int64       `json:"asset_id"`
	AssetStatus string      `json:"asset_status"`
	Assignment  *Assignment `json:"assignment,omitempty"`
}
