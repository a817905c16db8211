package staff

import (
	"time"

	assignmentDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/assignment"
	staffDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/staff"
)

// RecentReturnsLimit bounds the returned-assignment history on a profile.
const RecentReturnsLimit = 5

type Staff struct {
	ID                int64     `json:"id"`
	EmployeeID        string    `json:"employee_id"`
	Name              string    `json:"name"`
	Department        string    `json:"department"`
	ActiveAssignments int64     `json:"active_assignments"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func FromDataModel(s *staffDatamodel.Staff) *Staff {
	return &Staff{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		Name:       s.Name,
		Department: s.Department,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

type AssignedAsset struct {
	AssignmentID int64      `json:"assignment_id"`
	AssetID      int64      `json:"asset_id"`
	Model        string     `json:"model"`
	SerialNumber string     `json:"serial_number"`
	Type         string     `json:"type"`
	IssueDate    time.Time  `json:"issue_date"`
	ReturnDate   *time.Time `json:"return_date,omitempty"`
}

type Profile struct {
	Staff            *Staff          `json:"staff"`
	ActiveAssets     []AssignedAsset `json:"active_assets"`
	RecentlyReturned []AssignedAsset `json:"recently_returned"`
}

func toAssignedAsset(a *assignmentDatamodel.AssignmentWithNames) AssignedAsset {
	return AssignedAsset{
		AssignmentID: a.ID,
		AssetID:      a.AssetID,
		Model:        a.AssetModel,
		SerialNumber: a.AssetSerialNumber,
		Type:         a.AssetType,
		IssueDate:    a.IssueDate,
		ReturnDate:   a.ReturnDate,
	}
}
