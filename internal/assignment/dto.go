package assignment

import (
	"github.com/frahmantamala/asset-management/internal/core/common/validation"
)

type IssueDTO struct {
	StaffID   int64  `json:"staff_id" validate:"required,gt=0"`
	IssueDate string `json:"issue_date" validate:"omitempty"`
}

func (dto IssueDTO) Validate() error {
	if err := validation.Struct(dto); err != nil {
		return err
	}
	return nil
}

// ReturnDTO closes AssignmentID when given, otherwise the most recent open assignment.
type ReturnDTO struct {
	AssignmentID *int64 `json:"assignment_id,omitempty" validate:"omitempty,gt=0"`
	ReturnDate   string `json:"return_date" validate:"omitempty"`
}

func (dto ReturnDTO) Validate() error {
	if err := validation.Struct(dto); err != nil {
		return err
	}
	return nil
}
