package staff

import (
	"strings"

	"github.com/frahmantamala/asset-management/internal/core/common/validation"
)

type StaffDTO struct {
	EmployeeID string `json:"employee_id" validate:"required,max=50"`
	Name       string `json:"name" validate:"required,max=200"`
	Department string `json:"department" validate:"max=100"`
}

func (dto *StaffDTO) Validate() error {
	dto.EmployeeID = strings.TrimSpace(dto.EmployeeID)
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Department = strings.TrimSpace(dto.Department)
	if err := validation.Struct(dto); err != nil {
		return err
	}
	return nil
}

type StaffListResponse struct {
	Staff []*Staff `json:"staff"`
}
