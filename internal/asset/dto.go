package asset

import (
	"strings"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/core/common/validation"
)

type CreateAssetDTO struct {
	SerialNumber   string `json:"serial_number" validate:"required,max=100"`
	Model          string `json:"model" validate:"required,max=200"`
	Type           string `json:"type" validate:"required,oneof=Laptop Desktop 'Mobile Phone' Monitor Printer Networking Peripheral"`
	Status         string `json:"status" validate:"omitempty,oneof=Available Repair Scrap"`
	SpecsProcessor string `json:"specs_processor" validate:"max=200"`
	SpecsRAM       string `json:"specs_ram" validate:"max=200"`
	SpecsStorage   string `json:"specs_storage" validate:"max=200"`
	SpecsStorage2  string `json:"specs_storage_2" validate:"max=200"`
	SpecsOS        string `json:"specs_os" validate:"max=200"`
}

func (dto *CreateAssetDTO) Validate() error {
	dto.SerialNumber = strings.TrimSpace(dto.SerialNumber)
	dto.Model = strings.TrimSpace(dto.Model)
	if err := validation.Struct(dto); err != nil {
		return err
	}
	return nil
}

// UpdateAssetDTO replaces every editable field. Status may be Issued only when the asset is
// already Issued; issuing goes through the assignment workflow.
type UpdateAssetDTO struct {
	SerialNumber   string `json:"serial_number" validate:"required,max=100"`
	Model          string `json:"model" validate:"required,max=200"`
	Type           string `json:"type" validate:"required,oneof=Laptop Desktop 'Mobile Phone' Monitor Printer Networking Peripheral"`
	Status         string `json:"status" validate:"required,oneof=Available Issued Repair Scrap"`
	SpecsProcessor string `json:"specs_processor" validate:"max=200"`
	SpecsRAM       string `json:"specs_ram" validate:"max=200"`
	SpecsStorage   string `json:"specs_storage" validate:"max=200"`
	SpecsStorage2  string `json:"specs_storage_2" validate:"max=200"`
	SpecsOS        string `json:"specs_os" validate:"max=200"`
}

func (dto *UpdateAssetDTO) Validate() error {
	dto.SerialNumber = strings.TrimSpace(dto.SerialNumber)
	dto.Model = strings.TrimSpace(dto.Model)
	if err := validation.Struct(dto); err != nil {
		return err
	}
	return nil
}

type ListFilter struct {
	Status string
	Type   string
	Search string
}

func (f ListFilter) Validate() error {
	v := validation.NewValidator()
	v.Field("status", f.Status).OneOf(internal.ErrCodeInvalidStatus, Statuses...)
	v.Field("type", f.Type).OneOf(internal.ErrCodeInvalidType, Types...)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type AssetsResponse struct {
	Assets []*Asset `json:"assets"`
}
