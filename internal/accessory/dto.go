package accessory

import (
	"strings"

	"github.com/frahmantamala/asset-management/internal/core/common/validation"
)

// CreateAccessoryDTO registers stock. Installing goes through Install, so new accessories are
// Available or Faulty.
type CreateAccessoryDTO struct {
	Type         string `json:"type" validate:"required,oneof=RAM Storage HDD SSD 'Othe Storage' 'Other Storage' Mouse Keyboard Monitor Adapter Cable Other"`
	Brand        string `json:"brand" validate:"max=100"`
	Model        string `json:"model" validate:"required,max=200"`
	SerialNumber string `json:"serial_number" validate:"max=100"`
	Status       string `json:"status" validate:"omitempty,oneof=Available Faulty"`
}

func (dto *CreateAccessoryDTO) Validate() error {
	dto.Brand = strings.TrimSpace(dto.Brand)
	dto.Model = strings.TrimSpace(dto.Model)
	dto.SerialNumber = strings.TrimSpace(dto.SerialNumber)
	if err := validation.Struct(dto); err != nil {
		return err
	}
	return nil
}

type UpdateAccessoryDTO struct {
	Type         string `json:"type" validate:"required,oneof=RAM Storage HDD SSD 'Othe Storage' 'Other Storage' Mouse Keyboard Monitor Adapter Cable Other"`
	Brand        string `json:"brand" validate:"max=100"`
	Model        string `json:"model" validate:"required,max=200"`
	SerialNumber string `json:"serial_number" validate:"max=100"`
	Status       string `json:"status" validate:"required,oneof=Available Installed Faulty"`
}

func (dto *UpdateAccessoryDTO) Validate() error {
	dto.Brand = strings.TrimSpace(dto.Brand)
	dto.Model = strings.TrimSpace(dto.Model)
	dto.SerialNumber = strings.TrimSpace(dto.SerialNumber)
	if err := validation.Struct(dto); err != nil {
		return err
	}
	return nil
}

// ChangeDTO names the host asset for Install and Remove.
type ChangeDTO struct {
	AssetID int64 `json:"asset_id" validate:"required,gt=0"`
}

func (dto ChangeDTO) Validate() error {
	if err := validation.Struct(dto); err != nil {
		return err
	}
	return nil
}

type ListFilter struct {
	Status  string
	Type    string
	AssetID *int64
}

type AccessoriesResponse struct {
	Accessories []*Accessory `json:"accessories"`
}
