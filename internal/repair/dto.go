package repair

import (
	"strings"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/core/common/validation"
)

type LogRepairDTO struct {
	AssetID          int64   `json:"asset_id" validate:"required,gt=0"`
	FaultDescription string  `json:"fault_description" validate:"required,max=1000"`
	PartsReplaced    string  `json:"parts_replaced" validate:"max=500"`
	Cost             float64 `json:"cost" validate:"gte=0"`
	Date             string  `json:"date"`
	Technician       string  `json:"technician" validate:"max=100"`
	// CannibalizedFromID names the asset the replacement part was taken from.
	CannibalizedFromID *int64 `json:"cannibalized_from_id,omitempty" validate:"omitempty,gt=0"`
}

func (dto *LogRepairDTO) Validate() error {
	dto.FaultDescription = strings.TrimSpace(dto.FaultDescription)
	dto.PartsReplaced = strings.TrimSpace(dto.PartsReplaced)
	dto.Technician = strings.TrimSpace(dto.Technician)
	if err := validation.Struct(dto); err != nil {
		return err
	}
	if dto.CannibalizedFromID != nil && *dto.CannibalizedFromID == dto.AssetID {
		return internal.NewValidationFieldError("cannibalized_from_id", "a part cannot be taken from the repaired asset itself", internal.ErrCodeValidationFailed)
	}
	return nil
}

type RepairsResponse struct {
	Repairs []*Repair `json:"repairs"`
}
