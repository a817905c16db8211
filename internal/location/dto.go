package location

import (
	"strings"

	"github.com/frahmantamala/asset-management/internal/core/common/validation"
)

type LookupDTO struct {
	Name      string `json:"name" validate:"required,max=100"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

func (dto *LookupDTO) Validate() error {
	dto.Name = strings.TrimSpace(dto.Name)
	if err := validation.Struct(dto); err != nil {
		return err
	}
	return nil
}

type PremisesResponse struct {
	Premises []*Lookup `json:"premises"`
}

type FloorsResponse struct {
	Floors []*Lookup `json:"floors"`
}
