package location

import (
	"time"

	locationDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/location"
)

// Lookup is a premise or floor. Both only drive grouping and ordering of the CCTV overview.
type Lookup struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

func FromPremise(p *locationDatamodel.Premise) *Lookup {
	return &Lookup{ID: p.ID, Name: p.Name, SortOrder: p.SortOrder, CreatedAt: p.CreatedAt}
}

func FromFloor(f *locationDatamodel.Floor) *Lookup {
	return &Lookup{ID: f.ID, Name: f.Name, SortOrder: f.SortOrder, CreatedAt: f.CreatedAt}
}
