package cctv

import (
	"sort"
	"strings"
	"time"
)

const (
	SortLocation      = "location"
	SortModel         = "model"
	SortSerial        = "serial"
	SortStatusWorking = "status-working"
	SortStatusFaulty  = "status-faulty"
	SortDateNewest    = "date-newest"
	SortDateOldest    = "date-oldest"
)

var SortModes = []string{SortLocation, SortModel, SortSerial, SortStatusWorking, SortStatusFaulty, SortDateNewest, SortDateOldest}

// unmappedFloorOrder places floors missing from the lookup after every configured floor.
const unmappedFloorOrder = 999

// FloorOrder is one row of the floor lookup.
type FloorOrder struct {
	Name      string
	SortOrder int
}

type FloorGroup struct {
	Floor   string    `json:"floor"`
	Cameras []*Camera `json:"cameras"`
}

// Overview is the CCTV inventory as seen from one premise. Stock and Scrap span every premise.
type Overview struct {
	Premise  string       `json:"premise"`
	Premises []string     `json:"premises"`
	Stock    []*Camera    `json:"stock"`
	Scrap    []*Camera    `json:"scrap"`
	Floors   []FloorGroup `json:"floors"`
}

// BuildOverview partitions cameras into stock, scrap and the active cameras of premise, then
// groups the active ones by floor. Cameras without a premise belong to defaultPremise.
func BuildOverview(cameras []*Camera, floors []FloorOrder, premise, defaultPremise, search, sortMode string) *Overview {
	if premise == "" {
		premise = defaultPremise
	}
	if sortMode == "" {
		sortMode = SortLocation
	}

	out := &Overview{
		Premise: premise,
		Stock:   []*Camera{},
		Scrap:   []*Camera{},
		Floors:  []FloorGroup{},
	}

	grouped := make(map[string][]*Camera)
	term := strings.ToLower(strings.TrimSpace(search))
	for _, c := range cameras {
		if !matches(c, term) {
			continue
		}
		switch c.Status {
		case StatusInStock:
			out.Stock = append(out.Stock, c)
		case StatusDamaged:
			out.Scrap = append(out.Scrap, c)
		default:
			home := c.Premise
			if home == "" {
				home = defaultPremise
			}
			if home != premise {
				continue
			}
			floor := c.Floor
			if floor == "" {
				floor = UnassignedFloor
			}
			grouped[floor] = append(grouped[floor], c)
		}
	}

	for _, name := range sortFloors(grouped, floors) {
		group := grouped[name]
		sortCameras(group, sortMode)
		out.Floors = append(out.Floors, FloorGroup{Floor: name, Cameras: group})
	}
	return out
}

func matches(c *Camera, term string) bool {
	if term == "" {
		return true
	}
	for _, field := range []string{c.CameraLocation, c.Model, c.SerialNumber, c.Status, c.Floor} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func sortFloors(grouped map[string][]*Camera, floors []FloorOrder) []string {
	order := make(map[string]int, len(floors))
	for _, f := range floors {
		order[f.Name] = f.SortOrder
	}
	rank := func(name string) int {
		if n, ok := order[name]; ok {
			return n
		}
		return unmappedFloorOrder
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := rank(names[i]), rank(names[j])
		if ri != rj {
			return ri < rj
		}
		return lessFold(names[i], names[j])
	})
	return names
}

func sortCameras(cameras []*Camera, mode string) {
	var less func(a, b *Camera) bool
	switch mode {
	case SortModel:
		less = func(a, b *Camera) bool { return lessFold(a.Model, b.Model) }
	case SortSerial:
		less = func(a, b *Camera) bool { return lessFold(a.SerialNumber, b.SerialNumber) }
	case SortStatusWorking:
		less = func(a, b *Camera) bool { return a.Status == StatusWorking && b.Status != StatusWorking }
	case SortStatusFaulty:
		less = func(a, b *Camera) bool { return a.Status == StatusFaulty && b.Status != StatusFaulty }
	case SortDateNewest:
		less = func(a, b *Camera) bool { return installedAt(a).After(installedAt(b)) }
	case SortDateOldest:
		less = func(a, b *Camera) bool { return installedAt(a).Before(installedAt(b)) }
	default:
		less = func(a, b *Camera) bool { return lessFold(a.CameraLocation, b.CameraLocation) }
	}
	sort.SliceStable(cameras, func(i, j int) bool { return less(cameras[i], cameras[j]) })
}

// installedAt treats a missing install date as the Unix epoch.
func installedAt(c *Camera) time.Time {
	if c.InstallDate == nil {
		return time.Unix(0, 0).UTC()
	}
	return *c.InstallDate
}

func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
