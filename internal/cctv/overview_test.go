package cctv_test

import (
	"time"

	"github.com/frahmantamala/asset-management/internal/cctv"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BuildOverview", func() {
	camera := func(id int64, premise, floor, location, status string) *cctv.Camera {
		return &cctv.Camera{ID: id, Premise: premise, Floor: floor, CameraLocation: location, Status: status}
	}

	floorNames := func(o *cctv.Overview) []string {
		names := make([]string, 0, len(o.Floors))
		for _, g := range o.Floors {
			names = append(names, g.Floor)
		}
		return names
	}

	locations := func(cameras []*cctv.Camera) []string {
		out := make([]string, 0, len(cameras))
		for _, c := range cameras {
			out = append(out, c.CameraLocation)
		}
		return out
	}

	It("should order floors by sort order and put unmapped floors last", func() {
		cameras := []*cctv.Camera{
			camera(1, "Main Premise", "C", "Roof", "Working"),
			camera(2, "Main Premise", "A", "Hall", "Working"),
			camera(3, "Main Premise", "B", "Lobby", "Working"),
		}
		floors := []cctv.FloorOrder{{Name: "A", SortOrder: 2}, {Name: "B", SortOrder: 1}}

		o := cctv.BuildOverview(cameras, floors, "Main Premise", "Main Premise", "", "")
		Expect(floorNames(o)).To(Equal([]string{"B", "A", "C"}))
	})

	It("should partition stock, scrap and active cameras", func() {
		cameras := []*cctv.Camera{
			camera(1, "Main Premise", "1st", "Lobby", "Working"),
			camera(2, "Warehouse", "1st", "Dock", "Faulty"),
			camera(3, "Warehouse", "Unassigned", "Storage", "In Stock"),
			camera(4, "Main Premise", "Unassigned", "Lobby (Removed)", "Damaged"),
			camera(5, "", "", "Gate", "Faulty"),
		}

		o := cctv.BuildOverview(cameras, nil, "", "Main Premise", "", "")
		Expect(o.Premise).To(Equal("Main Premise"))
		Expect(locations(o.Stock)).To(Equal([]string{"Storage"}))
		Expect(locations(o.Scrap)).To(Equal([]string{"Lobby (Removed)"}))
		Expect(floorNames(o)).To(Equal([]string{"1st", "Unassigned"}))
		Expect(locations(o.Floors[1].Cameras)).To(Equal([]string{"Gate"}))

		o = cctv.BuildOverview(cameras, nil, "Warehouse", "Main Premise", "", "")
		Expect(floorNames(o)).To(Equal([]string{"1st"}))
		Expect(locations(o.Floors[0].Cameras)).To(Equal([]string{"Dock"}))
		Expect(o.Stock).To(HaveLen(1))
	})

	It("should apply the search to every partition", func() {
		cameras := []*cctv.Camera{
			camera(1, "Main Premise", "1st", "Lobby", "Working"),
			camera(2, "Main Premise", "1st", "Parking", "Working"),
			camera(3, "Main Premise", "Unassigned", "Storage", "In Stock"),
			camera(4, "Main Premise", "Unassigned", "Lobby (Removed)", "Damaged"),
		}

		o := cctv.BuildOverview(cameras, nil, "Main Premise", "Main Premise", "LOBBY", "")
		Expect(o.Stock).To(BeEmpty())
		Expect(o.Scrap).To(HaveLen(1))
		Expect(locations(o.Floors[0].Cameras)).To(Equal([]string{"Lobby"}))
	})

	Describe("sort modes", func() {
		var cameras []*cctv.Camera

		BeforeEach(func() {
			early := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
			late := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			cameras = []*cctv.Camera{
				{ID: 1, Floor: "1st", CameraLocation: "lobby", Model: "Dahua", SerialNumber: "S3", Status: "Faulty", InstallDate: &late},
				{ID: 2, Floor: "1st", CameraLocation: "Corridor", Model: "axis", SerialNumber: "S1", Status: "Working"},
				{ID: 3, Floor: "1st", CameraLocation: "Atrium", Model: "Hikvision", SerialNumber: "S2", Status: "Working", InstallDate: &early},
			}
		})

		sorted := func(mode string) []int64 {
			o := cctv.BuildOverview(cameras, nil, "Main Premise", "Main Premise", "", mode)
			ids := []int64{}
			for _, c := range o.Floors[0].Cameras {
				ids = append(ids, c.ID)
			}
			return ids
		}

		It("should sort by location case-insensitively by default", func() {
			Expect(sorted("")).To(Equal([]int64{3, 2, 1}))
		})

		It("should sort by model and serial", func() {
			Expect(sorted(cctv.SortModel)).To(Equal([]int64{2, 1, 3}))
			Expect(sorted(cctv.SortSerial)).To(Equal([]int64{2, 3, 1}))
		})

		It("should put matching statuses first", func() {
			Expect(sorted(cctv.SortStatusWorking)).To(Equal([]int64{2, 3, 1}))
			Expect(sorted(cctv.SortStatusFaulty)).To(Equal([]int64{1, 2, 3}))
		})

		It("should sort by install date with missing dates as the epoch", func() {
			Expect(sorted(cctv.SortDateOldest)).To(Equal([]int64{2, 3, 1}))
			Expect(sorted(cctv.SortDateNewest)).To(Equal([]int64{1, 3, 2}))
		})
	})
})
