package dashboard

import "time"

const RecentLimit = 5

const (
	typeLaptop      = "Laptop"
	typeMobilePhone = "Mobile Phone"
)

type AssetCounts struct {
	Total     int64 `json:"total"`
	Issued    int64 `json:"issued"`
	Available int64 `json:"available"`
	Repair    int64 `json:"repair"`
	Scrap     int64 `json:"scrap"`
}

func (c *AssetCounts) add(status string, n int64) {
	c.Total += n
	switch status {
	case "Issued":
		c.Issued += n
	case "Available":
		c.Available += n
	case "Repair":
		c.Repair += n
	case "Scrap":
		c.Scrap += n
	}
}

// StatusCount is one row of the assets grouped by type and status.
type StatusCount struct {
	Type   string `db:"type"`
	Status string `db:"status"`
	Total  int64  `db:"total"`
}

type RecentRepair struct {
	ID                int64     `db:"id" json:"id"`
	AssetID           int64     `db:"asset_id" json:"asset_id"`
	AssetModel        string    `db:"asset_model" json:"asset_model"`
	AssetSerialNumber string    `db:"asset_serial_number" json:"asset_serial_number"`
	FaultDescription  string    `db:"fault_description" json:"fault_description"`
	Cost              float64   `db:"cost" json:"cost"`
	Date              time.Time `db:"date" json:"date"`
	Technician        string    `db:"technician" json:"technician"`
}

type RecentAssignment struct {
	ID                int64      `db:"id" json:"id"`
	AssetID           int64      `db:"asset_id" json:"asset_id"`
	AssetModel        string     `db:"asset_model" json:"asset_model"`
	AssetSerialNumber string     `db:"asset_serial_number" json:"asset_serial_number"`
	AssetType         string     `db:"asset_type" json:"asset_type"`
	StaffID           int64      `db:"staff_id" json:"staff_id"`
	StaffName         string     `db:"staff_name" json:"staff_name"`
	IssueDate         time.Time  `db:"issue_date" json:"issue_date"`
	ReturnDate        *time.Time `db:"return_date" json:"return_date,omitempty"`
}

type Summary struct {
	Assets            AssetCounts        `json:"assets"`
	Laptops           AssetCounts        `json:"laptops"`
	MobilePhones      AssetCounts        `json:"mobile_phones"`
	FaultyCameras     int64              `json:"faulty_cameras"`
	RecentRepairs     []RecentRepair     `json:"recent_repairs"`
	RecentAssignments []RecentAssignment `json:"recent_assignments"`
}

func summarize(rows []StatusCount) (all, laptops, phones AssetCounts) {
	for _, row := range rows {
		all.add(row.Status, row.Total)
		switch row.Type {
		case typeLaptop:
			laptops.add(row.Status, row.Total)
		case typeMobilePhone:
			phones.add(row.Status, row.Total)
		}
	}
	return all, laptops, phones
}
