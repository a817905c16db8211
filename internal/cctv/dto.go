package cctv

import (
	"strings"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/core/common/validation"
)

type CameraDTO struct {
	Premise        string `json:"premise" validate:"max=100"`
	Floor          string `json:"floor" validate:"max=100"`
	CameraLocation string `json:"camera_location" validate:"required,max=200"`
	SerialNumber   string `json:"serial_number" validate:"max=100"`
	Model          string `json:"model" validate:"max=200"`
	Status         string `json:"status" validate:"omitempty,oneof=Working Faulty 'In Stock' Damaged"`
	InstallDate    string `json:"install_date"`
}

func (dto *CameraDTO) Validate() error {
	dto.Premise = strings.TrimSpace(dto.Premise)
	dto.Floor = strings.TrimSpace(dto.Floor)
	dto.CameraLocation = strings.TrimSpace(dto.CameraLocation)
	dto.SerialNumber = strings.TrimSpace(dto.SerialNumber)
	dto.Model = strings.TrimSpace(dto.Model)
	if err := validation.Struct(dto); err != nil {
		return err
	}
	return nil
}

// StockCameraDTO registers a spare camera that has not been mounted anywhere.
type StockCameraDTO struct {
	SerialNumber string `json:"serial_number" validate:"max=100"`
	Model        string `json:"model" validate:"required,max=200"`
	Premise      string `json:"premise" validate:"max=100"`
}

func (dto *StockCameraDTO) Validate() error {
	dto.SerialNumber = strings.TrimSpace(dto.SerialNumber)
	dto.Model = strings.TrimSpace(dto.Model)
	dto.Premise = strings.TrimSpace(dto.Premise)
	if err := validation.Struct(dto); err != nil {
		return err
	}
	return nil
}

type StatusDTO struct {
	Status string `json:"status" validate:"required,oneof=Working Faulty 'In Stock' Damaged"`
}

func (dto StatusDTO) Validate() error {
	if err := validation.Struct(dto); err != nil {
		return err
	}
	return nil
}

type LogRepairDTO struct {
	CCTVID           int64   `json:"cctv_id" validate:"required,gt=0"`
	FaultDescription string  `json:"fault_description" validate:"required,max=1000"`
	ActionTaken      string  `json:"action_taken" validate:"max=1000"`
	Cost             float64 `json:"cost" validate:"gte=0"`
	Date             string  `json:"date"`
	Technician       string  `json:"technician" validate:"max=100"`
}

func (dto *LogRepairDTO) Validate() error {
	dto.FaultDescription = strings.TrimSpace(dto.FaultDescription)
	dto.ActionTaken = strings.TrimSpace(dto.ActionTaken)
	dto.Technician = strings.TrimSpace(dto.Technician)
	if err := validation.Struct(dto); err != nil {
		return err
	}
	return nil
}

// ReplaceDTO swaps the camera in the URL for a unit from stock.
type ReplaceDTO struct {
	NewCameraID int64  `json:"new_camera_id" validate:"required,gt=0"`
	OldStatus   string `json:"old_status" validate:"required,oneof=Damaged Faulty"`
	Date        string `json:"date"`
	Technician  string `json:"technician" validate:"max=100"`
}

func (dto *ReplaceDTO) Validate() error {
	dto.Technician = strings.TrimSpace(dto.Technician)
	if err := validation.Struct(dto); err != nil {
		return err
	}
	return nil
}

type ListFilter struct {
	Status  string
	Premise string
}

func (f ListFilter) Validate() error {
	v := validation.NewValidator()
	v.Field("status", f.Status).OneOf(internal.ErrCodeInvalidStatus, Statuses...)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// OverviewQuery selects the premise tab, the search term and the order of cameras within a
// floor.
type OverviewQuery struct {
	Premise string
	Search  string
	Sort    string
}

func (q OverviewQuery) Validate() error {
	v := validation.NewValidator()
	v.Field("sort", q.Sort).OneOf(internal.ErrCodeValidationFailed, SortModes...)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type CamerasResponse struct {
	Cameras []*Camera `json:"cameras"`
}
