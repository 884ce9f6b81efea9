package models

import (
	"strconv"
)

type Vehicle struct {
	VehicleID    uint   `json:"vehicle_id"`
	LicensePlate string `json:"license_plate"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
}

func (v Vehicle) RecordID() uint {
	return v.VehicleID
}

func (v Vehicle) Cells() []string {
	return []string{
		strconv.FormatUint(uint64(v.VehicleID), 10),
		v.LicensePlate,
		v.Brand,
		v.Model,
		strconv.Itoa(v.Year),
	}
}
