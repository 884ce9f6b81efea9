package models

import (
	"strconv"
)

/*
Work is a repair job performed on a vehicle.
*/
type Work struct {
	WorkID      uint    `json:"work_id"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
}

func (w Work) RecordID() uint {
	return w.WorkID
}

func (w Work) Cells() []string {
	return []string{
		strconv.FormatUint(uint64(w.WorkID), 10),
		w.Description,
		formatAmount(w.Cost),
	}
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
