package models

import (
	"strconv"
)

/*
InvoiceItem is one billed line of an invoice. TaskID is null for items
that are not tied to a task.
*/
type InvoiceItem struct {
	ItemID      uint    `json:"item_id"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	InvoiceID   uint    `json:"invoice_id"`
	TaskID      *uint   `json:"task_id"`
}

func (i InvoiceItem) RecordID() uint {
	return i.ItemID
}

func (i InvoiceItem) Cells() []string {
	taskID := ""

	if i.TaskID != nil {
		taskID = strconv.FormatUint(uint64(*i.TaskID), 10)
	}

	return []string{
		strconv.FormatUint(uint64(i.ItemID), 10),
		i.Description,
		formatAmount(i.Cost),
		strconv.FormatUint(uint64(i.InvoiceID), 10),
		taskID,
	}
}
