package models

import (
	"strconv"
)

type Invoice struct {
	InvoiceID    uint    `json:"invoice_id"`
	ClientID     uint    `json:"client_id"`
	IssuedAt     string  `json:"issued_at"`
	Total        float64 `json:"total"`
	Iva          float64 `json:"iva"`
	TotalWithIva float64 `json:"total_with_iva"`
}

func (i Invoice) RecordID() uint {
	return i.InvoiceID
}

func (i Invoice) Cells() []string {
	return []string{
		strconv.FormatUint(uint64(i.InvoiceID), 10),
		strconv.FormatUint(uint64(i.ClientID), 10),
		i.IssuedAt,
		formatAmount(i.Total),
		formatAmount(i.Iva),
		formatAmount(i.TotalWithIva),
	}
}
