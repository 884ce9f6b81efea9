package models

import (
	"strconv"
)

type Client struct {
	ClientID uint   `json:"client_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

func (c Client) RecordID() uint {
	return c.ClientID
}

func (c Client) Cells() []string {
	return []string{
		strconv.FormatUint(uint64(c.ClientID), 10),
		c.Name,
		c.Email,
	}
}
