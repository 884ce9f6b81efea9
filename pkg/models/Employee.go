package models

import (
	"strconv"
)

type Employee struct {
	EmployeeID uint   `json:"employee_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}

func (e Employee) RecordID() uint {
	return e.EmployeeID
}

func (e Employee) Cells() []string {
	return []string{
		strconv.FormatUint(uint64(e.EmployeeID), 10),
		e.Name,
		e.Email,
		e.Role,
	}
}
