package models

import (
	"strconv"
)

/*
Task is a unit of work assigned to an employee. EndDate is null until
the task is finished.
*/
type Task struct {
	TaskID      uint    `json:"task_id"`
	Description string  `json:"description"`
	EmployeeID  uint    `json:"employee_id"`
	WorkID      uint    `json:"work_id"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Status      string  `json:"status"`
}

func (t Task) RecordID() uint {
	return t.TaskID
}

func (t Task) Cells() []string {
	endDate := ""

	if t.EndDate != nil {
		endDate = *t.EndDate
	}

	return []string{
		strconv.FormatUint(uint64(t.TaskID), 10),
		t.Description,
		strconv.FormatUint(uint64(t.EmployeeID), 10),
		strconv.FormatUint(uint64(t.WorkID), 10),
		t.StartDate,
		endDate,
		t.Status,
	}
}
