package models

import (
	"time"
)

/*
Activity is one recorded delete attempt against the backend.
*/
type Activity struct {
	ID         uint      `db:"id"`
	CreatedAt  time.Time `db:"created_at"`
	Entity     string    `db:"entity"`
	RecordID   uint      `db:"record_id"`
	Outcome    string    `db:"outcome"`
	StatusCode int       `db:"status_code"`
	Message    string    `db:"message"`
}
