package reservation

import (
	"time"
)

// Record is a single cubicle reservation joined with its cubicle and user
// metadata. Records are read-only input to the notification core; Date is
// meaningful at calendar-day granularity only.
type Record struct {
	UserID         string
	UserEmail      string
	UserName       string
	CubicleSerial  string
	CubicleSection string
	Date           time.Time
}

// Day returns the record's date truncated to its calendar day.
func (r Record) Day() string {
	return r.Date.Format("2006-01-02")
}
