package entities

import "time"

// CalendarDay - строка производственного календаря.
type CalendarDay struct {
	Date      time.Time `db:"calendar_date"`
	IsWorking bool      `db:"is_working"`
}
