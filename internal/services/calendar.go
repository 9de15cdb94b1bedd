package services

import (
	"time"

	"sla-mart/internal/entities"
	apperrors "sla-mart/pkg/errors"
)

// WorkingCalendar - производственный календарь, независимый от хранилища.
// Known сообщает, есть ли дата в календаре вообще: пропущенная дата
// считается нерабочей, но вызывающая сторона может залогировать пропуск.
type WorkingCalendar interface {
	IsWorking(date time.Time) bool
	Known(date time.Time) bool
	NextWorkingAfter(date time.Time) (time.Time, error)
}

// MapCalendar - календарь в памяти поверх загруженного среза work_calendar.
// Используется и в бою (срез загружается один раз на пересчет), и в тестах.
type MapCalendar struct {
	days    map[string]bool
	maxDate time.Time
}

func NewMapCalendar(entries []entities.CalendarDay) *MapCalendar {
	c := &MapCalendar{days: make(map[string]bool, len(entries))}
	for _, e := range entries {
		c.days[dateKey(e.Date)] = e.IsWorking
		day := midnight(e.Date)
		if day.After(c.maxDate) {
			c.maxDate = day
		}
	}
	return c
}

func (c *MapCalendar) IsWorking(date time.Time) bool {
	return c.days[dateKey(date)]
}

func (c *MapCalendar) Known(date time.Time) bool {
	_, ok := c.days[dateKey(date)]
	return ok
}

// NextWorkingAfter возвращает ближайшую рабочую дату строго после date.
// Если календарь исчерпан раньше - ErrCalendarExhausted: молча вернуть
// нулевую дату нельзя, витрина с фиктивным стартом SLA хуже, чем отказ.
func (c *MapCalendar) NextWorkingAfter(date time.Time) (time.Time, error) {
	for d := midnight(date).AddDate(0, 0, 1); !d.After(c.maxDate); d = d.AddDate(0, 0, 1) {
		if c.days[dateKey(d)] {
			return d, nil
		}
	}
	return time.Time{}, apperrors.ErrCalendarExhausted
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
