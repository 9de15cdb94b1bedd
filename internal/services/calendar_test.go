package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sla-mart/internal/entities"
	apperrors "sla-mart/pkg/errors"
)

func TestMapCalendar_IsWorkingAndKnown(t *testing.T) {
	cal := NewMapCalendar([]entities.CalendarDay{
		{Date: date(2026, time.February, 9, 0, 0), IsWorking: true},
		{Date: date(2026, time.February, 14, 0, 0), IsWorking: false},
	})

	assert.True(t, cal.IsWorking(date(2026, time.February, 9, 13, 45)))
	assert.False(t, cal.IsWorking(date(2026, time.February, 14, 10, 0)))

	assert.True(t, cal.Known(date(2026, time.February, 14, 0, 0)))
	assert.False(t, cal.Known(date(2026, time.February, 15, 0, 0)))
	// Неизвестная дата трактуется как нерабочая.
	assert.False(t, cal.IsWorking(date(2026, time.February, 15, 0, 0)))
}

func TestMapCalendar_NextWorkingAfter_SkipsNonWorking(t *testing.T) {
	cal := NewMapCalendar([]entities.CalendarDay{
		{Date: date(2026, time.February, 6, 0, 0), IsWorking: true},
		{Date: date(2026, time.February, 7, 0, 0), IsWorking: false},
		{Date: date(2026, time.February, 8, 0, 0), IsWorking: false},
		{Date: date(2026, time.February, 9, 0, 0), IsWorking: true},
	})

	next, err := cal.NextWorkingAfter(date(2026, time.February, 6, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.February, 9, 0, 0), next)
}

func TestMapCalendar_NextWorkingAfter_StrictlyAfter(t *testing.T) {
	// Сама дата рабочая, но искать нужно строго после нее.
	cal := NewMapCalendar([]entities.CalendarDay{
		{Date: date(2026, time.February, 9, 0, 0), IsWorking: true},
		{Date: date(2026, time.February, 10, 0, 0), IsWorking: true},
	})

	next, err := cal.NextWorkingAfter(date(2026, time.February, 9, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.February, 10, 0, 0), next)
}

func TestMapCalendar_NextWorkingAfter_Exhausted(t *testing.T) {
	cal := NewMapCalendar([]entities.CalendarDay{
		{Date: date(2026, time.February, 27, 0, 0), IsWorking: true},
		{Date: date(2026, time.February, 28, 0, 0), IsWorking: false},
	})

	_, err := cal.NextWorkingAfter(date(2026, time.February, 27, 0, 0))
	assert.ErrorIs(t, err, apperrors.ErrCalendarExhausted)
}

func TestMapCalendar_Empty(t *testing.T) {
	cal := NewMapCalendar(nil)

	assert.False(t, cal.IsWorking(date(2026, time.February, 9, 0, 0)))
	_, err := cal.NextWorkingAfter(date(2026, time.February, 9, 0, 0))
	assert.ErrorIs(t, err, apperrors.ErrCalendarExhausted)
}
