package services

import (
	"math"
	"time"

	"go.uber.org/zap"

	"sla-mart/internal/entities"
	"sla-mart/pkg/constants"
)

// SLACalculator вычисляет момент старта SLA-часов (registered_at) по
// времени обращения и производственному календарю.
//
// Правила, в порядке приоритета:
//  1. Нерабочий день ИЛИ рабочая пятница после 20:00 - перенос на
//     ближайший рабочий день (может перепрыгнуть выходные) на 09:00.
//  2. Рабочий день до 09:00 - тот же день, 09:00.
//  3. Рабочий день (не пятница) после 20:00 - следующий календарный
//     день, 09:00. Именно календарный: так устроен исходный регламент,
//     попадание на нерабочий день логируется предупреждением.
//  4. Иначе обращение уже внутри рабочего окна - время не меняется.
type SLACalculator struct {
	calendar WorkingCalendar
	logger   *zap.Logger
}

func NewSLACalculator(calendar WorkingCalendar, logger *zap.Logger) *SLACalculator {
	return &SLACalculator{calendar: calendar, logger: logger}
}

// RegistrationTime возвращает момент старта SLA-часов для обращения.
// Всегда registered_at >= requestAt.
func (c *SLACalculator) RegistrationTime(requestAt time.Time) (time.Time, error) {
	day := midnight(requestAt)
	opening := day.Add(time.Hour * constants.WorkdayStartHour)
	cutoff := day.Add(time.Hour * constants.EveningCutoffHour)

	if !c.calendar.Known(day) {
		// Пропуск в календаре - не ошибка: дата трактуется как нерабочая.
		c.logger.Warn("Дата отсутствует в производственном календаре, считается нерабочей",
			zap.String("date", dateKey(day)),
		)
	}

	working := c.calendar.IsWorking(day)
	isFriday := requestAt.Weekday() == time.Friday
	afterCutoff := requestAt.After(cutoff)

	switch {
	case !working || (isFriday && afterCutoff):
		next, err := c.calendar.NextWorkingAfter(day)
		if err != nil {
			return time.Time{}, err
		}
		return next.Add(time.Hour * constants.WorkdayStartHour), nil

	case requestAt.Before(opening):
		return opening, nil

	case !isFriday && afterCutoff:
		rolled := day.AddDate(0, 0, 1)
		if !c.calendar.IsWorking(rolled) {
			c.logger.Warn("Вечернее обращение перенесено на нерабочий календарный день",
				zap.String("request_date", dateKey(day)),
				zap.String("rolled_to", dateKey(rolled)),
			)
		}
		return rolled.Add(time.Hour * constants.WorkdayStartHour), nil

	default:
		return requestAt, nil
	}
}

// ElapsedHours - длительность обработки в часах от старта SLA-часов до
// ответа, округленная до двух знаков.
func (c *SLACalculator) ElapsedHours(registeredAt, responseAt time.Time) float64 {
	hours := responseAt.Sub(registeredAt).Seconds() / 3600
	return math.Round(hours*100) / 100
}

// Calculate собирает SLA-запись по первому ответу менеджера.
func (c *SLACalculator) Calculate(fr entities.FirstResponse) (entities.SLARecord, error) {
	registeredAt, err := c.RegistrationTime(fr.RequestAt)
	if err != nil {
		return entities.SLARecord{}, err
	}

	return entities.SLARecord{
		ClientID:     fr.ClientID,
		ManagerID:    fr.ManagerID,
		RequestAt:    fr.RequestAt,
		ResponseAt:   fr.ResponseAt,
		RegisteredAt: registeredAt,
		ElapsedHours: c.ElapsedHours(registeredAt, fr.ResponseAt),
	}, nil
}
