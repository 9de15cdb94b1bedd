package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"sla-mart/internal/entities"
)

type CalendarRepositoryInterface interface {
	GetRange(ctx context.Context, from, to time.Time) ([]entities.CalendarDay, error)
}

type calendarRepository struct {
	db *pgxpool.Pool
}

func NewCalendarRepository(db *pgxpool.Pool) CalendarRepositoryInterface {
	return &calendarRepository{db: db}
}

// GetRange читает срез производственного календаря [from, to] включительно.
// Отсутствующие даты репозиторий не достраивает - пропуск в календаре
// интерпретируется выше как нерабочий день.
func (r *calendarRepository) GetRange(ctx context.Context, from, to time.Time) ([]entities.CalendarDay, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Select("calendar_date", "is_working").
		From("work_calendar").
		Where(sq.GtOrEq{"calendar_date": from}).
		Where(sq.LtOrEq{"calendar_date": to}).
		OrderBy("calendar_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса календаря: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, classifySourceErr(err, "work_calendar")
	}
	defer rows.Close()

	var days []entities.CalendarDay
	for rows.Next() {
		var d entities.CalendarDay
		if err := rows.Scan(&d.Date, &d.IsWorking); err != nil {
			return nil, fmt.Errorf("ошибка сканирования дня календаря: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, classifySourceErr(err, "work_calendar")
	}

	return days, nil
}
