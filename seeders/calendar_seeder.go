package seeders

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCalendar наполняет производственный календарь на заданный период:
// суббота и воскресенье - нерабочие, плюс праздники из holidaysData.
// Существующие даты не трогаются - ручные правки календаря сохраняются.
func SeedCalendar(db *pgxpool.Pool, fromYear, toYear int) {
	log.Printf("  - Наполнение таблицы 'work_calendar' (%d-%d)...", fromYear, toYear)
	ctx := context.Background()

	holidays := make(map[string]bool, len(holidaysData))
	for _, h := range holidaysData {
		holidays[h] = true
	}

	query := `INSERT INTO work_calendar (calendar_date, is_working) VALUES ($1, $2)
			  ON CONFLICT (calendar_date) DO NOTHING;`

	tx, err := db.Begin(ctx)
	if err != nil {
		log.Fatalf("Ошибка открытия транзакции календаря: %v", err)
	}
	defer tx.Rollback(ctx)

	from := time.Date(fromYear, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(toYear, 12, 31, 0, 0, 0, 0, time.UTC)

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		working := d.Weekday() != time.Saturday && d.Weekday() != time.Sunday
		if holidays[d.Format("2006-01-02")] {
			working = false
		}
		if _, err := tx.Exec(ctx, query, d, working); err != nil {
			log.Fatalf("Ошибка вставки даты календаря %s: %v", d.Format("2006-01-02"), err)
		}
		count++
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Ошибка фиксации транзакции календаря: %v", err)
	}
	log.Printf("    - Добавлено дат: %d", count)
}
