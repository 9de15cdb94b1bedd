package entities

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const (
	RefreshStatusOK     = "ok"
	RefreshStatusFailed = "failed"
)

// RefreshRun - журнальная запись одного пересчета витрины.
// Успешная запись вставляется в той же транзакции, что и публикация строк.
type RefreshRun struct {
	ID            uuid.UUID      `db:"id"`
	StartedAt     time.Time      `db:"started_at"`
	FinishedAt    sql.NullTime   `db:"finished_at"`
	Status        string         `db:"status"`
	RowsPublished int64          `db:"rows_published"`
	Error         sql.NullString `db:"error"`
}
