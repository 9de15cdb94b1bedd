package entities

import (
	"database/sql"
	"time"
)

// DashboardRow - строка витрины dashboard_rows: по одной на каждого
// клиента реестра. Для клиентов без ответа (status = waiting) расчетные
// поля пустые.
type DashboardRow struct {
	ClientID      uint64          `db:"client_id"`
	Status        string          `db:"status"`
	SourceChannel string          `db:"source_channel"`
	RequestAt     sql.NullTime    `db:"request_at"`
	RegisteredAt  sql.NullTime    `db:"registered_at"`
	ResponseAt    sql.NullTime    `db:"response_at"`
	ElapsedHours  sql.NullFloat64 `db:"elapsed_hours"`
	ManagerID     sql.NullInt64   `db:"manager_id"`
}

// DashboardSummary - сводка по витрине для шапки дашборда.
type DashboardSummary struct {
	TotalClients    int64           `db:"total_clients"`
	DoneCount       int64           `db:"done_count"`
	WaitingCount    int64           `db:"waiting_count"`
	AvgElapsedHours sql.NullFloat64 `db:"avg_elapsed_hours"`
	MaxElapsedHours sql.NullFloat64 `db:"max_elapsed_hours"`
}

// ReportFilter - фильтры выборки строк витрины (API и выгрузка в Excel).
type ReportFilter struct {
	Statuses   []string
	ManagerIDs []uint64
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	PerPage    int
}

// IsZero сообщает, что фильтры не заданы и выборку можно отдать из кеша.
func (f ReportFilter) IsZero() bool {
	return len(f.Statuses) == 0 && len(f.ManagerIDs) == 0 &&
		f.DateFrom == nil && f.DateTo == nil && f.Page <= 1 && f.PerPage == 0
}
