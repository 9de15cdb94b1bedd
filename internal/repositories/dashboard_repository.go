package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sla-mart/internal/entities"
	"sla-mart/pkg/constants"
)

type DashboardRepositoryInterface interface {
	ReplaceAll(ctx context.Context, run entities.RefreshRun, rows []entities.DashboardRow) error
	GetRows(ctx context.Context, filter entities.ReportFilter) ([]entities.DashboardRow, uint64, error)
	GetSummary(ctx context.Context) (*entities.DashboardSummary, error)
}

type dashboardRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDashboardRepository(db *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &dashboardRepository{db: db, logger: logger}
}

var dashboardColumns = []string{
	"client_id", "status", "source_channel",
	"request_at", "registered_at", "response_at",
	"elapsed_hours", "manager_id",
}

// ReplaceAll атомарно публикует новый набор строк витрины.
// Очистка, массовая вставка (CopyFrom) и журнальная запись пересчета
// выполняются в одной транзакции: читатели видят либо старый снимок,
// либо новый целиком. При ошибке транзакция откатывается и прежняя
// витрина остается опубликованной.
func (r *dashboardRepository) ReplaceAll(ctx context.Context, run entities.RefreshRun, rows []entities.DashboardRow) error {
	return WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM dashboard_rows`); err != nil {
			return fmt.Errorf("ошибка очистки витрины: %w", err)
		}

		copyRows := make([][]interface{}, 0, len(rows))
		for _, row := range rows {
			copyRows = append(copyRows, []interface{}{
				row.ClientID,
				row.Status,
				row.SourceChannel,
				nullableTime(row.RequestAt),
				nullableTime(row.RegisteredAt),
				nullableTime(row.ResponseAt),
				nullableFloat(row.ElapsedHours),
				nullableInt(row.ManagerID),
			})
		}

		inserted, err := tx.CopyFrom(ctx, pgx.Identifier{"dashboard_rows"}, dashboardColumns, pgx.CopyFromRows(copyRows))
		if err != nil {
			return fmt.Errorf("ошибка массовой вставки витрины: %w", err)
		}
		if inserted != int64(len(rows)) {
			return fmt.Errorf("вставлено %d строк вместо %d", inserted, len(rows))
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO refresh_runs (id, started_at, finished_at, status, rows_published, error)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			run.ID, run.StartedAt, run.FinishedAt, run.Status, run.RowsPublished, run.Error,
		); err != nil {
			return fmt.Errorf("ошибка записи журнала пересчета: %w", err)
		}

		r.logger.Info("Витрина опубликована",
			zap.String("run_id", run.ID.String()),
			zap.Int64("rows", inserted),
		)
		return nil
	})
}

func (r *dashboardRepository) GetRows(ctx context.Context, filter entities.ReportFilter) ([]entities.DashboardRow, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	baseSelect := psql.Select().From("dashboard_rows d")

	if len(filter.Statuses) > 0 {
		baseSelect = baseSelect.Where(sq.Eq{"d.status": filter.Statuses})
	}
	if len(filter.ManagerIDs) > 0 {
		baseSelect = baseSelect.Where(sq.Eq{"d.manager_id": filter.ManagerIDs})
	}
	if filter.DateFrom != nil {
		baseSelect = baseSelect.Where(sq.GtOrEq{"d.request_at": filter.DateFrom})
	}
	if filter.DateTo != nil {
		baseSelect = baseSelect.Where(sq.LtOrEq{"d.request_at": filter.DateTo})
	}

	countQuery, countArgs, err := baseSelect.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса: %w", err)
	}
	var total uint64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка выполнения COUNT-запроса: %w", err)
	}
	if total == 0 {
		return []entities.DashboardRow{}, 0, nil
	}

	mainBuilder := baseSelect.Columns(
		"d.client_id", "d.status", "d.source_channel",
		"d.request_at", "d.registered_at", "d.response_at",
		"d.elapsed_hours", "d.manager_id",
	).OrderBy("d.client_id")

	if filter.PerPage > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		mainBuilder = mainBuilder.Limit(uint64(filter.PerPage)).Offset(uint64((page - 1) * filter.PerPage))
	}

	query, args, err := mainBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса витрины: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка выполнения запроса витрины: %w", err)
	}
	defer rows.Close()

	var result []entities.DashboardRow
	for rows.Next() {
		var row entities.DashboardRow
		if err := rows.Scan(
			&row.ClientID, &row.Status, &row.SourceChannel,
			&row.RequestAt, &row.RegisteredAt, &row.ResponseAt,
			&row.ElapsedHours, &row.ManagerID,
		); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования строки витрины: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

func (r *dashboardRepository) GetSummary(ctx context.Context) (*entities.DashboardSummary, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Select(
		"COUNT(*)",
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s')", constants.StatusDone),
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s')", constants.StatusWaiting),
		"AVG(elapsed_hours)",
		"MAX(elapsed_hours)",
	).From("dashboard_rows").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса сводки: %w", err)
	}

	summary := &entities.DashboardSummary{}
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&summary.TotalClients, &summary.DoneCount, &summary.WaitingCount,
		&summary.AvgElapsedHours, &summary.MaxElapsedHours,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса сводки: %w", err)
	}
	return summary, nil
}
