package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sla-mart/internal/entities"
	apperrors "sla-mart/pkg/errors"
)

type RefreshRunRepositoryInterface interface {
	RecordFailure(ctx context.Context, run entities.RefreshRun) error
	GetLastRun(ctx context.Context) (*entities.RefreshRun, error)
}

type refreshRunRepository struct {
	db *pgxpool.Pool
}

func NewRefreshRunRepository(db *pgxpool.Pool) RefreshRunRepositoryInterface {
	return &refreshRunRepository{db: db}
}

// RecordFailure фиксирует неудачный пересчет. Успешные записи вставляет
// DashboardRepository.ReplaceAll в транзакции публикации.
func (r *refreshRunRepository) RecordFailure(ctx context.Context, run entities.RefreshRun) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO refresh_runs (id, started_at, finished_at, status, rows_published, error)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID, run.StartedAt, run.FinishedAt, run.Status, run.RowsPublished, run.Error,
	)
	if err != nil {
		return fmt.Errorf("ошибка записи неудачного пересчета: %w", err)
	}
	return nil
}

func (r *refreshRunRepository) GetLastRun(ctx context.Context) (*entities.RefreshRun, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Select("id", "started_at", "finished_at", "status", "rows_published", "error").
		From("refresh_runs").
		OrderBy("started_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса журнала пересчетов: %w", err)
	}

	var run entities.RefreshRun
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&run.ID, &run.StartedAt, &run.FinishedAt, &run.Status, &run.RowsPublished, &run.Error,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения журнала пересчетов: %w", err)
	}
	return &run, nil
}
