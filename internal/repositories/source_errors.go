package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "sla-mart/pkg/errors"
)

// Коды ошибок PostgreSQL, означающие расхождение схемы источника.
const (
	pgUndefinedTable  = "42P01"
	pgUndefinedColumn = "42703"
)

// classifySourceErr приводит ошибку чтения источника к именованным видам:
// отсутствующая таблица/колонка - это SchemaMismatch, всё остальное
// (сеть, отказ сервера, таймаут) - SourceUnavailable.
func classifySourceErr(err error, source string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUndefinedTable || pgErr.Code == pgUndefinedColumn {
			return fmt.Errorf("%w: %s: %v", apperrors.ErrSchemaMismatch, source, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", apperrors.ErrSourceUnavailable, source, err)
}
