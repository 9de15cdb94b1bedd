package postgresql

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"

	"sla-mart/migrations"
)

// RunMigrations применяет встроенные goose-миграции.
// goose работает через database/sql, поэтому открываем отдельное
// короткоживущее соединение через stdlib-адаптер pgx.
func RunMigrations(dsn string, logger *zap.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("не удалось открыть соединение для миграций: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose: недопустимый диалект: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose: ошибка применения миграций: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("goose: не удалось получить версию схемы: %w", err)
	}
	logger.Info("Миграции применены", zap.Int64("schema_version", version))
	return nil
}
