package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"sla-mart/internal/entities"
)

type RosterRepositoryInterface interface {
	GetClients(ctx context.Context, channels []string) ([]entities.Client, error)
}

type rosterRepository struct {
	db *pgxpool.Pool
}

func NewRosterRepository(db *pgxpool.Pool) RosterRepositoryInterface {
	return &rosterRepository{db: db}
}

// GetClients возвращает реестр клиентов разрешенных каналов.
// Витрина строится по одной строке на каждого клиента из этого списка.
func (r *rosterRepository) GetClients(ctx context.Context, channels []string) ([]entities.Client, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query, args, err := psql.Select("id", "source_channel").
		From("clients").
		Where(sq.Eq{"source_channel": channels}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса реестра клиентов: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, classifySourceErr(err, "clients")
	}
	defer rows.Close()

	var clients []entities.Client
	for rows.Next() {
		var c entities.Client
		if err := rows.Scan(&c.ID, &c.SourceChannel); err != nil {
			return nil, fmt.Errorf("ошибка сканирования клиента: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classifySourceErr(err, "clients")
	}

	return clients, nil
}
