package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sla-mart/internal/entities"
	"sla-mart/pkg/constants"
)

type EventRepositoryInterface interface {
	GetFirstResponses(ctx context.Context, channels []string) ([]entities.FirstResponse, error)
}

type eventRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewEventRepository(db *pgxpool.Pool, logger *zap.Logger) EventRepositoryInterface {
	return &eventRepository{db: db, logger: logger}
}

// GetFirstResponses возвращает первый ответ менеджера по каждому клиенту.
// DISTINCT ON + сортировка (client_id, response_at, id) дает ровно одну
// строку на клиента; ничья по response_at детерминированно решается
// наименьшим id события.
func (r *eventRepository) GetFirstResponses(ctx context.Context, channels []string) ([]entities.FirstResponse, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	builder := psql.Select(
		"e.id",
		"e.client_id",
		"e.manager_id",
		"e.request_at",
		"e.response_at",
	).
		Options("DISTINCT ON (e.client_id)").
		From("client_events e").
		Where(sq.Eq{"e.source_channel": channels}).
		Where(sq.Eq{"e.action_type": constants.ActionTypeResponse}).
		Where("e.response_at IS NOT NULL").
		OrderBy("e.client_id", "e.response_at ASC", "e.id ASC")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса первых ответов: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, classifySourceErr(err, "client_events")
	}
	defer rows.Close()

	var result []entities.FirstResponse
	for rows.Next() {
		var fr entities.FirstResponse
		if err := rows.Scan(&fr.EventID, &fr.ClientID, &fr.ManagerID, &fr.RequestAt, &fr.ResponseAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования первого ответа: %w", err)
		}
		result = append(result, fr)
	}
	if err := rows.Err(); err != nil {
		return nil, classifySourceErr(err, "client_events")
	}

	return result, nil
}
