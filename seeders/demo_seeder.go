package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDemoData наполняет источники (clients, client_events) демо-набором
// для локальной разработки. На бою не используется: источники там
// наполняет внешняя система.
func SeedDemoData(db *pgxpool.Pool) {
	log.Println("  - Наполнение таблиц 'clients' и 'client_events' демо-данными...")
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	if err != nil {
		log.Fatalf("Ошибка открытия транзакции демо-данных: %v", err)
	}
	defer tx.Rollback(ctx)

	clientQuery := `INSERT INTO clients (id, source_channel) VALUES ($1, $2)
					ON CONFLICT (id) DO NOTHING;`
	for _, c := range demoClientsData {
		if _, err := tx.Exec(ctx, clientQuery, c.ID, c.Channel); err != nil {
			log.Fatalf("Ошибка вставки клиента %d: %v", c.ID, err)
		}
	}

	eventQuery := `INSERT INTO client_events (client_id, manager_id, request_at, response_at, source_channel, action_type)
				   VALUES ($1, $2, $3, $4, $5, $6);`
	for _, e := range demoEventsData {
		var managerID interface{}
		var responseAt interface{}
		if !e.NoResponse {
			managerID = e.ManagerID
			responseAt = e.ResponseAt
		}
		if _, err := tx.Exec(ctx, eventQuery, e.ClientID, managerID, e.RequestAt, responseAt, e.Channel, e.ActionType); err != nil {
			log.Fatalf("Ошибка вставки события клиента %d: %v", e.ClientID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Ошибка фиксации транзакции демо-данных: %v", err)
	}
	log.Printf("    - Клиентов: %d, событий: %d", len(demoClientsData), len(demoEventsData))
}
