package entities

import (
	"database/sql"
	"time"
)

// ClientEvent - одна запись журнала обращений (внешний источник, только чтение).
type ClientEvent struct {
	ID            uint64         `db:"id"`
	ClientID      uint64         `db:"client_id"`
	ManagerID     sql.NullInt64  `db:"manager_id"`
	RequestAt     time.Time      `db:"request_at"`
	ResponseAt    sql.NullTime   `db:"response_at"`
	SourceChannel string         `db:"source_channel"`
	ActionType    string         `db:"action_type"`
}

// FirstResponse - первый ответ менеджера клиенту: событие с минимальным
// response_at среди подходящих событий клиента (разрешенный канал,
// action_type = 'response'). Ровно одна запись на клиента.
type FirstResponse struct {
	EventID    uint64        `db:"id"`
	ClientID   uint64        `db:"client_id"`
	ManagerID  sql.NullInt64 `db:"manager_id"`
	RequestAt  time.Time     `db:"request_at"`
	ResponseAt time.Time     `db:"response_at"`
}

// SLARecord - результат работы калькулятора SLA для одного клиента.
// RegisteredAt - момент старта SLA-часов, всегда >= RequestAt.
type SLARecord struct {
	ClientID     uint64
	ManagerID    sql.NullInt64
	RequestAt    time.Time
	ResponseAt   time.Time
	RegisteredAt time.Time
	ElapsedHours float64
}
