package seeders

import "time"

// Праздничные даты, нерабочие независимо от дня недели.
// Формат: "2006-01-02". Список под производственный календарь РФ.
var holidaysData = []string{
	"2026-01-01", "2026-01-02", "2026-01-05", "2026-01-06", "2026-01-07", "2026-01-08",
	"2026-02-23",
	"2026-03-09",
	"2026-05-01", "2026-05-11",
	"2026-06-12",
	"2026-11-04",
	"2026-12-31",
}

// Демо-клиенты для локальной разработки.
var demoClientsData = []struct {
	ID      uint64
	Channel string
}{
	{ID: 101, Channel: "call"},
	{ID: 102, Channel: "chat"},
	{ID: 103, Channel: "email"},
	{ID: 104, Channel: "call"},
	{ID: 105, Channel: "chat"},
	// Клиент из канала вне белого списка: в витрину попадать не должен.
	{ID: 106, Channel: "telegram"},
}

// Демо-события журнала обращений. Подобраны так, чтобы проявить все
// правила переноса начала SLA:
//   - клиент 101: пятница вечером -> перенос на понедельник 09:00;
//   - клиент 102: раннее утро рабочего дня -> 09:00 того же дня;
//   - клиент 103: обращение внутри рабочего окна -> без переноса;
//   - клиент 104: вечер буднего дня (не пятница) -> следующий день 09:00;
//   - клиент 105: без ответа менеджера -> статус waiting.
var demoEventsData = []struct {
	ClientID   uint64
	ManagerID  int64
	RequestAt  time.Time
	ResponseAt time.Time
	Channel    string
	ActionType string
	NoResponse bool
}{
	{
		ClientID:   101,
		ManagerID:  11,
		RequestAt:  time.Date(2026, 2, 6, 21, 30, 0, 0, time.UTC), // пятница, 21:30
		ResponseAt: time.Date(2026, 2, 9, 11, 30, 0, 0, time.UTC),
		Channel:    "call",
		ActionType: "response",
	},
	{
		ClientID:   102,
		ManagerID:  12,
		RequestAt:  time.Date(2026, 2, 10, 8, 10, 0, 0, time.UTC), // вторник, 08:10
		ResponseAt: time.Date(2026, 2, 10, 11, 40, 0, 0, time.UTC),
		Channel:    "chat",
		ActionType: "response",
	},
	{
		ClientID:   103,
		ManagerID:  11,
		RequestAt:  time.Date(2026, 2, 10, 14, 0, 0, 0, time.UTC), // внутри рабочего окна
		ResponseAt: time.Date(2026, 2, 10, 16, 30, 0, 0, time.UTC),
		Channel:    "email",
		ActionType: "response",
	},
	{
		ClientID:   104,
		ManagerID:  13,
		RequestAt:  time.Date(2026, 2, 11, 20, 45, 0, 0, time.UTC), // среда, вечер
		ResponseAt: time.Date(2026, 2, 12, 10, 15, 0, 0, time.UTC),
		Channel:    "call",
		ActionType: "response",
	},
	{
		ClientID:   105,
		RequestAt:  time.Date(2026, 2, 12, 12, 0, 0, 0, time.UTC),
		Channel:    "chat",
		ActionType: "request",
		NoResponse: true,
	},
}
