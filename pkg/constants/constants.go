package constants

// Правила начала отсчета SLA.
// Рабочее окно: с 09:00 до 20:00. Обращение вне окна переносится
// на ближайшее открытие (см. services.SLACalculator).
const (
	WorkdayStartHour  = 9
	EveningCutoffHour = 20
)

// Статусы строки витрины.
const (
	StatusDone    = "done"
	StatusWaiting = "waiting"
)

// Тип события в журнале обращений, означающий ответ менеджера.
const ActionTypeResponse = "response"

// Ключ кеша собранной витрины в Redis.
const DashboardCacheKey = "dashboard:snapshot"
