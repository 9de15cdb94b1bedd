package dto

import (
	"github.com/aarondl/null/v8"
)

type RefreshRunDTO struct {
	ID            string      `json:"id"`
	StartedAt     string      `json:"started_at"`
	FinishedAt    null.String `json:"finished_at"`
	Status        string      `json:"status"`
	RowsPublished int64       `json:"rows_published"`
	Error         null.String `json:"error"`
}

// RefreshResultDTO - ответ на POST /api/refresh.
type RefreshResultDTO struct {
	RunID          string  `json:"run_id"`
	RowsPublished  int64   `json:"rows_published"`
	FirstResponses int     `json:"first_responses"`
	WaitingClients int     `json:"waiting_clients"`
	DurationSec    float64 `json:"duration_sec"`
}
