package dto

import (
	"github.com/aarondl/null/v8"
)

type DashboardRowDTO struct {
	ClientID      uint64       `json:"client_id"`
	Status        string       `json:"status"`
	SourceChannel string       `json:"source_channel"`
	RequestAt     null.Time    `json:"request_at"`
	RegisteredAt  null.Time    `json:"registered_at"`
	ResponseAt    null.Time    `json:"response_at"`
	ElapsedHours  null.Float64 `json:"elapsed_hours"`
	ManagerID     null.Int64   `json:"manager_id"`
}

type DashboardSummaryDTO struct {
	TotalClients    int64        `json:"total_clients"`
	DoneCount       int64        `json:"done_count"`
	WaitingCount    int64        `json:"waiting_count"`
	AvgElapsedHours null.Float64 `json:"avg_elapsed_hours"`
	MaxElapsedHours null.Float64 `json:"max_elapsed_hours"`
}

type DashboardDTO struct {
	Summary *DashboardSummaryDTO `json:"summary"`
	LastRun *RefreshRunDTO       `json:"last_run,omitempty"`
	Rows    []DashboardRowDTO    `json:"rows"`
	Total   uint64               `json:"total"`
}
