package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"sla-mart/internal/dto"
	"sla-mart/internal/entities"
	"sla-mart/internal/repositories"
	"sla-mart/pkg/config"
	"sla-mart/pkg/constants"
	apperrors "sla-mart/pkg/errors"
)

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context, filter entities.ReportFilter) (*dto.DashboardDTO, error)
	GetReportRows(ctx context.Context, filter entities.ReportFilter) ([]dto.DashboardRowDTO, *dto.DashboardSummaryDTO, error)
}

// dashboardService - чтение опубликованной витрины. Выборка без фильтров
// кешируется в Redis целиком: это основной запрос дашборда, который
// руководители открывают чаще всего.
type dashboardService struct {
	dashboardRepo  repositories.DashboardRepositoryInterface
	refreshRunRepo repositories.RefreshRunRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	cfg            config.MartConfig
	logger         *zap.Logger
}

func NewDashboardService(
	dashboardRepo repositories.DashboardRepositoryInterface,
	refreshRunRepo repositories.RefreshRunRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cfg config.MartConfig,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &dashboardService{
		dashboardRepo:  dashboardRepo,
		refreshRunRepo: refreshRunRepo,
		cacheRepo:      cacheRepo,
		cfg:            cfg,
		logger:         logger,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, filter entities.ReportFilter) (*dto.DashboardDTO, error) {
	cacheable := filter.IsZero()

	if cacheable {
		if cached, err := s.cacheRepo.Get(ctx, constants.DashboardCacheKey); err == nil {
			var dashboard dto.DashboardDTO
			if unmarshalErr := json.Unmarshal([]byte(cached), &dashboard); unmarshalErr == nil {
				return &dashboard, nil
			} else {
				s.logger.Warn("Кеш витрины поврежден, читаем из базы", zap.Error(unmarshalErr))
			}
		}
	}

	rows, total, err := s.dashboardRepo.GetRows(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary, err := s.dashboardRepo.GetSummary(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &dto.DashboardDTO{
		Summary: mapSummary(summary),
		Rows:    mapRows(rows),
		Total:   total,
	}

	lastRun, err := s.refreshRunRepo.GetLastRun(ctx)
	switch {
	case err == nil:
		dashboard.LastRun = mapRefreshRun(lastRun)
	case errors.Is(err, apperrors.ErrNotFound):
		// Витрина еще ни разу не пересчитывалась.
	default:
		return nil, err
	}

	if cacheable {
		if payload, err := json.Marshal(dashboard); err == nil {
			if err := s.cacheRepo.Set(ctx, constants.DashboardCacheKey, payload, s.cfg.CacheTTL); err != nil {
				s.logger.Warn("Не удалось записать кеш витрины", zap.Error(err))
			}
		}
	}

	return dashboard, nil
}

// GetReportRows возвращает строки и сводку для выгрузки отчета.
// Пагинация игнорируется: отчет всегда содержит полную выборку.
func (s *dashboardService) GetReportRows(ctx context.Context, filter entities.ReportFilter) ([]dto.DashboardRowDTO, *dto.DashboardSummaryDTO, error) {
	filter.Page = 0
	filter.PerPage = 0

	rows, _, err := s.dashboardRepo.GetRows(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	summary, err := s.dashboardRepo.GetSummary(ctx)
	if err != nil {
		return nil, nil, err
	}
	return mapRows(rows), mapSummary(summary), nil
}

func mapRows(rows []entities.DashboardRow) []dto.DashboardRowDTO {
	out := make([]dto.DashboardRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.DashboardRowDTO{
			ClientID:      row.ClientID,
			Status:        row.Status,
			SourceChannel: row.SourceChannel,
			RequestAt:     null.NewTime(row.RequestAt.Time, row.RequestAt.Valid),
			RegisteredAt:  null.NewTime(row.RegisteredAt.Time, row.RegisteredAt.Valid),
			ResponseAt:    null.NewTime(row.ResponseAt.Time, row.ResponseAt.Valid),
			ElapsedHours:  null.NewFloat64(row.ElapsedHours.Float64, row.ElapsedHours.Valid),
			ManagerID:     null.NewInt64(row.ManagerID.Int64, row.ManagerID.Valid),
		})
	}
	return out
}

func mapSummary(summary *entities.DashboardSummary) *dto.DashboardSummaryDTO {
	return &dto.DashboardSummaryDTO{
		TotalClients:    summary.TotalClients,
		DoneCount:       summary.DoneCount,
		WaitingCount:    summary.WaitingCount,
		AvgElapsedHours: null.NewFloat64(summary.AvgElapsedHours.Float64, summary.AvgElapsedHours.Valid),
		MaxElapsedHours: null.NewFloat64(summary.MaxElapsedHours.Float64, summary.MaxElapsedHours.Valid),
	}
}

func mapRefreshRun(run *entities.RefreshRun) *dto.RefreshRunDTO {
	out := &dto.RefreshRunDTO{
		ID:            run.ID.String(),
		StartedAt:     run.StartedAt.Format(time.RFC3339),
		Status:        run.Status,
		RowsPublished: run.RowsPublished,
		Error:         null.NewString(run.Error.String, run.Error.Valid),
	}
	if run.FinishedAt.Valid {
		out.FinishedAt = null.StringFrom(run.FinishedAt.Time.Format(time.RFC3339))
	}
	return out
}
