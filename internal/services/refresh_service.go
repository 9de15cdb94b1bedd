package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sla-mart/internal/dto"
	"sla-mart/internal/entities"
	"sla-mart/internal/metrics"
	"sla-mart/internal/repositories"
	"sla-mart/pkg/config"
	"sla-mart/pkg/constants"
	apperrors "sla-mart/pkg/errors"
)

type RefreshServiceInterface interface {
	Refresh(ctx context.Context) (*dto.RefreshResultDTO, error)
}

// refreshService - полный цикл пересчета витрины: чтение источников,
// расчет SLA, сборка строк и атомарная публикация.
type refreshService struct {
	eventRepo      repositories.EventRepositoryInterface
	rosterRepo     repositories.RosterRepositoryInterface
	calendarRepo   repositories.CalendarRepositoryInterface
	dashboardRepo  repositories.DashboardRepositoryInterface
	refreshRunRepo repositories.RefreshRunRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	metrics        *metrics.Metrics
	cfg            config.MartConfig
	logger         *zap.Logger

	running atomic.Bool
}

func NewRefreshService(
	eventRepo repositories.EventRepositoryInterface,
	rosterRepo repositories.RosterRepositoryInterface,
	calendarRepo repositories.CalendarRepositoryInterface,
	dashboardRepo repositories.DashboardRepositoryInterface,
	refreshRunRepo repositories.RefreshRunRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	m *metrics.Metrics,
	cfg config.MartConfig,
	logger *zap.Logger,
) RefreshServiceInterface {
	return &refreshService{
		eventRepo:      eventRepo,
		rosterRepo:     rosterRepo,
		calendarRepo:   calendarRepo,
		dashboardRepo:  dashboardRepo,
		refreshRunRepo: refreshRunRepo,
		cacheRepo:      cacheRepo,
		metrics:        m,
		cfg:            cfg,
		logger:         logger,
	}
}

// Refresh пересчитывает витрину целиком. Параллельные запуски не
// допускаются: второй вызов получает ErrRefreshInProgress. Любая ошибка
// до публикации оставляет прежний снимок витрины нетронутым, запись о
// неудаче попадает в refresh_runs отдельной вставкой.
func (s *refreshService) Refresh(ctx context.Context) (*dto.RefreshResultDTO, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, apperrors.ErrRefreshInProgress
	}
	defer s.running.Store(false)

	runID := uuid.New()
	startedAt := time.Now()

	s.logger.Info("Пересчет витрины запущен",
		zap.String("run_id", runID.String()),
		zap.Strings("channels", s.cfg.AllowedChannels),
	)

	result, err := s.rebuild(ctx, runID, startedAt)
	if err != nil {
		s.recordFailure(ctx, runID, startedAt, err)
		s.metrics.RefreshTotal.WithLabelValues(entities.RefreshStatusFailed).Inc()
		return nil, err
	}

	duration := time.Since(startedAt)
	s.metrics.RefreshTotal.WithLabelValues(entities.RefreshStatusOK).Inc()
	s.metrics.RefreshDuration.Observe(duration.Seconds())
	s.metrics.RowsPublished.Set(float64(result.RowsPublished))
	s.metrics.ClientsWaiting.Set(float64(result.WaitingClients))
	result.DurationSec = duration.Seconds()

	s.logger.Info("Пересчет витрины завершен",
		zap.String("run_id", runID.String()),
		zap.Int64("rows_published", result.RowsPublished),
		zap.Int("waiting_clients", result.WaitingClients),
		zap.Duration("duration", duration),
	)
	return result, nil
}

func (s *refreshService) rebuild(ctx context.Context, runID uuid.UUID, startedAt time.Time) (*dto.RefreshResultDTO, error) {
	firstResponses, err := s.eventRepo.GetFirstResponses(ctx, s.cfg.AllowedChannels)
	if err != nil {
		return nil, err
	}

	clients, err := s.rosterRepo.GetClients(ctx, s.cfg.AllowedChannels)
	if err != nil {
		return nil, err
	}

	calendar, err := s.loadCalendar(ctx, firstResponses, startedAt)
	if err != nil {
		return nil, err
	}

	calculator := NewSLACalculator(calendar, s.logger)

	records := make(map[uint64]entities.SLARecord, len(firstResponses))
	for _, fr := range firstResponses {
		record, err := calculator.Calculate(fr)
		if err != nil {
			return nil, fmt.Errorf("клиент %d: %w", fr.ClientID, err)
		}
		records[record.ClientID] = record
	}

	rows := make([]entities.DashboardRow, 0, len(clients))
	waiting := 0
	for _, client := range clients {
		record, ok := records[client.ID]
		if !ok {
			waiting++
			rows = append(rows, entities.DashboardRow{
				ClientID:      client.ID,
				Status:        constants.StatusWaiting,
				SourceChannel: client.SourceChannel,
			})
			continue
		}
		rows = append(rows, entities.DashboardRow{
			ClientID:      client.ID,
			Status:        constants.StatusDone,
			SourceChannel: client.SourceChannel,
			RequestAt:     sql.NullTime{Time: record.RequestAt, Valid: true},
			RegisteredAt:  sql.NullTime{Time: record.RegisteredAt, Valid: true},
			ResponseAt:    sql.NullTime{Time: record.ResponseAt, Valid: true},
			ElapsedHours:  sql.NullFloat64{Float64: record.ElapsedHours, Valid: true},
			ManagerID:     record.ManagerID,
		})
	}

	run := entities.RefreshRun{
		ID:            runID,
		StartedAt:     startedAt,
		FinishedAt:    sql.NullTime{Time: time.Now(), Valid: true},
		Status:        entities.RefreshStatusOK,
		RowsPublished: int64(len(rows)),
	}
	if err := s.dashboardRepo.ReplaceAll(ctx, run, rows); err != nil {
		return nil, err
	}

	// Кеш инвалидируется после публикации. Ошибка кеша не валит пересчет:
	// данные уже в базе, устаревший снимок доживет свой TTL.
	if err := s.cacheRepo.Del(ctx, constants.DashboardCacheKey); err != nil {
		s.logger.Warn("Не удалось сбросить кеш витрины", zap.Error(err))
	}

	return &dto.RefreshResultDTO{
		RunID:          runID.String(),
		RowsPublished:  int64(len(rows)),
		FirstResponses: len(firstResponses),
		WaitingClients: waiting,
	}, nil
}

// loadCalendar читает срез производственного календаря, покрывающий все
// даты обращений и горизонт вперед от текущего дня. Горизонт нужен
// правилу переноса на ближайший рабочий день.
func (s *refreshService) loadCalendar(ctx context.Context, firstResponses []entities.FirstResponse, now time.Time) (WorkingCalendar, error) {
	from := midnight(now)
	for _, fr := range firstResponses {
		if day := midnight(fr.RequestAt); day.Before(from) {
			from = day
		}
	}
	to := midnight(now).AddDate(0, 0, s.cfg.CalendarHorizonDays)

	entries, err := s.calendarRepo.GetRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		s.logger.Warn("Производственный календарь пуст в запрошенном диапазоне",
			zap.Time("from", from),
			zap.Time("to", to),
		)
	}
	return NewMapCalendar(entries), nil
}

func (s *refreshService) recordFailure(ctx context.Context, runID uuid.UUID, startedAt time.Time, cause error) {
	s.logger.Error("Пересчет витрины завершился ошибкой",
		zap.String("run_id", runID.String()),
		zap.Error(cause),
	)

	run := entities.RefreshRun{
		ID:         runID,
		StartedAt:  startedAt,
		FinishedAt: sql.NullTime{Time: time.Now(), Valid: true},
		Status:     entities.RefreshStatusFailed,
		Error:      sql.NullString{String: cause.Error(), Valid: true},
	}
	if err := s.refreshRunRepo.RecordFailure(ctx, run); err != nil {
		s.logger.Error("Не удалось записать неудачный пересчет в журнал", zap.Error(err))
	}
}
