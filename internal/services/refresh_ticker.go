package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	apperrors "sla-mart/pkg/errors"
)

// RefreshTicker - встроенный автопересчет витрины по таймеру.
// Необязательный режим: основной сценарий - запуск пересчета внешним
// планировщиком через POST /api/refresh, тикер включается переменной
// REFRESH_INTERVAL > 0.
type RefreshTicker struct {
	refreshService RefreshServiceInterface
	interval       time.Duration
	logger         *zap.Logger
}

func NewRefreshTicker(refreshService RefreshServiceInterface, interval time.Duration, logger *zap.Logger) *RefreshTicker {
	return &RefreshTicker{
		refreshService: refreshService,
		interval:       interval,
		logger:         logger,
	}
}

// Start блокируется до отмены контекста. Первый пересчет выполняется
// сразу при старте, далее по интервалу. Ошибка пересчета не
// останавливает тикер.
func (t *RefreshTicker) Start(ctx context.Context) {
	t.logger.Info("Автопересчет витрины включен", zap.Duration("interval", t.interval))

	t.run(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("Автопересчет витрины остановлен")
			return
		case <-ticker.C:
			t.run(ctx)
		}
	}
}

func (t *RefreshTicker) run(ctx context.Context) {
	_, err := t.refreshService.Refresh(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrRefreshInProgress) {
		t.logger.Error("Автопересчет завершился ошибкой", zap.Error(err))
	}
}
