package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sla-mart/internal/entities"
	"sla-mart/internal/metrics"
	"sla-mart/pkg/config"
	"sla-mart/pkg/constants"
	apperrors "sla-mart/pkg/errors"
)

type fakeEventRepo struct {
	responses []entities.FirstResponse
	err       error
}

func (f *fakeEventRepo) GetFirstResponses(ctx context.Context, channels []string) ([]entities.FirstResponse, error) {
	return f.responses, f.err
}

type fakeRosterRepo struct {
	clients []entities.Client
	err     error
}

func (f *fakeRosterRepo) GetClients(ctx context.Context, channels []string) ([]entities.Client, error) {
	return f.clients, f.err
}

type fakeCalendarRepo struct {
	days []entities.CalendarDay
	err  error
}

func (f *fakeCalendarRepo) GetRange(ctx context.Context, from, to time.Time) ([]entities.CalendarDay, error) {
	return f.days, f.err
}

type fakeDashboardRepo struct {
	published    []entities.DashboardRow
	publishedRun entities.RefreshRun
	replaceCalls int
	err          error
}

func (f *fakeDashboardRepo) ReplaceAll(ctx context.Context, run entities.RefreshRun, rows []entities.DashboardRow) error {
	f.replaceCalls++
	if f.err != nil {
		return f.err
	}
	f.published = rows
	f.publishedRun = run
	return nil
}

func (f *fakeDashboardRepo) GetRows(ctx context.Context, filter entities.ReportFilter) ([]entities.DashboardRow, uint64, error) {
	return f.published, uint64(len(f.published)), nil
}

func (f *fakeDashboardRepo) GetSummary(ctx context.Context) (*entities.DashboardSummary, error) {
	return &entities.DashboardSummary{}, nil
}

type fakeRefreshRunRepo struct {
	failures []entities.RefreshRun
}

func (f *fakeRefreshRunRepo) RecordFailure(ctx context.Context, run entities.RefreshRun) error {
	f.failures = append(f.failures, run)
	return nil
}

func (f *fakeRefreshRunRepo) GetLastRun(ctx context.Context) (*entities.RefreshRun, error) {
	return nil, apperrors.ErrNotFound
}

type fakeCacheRepo struct {
	deleted []string
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	return "", apperrors.ErrNotFound
}

func (f *fakeCacheRepo) Del(ctx context.Context, keys ...string) error {
	f.deleted = append(f.deleted, keys...)
	return nil
}

func februaryDays() []entities.CalendarDay {
	var days []entities.CalendarDay
	from := date(2026, time.February, 1, 0, 0)
	to := date(2026, time.February, 28, 0, 0)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		working := d.Weekday() != time.Saturday && d.Weekday() != time.Sunday
		days = append(days, entities.CalendarDay{Date: d, IsWorking: working})
	}
	return days
}

func testMartConfig() config.MartConfig {
	return config.MartConfig{
		AllowedChannels:     []string{"call", "chat", "email"},
		CacheTTL:            time.Minute,
		CalendarHorizonDays: 30,
	}
}

func newTestRefreshService(
	events *fakeEventRepo,
	roster *fakeRosterRepo,
	calendar *fakeCalendarRepo,
	dashboard *fakeDashboardRepo,
	runs *fakeRefreshRunRepo,
	cache *fakeCacheRepo,
) RefreshServiceInterface {
	return NewRefreshService(
		events, roster, calendar, dashboard, runs, cache,
		metrics.New(), testMartConfig(), zap.NewNop(),
	)
}

func TestRefresh_PublishesOneRowPerClient(t *testing.T) {
	events := &fakeEventRepo{responses: []entities.FirstResponse{
		{
			EventID:    1,
			ClientID:   101,
			ManagerID:  sql.NullInt64{Int64: 11, Valid: true},
			RequestAt:  date(2026, time.February, 6, 21, 30), // пятница вечером
			ResponseAt: date(2026, time.February, 9, 11, 30),
		},
		{
			EventID:    2,
			ClientID:   102,
			ManagerID:  sql.NullInt64{Int64: 12, Valid: true},
			RequestAt:  date(2026, time.February, 10, 14, 0),
			ResponseAt: date(2026, time.February, 10, 16, 30),
		},
	}}
	roster := &fakeRosterRepo{clients: []entities.Client{
		{ID: 101, SourceChannel: "call"},
		{ID: 102, SourceChannel: "chat"},
		{ID: 105, SourceChannel: "chat"}, // без ответа
	}}
	dashboard := &fakeDashboardRepo{}
	runs := &fakeRefreshRunRepo{}
	cache := &fakeCacheRepo{}

	svc := newTestRefreshService(events, roster, &fakeCalendarRepo{days: februaryDays()}, dashboard, runs, cache)

	result, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.RowsPublished)
	assert.Equal(t, 2, result.FirstResponses)
	assert.Equal(t, 1, result.WaitingClients)

	require.Len(t, dashboard.published, 3)
	byClient := make(map[uint64]entities.DashboardRow)
	for _, row := range dashboard.published {
		byClient[row.ClientID] = row
	}

	// Клиент 101: пятница вечером -> понедельник 09:00, 2.5 часа до ответа.
	row101 := byClient[101]
	assert.Equal(t, constants.StatusDone, row101.Status)
	assert.Equal(t, date(2026, time.February, 9, 9, 0), row101.RegisteredAt.Time)
	assert.Equal(t, 2.5, row101.ElapsedHours.Float64)

	// Клиент 102: обращение внутри окна, без переноса.
	row102 := byClient[102]
	assert.Equal(t, date(2026, time.February, 10, 14, 0), row102.RegisteredAt.Time)
	assert.Equal(t, 2.5, row102.ElapsedHours.Float64)

	// Клиент 105: без ответа - waiting, расчетные поля пустые.
	row105 := byClient[105]
	assert.Equal(t, constants.StatusWaiting, row105.Status)
	assert.False(t, row105.RegisteredAt.Valid)
	assert.False(t, row105.ElapsedHours.Valid)
	assert.False(t, row105.ManagerID.Valid)

	// Журнальная запись успешна и вставлена вместе с публикацией.
	assert.Equal(t, entities.RefreshStatusOK, dashboard.publishedRun.Status)
	assert.Equal(t, int64(3), dashboard.publishedRun.RowsPublished)
	assert.Empty(t, runs.failures)

	// Кеш витрины сброшен после публикации.
	assert.Equal(t, []string{constants.DashboardCacheKey}, cache.deleted)
}

func TestRefresh_SourceFailure_KeepsPreviousSnapshot(t *testing.T) {
	events := &fakeEventRepo{err: apperrors.ErrSourceUnavailable}
	dashboard := &fakeDashboardRepo{}
	runs := &fakeRefreshRunRepo{}
	cache := &fakeCacheRepo{}

	svc := newTestRefreshService(events, &fakeRosterRepo{}, &fakeCalendarRepo{}, dashboard, runs, cache)

	_, err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)

	// Публикации не было, кеш не тронут, неудача записана в журнал.
	assert.Zero(t, dashboard.replaceCalls)
	assert.Empty(t, cache.deleted)
	require.Len(t, runs.failures, 1)
	assert.Equal(t, entities.RefreshStatusFailed, runs.failures[0].Status)
	assert.True(t, runs.failures[0].Error.Valid)
}

func TestRefresh_CalendarExhausted_FailsWholeRun(t *testing.T) {
	// Календарь заканчивается раньше, чем нужен перенос: суббота 28.02
	// без рабочих дней после нее.
	events := &fakeEventRepo{responses: []entities.FirstResponse{
		{
			EventID:    1,
			ClientID:   101,
			RequestAt:  date(2026, time.February, 28, 12, 0),
			ResponseAt: date(2026, time.March, 2, 10, 0),
		},
	}}
	dashboard := &fakeDashboardRepo{}
	runs := &fakeRefreshRunRepo{}

	svc := newTestRefreshService(
		events,
		&fakeRosterRepo{clients: []entities.Client{{ID: 101, SourceChannel: "call"}}},
		&fakeCalendarRepo{days: februaryDays()},
		dashboard, runs, &fakeCacheRepo{},
	)

	_, err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrCalendarExhausted)
	assert.Zero(t, dashboard.replaceCalls)
	require.Len(t, runs.failures, 1)
}

func TestRefresh_PublishFailure_Recorded(t *testing.T) {
	dashboard := &fakeDashboardRepo{err: apperrors.ErrSourceUnavailable}
	runs := &fakeRefreshRunRepo{}
	cache := &fakeCacheRepo{}

	svc := newTestRefreshService(
		&fakeEventRepo{},
		&fakeRosterRepo{clients: []entities.Client{{ID: 101, SourceChannel: "call"}}},
		&fakeCalendarRepo{days: februaryDays()},
		dashboard, runs, cache,
	)

	_, err := svc.Refresh(context.Background())
	assert.Error(t, err)
	assert.Empty(t, cache.deleted)
	require.Len(t, runs.failures, 1)
}

func TestRefresh_RejectsConcurrentRun(t *testing.T) {
	svc := newTestRefreshService(
		&fakeEventRepo{}, &fakeRosterRepo{}, &fakeCalendarRepo{},
		&fakeDashboardRepo{}, &fakeRefreshRunRepo{}, &fakeCacheRepo{},
	)

	impl, ok := svc.(*refreshService)
	require.True(t, ok)
	impl.running.Store(true)

	_, err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrRefreshInProgress)
}

func TestRefresh_Idempotent(t *testing.T) {
	// Повторный пересчет по тем же источникам публикует тот же набор строк.
	events := &fakeEventRepo{responses: []entities.FirstResponse{
		{
			EventID:    1,
			ClientID:   102,
			RequestAt:  date(2026, time.February, 10, 14, 0),
			ResponseAt: date(2026, time.February, 10, 16, 30),
		},
	}}
	dashboard := &fakeDashboardRepo{}

	svc := newTestRefreshService(
		events,
		&fakeRosterRepo{clients: []entities.Client{{ID: 102, SourceChannel: "chat"}}},
		&fakeCalendarRepo{days: februaryDays()},
		dashboard, &fakeRefreshRunRepo{}, &fakeCacheRepo{},
	)

	first, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	firstRows := dashboard.published

	second, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.RowsPublished, second.RowsPublished)
	assert.Equal(t, firstRows, dashboard.published)
	assert.Equal(t, 2, dashboard.replaceCalls)
}
