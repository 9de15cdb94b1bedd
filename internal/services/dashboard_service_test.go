package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sla-mart/internal/entities"
	"sla-mart/pkg/constants"
)

// Кеш в памяти для проверки сценариев попадания и промаха.
type memCacheRepo struct {
	store map[string]string
	sets  int
	gets  int
}

func newMemCacheRepo() *memCacheRepo {
	return &memCacheRepo{store: make(map[string]string)}
}

func (m *memCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case []byte:
		m.store[key] = string(v)
	case string:
		m.store[key] = v
	default:
		return fmt.Errorf("неожиданный тип значения кеша: %T", value)
	}
	m.sets++
	return nil
}

func (m *memCacheRepo) Get(ctx context.Context, key string) (string, error) {
	m.gets++
	v, ok := m.store[key]
	if !ok {
		return "", fmt.Errorf("ключ %s не найден", key)
	}
	return v, nil
}

func (m *memCacheRepo) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.store, k)
	}
	return nil
}

func publishedDashboard() *fakeDashboardRepo {
	return &fakeDashboardRepo{published: []entities.DashboardRow{
		{
			ClientID:      101,
			Status:        constants.StatusDone,
			SourceChannel: "call",
			RequestAt:     sql.NullTime{Time: date(2026, time.February, 6, 21, 30), Valid: true},
			RegisteredAt:  sql.NullTime{Time: date(2026, time.February, 9, 9, 0), Valid: true},
			ResponseAt:    sql.NullTime{Time: date(2026, time.February, 9, 11, 30), Valid: true},
			ElapsedHours:  sql.NullFloat64{Float64: 2.5, Valid: true},
			ManagerID:     sql.NullInt64{Int64: 11, Valid: true},
		},
		{ClientID: 105, Status: constants.StatusWaiting, SourceChannel: "chat"},
	}}
}

func TestGetDashboard_MapsRowsAndSummary(t *testing.T) {
	cache := newMemCacheRepo()
	svc := NewDashboardService(publishedDashboard(), &fakeRefreshRunRepo{}, cache, testMartConfig(), zap.NewNop())

	dashboard, err := svc.GetDashboard(context.Background(), entities.ReportFilter{})
	require.NoError(t, err)

	require.Len(t, dashboard.Rows, 2)
	assert.Equal(t, uint64(2), dashboard.Total)

	row := dashboard.Rows[0]
	assert.Equal(t, uint64(101), row.ClientID)
	assert.True(t, row.ElapsedHours.Valid)
	assert.Equal(t, 2.5, row.ElapsedHours.Float64)

	waiting := dashboard.Rows[1]
	assert.False(t, waiting.RegisteredAt.Valid)
	assert.False(t, waiting.ManagerID.Valid)

	// Витрина не пересчитывалась - last_run отсутствует, но это не ошибка.
	assert.Nil(t, dashboard.LastRun)
}

func TestGetDashboard_CachesUnfilteredRequest(t *testing.T) {
	cache := newMemCacheRepo()
	repo := publishedDashboard()
	svc := NewDashboardService(repo, &fakeRefreshRunRepo{}, cache, testMartConfig(), zap.NewNop())

	first, err := svc.GetDashboard(context.Background(), entities.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Contains(t, cache.store, constants.DashboardCacheKey)

	// Второй запрос обслуживается из кеша даже после смены данных в репозитории.
	repo.published = nil
	second, err := svc.GetDashboard(context.Background(), entities.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, first.Total, second.Total)
	assert.Len(t, second.Rows, 2)
	assert.Equal(t, 1, cache.sets)
}

func TestGetDashboard_FilteredRequestBypassesCache(t *testing.T) {
	cache := newMemCacheRepo()
	svc := NewDashboardService(publishedDashboard(), &fakeRefreshRunRepo{}, cache, testMartConfig(), zap.NewNop())

	_, err := svc.GetDashboard(context.Background(), entities.ReportFilter{
		Statuses: []string{constants.StatusWaiting},
	})
	require.NoError(t, err)

	assert.Zero(t, cache.gets)
	assert.Zero(t, cache.sets)
}

func TestGetDashboard_CorruptedCacheFallsBackToDB(t *testing.T) {
	cache := newMemCacheRepo()
	cache.store[constants.DashboardCacheKey] = "{битый json"
	svc := NewDashboardService(publishedDashboard(), &fakeRefreshRunRepo{}, cache, testMartConfig(), zap.NewNop())

	dashboard, err := svc.GetDashboard(context.Background(), entities.ReportFilter{})
	require.NoError(t, err)
	assert.Len(t, dashboard.Rows, 2)
}

func TestGetReportRows_IgnoresPagination(t *testing.T) {
	repo := publishedDashboard()
	svc := NewDashboardService(repo, &fakeRefreshRunRepo{}, newMemCacheRepo(), testMartConfig(), zap.NewNop())

	rows, summary, err := svc.GetReportRows(context.Background(), entities.ReportFilter{Page: 3, PerPage: 1})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	require.NotNil(t, summary)
}
