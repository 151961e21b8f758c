package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NotificationSizer is the slice of the notification store the monitor needs.
type NotificationSizer interface {
	Size(ctx context.Context) (int, error)
}

// Monitor periodically probes the backing stores and caches the result for
// the health endpoint.
type Monitor struct {
	pg            *pgxpool.Pool
	redis         *redislib.Client
	notifications NotificationSizer

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(pg *pgxpool.Pool, redis *redislib.Client, notifications NotificationSizer, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		pg:            pg,
		redis:         redis,
		notifications: notifications,
		interval:      interval,
		stopCh:        make(chan struct{}),
		logger:        logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

// IsOnline reports whether the primary stores are reachable.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.PostgreSQL && m.status.Redis
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.refresh()
		}
	}
}

func (m *Monitor) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), m.interval)
	defer cancel()

	status := Status{LastCheck: time.Now()}

	if m.pg != nil {
		status.PostgreSQL = m.pg.Ping(ctx) == nil
	}
	if m.redis != nil {
		status.Redis = m.redis.Ping(ctx).Err() == nil
	}
	if m.notifications != nil {
		count, err := m.notifications.Size(ctx)
		status.NotificationStore = err == nil
		status.NotificationCount = count
	}

	m.mu.Lock()
	previous := m.status
	m.status = status
	m.mu.Unlock()

	if previous.PostgreSQL != status.PostgreSQL || previous.Redis != status.Redis {
		m.logger.Warn("store connectivity changed",
			zap.Bool("postgresql", status.PostgreSQL),
			zap.Bool("redis", status.Redis))
	}
}
