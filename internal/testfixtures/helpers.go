package testfixtures

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
)

// Clock управляемый источник текущего времени
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock создает часы, показывающие now
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now возвращает текущее время часов
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set переводит часы
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// TxManager выполняет функцию без реальной транзакции
// CommitErr возвращается после успешного fn, имитируя ошибку фиксации
type TxManager struct {
	CommitErr error
	calls     int32
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// Calls количество выполненных транзакций
func (m *TxManager) Calls() int {
	return int(atomic.LoadInt32(&m.calls))
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	atomic.AddInt32(&m.calls, 1)
	if err := fn(ctx); err != nil {
		return err
	}
	return m.CommitErr
}

// NewMetrics метрики в отдельном реестре, чтобы тесты не конфликтовали
func NewMetrics() *metrics.Metrics {
	return metrics.NewWithRegisterer("scheduling-test", prometheus.NewRegistry())
}
