package main

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// healthMonitor logs database health transitions, not every probe.
type healthMonitor struct {
	checker HealthChecker
	timeout time.Duration

	mu         sync.Mutex
	lastStatus string
}

func newHealthMonitor(checker HealthChecker) *healthMonitor {
	return &healthMonitor{checker: checker, timeout: 5 * time.Second}
}

func (m *healthMonitor) check(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	stats := m.checker.Health(ctx)
	status := stats["status"]

	m.mu.Lock()
	defer m.mu.Unlock()
	if status != m.lastStatus {
		if status == "up" {
			log.Printf("Database is up (open connections: %s, in use: %s)", stats["open_connections"], stats["in_use"])
		} else {
			log.Printf("Database health check failed: %s", stats["error"])
		}
		m.lastStatus = status
	}
	return status
}

func StartHealthCheckScheduler(schedule string, checker HealthChecker) (*cron.Cron, error) {
	monitor := newHealthMonitor(checker)
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		monitor.check(context.Background())
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
