package health

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/evplan/internal/ports"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult represents the result of a single dependency check.
type CheckResult struct {
	Name      string        `json:"name"`
	Status    Status        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration_ms"`
	Timestamp time.Time     `json:"timestamp"`
}

// Response is the aggregate health report.
type Response struct {
	Status    Status                 `json:"status"`
	Version   string                 `json:"version,omitempty"`
	Uptime    string                 `json:"uptime,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// Checker probes one dependency.
type Checker func(ctx context.Context) CheckResult

// Service aggregates readiness over the projection engine's dependencies:
// the entity/artifact store, the metrics cache and the event queue.
type Service struct {
	startTime time.Time
	version   string
	checkers  map[string]Checker
	log       *zap.Logger
	mu        sync.RWMutex
}

func NewService(version string, log *zap.Logger) *Service {
	return &Service{
		startTime: time.Now(),
		version:   version,
		checkers:  make(map[string]Checker),
		log:       log,
	}
}

// RegisterDatabase adds a readiness probe for the entity store.
func (s *Service) RegisterDatabase(db *sql.DB) {
	s.register("database", func(ctx context.Context) CheckResult {
		return s.probe("database", func() error { return db.PingContext(ctx) })
	})
}

// RegisterCache adds a readiness probe for the metrics cache.
func (s *Service) RegisterCache(cache ports.Cache) {
	s.register("cache", func(ctx context.Context) CheckResult {
		return s.probe("cache", cache.Ping)
	})
}

// RegisterQueue adds a readiness probe for the event queue.
func (s *Service) RegisterQueue(name string, ping func() error) {
	s.register(name, func(ctx context.Context) CheckResult {
		return s.probe(name, ping)
	})
}

func (s *Service) register(name string, checker Checker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkers[name] = checker
	s.log.Info("Registered health checker", zap.String("name", name))
}

func (s *Service) probe(name string, ping func() error) CheckResult {
	start := time.Now()
	result := CheckResult{Name: name, Timestamp: start}

	if err := ping(); err != nil {
		result.Status = StatusUnhealthy
		result.Message = fmt.Sprintf("ping failed: %v", err)
		s.log.Warn("Health check failed", zap.String("name", name), zap.Error(err))
	} else {
		result.Status = StatusHealthy
		result.Message = "connection ok"
	}
	result.Duration = time.Since(start)
	return result
}

// Live is the liveness check: the process is up.
func (s *Service) Live() *Response {
	return &Response{
		Status:    StatusHealthy,
		Version:   s.version,
		Uptime:    time.Since(s.startTime).String(),
		Timestamp: time.Now(),
	}
}

// Ready runs every registered check concurrently and reports the aggregate.
func (s *Service) Ready(ctx context.Context) *Response {
	s.mu.RLock()
	checkers := make(map[string]Checker, len(s.checkers))
	for k, v := range s.checkers {
		checkers[k] = v
	}
	s.mu.RUnlock()

	results := make(map[string]CheckResult)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, checker := range checkers {
		wg.Add(1)
		go func(name string, checker Checker) {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			result := checker(checkCtx)

			mu.Lock()
			results[name] = result
			mu.Unlock()
		}(name, checker)
	}
	wg.Wait()

	overall := StatusHealthy
	for _, result := range results {
		if result.Status == StatusUnhealthy {
			overall = StatusUnhealthy
		}
	}

	return &Response{
		Status:    overall,
		Version:   s.version,
		Uptime:    time.Since(s.startTime).String(),
		Timestamp: time.Now(),
		Checks:    results,
	}
}
