package health

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/evplan/internal/mocks"
)

func TestService_Live(t *testing.T) {
	svc := NewService("v1.2.3", zap.NewNop())

	resp := svc.Live()
	if resp.Status != StatusHealthy {
		t.Errorf("Live status = %s, expected healthy", resp.Status)
	}
	if resp.Version != "v1.2.3" {
		t.Errorf("Version = %s, expected v1.2.3", resp.Version)
	}
}

func TestService_Ready_AllHealthy(t *testing.T) {
	svc := NewService("test", zap.NewNop())
	svc.RegisterCache(mocks.NewMockCache())
	svc.RegisterQueue("nats", func() error { return nil })

	resp := svc.Ready(context.Background())
	if resp.Status != StatusHealthy {
		t.Errorf("Ready status = %s, expected healthy", resp.Status)
	}
	if len(resp.Checks) != 2 {
		t.Errorf("Expected 2 checks, got %d", len(resp.Checks))
	}
	for name, check := range resp.Checks {
		if check.Status != StatusHealthy {
			t.Errorf("Check %s = %s, expected healthy", name, check.Status)
		}
	}
}

func TestService_Ready_OneUnhealthy(t *testing.T) {
	svc := NewService("test", zap.NewNop())
	svc.RegisterCache(mocks.NewMockCache())
	svc.RegisterQueue("nats", func() error { return fmt.Errorf("connection refused") })

	resp := svc.Ready(context.Background())
	if resp.Status != StatusUnhealthy {
		t.Errorf("Ready status = %s, expected unhealthy when one dependency is down", resp.Status)
	}
	if resp.Checks["nats"].Status != StatusUnhealthy {
		t.Errorf("Queue check = %s, expected unhealthy", resp.Checks["nats"].Status)
	}
	if resp.Checks["cache"].Status != StatusHealthy {
		t.Errorf("Cache check = %s, expected healthy", resp.Checks["cache"].Status)
	}
}

func TestService_Ready_NoCheckers(t *testing.T) {
	svc := NewService("test", zap.NewNop())

	resp := svc.Ready(context.Background())
	if resp.Status != StatusHealthy {
		t.Errorf("Ready with no checkers = %s, expected healthy", resp.Status)
	}
}
