package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/evplan/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/evplan/internal/domain"
)

type stubFinancialService struct {
	runProject func(ctx context.Context, projectID string) (*domain.FinancialMetrics, error)
	runStation func(ctx context.Context, stationID string) (*domain.FinancialMetrics, error)
	schedule   func(ctx context.Context, projectID string) ([]domain.LoanPeriod, error)
}

func (s *stubFinancialService) RunProjectAnalysis(ctx context.Context, projectID string) (*domain.FinancialMetrics, error) {
	return s.runProject(ctx, projectID)
}

func (s *stubFinancialService) RunStationAnalysis(ctx context.Context, stationID string) (*domain.FinancialMetrics, error) {
	return s.runStation(ctx, stationID)
}

func (s *stubFinancialService) LoanSchedule(ctx context.Context, projectID string) ([]domain.LoanPeriod, error) {
	return s.schedule(ctx, projectID)
}

type stubEnvironmentalService struct {
	run func(ctx context.Context, analysisID string) (bool, error)
}

func (s *stubEnvironmentalService) Run(ctx context.Context, analysisID string) (bool, error) {
	return s.run(ctx, analysisID)
}

func testApp(financial *stubFinancialService, environmental *stubEnvironmentalService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(zap.NewNop()),
	})
	h := NewAnalysisHandler(financial, environmental, zap.NewNop())

	v1 := app.Group("/api/v1")
	v1.Post("/projects/:id/financial-analysis", h.RunProjectFinancial)
	v1.Post("/stations/:id/financial-analysis", h.RunStationFinancial)
	v1.Get("/projects/:id/loan-schedule", h.GetLoanSchedule)
	v1.Post("/environmental-analyses/:id/run", h.RunEnvironmental)
	return app
}

func TestAnalysisHandler_RunProjectFinancial(t *testing.T) {
	financial := &stubFinancialService{
		runProject: func(ctx context.Context, projectID string) (*domain.FinancialMetrics, error) {
			if projectID != "p-1" {
				t.Errorf("projectID = %q, expected p-1", projectID)
			}
			return &domain.FinancialMetrics{NPV: 3680.65, PaybackPeriod: 6.25}, nil
		},
	}
	app := testApp(financial, &stubEnvironmentalService{})

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/projects/p-1/financial-analysis", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Status = %d, expected 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var metrics domain.FinancialMetrics
	if err := json.Unmarshal(body, &metrics); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if metrics.NPV != 3680.65 || metrics.PaybackPeriod != 6.25 {
		t.Errorf("Unexpected metrics: %+v", metrics)
	}
}

func TestAnalysisHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid configuration", domain.NewConfigurationError("investment_years", "must be between 1 and 20"), fiber.StatusUnprocessableEntity},
		{"unknown scope", domain.NewScopeNotFoundError(domain.ProjectScope("missing")), fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			financial := &stubFinancialService{
				runProject: func(ctx context.Context, projectID string) (*domain.FinancialMetrics, error) {
					return nil, tt.err
				},
			}
			app := testApp(financial, &stubEnvironmentalService{})

			resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/projects/p-1/financial-analysis", nil))
			if err != nil {
				t.Fatalf("Request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("Status = %d, expected %d", resp.StatusCode, tt.wantStatus)
			}

			body, _ := io.ReadAll(resp.Body)
			var payload map[string]string
			if err := json.Unmarshal(body, &payload); err != nil {
				t.Fatalf("Error body is not valid JSON: %v", err)
			}
			if payload["error"] == "" {
				t.Error("Error body should carry a message")
			}
		})
	}
}

func TestAnalysisHandler_GetLoanSchedule(t *testing.T) {
	financial := &stubFinancialService{
		schedule: func(ctx context.Context, projectID string) ([]domain.LoanPeriod, error) {
			return []domain.LoanPeriod{
				{Period: 0, Balance: 100000},
				{Period: 1, Payment: 12950.46},
			}, nil
		},
	}
	app := testApp(financial, &stubEnvironmentalService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/projects/p-1/loan-schedule", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Status = %d, expected 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		Schedule []domain.LoanPeriod `json:"schedule"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if len(payload.Schedule) != 2 {
		t.Errorf("Expected 2 schedule rows, got %d", len(payload.Schedule))
	}
}

func TestAnalysisHandler_RunEnvironmental(t *testing.T) {
	environmental := &stubEnvironmentalService{
		run: func(ctx context.Context, analysisID string) (bool, error) {
			return false, nil
		},
	}
	app := testApp(&stubFinancialService{}, environmental)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/environmental-analyses/env-1/run", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	// Non-computable is a defined outcome, reported in the body.
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Status = %d, expected 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var payload map[string]bool
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if computable, ok := payload["computable"]; !ok || computable {
		t.Errorf("Expected computable=false in the body, got %v", payload)
	}
}
