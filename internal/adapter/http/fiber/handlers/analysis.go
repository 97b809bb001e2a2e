package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/evplan/internal/ports"
)

type AnalysisHandler struct {
	financial     ports.FinancialAnalysisService
	environmental ports.EnvironmentalAnalysisService
	log           *zap.Logger
}

func NewAnalysisHandler(
	financial ports.FinancialAnalysisService,
	environmental ports.EnvironmentalAnalysisService,
	log *zap.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		financial:     financial,
		environmental: environmental,
		log:           log,
	}
}

// RunProjectFinancial triggers a full financial recompute for a project.
func (h *AnalysisHandler) RunProjectFinancial(c *fiber.Ctx) error {
	metrics, err := h.financial.RunProjectAnalysis(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(metrics)
}

// RunStationFinancial triggers a full financial recompute for one station.
func (h *AnalysisHandler) RunStationFinancial(c *fiber.Ctx) error {
	metrics, err := h.financial.RunStationAnalysis(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(metrics)
}

// GetLoanSchedule recomputes the amortization schedule from the project's
// current parameters.
func (h *AnalysisHandler) GetLoanSchedule(c *fiber.Ctx) error {
	schedule, err := h.financial.LoanSchedule(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"schedule": schedule})
}

// RunEnvironmental recomputes a stored environmental analysis. A
// non-computable outcome is reported in the body, not as an error status.
func (h *AnalysisHandler) RunEnvironmental(c *fiber.Ctx) error {
	computable, err := h.environmental.Run(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"computable": computable})
}
