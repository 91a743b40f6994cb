package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
)

// reportingHandler handles report generation requests.
type reportingHandler struct {
	trialBalanceService portssvc.TrialBalanceSvcFacade
}

func newReportingHandler(ts portssvc.TrialBalanceSvcFacade) *reportingHandler {
	return &reportingHandler{
		trialBalanceService: ts,
	}
}

// registerReportingRoutes registers report routes under an organization.
func registerReportingRoutes(rg *gin.RouterGroup, trialBalanceService portssvc.TrialBalanceSvcFacade) {
	h := newReportingHandler(trialBalanceService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.POST("/trial-balance/clear-hold", h.clearIntegrityHold)
	}
}

// trialBalance godoc
// @Summary Generate a trial balance
// @Description Aggregates every account's ledger totals as of a date; an unbalanced result is reported as a ledger integrity failure
// @Tags reports
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Param   includeInactive query bool false "Include inactive and archived accounts" default(false)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Ledger integrity failure"
// @Security BearerAuth
// @Router /organizations/{orgID}/reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.trialBalanceService.Generate(c.Request.Context(), orgID, params, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// clearIntegrityHold godoc
// @Summary Clear a ledger integrity hold
// @Description Re-enables trial balance generation after an unbalanced report halted it. Admin only.
// @Tags reports
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Success 204 "Hold cleared"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 422 {object} map[string]string "No hold is active"
// @Security BearerAuth
// @Router /organizations/{orgID}/reports/trial-balance/clear-hold [post]
func (h *reportingHandler) clearIntegrityHold(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.trialBalanceService.ClearIntegrityHold(c.Request.Context(), orgID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to clear integrity hold")
		return
	}

	logger.Info("Ledger integrity hold cleared", slog.String("organization_id", orgID))
	c.Status(http.StatusNoContent)
}
