package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
)

// reconciliationHandler handles bank reconciliation requests.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: rs,
	}
}

// registerReconciliationRoutes registers reconciliation routes under an organization.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	recons := rg.Group("/reconciliations")
	{
		recons.POST("", h.startReconciliation)
		recons.GET("/:reconciliationID", h.getReconciliation)
		recons.POST("/:reconciliationID/auto-match", h.autoMatch)
		recons.POST("/:reconciliationID/matches", h.manualMatch)
		recons.DELETE("/:reconciliationID/matches/:bankTransactionID", h.unmatch)
		recons.POST("/:reconciliationID/recompute", h.recomputeSummary)
		recons.POST("/:reconciliationID/complete", h.complete)
	}
}

// startReconciliation godoc
// @Summary Start a bank reconciliation
// @Description Imports a statement batch and opens an IN_PROGRESS reconciliation for a bank or cash account
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   reconciliation body dto.StartReconciliationRequest true "Statement details"
// @Success 201 {object} dto.ReconciliationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account already has an active reconciliation"
// @Failure 422 {object} map[string]string "Account is not a bank or cash account"
// @Security BearerAuth
// @Router /organizations/{orgID}/reconciliations [post]
func (h *reconciliationHandler) startReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")

	var req dto.StartReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for StartReconciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	recon, err := h.reconciliationService.StartReconciliation(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to start reconciliation")
		return
	}

	logger.Info("Reconciliation started",
		slog.String("reconciliation_id", recon.ReconciliationID),
		slog.String("account_id", recon.AccountID))
	c.JSON(http.StatusCreated, dto.ToReconciliationResponse(recon))
}

// getReconciliation godoc
// @Summary Get a reconciliation
// @Description Retrieves a reconciliation with its statement lines, summary figures and both unmatched sets
// @Tags reconciliations
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   reconciliationID path string true "Reconciliation ID"
// @Success 200 {object} dto.ReconciliationDetailResponse
// @Failure 404 {object} map[string]string "Reconciliation not found"
// @Security BearerAuth
// @Router /organizations/{orgID}/reconciliations/{reconciliationID} [get]
func (h *reconciliationHandler) getReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	reconciliationID := c.Param("reconciliationID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.reconciliationService.GetReconciliation(c.Request.Context(), orgID, reconciliationID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve reconciliation")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// autoMatch godoc
// @Summary Run the automatic matcher
// @Description Pairs unmatched bank transactions with unreconciled ledger rows by amount and date proximity; deterministic for unchanged inputs
// @Tags reconciliations
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   reconciliationID path string true "Reconciliation ID"
// @Success 200 {object} dto.AutoMatchResponse
// @Failure 404 {object} map[string]string "Reconciliation not found"
// @Failure 422 {object} map[string]string "Reconciliation is not in progress"
// @Security BearerAuth
// @Router /organizations/{orgID}/reconciliations/{reconciliationID}/auto-match [post]
func (h *reconciliationHandler) autoMatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	reconciliationID := c.Param("reconciliationID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.reconciliationService.AutoMatch(c.Request.Context(), orgID, reconciliationID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to run automatic matching")
		return
	}

	logger.Info("Automatic matching finished",
		slog.String("reconciliation_id", reconciliationID),
		slog.Int("matched", len(resp.Matched)))
	c.JSON(http.StatusOK, resp)
}

// manualMatch godoc
// @Summary Match a bank transaction by hand
// @Description Pairs a bank transaction with a ledger row; amounts must still agree even though the date window is ignored
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   reconciliationID path string true "Reconciliation ID"
// @Param   match body dto.ManualMatchRequest true "Pairing"
// @Success 204 "Matched"
// @Failure 400 {object} map[string]string "Amounts do not agree"
// @Failure 404 {object} map[string]string "Reconciliation, transaction or ledger row not found"
// @Failure 409 {object} map[string]string "One side is already matched"
// @Security BearerAuth
// @Router /organizations/{orgID}/reconciliations/{reconciliationID}/matches [post]
func (h *reconciliationHandler) manualMatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	reconciliationID := c.Param("reconciliationID")

	var req dto.ManualMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ManualMatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.reconciliationService.ManualMatch(c.Request.Context(), orgID, reconciliationID, req, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to match transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// unmatch godoc
// @Summary Undo a match
// @Description Releases a bank transaction and its ledger row back to the unmatched pools
// @Tags reconciliations
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   reconciliationID path string true "Reconciliation ID"
// @Param   bankTransactionID path string true "Bank transaction ID"
// @Success 204 "Unmatched"
// @Failure 404 {object} map[string]string "Match not found"
// @Failure 422 {object} map[string]string "Reconciliation is not in progress"
// @Security BearerAuth
// @Router /organizations/{orgID}/reconciliations/{reconciliationID}/matches/{bankTransactionID} [delete]
func (h *reconciliationHandler) unmatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	reconciliationID := c.Param("reconciliationID")
	bankTransactionID := c.Param("bankTransactionID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.reconciliationService.Unmatch(c.Request.Context(), orgID, reconciliationID, bankTransactionID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to unmatch transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// recomputeSummary godoc
// @Summary Recompute reconciliation figures
// @Description Recalculates the reconciled, unmatched and discrepancy amounts from the current match set
// @Tags reconciliations
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   reconciliationID path string true "Reconciliation ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 404 {object} map[string]string "Reconciliation not found"
// @Security BearerAuth
// @Router /organizations/{orgID}/reconciliations/{reconciliationID}/recompute [post]
func (h *reconciliationHandler) recomputeSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	reconciliationID := c.Param("reconciliationID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	recon, err := h.reconciliationService.RecomputeSummary(c.Request.Context(), orgID, reconciliationID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to recompute reconciliation summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(recon))
}

// complete godoc
// @Summary Complete a reconciliation
// @Description Finishes the reconciliation; a non-zero discrepancy requires a posted adjustment entry or the run is parked in DISCREPANCY
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   reconciliationID path string true "Reconciliation ID"
// @Param   completion body dto.CompleteReconciliationRequest true "Optional adjustment entry"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 404 {object} map[string]string "Reconciliation not found"
// @Failure 422 {object} map[string]string "Unresolved discrepancy"
// @Security BearerAuth
// @Router /organizations/{orgID}/reconciliations/{reconciliationID}/complete [post]
func (h *reconciliationHandler) complete(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	reconciliationID := c.Param("reconciliationID")

	var req dto.CompleteReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Complete", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	recon, err := h.reconciliationService.Complete(c.Request.Context(), orgID, reconciliationID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to complete reconciliation")
		return
	}

	logger.Info("Reconciliation completed",
		slog.String("reconciliation_id", reconciliationID),
		slog.String("status", string(recon.Status)))
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(recon))
}
