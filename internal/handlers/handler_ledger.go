package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
)

// ledgerHandler handles read requests against the general ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers ledger read routes under an organization.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.GET("/accounts/:accountID/ledger", h.accountLedger)
	rg.GET("/accounts/:accountID/balance", h.accountBalance)
}

// accountLedger godoc
// @Summary Read an account's ledger
// @Description Retrieves a canonically ordered, restartable page of ledger rows with running balances
// @Tags ledger
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   accountID path string true "Account ID"
// @Param   from query string false "Inclusive lower bound on entry date (YYYY-MM-DD)"
// @Param   to query string false "Inclusive upper bound on entry date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.LedgerEntriesResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /organizations/{orgID}/accounts/{accountID}/ledger [get]
func (h *ledgerHandler) accountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	accountID := c.Param("accountID")

	var params dto.LedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for account ledger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.ledgerService.EntriesForAccount(c.Request.Context(), orgID, accountID, params, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to read account ledger")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// accountBalance godoc
// @Summary Get an account balance as of a date
// @Description Returns the account's running balance at or before the given date; defaults to now
// @Tags ledger
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   accountID path string true "Account ID"
// @Param   asOf query string false "Balance date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /organizations/{orgID}/accounts/{accountID}/balance [get]
func (h *ledgerHandler) accountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("orgID")
	accountID := c.Param("accountID")

	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.ledgerService.BalanceAsOf(c.Request.Context(), orgID, accountID, asOf, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to read account balance")
		return
	}
	c.JSON(http.StatusOK, resp)
}
