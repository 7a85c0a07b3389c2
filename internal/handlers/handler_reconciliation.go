package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	portssvc "github.com/SscSPs/bank_recon_engine/internal/core/ports/services"
	"github.com/SscSPs/bank_recon_engine/internal/dto"
	"github.com/SscSPs/bank_recon_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles HTTP requests related to reconciliations.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

// RegisterReconciliationRoutes registers reconciliation routes on an organization-scoped group.
// heavy runs before the auto-reconcile handler only.
func RegisterReconciliationRoutes(org *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade, heavy ...gin.HandlerFunc) {
	h := &reconciliationHandler{reconciliationService: reconciliationService}

	account := org.Group("/accounts/:account_id")
	{
		account.POST("/reconciliations/auto", withLimits(heavy, h.autoReconcile)...)
		account.GET("/unmatched-lines", h.listUnmatchedLines)
	}
	org.GET("/reconciliations/:reconciliation_id", h.getReconciliation)
}

// autoReconcile godoc
// @Summary Auto-reconcile an account for a period
// @Description Matches statement lines to ledger transactions by date and amount. Running it again adds no duplicate matches.
// @Tags reconciliations
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   account_id path string true "Bank account ID"
// @Param   period body dto.AutoReconcileRequest true "Reconciliation period"
// @Success 200 {object} dto.ReconcileResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 404 {object} map[string]string "No statement data for the period"
// @Failure 500 {object} map[string]string "Failed to reconcile"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/{account_id}/reconciliations/auto [post]
func (h *reconciliationHandler) autoReconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("organization_id")
	accountID := c.Param("account_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.AutoReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AutoReconcile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage("Invalid request format", err)})
		return
	}
	start, end, ok := parseRange(c, req.PeriodStart, req.PeriodEnd)
	if !ok {
		return
	}

	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received auto-reconcile request", slog.String("period_start", req.PeriodStart), slog.String("period_end", req.PeriodEnd))

	result, err := h.reconciliationService.AutoReconcile(c.Request.Context(), orgID, accountID, start, end, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to reconcile")
		return
	}
	c.JSON(http.StatusOK, dto.ToReconcileResponse(result))
}

// getReconciliation godoc
// @Summary Get a reconciliation with its matches
// @Tags reconciliations
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   reconciliation_id path string true "Reconciliation ID"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 404 {object} map[string]string "Reconciliation not found"
// @Failure 500 {object} map[string]string "Failed to retrieve reconciliation"
// @Security BearerAuth
// @Router /organizations/{organization_id}/reconciliations/{reconciliation_id} [get]
func (h *reconciliationHandler) getReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	detail, err := h.reconciliationService.GetReconciliation(c.Request.Context(), c.Param("organization_id"), c.Param("reconciliation_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve reconciliation")
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(detail))
}

// listUnmatchedLines godoc
// @Summary List unmatched statement lines
// @Tags reconciliations
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   account_id path string true "Bank account ID"
// @Param   from query string true "Start date (YYYY-MM-DD)"
// @Param   to query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} dto.StatementLineResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Failure 500 {object} map[string]string "Failed to list unmatched lines"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/{account_id}/unmatched-lines [get]
func (h *reconciliationHandler) listUnmatchedLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage("Invalid query parameters", err)})
		return
	}
	start, end, ok := parseRange(c, params.From, params.To)
	if !ok {
		return
	}

	lines, err := h.reconciliationService.ListUnmatchedLines(c.Request.Context(), c.Param("organization_id"), c.Param("account_id"), start, end)
	if err != nil {
		respondError(c, logger, err, "Failed to list unmatched lines")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementLineResponses(lines))
}

// parseRange parses two validated YYYY-MM-DD values, writing 400 on failure.
func parseRange(c *gin.Context, from, to string) (start, end time.Time, ok bool) {
	var err error
	if start, err = domain.ParseDate(from); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date: " + from})
		return start, end, false
	}
	if end, err = domain.ParseDate(to); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date: " + to})
		return start, end, false
	}
	return start, end, true
}
