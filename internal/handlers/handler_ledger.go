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

type ledgerHandler struct {
	ledgerService portssvc.LedgerSvc
}

// RegisterLedgerRoutes registers the banking view of an account.
func RegisterLedgerRoutes(org *gin.RouterGroup, ledgerService portssvc.LedgerSvc) {
	h := &ledgerHandler{ledgerService: ledgerService}
	org.GET("/accounts/:account_id/bank-ledger", h.getBankLedger)
}

// getBankLedger godoc
// @Summary Get the bank ledger of an account
// @Description Returns the account's transactions with bank-perspective debit/credit and a running balance
// @Tags ledger
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   account_id path string true "Bank account ID"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Param   q query string false "Case-insensitive filter on description, reference type or date"
// @Success 200 {object} dto.BankLedgerResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to build bank ledger"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounts/{account_id}/bank-ledger [get]
func (h *ledgerHandler) getBankLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("organization_id")
	accountID := c.Param("account_id")

	var params dto.BankLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage("Invalid query parameters", err)})
		return
	}

	from, to := optionalDate(params.From), optionalDate(params.To)
	logger.Debug("Building bank ledger", slog.String("account_id", accountID), slog.String("q", params.Q))

	view, err := h.ledgerService.GetBankLedger(c.Request.Context(), orgID, accountID, from, to, params.Q)
	if err != nil {
		respondError(c, logger, err, "Failed to build bank ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankLedgerResponse(view))
}

// optionalDate parses an already validated YYYY-MM-DD value; empty means unbounded.
func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return nil
	}
	return &d
}
