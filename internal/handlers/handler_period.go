package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	portssvc "github.com/SscSPs/bank_recon_engine/internal/core/ports/services"
	"github.com/SscSPs/bank_recon_engine/internal/dto"
	"github.com/SscSPs/bank_recon_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// periodHandler handles HTTP requests related to accounting period locks.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

// RegisterPeriodRoutes registers accounting period routes on an organization-scoped group.
func RegisterPeriodRoutes(org *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := &periodHandler{periodService: periodService}

	periods := org.Group("/accounting-periods")
	{
		periods.POST("/lock", h.lockPeriod)
		periods.POST("/unlock", h.unlockPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/status", h.periodStatus)
	}
}

// lockPeriod godoc
// @Summary Lock an accounting period
// @Description Records an advisory lock over a date range of the organization
// @Tags accounting-periods
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   period body dto.PeriodRangeRequest true "Period bounds"
// @Success 201 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 409 {object} map[string]string "Period already locked"
// @Failure 500 {object} map[string]string "Failed to lock period"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounting-periods/lock [post]
func (h *periodHandler) lockPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("organization_id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.PeriodRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage("Invalid request format", err)})
		return
	}
	start, end, ok := parseRange(c, req.PeriodStart, req.PeriodEnd)
	if !ok {
		return
	}

	period, err := h.periodService.LockPeriod(c.Request.Context(), orgID, start, end, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to lock period")
		return
	}

	logger.Info("Accounting period locked", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// unlockPeriod godoc
// @Summary Unlock an accounting period
// @Description Removes locks with exactly the given bounds
// @Tags accounting-periods
// @Accept  json
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   period body dto.PeriodRangeRequest true "Period bounds"
// @Success 200 {object} dto.UnlockPeriodResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 500 {object} map[string]string "Failed to unlock period"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounting-periods/unlock [post]
func (h *periodHandler) unlockPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PeriodRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage("Invalid request format", err)})
		return
	}
	start, end, ok := parseRange(c, req.PeriodStart, req.PeriodEnd)
	if !ok {
		return
	}

	removed, err := h.periodService.UnlockPeriod(c.Request.Context(), c.Param("organization_id"), start, end)
	if err != nil {
		respondError(c, logger, err, "Failed to unlock period")
		return
	}
	c.JSON(http.StatusOK, dto.UnlockPeriodResponse{Removed: removed})
}

// listPeriods godoc
// @Summary List locked accounting periods
// @Tags accounting-periods
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Success 200 {object} dto.ListPeriodsResponse
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounting-periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	periods, err := h.periodService.ListLockedPeriods(c.Request.Context(), c.Param("organization_id"))
	if err != nil {
		respondError(c, logger, err, "Failed to list periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPeriodsResponse(periods))
}

// periodStatus godoc
// @Summary Check whether a date is locked
// @Tags accounting-periods
// @Produce  json
// @Param   organization_id path string true "Organization ID"
// @Param   date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.PeriodStatusResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to check period status"
// @Security BearerAuth
// @Router /organizations/{organization_id}/accounting-periods/status [get]
func (h *periodHandler) periodStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.PeriodStatusParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage("Invalid query parameters", err)})
		return
	}
	date, err := domain.ParseDate(params.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date: " + params.Date})
		return
	}

	locked, err := h.periodService.IsDateLocked(c.Request.Context(), c.Param("organization_id"), date)
	if err != nil {
		respondError(c, logger, err, "Failed to check period status")
		return
	}
	c.JSON(http.StatusOK, dto.PeriodStatusResponse{Date: params.Date, Locked: locked})
}
