package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
	"github.com/finbooks/finbooks/internal/middleware"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	balanceService   portssvc.BalanceService
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(bs portssvc.BalanceService, rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{balanceService: bs, reportingService: rs}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceService, reportingService portssvc.ReportingService) {
	h := newReportingHandler(balanceService, reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/trial-balance/verify", h.verifyTrialBalance)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/cash-flow", h.getCashFlow)
		reports.GET("/receivables-aging", h.getReceivablesAging)
	}
}

func (h *reportingHandler) periodWindow(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	from, ok := parseDateQuery(c, "from", time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	to, ok := parseDateQuery(c, "to", now)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to date cannot precede from date"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Lists every account with a non-zero balance as of a date
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.TrialBalance
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	asOf, ok := parseDateQuery(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}

	report, err := h.balanceService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to generate trial balance report", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// verifyTrialBalance godoc
// @Summary Verify the trial balance
// @Description Checks that total debits equal total credits across the ledger
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.TrialBalanceCheck
// @Security BearerAuth
// @Router /reports/trial-balance/verify [get]
func (h *reportingHandler) verifyTrialBalance(c *gin.Context) {
	asOf, ok := parseDateQuery(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}

	check, err := h.balanceService.VerifyTrialBalance(c.Request.Context(), asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, check)
}

// getProfitAndLoss godoc
// @Summary Generate profit and loss report
// @Description Summarizes income and expenses over a period
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param to query string false "End date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.ProfitLossReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	from, to, ok := h.periodWindow(c)
	if !ok {
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// getBalanceSheet godoc
// @Summary Generate balance sheet report
// @Description Statement of financial position as of a date, with retained earnings folded into equity
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.BalanceSheet
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	asOf, ok := parseDateQuery(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// getCashFlow godoc
// @Summary Generate cash flow report
// @Description Derives cash movements over a period from entries touching cash accounts
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param to query string false "End date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.CashFlowReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	from, to, ok := h.periodWindow(c)
	if !ok {
		return
	}

	report, err := h.reportingService.CashFlow(c.Request.Context(), from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// getReceivablesAging godoc
// @Summary Generate receivables aging report
// @Description Buckets outstanding invoices by days overdue
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.ReceivablesAgingReport
// @Security BearerAuth
// @Router /reports/receivables-aging [get]
func (h *reportingHandler) getReceivablesAging(c *gin.Context) {
	asOf, ok := parseDateQuery(c, "asOf", time.Now().UTC())
	if !ok {
		return
	}

	report, err := h.reportingService.ReceivablesAging(c.Request.Context(), asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
