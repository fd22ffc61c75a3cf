package handlers

import (
	"net/http"

	"github.com/SscSPs/contas_app/internal/core/aggregation"
	"github.com/SscSPs/contas_app/internal/core/domain"
	portssvc "github.com/SscSPs/contas_app/internal/core/ports/services"
	"github.com/SscSPs/contas_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportKeyHeader carries the cache key of a monthly report so that the
// response cache in front of the API can key and invalidate entries.
const reportKeyHeader = "X-Report-Key"

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	formatter        dto.MoneyFormatter
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService, formatter dto.MoneyFormatter) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		formatter:        formatter,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, formatter dto.MoneyFormatter) {
	h := newReportingHandler(reportingService, formatter)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/summary", h.getFinancialSummary)
		reportingGroup.GET("/balance-evolution", h.getBalanceEvolution)
		reportingGroup.GET("/categories", h.getCategoryBreakdown)
		reportingGroup.GET("/vendors", h.getVendorBreakdown)
		reportingGroup.GET("/payment-methods", h.getPaymentUtilization)
		reportingGroup.GET("/dashboard", h.getDashboard)
		reportingGroup.GET("/annual", h.getAnnualReport)
	}
}

// bindReportQuery reads the monthly report parameters of the request.
func bindReportQuery(c *gin.Context) (domain.ReportQuery, bool) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return domain.ReportQuery{}, false
	}

	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "report parameters")
		return domain.ReportQuery{}, false
	}

	q := params.ToReportQuery(ownerID)
	c.Header(reportKeyHeader, aggregation.CacheKey(q))
	return q, true
}

// getFinancialSummary godoc
// @Summary Monthly financial summary
// @Description Bill counts and values by effective status plus ledger inflow, outflow and net for the month
// @Tags reports
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Param accountId query []string false "Restrict to these bank accounts" collectionFormat(multi)
// @Success 200 {object} dto.FinancialSummaryResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getFinancialSummary(c *gin.Context) {
	q, ok := bindReportQuery(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.FinancialSummary(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Failed to generate financial summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToFinancialSummaryResponse(summary, h.formatter))
}

// getBalanceEvolution godoc
// @Summary Balance evolution
// @Description Month-end balances of every active account over the trailing window, on one shared date axis
// @Tags reports
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Param accountId query []string false "Restrict to these bank accounts" collectionFormat(multi)
// @Success 200 {object} domain.BalanceEvolution
// @Failure 400 {object} map[string]string "Invalid period"
// @Security BearerAuth
// @Router /reports/balance-evolution [get]
func (h *reportingHandler) getBalanceEvolution(c *gin.Context) {
	q, ok := bindReportQuery(c)
	if !ok {
		return
	}

	evolution, err := h.reportingService.BalanceEvolution(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Failed to generate balance evolution")
		return
	}
	c.JSON(http.StatusOK, evolution)
}

// getCategoryBreakdown godoc
// @Summary Spending by vendor category
// @Tags reports
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Param accountId query []string false "Restrict to these bank accounts" collectionFormat(multi)
// @Success 200 {array} domain.BreakdownRow
// @Failure 400 {object} map[string]string "Invalid period"
// @Security BearerAuth
// @Router /reports/categories [get]
func (h *reportingHandler) getCategoryBreakdown(c *gin.Context) {
	q, ok := bindReportQuery(c)
	if !ok {
		return
	}

	rows, err := h.reportingService.CategoryBreakdown(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Failed to generate category breakdown")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// getVendorBreakdown godoc
// @Summary Spending by vendor
// @Tags reports
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Param accountId query []string false "Restrict to these bank accounts" collectionFormat(multi)
// @Success 200 {array} domain.BreakdownRow
// @Failure 400 {object} map[string]string "Invalid period"
// @Security BearerAuth
// @Router /reports/vendors [get]
func (h *reportingHandler) getVendorBreakdown(c *gin.Context) {
	q, ok := bindReportQuery(c)
	if !ok {
		return
	}

	rows, err := h.reportingService.VendorBreakdown(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Failed to generate vendor breakdown")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// getPaymentUtilization godoc
// @Summary Payment method and card utilization
// @Tags reports
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Param accountId query []string false "Restrict to these bank accounts" collectionFormat(multi)
// @Success 200 {object} domain.PaymentUtilization
// @Failure 400 {object} map[string]string "Invalid period"
// @Security BearerAuth
// @Router /reports/payment-methods [get]
func (h *reportingHandler) getPaymentUtilization(c *gin.Context) {
	q, ok := bindReportQuery(c)
	if !ok {
		return
	}

	utilization, err := h.reportingService.PaymentUtilization(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Failed to generate payment utilization")
		return
	}
	c.JSON(http.StatusOK, utilization)
}

// getDashboard godoc
// @Summary Dashboard
// @Description Every monthly report computed from one snapshot
// @Tags reports
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Param accountId query []string false "Restrict to these bank accounts" collectionFormat(multi)
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	q, ok := bindReportQuery(c)
	if !ok {
		return
	}

	dashboard, err := h.reportingService.Dashboard(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Failed to generate dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(dashboard, h.formatter))
}

// getAnnualReport godoc
// @Summary Annual report
// @Description Per-month inflow, outflow, net and paid bill totals for a year
// @Tags reports
// @Produce json
// @Param year query int true "Year"
// @Param accountId query []string false "Restrict to these bank accounts" collectionFormat(multi)
// @Success 200 {object} domain.AnnualReport
// @Failure 400 {object} map[string]string "Invalid year"
// @Security BearerAuth
// @Router /reports/annual [get]
func (h *reportingHandler) getAnnualReport(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var params dto.AnnualReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "report parameters")
		return
	}

	report, err := h.reportingService.AnnualReport(c.Request.Context(), ownerID, params.Year, params.AccountIDs)
	if err != nil {
		respondError(c, err, "Failed to generate annual report")
		return
	}
	c.JSON(http.StatusOK, report)
}
