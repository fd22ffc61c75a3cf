package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/contas_app/internal/core/ports/services"
	"github.com/SscSPs/contas_app/internal/dto"
	"github.com/SscSPs/contas_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// billHandler handles HTTP requests related to bills and installment plans.
type billHandler struct {
	billService portssvc.BillSvcFacade
}

func newBillHandler(bs portssvc.BillSvcFacade) *billHandler {
	return &billHandler{billService: bs}
}

// registerBillRoutes registers routes related to bills and plans.
func registerBillRoutes(rg *gin.RouterGroup, billService portssvc.BillSvcFacade) {
	h := newBillHandler(billService)

	bills := rg.Group("/bills")
	{
		bills.POST("", h.createBill)
		bills.GET("", h.listBills)
		bills.GET("/:billID", h.getBill)
		bills.PATCH("/:billID", h.updateBill)
		bills.DELETE("/:billID", h.deleteBill)
		bills.POST("/:billID/pay", h.payBill)
		bills.POST("/:billID/cancel", h.cancelBill)
		bills.POST("/:billID/cancel-remaining", h.cancelAllRemaining)
	}

	rg.GET("/plans/:planID", h.getPlan)
}

// createBill godoc
// @Summary Create a bill or installment plan
// @Description Creates one bill, or every installment of a plan when installmentCount > 1
// @Tags bills
// @Accept json
// @Produce json
// @Param bill body dto.CreateBillRequest true "Bill details"
// @Success 201 {array} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid amount, count or installments"
// @Failure 404 {object} map[string]string "Vendor not found"
// @Security BearerAuth
// @Router /bills [post]
func (h *billHandler) createBill(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	bills, err := h.billService.CreateBill(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, err, "Failed to create bill")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Bill created", slog.Int("installments", len(bills)))
	c.JSON(http.StatusCreated, dto.ToListBillResponse(bills))
}

// listBills godoc
// @Summary List bills
// @Description Lists bills by due month, effective status and vendor
// @Tags bills
// @Produce json
// @Param year query int false "Due year"
// @Param month query int false "Due month (1-12)"
// @Param status query string false "PENDING, OVERDUE, PAID or CANCELLED"
// @Param vendorID query string false "Vendor ID"
// @Success 200 {array} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /bills [get]
func (h *billHandler) listBills(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var params dto.ListBillsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	bills, err := h.billService.ListBills(c.Request.Context(), ownerID, params)
	if err != nil {
		respondError(c, err, "Failed to list bills")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBillResponse(bills))
}

// getBill godoc
// @Summary Get a bill
// @Tags bills
// @Produce json
// @Param billID path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 404 {object} map[string]string "Bill not found"
// @Security BearerAuth
// @Router /bills/{billID} [get]
func (h *billHandler) getBill(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), ownerID, c.Param("billID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve bill")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// getPlan godoc
// @Summary Get an installment plan
// @Description Returns every installment of the plan ordered by index
// @Tags bills
// @Produce json
// @Param planID path string true "Plan ID"
// @Success 200 {array} dto.BillResponse
// @Failure 404 {object} map[string]string "Plan not found"
// @Security BearerAuth
// @Router /plans/{planID} [get]
func (h *billHandler) getPlan(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	bills, err := h.billService.GetPlan(c.Request.Context(), ownerID, c.Param("planID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve plan")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBillResponse(bills))
}

// updateBill godoc
// @Summary Update an open bill
// @Description Edits an open bill. Amount edits on an installment require applyToRemaining, which spreads the difference over later open installments
// @Tags bills
// @Accept json
// @Produce json
// @Param billID path string true "Bill ID"
// @Param bill body dto.UpdateBillRequest true "Fields to update"
// @Success 200 {array} dto.BillResponse "Every bill that changed"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Bill or vendor not found"
// @Failure 409 {object} map[string]string "Bill already paid or cancelled"
// @Security BearerAuth
// @Router /bills/{billID} [patch]
func (h *billHandler) updateBill(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req dto.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	bills, err := h.billService.UpdateBill(c.Request.Context(), ownerID, c.Param("billID"), req)
	if err != nil {
		respondError(c, err, "Failed to update bill")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBillResponse(bills))
}

// payBill godoc
// @Summary Pay a bill
// @Description Marks the bill paid and posts the matching outflow in one transaction
// @Tags bills
// @Accept json
// @Produce json
// @Param billID path string true "Bill ID"
// @Param payment body dto.PayBillRequest true "Payment details"
// @Success 200 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid payment method, amount or interest"
// @Failure 404 {object} map[string]string "Bill, bank account or card not found"
// @Failure 409 {object} map[string]string "Bill already paid or cancelled"
// @Failure 503 {object} map[string]string "Concurrent change, retry"
// @Security BearerAuth
// @Router /bills/{billID}/pay [post]
func (h *billHandler) payBill(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req dto.PayBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	bill, err := h.billService.PayBill(c.Request.Context(), ownerID, c.Param("billID"), req)
	if err != nil {
		respondError(c, err, "Failed to pay bill")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Bill paid", slog.String("bill_id", bill.BillID))
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// cancelBill godoc
// @Summary Cancel a bill
// @Tags bills
// @Produce json
// @Param billID path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 404 {object} map[string]string "Bill not found"
// @Failure 409 {object} map[string]string "Bill already paid or cancelled"
// @Security BearerAuth
// @Router /bills/{billID}/cancel [post]
func (h *billHandler) cancelBill(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	bill, err := h.billService.CancelBill(c.Request.Context(), ownerID, c.Param("billID"))
	if err != nil {
		respondError(c, err, "Failed to cancel bill")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// deleteBill godoc
// @Summary Delete a bill
// @Description Cancels the bill and reports how many installments of its plan remain open
// @Tags bills
// @Produce json
// @Param billID path string true "Bill ID"
// @Success 200 {object} domain.DeleteBillResult
// @Failure 404 {object} map[string]string "Bill not found"
// @Failure 409 {object} map[string]string "Bill already paid or cancelled"
// @Security BearerAuth
// @Router /bills/{billID} [delete]
func (h *billHandler) deleteBill(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	result, err := h.billService.DeleteBill(c.Request.Context(), ownerID, c.Param("billID"))
	if err != nil {
		respondError(c, err, "Failed to delete bill")
		return
	}
	c.JSON(http.StatusOK, result)
}

// cancelAllRemaining godoc
// @Summary Cancel the remaining installments
// @Description Cancels every open installment of the bill's plan in one transaction
// @Tags bills
// @Produce json
// @Param billID path string true "Any bill of the plan"
// @Success 200 {object} domain.CancelRemainingResult
// @Failure 404 {object} map[string]string "Bill not found"
// @Security BearerAuth
// @Router /bills/{billID}/cancel-remaining [post]
func (h *billHandler) cancelAllRemaining(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	result, err := h.billService.CancelAllRemaining(c.Request.Context(), ownerID, c.Param("billID"))
	if err != nil {
		respondError(c, err, "Failed to cancel remaining installments")
		return
	}
	c.JSON(http.StatusOK, result)
}
