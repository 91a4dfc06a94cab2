package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/finbooks/internal/core/ports/services"
	"github.com/finbooks/finbooks/internal/dto"
	"github.com/finbooks/finbooks/internal/middleware"
)

// invoiceHandler handles HTTP requests related to customer invoices
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler
func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

// registerInvoiceRoutes registers routes related to invoices
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoice_id", h.getInvoice)
		invoices.POST("/:invoice_id/payments", h.recordPayment)
		invoices.POST("/:invoice_id/cancel", h.cancelInvoice)
	}
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Creates an invoice and posts its issue entry (debit receivables, credit income)
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Duplicate invoice number"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, userID)
	if err != nil {
		logger.Warn("Failed to create invoice", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice, nil))
}

// listInvoices godoc
// @Summary List invoices
// @Description Retrieves a paginated list of invoices, optionally by status
// @Tags invoices
// @Produce json
// @Param status query string false "Status filter"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getInvoice godoc
// @Summary Get an invoice
// @Description Retrieves an invoice with its payments
// @Tags invoices
// @Produce json
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{invoice_id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	invoice, payments, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), c.Param("invoice_id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, payments))
}

// recordPayment godoc
// @Summary Record an invoice payment
// @Description Applies a payment, posts the cash entry and advances the invoice status
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice_id path string true "Invoice ID"
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.InvoicePaymentResponse
// @Failure 400 {object} map[string]string "Invalid input or overpayment"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice cancelled or already paid"
// @Security BearerAuth
// @Router /invoices/{invoice_id}/payments [post]
func (h *invoiceHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	payment, err := h.invoiceService.RecordPayment(c.Request.Context(), c.Param("invoice_id"), req, userID)
	if err != nil {
		logger.Warn("Failed to record payment", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoicePaymentResponse(payment))
}

// cancelInvoice godoc
// @Summary Cancel an invoice
// @Description Cancels an unpaid invoice and reverses its issue entry
// @Tags invoices
// @Param invoice_id path string true "Invoice ID"
// @Success 204 "Cancelled"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice paid or has payments"
// @Security BearerAuth
// @Router /invoices/{invoice_id}/cancel [post]
func (h *invoiceHandler) cancelInvoice(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.invoiceService.CancelInvoice(c.Request.Context(), c.Param("invoice_id"), userID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
