package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/Domenick1991/aerodrome/internal/repository"
	"github.com/Domenick1991/aerodrome/internal/rules"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvoiceHandler struct {
	repo   repository.InvoiceRepository
	access *rules.AccessPolicy
}

type invoiceRequest struct {
	PaymentRef string `json:"payment_ref"`
	IssuedAt   string `json:"issued_at" binding:"required"`
}

func NewInvoiceHandler(repo repository.InvoiceRepository, access *rules.AccessPolicy) *InvoiceHandler {
	return &InvoiceHandler{repo: repo, access: access}
}

func (h *InvoiceHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *InvoiceHandler) list(c *gin.Context) {
	if !requireStaff(c) {
		return
	}
	invoices, err := h.repo.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// get lets a pilot read an invoice only when one of their bookings is billed
// on it.
func (h *InvoiceHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.access.AuthorizeInvoice(c.Request.Context(), identityFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	invoice, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) create(c *gin.Context) {
	if !requireStaff(c) {
		return
	}
	invoice, ok := h.bind(c)
	if !ok {
		return
	}
	ident := identityFrom(c)
	invoice.AgentID = &ident.ID
	if invoice.PaymentRef == "" {
		invoice.PaymentRef = uuid.NewString()
	}
	if err := h.repo.Create(c.Request.Context(), invoice); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (h *InvoiceHandler) update(c *gin.Context) {
	if !requireStaff(c) {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	current, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	invoice, ok := h.bind(c)
	if !ok {
		return
	}
	invoice.ID = id
	invoice.AgentID = current.AgentID
	if err := h.repo.Update(c.Request.Context(), invoice); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) remove(c *gin.Context) {
	if !requireStaff(c) {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InvoiceHandler) bind(c *gin.Context) (*domain.Invoice, bool) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	issuedAt, err := parseTime(req.IssuedAt)
	if err != nil {
		issuedAt, err = time.Parse("2006-01-02", req.IssuedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid issued_at"})
			return nil, false
		}
	}
	return &domain.Invoice{PaymentRef: req.PaymentRef, IssuedAt: issuedAt}, true
}
