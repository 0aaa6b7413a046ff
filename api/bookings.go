package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/Domenick1991/aerodrome/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	ResourceID   *int64  `json:"resource_id"`
	AircraftID   *string `json:"aircraft_id"`
	FuelingID    *int64  `json:"fueling_id"`
	PlannedStart string  `json:"planned_start" binding:"required"`
	PlannedEnd   string  `json:"planned_end" binding:"required"`
}

type updateBookingRequest struct {
	ResourceID   *int64  `json:"resource_id"`
	AircraftID   *string `json:"aircraft_id"`
	FuelingID    *int64  `json:"fueling_id"`
	InvoiceID    *int64  `json:"invoice_id"`
	PlannedStart string  `json:"planned_start" binding:"required"`
	PlannedEnd   string  `json:"planned_end" binding:"required"`
	ActualStart  *string `json:"actual_start"`
	ActualEnd    *string `json:"actual_end"`
	Status       string  `json:"status" binding:"required"`
}

type bookingResponse struct {
	ID           int64    `json:"id"`
	Token        string   `json:"token"`
	PilotID      int64    `json:"pilot_id"`
	ResourceID   *int64   `json:"resource_id,omitempty"`
	AircraftID   *string  `json:"aircraft_id,omitempty"`
	FuelingID    *int64   `json:"fueling_id,omitempty"`
	InvoiceID    *int64   `json:"invoice_id,omitempty"`
	PlannedStart string   `json:"planned_start"`
	PlannedEnd   string   `json:"planned_end"`
	ActualStart  *string  `json:"actual_start,omitempty"`
	ActualEnd    *string  `json:"actual_end,omitempty"`
	Status       string   `json:"status"`
	TotalCost    *float64 `json:"total_cost,omitempty"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *BookingHandler) create(c *gin.Context) {
	ident := identityFrom(c)
	if ident.Role != domain.RolePilot {
		c.JSON(http.StatusForbidden, gin.H{"error": "requires pilot privileges"})
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := parseTime(req.PlannedStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid planned_start"})
		return
	}
	end, err := parseTime(req.PlannedEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid planned_end"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), ident, booking.CreateBookingInput{
		ResourceID:   req.ResourceID,
		AircraftID:   req.AircraftID,
		FuelingID:    req.FuelingID,
		PlannedStart: start,
		PlannedEnd:   end,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context(), identityFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

// ListMine serves /pilots/me/bookings.
func (h *BookingHandler) ListMine(c *gin.Context) {
	bookings, err := h.service.ListForPilot(c.Request.Context(), identityFrom(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	found, err := h.service.Get(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := toUpdateInput(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), identityFrom(c), id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func (h *BookingHandler) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), identityFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toUpdateInput(req updateBookingRequest) (booking.UpdateBookingInput, error) {
	input := booking.UpdateBookingInput{
		ResourceID: req.ResourceID,
		AircraftID: req.AircraftID,
		FuelingID:  req.FuelingID,
		InvoiceID:  req.InvoiceID,
		Status:     domain.BookingStatus(req.Status),
	}

	var err error
	if input.PlannedStart, err = parseTime(req.PlannedStart); err != nil {
		return input, &domain.ValidationError{Reason: "invalid planned_start"}
	}
	if input.PlannedEnd, err = parseTime(req.PlannedEnd); err != nil {
		return input, &domain.ValidationError{Reason: "invalid planned_end"}
	}
	if req.ActualStart != nil {
		t, err := parseTime(*req.ActualStart)
		if err != nil {
			return input, &domain.ValidationError{Reason: "invalid actual_start"}
		}
		input.ActualStart = &t
	}
	if req.ActualEnd != nil {
		t, err := parseTime(*req.ActualEnd)
		if err != nil {
			return input, &domain.ValidationError{Reason: "invalid actual_end"}
		}
		input.ActualEnd = &t
	}
	return input, nil
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:           b.ID,
		Token:        b.Token,
		PilotID:      b.PilotID,
		ResourceID:   b.ResourceID,
		AircraftID:   b.AircraftID,
		FuelingID:    b.FuelingID,
		InvoiceID:    b.InvoiceID,
		PlannedStart: formatTime(b.PlannedStart),
		PlannedEnd:   formatTime(b.PlannedEnd),
		ActualStart:  formatTimePtr(b.ActualStart),
		ActualEnd:    formatTimePtr(b.ActualEnd),
		Status:       string(b.Status),
		TotalCost:    b.TotalCost,
	}
}

func toBookingResponses(bookings []domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	return out
}
