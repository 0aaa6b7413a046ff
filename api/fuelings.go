package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/Domenick1991/aerodrome/internal/repository"
	"github.com/Domenick1991/aerodrome/internal/rules"
	"github.com/gin-gonic/gin"
)

type FuelingHandler struct {
	repo   repository.FuelingRepository
	access *rules.AccessPolicy
}

type fuelingRequest struct {
	OccurredAt     string  `json:"occurred_at" binding:"required"`
	QuantityLiters float64 `json:"quantity_liters" binding:"required"`
	Cost           float64 `json:"cost"`
	AircraftID     string  `json:"aircraft_id" binding:"required"`
}

func NewFuelingHandler(repo repository.FuelingRepository, access *rules.AccessPolicy) *FuelingHandler {
	return &FuelingHandler{repo: repo, access: access}
}

func (h *FuelingHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *FuelingHandler) list(c *gin.Context) {
	if !requireStaff(c) {
		return
	}
	fuelings, err := h.repo.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, fuelings)
}

// get is open to staff and to the owner of the fueled aircraft.
func (h *FuelingHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	fueling, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.access.AuthorizeAircraft(c.Request.Context(), identityFrom(c), fueling.AircraftID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, fueling)
}

func (h *FuelingHandler) create(c *gin.Context) {
	if !requireStaff(c) {
		return
	}
	fueling, ok := h.bind(c)
	if !ok {
		return
	}
	if err := h.repo.Create(c.Request.Context(), fueling); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fueling)
}

func (h *FuelingHandler) update(c *gin.Context) {
	if !requireStaff(c) {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	fueling, ok := h.bind(c)
	if !ok {
		return
	}
	fueling.ID = id
	if err := h.repo.Update(c.Request.Context(), fueling); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, fueling)
}

func (h *FuelingHandler) remove(c *gin.Context) {
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

func (h *FuelingHandler) bind(c *gin.Context) (*domain.Fueling, bool) {
	var req fuelingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	occurredAt, err := parseTime(req.OccurredAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid occurred_at"})
		return nil, false
	}
	return &domain.Fueling{
		OccurredAt:     occurredAt,
		QuantityLiters: req.QuantityLiters,
		Cost:           req.Cost,
		AircraftID:     req.AircraftID,
	}, true
}
