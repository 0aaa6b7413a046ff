package api

import (
	"net/http"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/Domenick1991/aerodrome/internal/repository"
	"github.com/Domenick1991/aerodrome/internal/rules"
	"github.com/gin-gonic/gin"
)

type AircraftHandler struct {
	repo   repository.AircraftRepository
	access *rules.AccessPolicy
}

type aircraftRequest struct {
	Registration string  `json:"registration" binding:"required"`
	Make         string  `json:"make" binding:"required"`
	Model        string  `json:"model" binding:"required"`
	Dimensions   string  `json:"dimensions"`
	Weight       string  `json:"weight"`
	FuelType     *string `json:"fuel_type"`
	PilotID      *int64  `json:"pilot_id"`
}

func NewAircraftHandler(repo repository.AircraftRepository, access *rules.AccessPolicy) *AircraftHandler {
	return &AircraftHandler{repo: repo, access: access}
}

func (h *AircraftHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:registration", h.get)
	router.POST("/", h.create)
	router.PUT("/:registration", h.update)
	router.DELETE("/:registration", h.remove)
}

func (h *AircraftHandler) list(c *gin.Context) {
	if !requireStaff(c) {
		return
	}
	aircraft, err := h.repo.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, aircraft)
}

// ListMine serves /pilots/me/aircraft.
func (h *AircraftHandler) ListMine(c *gin.Context) {
	aircraft, err := h.repo.ListByPilot(c.Request.Context(), identityFrom(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, aircraft)
}

func (h *AircraftHandler) get(c *gin.Context) {
	registration := c.Param("registration")
	if err := h.access.AuthorizeAircraft(c.Request.Context(), identityFrom(c), registration); err != nil {
		writeError(c, err)
		return
	}
	aircraft, err := h.repo.GetByRegistration(c.Request.Context(), registration)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, aircraft)
}

func (h *AircraftHandler) create(c *gin.Context) {
	var req aircraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ident := identityFrom(c)
	aircraft := toAircraft(req)
	// Pilots register aircraft on themselves, whatever the payload says.
	if !ident.Role.Staff() {
		aircraft.PilotID = &ident.ID
	}
	if err := h.repo.Create(c.Request.Context(), aircraft); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, aircraft)
}

func (h *AircraftHandler) update(c *gin.Context) {
	registration := c.Param("registration")
	if err := h.access.AuthorizeAircraft(c.Request.Context(), identityFrom(c), registration); err != nil {
		writeError(c, err)
		return
	}

	var req aircraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	aircraft := toAircraft(req)
	aircraft.Registration = registration
	if err := h.repo.Update(c.Request.Context(), aircraft); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, aircraft)
}

func (h *AircraftHandler) remove(c *gin.Context) {
	registration := c.Param("registration")
	ident := identityFrom(c)

	aircraft, err := h.repo.GetByRegistration(c.Request.Context(), registration)
	if err != nil {
		writeError(c, err)
		return
	}
	owns := aircraft.PilotID != nil && *aircraft.PilotID == ident.ID
	if ident.Role != domain.RoleAdmin && !owns {
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to delete this aircraft"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), registration); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toAircraft(req aircraftRequest) *domain.Aircraft {
	return &domain.Aircraft{
		Registration: req.Registration,
		Make:         req.Make,
		Model:        req.Model,
		Dimensions:   req.Dimensions,
		Weight:       req.Weight,
		FuelType:     req.FuelType,
		PilotID:      req.PilotID,
	}
}
