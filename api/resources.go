package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/Domenick1991/aerodrome/internal/service/resources"
	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	service resources.ResourceUseCase
}

type resourceRequest struct {
	Name      string  `json:"name" binding:"required"`
	Kind      string  `json:"kind" binding:"required,oneof=HANGAR PARKING MAINTENANCE"`
	Capacity  int     `json:"capacity" binding:"required"`
	DayRate   float64 `json:"day_rate"`
	WeekRate  float64 `json:"week_rate"`
	MonthRate float64 `json:"month_rate"`
}

func NewResourceHandler(service resources.ResourceUseCase) *ResourceHandler {
	return &ResourceHandler{service: service}
}

func (h *ResourceHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *ResourceHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ResourceHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	resource, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) create(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resource := toResource(req)
	if err := h.service.Create(c.Request.Context(), identityFrom(c), resource); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resource)
}

func (h *ResourceHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resource := toResource(req)
	resource.ID = id
	if err := h.service.Update(c.Request.Context(), identityFrom(c), resource); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) remove(c *gin.Context) {
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

func toResource(req resourceRequest) *domain.Resource {
	return &domain.Resource{
		Name:      req.Name,
		Kind:      domain.ResourceKind(req.Kind),
		Capacity:  req.Capacity,
		DayRate:   req.DayRate,
		WeekRate:  req.WeekRate,
		MonthRate: req.MonthRate,
	}
}
