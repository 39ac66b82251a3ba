package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/errs"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/models"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/shelter"
)

// ShelterHandler serves shelter CRUD, check-in/check-out and occupancy
// reads.
type ShelterHandler struct {
	registry *shelter.Registry
}

func NewShelterHandler(registry *shelter.Registry) *ShelterHandler {
	return &ShelterHandler{registry: registry}
}

func (h *ShelterHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/shelters", h.Create)
	r.GET("/api/shelters", h.List)
	r.GET("/api/shelters/:id", h.Get)
	r.POST("/api/shelters/:id/checkin", h.CheckIn)
	r.POST("/api/shelters/:id/checkout", h.CheckOut)
	r.GET("/api/shelters/:id/population", h.Population)
	r.GET("/api/shelters/:id/remaining", h.RemainingCapacity)
}

func (h *ShelterHandler) Create(c *gin.Context) {
	var req models.ShelterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errs.Wrap(errs.InvalidInput, err, "invalid shelter request"))
		return
	}
	if err := h.registry.Create(req.ShelterID, req.Name, req.Capacity, req.Latitude, req.Longitude); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.AckResponse{Message: "shelter " + req.ShelterID + " created"})
}

func (h *ShelterHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.List())
}

func (h *ShelterHandler) Get(c *gin.Context) {
	info, err := h.registry.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *ShelterHandler) CheckIn(c *gin.Context) {
	var req models.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errs.Wrap(errs.InvalidInput, err, "invalid check-in request"))
		return
	}
	token := req.OccupantToken
	if token == "" {
		token = uuid.NewString()
	}
	if err := h.registry.CheckIn(c.Param("id"), token); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "occupant checked in",
		"occupantToken": token,
	})
}

func (h *ShelterHandler) CheckOut(c *gin.Context) {
	token, err := h.registry.CheckOut(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CheckOutResponse{OccupantToken: token})
}

func (h *ShelterHandler) Population(c *gin.Context) {
	n, err := h.registry.Population(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"population": n})
}

func (h *ShelterHandler) RemainingCapacity(c *gin.Context) {
	n, err := h.registry.RemainingCapacity(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"remainingCapacity": n})
}
