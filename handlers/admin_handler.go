package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/graph"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/models"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/rescue"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/shelter"
)

// AdminHandler serves the operational conveniences around the core:
// clearing volatile state between drills, and liveness.
type AdminHandler struct {
	store    *graph.Store
	shelters *shelter.Registry
	queue    *rescue.Queue
}

func NewAdminHandler(store *graph.Store, shelters *shelter.Registry, queue *rescue.Queue) *AdminHandler {
	return &AdminHandler{store: store, shelters: shelters, queue: queue}
}

func (h *AdminHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/admin/clear", h.Clear)
	r.GET("/healthz", h.Health)
}

// Clear drops all graph, shelter and queue state. Sensor report history is
// durable and stays.
func (h *AdminHandler) Clear(c *gin.Context) {
	h.store.Clear()
	h.shelters.Clear()
	h.queue.Clear()
	c.JSON(http.StatusOK, models.AckResponse{Message: "all volatile data cleared"})
}

func (h *AdminHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
