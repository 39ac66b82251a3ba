package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/errs"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/graph"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/models"
)

// GraphHandler serves node and edge CRUD plus the admin blocked toggle.
type GraphHandler struct {
	store *graph.Store
}

func NewGraphHandler(store *graph.Store) *GraphHandler {
	return &GraphHandler{store: store}
}

func (h *GraphHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/nodes", h.CreateNode)
	r.GET("/api/nodes", h.ListNodes)
	r.PUT("/api/nodes/:id", h.UpdateNode)
	r.POST("/api/edges", h.CreateEdge)
	r.GET("/api/edges", h.ListEdges)
	r.PUT("/api/edges/:id/blocked", h.SetBlocked)
}

func (h *GraphHandler) CreateNode(c *gin.Context) {
	var req models.NodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errs.Wrap(errs.InvalidInput, err, "invalid node request"))
		return
	}
	if err := h.store.AddNode(req.ID, req.Name, req.Latitude, req.Longitude); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.AckResponse{Message: "node " + req.ID + " created"})
}

func (h *GraphHandler) ListNodes(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Nodes())
}

func (h *GraphHandler) UpdateNode(c *gin.Context) {
	var req models.NodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errs.Wrap(errs.InvalidInput, err, "invalid node request"))
		return
	}
	id := c.Param("id")
	if err := h.store.UpdateNode(id, req.Name, req.Latitude, req.Longitude); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AckResponse{Message: "node " + id + " updated"})
}

func (h *GraphHandler) CreateEdge(c *gin.Context) {
	var req models.EdgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errs.Wrap(errs.InvalidInput, err, "invalid edge request"))
		return
	}
	if err := h.store.AddEdge(req.ID, req.From, req.To, req.Weight); err != nil {
		writeError(c, err)
		return
	}
	if req.Bidirectional {
		if err := h.store.AddEdge(req.ID+"-rev", req.To, req.From, req.Weight); err != nil {
			writeError(c, err)
			return
		}
	}
	c.JSON(http.StatusCreated, models.AckResponse{Message: "edge " + req.ID + " created"})
}

func (h *GraphHandler) ListEdges(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Edges())
}

func (h *GraphHandler) SetBlocked(c *gin.Context) {
	var req models.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errs.Wrap(errs.InvalidInput, err, "invalid block request"))
		return
	}
	id := c.Param("id")
	if err := h.store.SetBlocked(id, req.Blocked); err != nil {
		writeError(c, err)
		return
	}
	state := "unblocked"
	if req.Blocked {
		state = "blocked"
	}
	c.JSON(http.StatusOK, models.AckResponse{Message: "edge " + id + " " + state})
}
