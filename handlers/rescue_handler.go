package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/errs"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/models"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/rescue"
)

// RescueHandler serves the dispatch queue: submissions, peek, the rescue
// operation itself, and status reads.
type RescueHandler struct {
	queue *rescue.Queue
}

func NewRescueHandler(queue *rescue.Queue) *RescueHandler {
	return &RescueHandler{queue: queue}
}

func (h *RescueHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/rescue/enqueue", h.Enqueue)
	r.GET("/api/rescue/peek", h.Peek)
	r.POST("/api/rescue/dequeue", h.Dequeue)
	r.GET("/api/rescue/queue", h.Pending)
	r.GET("/api/rescue/status", h.Status)
}

func (h *RescueHandler) Enqueue(c *gin.Context) {
	var req models.EnqueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errs.Wrap(errs.InvalidInput, err, "invalid rescue request"))
		return
	}

	queued, err := h.queue.Enqueue(rescue.Request{
		FamilyName:    req.FamilyName,
		Address:       req.Address,
		ChildrenCount: req.ChildrenCount,
		ElderlyCount:  req.ElderlyCount,
		SpecialNeeds:  req.SpecialNeeds,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, queued)
}

func (h *RescueHandler) Peek(c *gin.Context) {
	req, err := h.queue.Peek()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *RescueHandler) Dequeue(c *gin.Context) {
	req, err := h.queue.Dequeue()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *RescueHandler) Pending(c *gin.Context) {
	pending := h.queue.Pending()
	if pending == nil {
		pending = []rescue.Request{}
	}
	c.JSON(http.StatusOK, pending)
}

func (h *RescueHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, models.QueueStatusResponse{
		IsEmpty:  h.queue.IsEmpty(),
		IsFull:   h.queue.IsFull(),
		Size:     h.queue.Size(),
		Capacity: h.queue.Capacity(),
	})
}
