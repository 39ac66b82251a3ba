package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/errs"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/models"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/sensor"
)

// SensorHandler serves obstacle ingest and the report history read.
type SensorHandler struct {
	ingest *sensor.Service
}

func NewSensorHandler(ingest *sensor.Service) *SensorHandler {
	return &SensorHandler{ingest: ingest}
}

func (h *SensorHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/sensors/:id/data", h.Record)
	r.DELETE("/api/sensors/:id/obstacle", h.ClearObstacle)
	r.GET("/api/sensor-reports", h.Reports)
}

func (h *SensorHandler) Record(c *gin.Context) {
	var req models.SensorDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errs.Wrap(errs.InvalidInput, err, "invalid sensor data"))
		return
	}

	edgeID, obstacleType, description := req.EdgeID, req.ObstacleType, req.Description
	if edgeID == "" && req.Data != "" {
		var err error
		edgeID, obstacleType, description, err = sensor.ParseEdgeRef(req.Data)
		if err != nil {
			writeError(c, err)
			return
		}
	}

	sensorID := c.Param("id")
	if err := h.ingest.Record(sensorID, edgeID, obstacleType, description); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AckResponse{
		Message: "obstacle recorded, edge " + edgeID + " blocked",
	})
}

func (h *SensorHandler) ClearObstacle(c *gin.Context) {
	sensorID := c.Param("id")
	if err := h.ingest.ClearObstacle(sensorID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AckResponse{Message: "obstacle cleared for sensor " + sensorID})
}

func (h *SensorHandler) Reports(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(c, errs.New(errs.InvalidInput, "limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	reports, err := h.ingest.Reports(limit)
	if err != nil {
		writeError(c, errs.Wrap(errs.Internal, err, "reading report history"))
		return
	}
	if reports == nil {
		reports = []sensor.Report{}
	}
	c.JSON(http.StatusOK, reports)
}
