package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/errs"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/graph"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/models"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/routing"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/shelter"
)

// RoutingHandler serves start/end route queries and the nearest-shelter
// search that combines the graph with live shelter capacity.
type RoutingHandler struct {
	store    *graph.Store
	shelters *shelter.Registry
	resolver *routing.Resolver
}

func NewRoutingHandler(store *graph.Store, shelters *shelter.Registry, resolver *routing.Resolver) *RoutingHandler {
	return &RoutingHandler{store: store, shelters: shelters, resolver: resolver}
}

func (h *RoutingHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/route", h.Route)
	r.GET("/api/nearest-shelter-path", h.NearestShelterPath)
}

func (h *RoutingHandler) Route(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		writeError(c, errs.New(errs.InvalidInput, "start and end query parameters are required"))
		return
	}

	result, err := routing.ShortestPath(c.Request.Context(), h.store.Snapshot(), start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.RouteResponse{Path: result.Path, Distance: result.Distance})
}

func (h *RoutingHandler) NearestShelterPath(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("userLat"), 64)
	if err != nil {
		writeError(c, errs.New(errs.InvalidInput, "userLat is required and must be a number"))
		return
	}
	lng, err := strconv.ParseFloat(c.Query("userLng"), 64)
	if err != nil {
		writeError(c, errs.New(errs.InvalidInput, "userLng is required and must be a number"))
		return
	}

	candidates := shelterCandidates(h.shelters)
	result, err := h.resolver.NearestShelter(c.Request.Context(), routing.Coordinate{Lat: lat, Lon: lng}, candidates)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NearestShelterResponse{
		ShelterID:   result.ShelterID,
		ShelterName: result.ShelterName,
		Path:        result.Route.Path,
		Distance:    result.Route.Distance,
	})
}

// shelterCandidates adapts the registry read-model to the resolver input.
func shelterCandidates(reg *shelter.Registry) []routing.ShelterCandidate {
	infos := reg.List()
	out := make([]routing.ShelterCandidate, 0, len(infos))
	for _, s := range infos {
		out = append(out, routing.ShelterCandidate{
			ID:        s.ID,
			Name:      s.Name,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
			Remaining: s.Remaining,
		})
	}
	return out
}
