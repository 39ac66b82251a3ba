// Package handlers exposes the coordination core over gin HTTP/JSON
// endpoints consumed by the browser dashboards.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/errs"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/models"
)

// statusFor maps the core error taxonomy to HTTP status codes.
func statusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.NotFound:
		return http.StatusNotFound
	case errs.Conflict:
		return http.StatusConflict
	case errs.InvalidInput:
		return http.StatusBadRequest
	case errs.Unreachable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "path", c.FullPath(), "err", err)
	}
	c.JSON(status, models.ErrorResponse{Error: err.Error()})
}
