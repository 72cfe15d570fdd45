package http

import (
	"errors"
	"net/http"

	"github.com/buildwise/buildwise-backend/internal/estimation/domain"
	"github.com/gin-gonic/gin"
)

// ErrorStatus maps an engine error onto an HTTP status and error code.
// ok is false for errors that did not come from the engine.
func ErrorStatus(err error) (status int, code string, ok bool) {
	var ee *domain.EstimationError
	if !errors.As(err, &ee) {
		return http.StatusInternalServerError, "INTERNAL", false
	}
	switch ee.Kind {
	case domain.KindDegenerateWorkforce:
		return http.StatusUnprocessableEntity, string(ee.Kind), true
	default:
		return http.StatusBadRequest, string(ee.Kind), true
	}
}

// RespondError writes err in the standard {"error", "code"} shape.
func RespondError(c *gin.Context, err error) {
	status, code, ok := ErrorStatus(err)
	if !ok {
		c.JSON(status, gin.H{"error": "internal error", "code": code})
		return
	}
	body := gin.H{"error": err.Error(), "code": code}
	var ee *domain.EstimationError
	if errors.As(err, &ee) && ee.Field != "" {
		body["field"] = ee.Field
	}
	c.JSON(status, body)
}
