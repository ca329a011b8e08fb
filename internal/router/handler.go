package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bundlewise/go-api/pkg/ai"
	"github.com/bundlewise/go-api/pkg/global"
	"github.com/bundlewise/go-api/pkg/platform"
)

func (d *Dependencies) HealthCheck(c *gin.Context) {
	for _, p := range d.Health {
		if err := p.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Dependency connection failed", nil))
			return
		}
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK"}))
}

// respondError maps pipeline errors onto the wire contract: upstream errors
// keep the collaborator's status code, unusable generations are the client's
// 400, anything else is a 500. Messages are forwarded verbatim.
func respondError(c *gin.Context, err error) {
	var upstream *platform.UpstreamError
	if errors.As(err, &upstream) {
		status := upstream.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		c.JSON(status, global.ErrorResponse(upstream.Message, nil))
		return
	}

	var generation *ai.GenerationFailure
	if errors.As(err, &generation) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse(generation.Message, nil))
		return
	}

	c.JSON(http.StatusInternalServerError, global.ErrorResponse(err.Error(), nil))
}
