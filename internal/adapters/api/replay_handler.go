package api

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"nosqlkit.app/pkg/errors"
)

// replay handles GET /api/replay/:operation requests
func (s *HTTPServerAdapter) replay(c *gin.Context) {
	operation := c.Param("operation")
	ctx := c.Request.Context()

	switch c.DefaultQuery("format", "text") {
	case "json":
		record, err := s.cache.Record(ctx, operation)
		if err != nil {
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, record)
	case "text":
		var buf bytes.Buffer
		if err := s.cache.Replay(ctx, operation, &buf); err != nil {
			s.handleError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
	default:
		s.handleError(c, errors.NewValidationError("format must be one of: text, json"))
	}
}

// getHealth handles GET /api/health requests
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	results := s.health.CheckAll(c.Request.Context())

	status := http.StatusOK
	for _, result := range results {
		if !result.Healthy() {
			status = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(status, results)
}
