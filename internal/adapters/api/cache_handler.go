package api

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"nosqlkit.app/pkg/errors"
)

// StoreRequest represents the HTTP request for storing a value
type StoreRequest struct {
	Value interface{} `json:"value"`
}

// StoreResponse represents the HTTP response of a store
type StoreResponse struct {
	Key string `json:"key"`
}

// ValueQuery selects the decoder applied to a cache read
type ValueQuery struct {
	As string `form:"as" binding:"omitempty,decoder"`
}

// ValueResponse represents a decoded cache value
type ValueResponse struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// storeValue handles POST /api/cache requests
func (s *HTTPServerAdapter) storeValue(c *gin.Context) {
	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Debug("Request binding error", "error", err)
		s.handleError(c, errors.NewValidationError("request body must be a JSON object with a value"))
		return
	}

	key, err := s.cache.Store(c.Request.Context(), req.Value)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StoreResponse{Key: key})
}

// getValue handles GET /api/cache/:key requests
func (s *HTTPServerAdapter) getValue(c *gin.Context) {
	key := c.Param("key")

	var query ValueQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s.handleError(c, errors.NewValidationError("as must be one of: raw, str, int, float"))
		return
	}

	ctx := c.Request.Context()
	var (
		value interface{}
		found bool
		err   error
	)
	switch query.As {
	case DecoderStr:
		value, found, err = s.cache.GetStr(ctx, key)
	case DecoderInt:
		value, found, err = s.cache.GetInt(ctx, key)
	case DecoderFloat:
		value, found, err = s.cache.GetFloat(ctx, key)
	default:
		value, found, err = s.cache.Get(ctx, key, nil)
	}
	if err != nil {
		s.handleError(c, err)
		return
	}
	if !found {
		s.handleError(c, errors.NewNotFoundError("key not found"))
		return
	}

	if raw, ok := value.([]byte); ok {
		c.DataFromReader(http.StatusOK, int64(len(raw)), "application/octet-stream", bytes.NewReader(raw), nil)
		return
	}
	c.JSON(http.StatusOK, ValueResponse{Key: key, Value: value})
}
