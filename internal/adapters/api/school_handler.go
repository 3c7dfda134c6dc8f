package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"nosqlkit.app/internal/core/school"
	"nosqlkit.app/internal/ports"
	"nosqlkit.app/pkg/errors"
)

// InsertSchoolResponse represents the HTTP response of a school insert
type InsertSchoolResponse struct {
	ID string `json:"id"`
}

// listSchools handles GET /api/schools requests
func (s *HTTPServerAdapter) listSchools(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		docs []ports.Document
		err  error
	)
	if topic, ok := c.GetQuery("topic"); ok {
		slog.Debug("Listing schools by topic", "topic", topic)
		docs, err = school.SchoolsByTopic(ctx, s.collection, topic)
	} else {
		slog.Debug("Listing all schools")
		docs, err = school.ListAll(ctx, s.collection)
	}
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, docs)
}

// insertSchool handles POST /api/schools requests
func (s *HTTPServerAdapter) insertSchool(c *gin.Context) {
	var fields ports.Document
	if err := c.ShouldBindJSON(&fields); err != nil {
		slog.Debug("Request binding error", "error", err)
		s.handleError(c, errors.NewValidationError("request body must be a JSON object"))
		return
	}

	id, err := school.InsertSchool(c.Request.Context(), s.collection, fields)
	if err != nil {
		s.handleError(c, err)
		return
	}

	slog.Debug("School inserted", "id", id)
	c.JSON(http.StatusCreated, InsertSchoolResponse{ID: id})
}
