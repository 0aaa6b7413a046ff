package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps the engine error kinds onto HTTP statuses: 400 for bad
// input and illegal transitions, 403 for policy denials, 404 for missing
// entities, 409 for safety-interval conflicts.
func writeError(c *gin.Context, err error) {
	var (
		validation *domain.ValidationError
		conflict   *domain.ConflictError
		state      *domain.StateError
		notFound   *domain.NotFoundError
		denied     *domain.AuthorizationError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &state):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &denied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parseTime accepts ISO-8601 timestamps with or without an offset; callers
// are expected to be consistent about timezones upstream.
func parseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", value)
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
