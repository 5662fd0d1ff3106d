package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/selimhany/airreserve/internal/repository"
)

// respondError maps repository sentinels onto HTTP statuses; anything
// unrecognized gets the caller's fallback status.
func respondError(c *gin.Context, err error, fallback int) {
	status := fallback
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, repository.ErrSeatNotAvailable),
		errors.Is(err, repository.ErrNoAvailableSeats),
		errors.Is(err, repository.ErrPromotionExhausted):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
