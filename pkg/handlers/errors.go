package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/arnavshah/roster-api-go/pkg/roster"
	"github.com/gin-gonic/gin"
)

func respondWithError(c *gin.Context, status int, userMsg string, err error) {
	if err != nil {
		log.Printf("%s: %v", userMsg, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": userMsg})
}

// rosterStatus maps a failed roster run onto an HTTP status
func rosterStatus(err error) int {
	switch {
	case errors.Is(err, roster.ErrInputParse):
		return http.StatusBadRequest
	case errors.Is(err, roster.ErrInvalidConfiguration), errors.Is(err, roster.ErrScheduleUnsatisfiable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, roster.ErrResourceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondWithRosterError(c *gin.Context, err error) {
	status := rosterStatus(err)
	if status == http.StatusInternalServerError {
		respondWithError(c, status, "Could not generate roster", err)
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
