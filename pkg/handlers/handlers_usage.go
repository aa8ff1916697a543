package handlers

import (
	"net/http"

	"github.com/arnavshah/roster-api-go/pkg/database"
	"github.com/gin-gonic/gin"
)

// GetMyUsage returns usage stats for the authenticated API key
func (h *Handler) GetMyUsage(c *gin.Context) {
	apiKeyRaw, exists := c.Get("apiKey")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	usage, err := database.UsageHistory(h.DB, apiKey.ID)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, "Could not fetch usage details", err)
		return
	}

	var totalRequests, totalParticipants, totalDays int64
	for _, u := range usage {
		totalRequests += int64(u.RequestCount)
		totalParticipants += int64(u.TotalParticipants)
		totalDays += int64(u.TotalDays)
	}

	c.JSON(http.StatusOK, gin.H{
		"key_name":      apiKey.Name,
		"rate_limit":    apiKey.RateLimit,
		"usage_history": usage,
		"totals": gin.H{
			"requests":     totalRequests,
			"participants": totalParticipants,
			"days":         totalDays,
		},
	})
}
