package handlers

import (
	"net/http"

	"github.com/arnavshah/roster-api-go/pkg/models"
	"github.com/arnavshah/roster-api-go/pkg/roster"
	"github.com/arnavshah/roster-api-go/pkg/scheduler"
	"github.com/gin-gonic/gin"
)

// ValidateInput checks a roster request and reports its cohorts and bands without drawing
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input.Participants) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one participant is required",
		})
		return
	}

	tracks := h.tracksFor(input.Tracks)
	for i, p := range input.Participants {
		valid, err := roster.ValidateParticipant(i+1, p, tracks)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
			return
		}
		input.Participants[i] = valid
	}

	slots := h.slotsFor(input.SlotCount)
	sched := scheduler.NewScheduler(tracks, slots, nil)
	if err := sched.Prepare(input.Participants); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":   true,
		"cohorts": sched.Summaries(),
		"stats": gin.H{
			"participant_count": len(input.Participants),
			"slot_count":        slots,
			"track_count":       len(tracks),
			"days":              sched.RotationCount(),
		},
	})
}
