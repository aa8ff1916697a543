package handlers

import (
	"embed"
	"io/fs"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/arnavshah/roster-api-go/pkg/auth"
	"github.com/arnavshah/roster-api-go/pkg/config"
	"github.com/arnavshah/roster-api-go/pkg/database"
	"github.com/arnavshah/roster-api-go/pkg/loader"
	"github.com/arnavshah/roster-api-go/pkg/models"
	"github.com/arnavshah/roster-api-go/pkg/roster"
	"github.com/arnavshah/roster-api-go/pkg/scheduler"
	"github.com/arnavshah/roster-api-go/pkg/sink"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

//go:embed static/*
var staticEmbed embed.FS

// Handler contains dependencies for the route handlers
type Handler struct {
	DB     *gorm.DB
	Auth   *auth.Service
	Config *config.Config
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := h.Auth.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the HMAC API key for roster routes and enforces its daily limit
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := bearer(c)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			return
		}

		name, err := h.Auth.VerifyHMACKey(key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			return
		}

		// Fetch or create API key record to track usage
		var apiKey database.APIKey
		if err := h.DB.Where(database.APIKey{Key: key}).FirstOrCreate(&apiKey, database.APIKey{
			Key:        key,
			KeyPreview: auth.KeyPreview(key),
			Name:       name,
			RateLimit:  10000,
		}).Error; err != nil {
			respondWithError(c, http.StatusInternalServerError, "Could not load API key", err)
			return
		}

		used, err := database.RequestsToday(h.DB, apiKey.ID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, "Could not load API usage", err)
			return
		}
		if apiKey.RateLimit > 0 && used >= apiKey.RateLimit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Daily rate limit reached"})
			return
		}

		now := time.Now()
		if err := h.DB.Model(&apiKey).Update("last_used", &now).Error; err != nil {
			log.Printf("could not update last use of key %d: %v", apiKey.ID, err)
		}

		c.Set("apiKey", &apiKey)
		c.Set("keyName", name)
		c.Next()
	}
}

// generate runs one roster with a fresh random source per request
func (h *Handler) generate(participants []models.Participant, tracks []models.Track, slots int, seed *int64) (*models.ScheduleGrid, error) {
	s := time.Now().UnixNano()
	if seed != nil {
		s = *seed
	}

	sched := scheduler.NewScheduler(tracks, slots, rand.New(rand.NewSource(s)),
		scheduler.WithMaxDrawAttempts(h.Config.Roster.MaxDrawAttempts))
	grid, err := sched.Generate(participants)
	if err != nil {
		return nil, err
	}
	grid.Seed = s
	log.Printf("Generated roster %s: %d participants, %d tracks, %d slots, %d days",
		grid.RunID, len(participants), len(tracks), slots, len(grid.Days))
	return grid, nil
}

// tracksFor returns the request's tracks or the configured ones
func (h *Handler) tracksFor(tracks []models.Track) []models.Track {
	if len(tracks) > 0 {
		return tracks
	}
	return h.Config.Roster.Tracks
}

// slotsFor returns the requested slot count, or the configured default when none was sent
func (h *Handler) slotsFor(slots int) int {
	if slots == 0 {
		return h.Config.Roster.Slots
	}
	return slots
}

// ScheduleJSON handles the JSON-based roster request
func (h *Handler) ScheduleJSON(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tracks := h.tracksFor(input.Tracks)
	for i, p := range input.Participants {
		valid, err := roster.ValidateParticipant(i+1, p, tracks)
		if err != nil {
			respondWithRosterError(c, err)
			return
		}
		input.Participants[i] = valid
	}

	grid, err := h.generate(input.Participants, tracks, h.slotsFor(input.SlotCount), input.Seed)
	if err != nil {
		respondWithRosterError(c, err)
		return
	}

	h.RecordUsage(c, len(input.Participants), len(grid.Days))
	c.JSON(http.StatusOK, grid)
}

// ScheduleCSV handles roster CSV uploads and answers with the schedule as CSV
func (h *Handler) ScheduleCSV(c *gin.Context) {
	rosterFile, _ := c.FormFile("roster_file")
	if rosterFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roster_file is required"})
		return
	}

	slots := 0
	if v := c.PostForm("slot_count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slot_count must be an integer"})
			return
		}
		slots = n
	}
	var seed *int64
	if v := c.PostForm("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "seed must be an integer"})
			return
		}
		seed = &n
	}

	f, err := rosterFile.Open()
	if err != nil {
		respondWithRosterError(c, &roster.ResourceError{Resource: rosterFile.Filename, Op: "open", Err: err})
		return
	}
	defer f.Close()

	tracks := h.tracksFor(nil)
	participants, err := loader.Read(f, tracks)
	if err != nil {
		respondWithRosterError(c, err)
		return
	}

	grid, err := h.generate(participants, tracks, h.slotsFor(slots), seed)
	if err != nil {
		respondWithRosterError(c, err)
		return
	}

	h.RecordUsage(c, len(participants), len(grid.Days))

	var out strings.Builder
	if err := sink.WriteCSV(&out, grid); err != nil {
		respondWithError(c, http.StatusInternalServerError, "Could not write schedule", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id": grid.RunID,
		"seed":   grid.Seed,
		"csv":    out.String(),
	})
}

// RecordUsage records API usage for the key on the request
func (h *Handler) RecordUsage(c *gin.Context, participants, days int) {
	apiKeyRaw, exists := c.Get("apiKey")
	if !exists {
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	if err := database.RecordUsage(h.DB, apiKey.ID, participants, days); err != nil {
		log.Printf("could not record usage for key %d: %v", apiKey.ID, err)
	}
}

// Login handles admin login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user database.MasterUser
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.Auth.CreateToken(user.Username)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, "Could not create token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// GenerateKey issues a new HMAC API key for a parish or group
func (h *Handler) GenerateKey(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		RateLimit int    `json:"rate_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if req.RateLimit == 0 {
		req.RateLimit = 10000
	}

	key := h.Auth.GenerateHMACKey(req.Name)
	apiKey := database.APIKey{
		Key:        key,
		Name:       req.Name,
		KeyPreview: auth.KeyPreview(key),
		RateLimit:  req.RateLimit,
	}

	if err := h.DB.Create(&apiKey).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, "Could not create key record", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":   apiKey.ID,
		"name": req.Name,
		"key":  key,
	})
}

// ListKeys returns all API keys
func (h *Handler) ListKeys(c *gin.Context) {
	var keys []database.APIKey
	if err := h.DB.Find(&keys).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, "Could not list keys", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

// RevokeKey deletes an API key
func (h *Handler) RevokeKey(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key id"})
		return
	}
	if err := h.DB.Delete(&database.APIKey{}, uint(id)).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, "Could not delete key", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Key revoked"})
}

// UpdateKeyLimit updates the daily request limit for a key
func (h *Handler) UpdateKeyLimit(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		RateLimit int `json:"rate_limit" form:"rate_limit"`
	}

	// Try JSON first, then Form/Query
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rate_limit is required"})
			return
		}
	}

	if req.RateLimit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rate limit"})
		return
	}

	if err := h.DB.Model(&database.APIKey{}).Where("id = ?", id).Update("rate_limit", req.RateLimit).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, "Could not update key limit", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rate limit updated successfully"})
}

// GetUsage returns usage stats for a key
func (h *Handler) GetUsage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid key id"})
		return
	}
	usage, err := database.UsageHistory(h.DB, uint(id))
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, "Could not fetch usage details", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usage": usage})
}

// AdminInterface serves the admin web interface from embedded files
func (h *Handler) AdminInterface(c *gin.Context) {
	data, err := staticEmbed.ReadFile("static/index.html")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "static/index.html not found in embedded FS"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// GetStaticFS returns the embedded filesystem for static assets
func (h *Handler) GetStaticFS() http.FileSystem {
	sub, err := fs.Sub(staticEmbed, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// bearer returns the Authorization header without its "Bearer " prefix
func bearer(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}
