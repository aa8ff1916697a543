package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/arnavshah/roster-api-go/pkg/models"
	"github.com/arnavshah/roster-api-go/pkg/scheduler"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultRosterYAML documents the roster file format and matches the built-in defaults
const DefaultRosterYAML = `# roster configuration
version: 1

# Duty slots per day. The command line flag or request field takes precedence.
slots: 0

# Bound on conflict retries for one slot before the run fails.
max_draw_attempts: 1000

# Tracks are scheduled side by side in this order. Sign-up answers equal to a
# track language select that track; any other answer selects every track.
tracks:
  - id: french
    label: French Liturgy
    language: French
  - id: english
    label: English Liturgy
    language: English
`

// Config holds all configuration for the application
type Config struct {
	Port            string
	GinMode         string
	DatabaseURL     string
	DataPath        string
	JWTSecret       string
	APIMasterSecret string
	AdminUsername   string
	AdminPassword   string

	RosterConfigPath string
	Roster           RosterFile
}

// RosterFile models the YAML roster configuration
type RosterFile struct {
	Version         int            `yaml:"version"`
	Slots           int            `yaml:"slots"`
	MaxDrawAttempts int            `yaml:"max_draw_attempts"`
	Tracks          []models.Track `yaml:"tracks"`
}

// DefaultRoster is used when no roster file is configured
func DefaultRoster() RosterFile {
	return RosterFile{
		Version:         1,
		MaxDrawAttempts: scheduler.DefaultMaxDrawAttempts,
		Tracks:          models.DefaultTracks(),
	}
}

// LoadDotEnv loads the first .env found in the working directory or its parents
func LoadDotEnv() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// Load reads configuration from the environment. Call LoadDotEnv first to pick up .env files.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8000"),
		GinMode:          os.Getenv("GIN_MODE"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DataPath:         getEnv("DATA_PATH", "api_keys.db"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		APIMasterSecret:  os.Getenv("API_MASTER_SECRET"),
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "admin123"),
		RosterConfigPath: os.Getenv("ROSTER_CONFIG"),
		Roster:           DefaultRoster(),
	}

	if cfg.RosterConfigPath != "" {
		rf, err := LoadRosterFile(cfg.RosterConfigPath)
		if err != nil {
			return nil, err
		}
		cfg.Roster = *rf
	}

	if v := os.Getenv("ROSTER_MAX_DRAW_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("ROSTER_MAX_DRAW_ATTEMPTS must be a positive integer, got %q", v)
		}
		cfg.Roster.MaxDrawAttempts = n
	}

	return cfg, nil
}

// LoadRosterFile reads and validates a roster YAML file. Omitted fields take the defaults.
func LoadRosterFile(path string) (*RosterFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster config: %w", err)
	}
	return ParseRoster(data)
}

// ParseRoster decodes roster YAML
func ParseRoster(data []byte) (*RosterFile, error) {
	var rf RosterFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse roster config: %w", err)
	}

	def := DefaultRoster()
	if rf.Version == 0 {
		rf.Version = def.Version
	}
	if rf.MaxDrawAttempts == 0 {
		rf.MaxDrawAttempts = def.MaxDrawAttempts
	}
	if len(rf.Tracks) == 0 {
		rf.Tracks = def.Tracks
	}
	if err := rf.Validate(); err != nil {
		return nil, err
	}
	return &rf, nil
}

// Validate checks the roster file for values no run could use
func (rf *RosterFile) Validate() error {
	if rf.Slots < 0 {
		return errors.New("roster config: slots must not be negative")
	}
	if rf.MaxDrawAttempts < 0 {
		return errors.New("roster config: max_draw_attempts must not be negative")
	}
	ids := make(map[string]bool, len(rf.Tracks))
	for i, t := range rf.Tracks {
		if t.ID == "" || t.Language == "" {
			return fmt.Errorf("roster config: track %d needs an id and a language", i+1)
		}
		if t.Language == models.LanguageBoth {
			return fmt.Errorf("roster config: track %s cannot use the language %q", t.ID, models.LanguageBoth)
		}
		if ids[t.ID] {
			return fmt.Errorf("roster config: duplicate track id %q", t.ID)
		}
		ids[t.ID] = true
		if t.Label == "" {
			rf.Tracks[i].Label = t.ID
		}
	}
	return nil
}

// getEnv returns the value of the environment variable or the default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
