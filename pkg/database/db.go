package database

import (
	"fmt"
	"time"

	"github.com/arnavshah/roster-api-go/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"-"`
	KeyPreview string     `json:"key_preview"`
	Name       string     `gorm:"not null" json:"name"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table, one row per key and day
type APIUsage struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	KeyID             uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date              string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount      int    `gorm:"default:0" json:"request_count"`
	TotalParticipants int    `gorm:"default:0" json:"total_participants"`
	TotalDays         int    `gorm:"default:0" json:"total_days"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Open connects to Postgres when DatabaseURL is set, otherwise to SQLite at DataPath,
// and migrates the schema
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	gormCfg := &gorm.Config{}
	if cfg.DatabaseURL != "" {
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DatabaseURL,
			PreferSimpleProtocol: true,
		})
		gormCfg.PrepareStmt = false
	} else {
		dialector = sqlite.Open(cfg.DataPath)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// Today is the usage bucket for the current day
func Today() string {
	return time.Now().Format("2006-01-02")
}

// RecordUsage adds one request and its roster size to the key's usage for today
// with a single upsert, supported by both Postgres and SQLite
func RecordUsage(db *gorm.DB, keyID uint, participants, days int) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":      gorm.Expr("request_count + ?", 1),
			"total_participants": gorm.Expr("total_participants + ?", participants),
			"total_days":         gorm.Expr("total_days + ?", days),
		}),
	}).Create(&APIUsage{
		KeyID:             keyID,
		Date:              Today(),
		RequestCount:      1,
		TotalParticipants: participants,
		TotalDays:         days,
	}).Error
}

// RequestsToday returns how many requests the key has made today
func RequestsToday(db *gorm.DB, keyID uint) (int, error) {
	var usage APIUsage
	err := db.Where("key_id = ? AND date = ?", keyID, Today()).Limit(1).Find(&usage).Error
	if err != nil {
		return 0, err
	}
	return usage.RequestCount, nil
}

// UsageHistory returns the key's last 30 days of usage, newest first
func UsageHistory(db *gorm.DB, keyID uint) ([]APIUsage, error) {
	var usage []APIUsage
	err := db.Where("key_id = ?", keyID).Order("date desc").Limit(30).Find(&usage).Error
	return usage, err
}
