package database

import (
	"path/filepath"
	"testing"

	"github.com/arnavshah/roster-api-go/pkg/config"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(&config.Config{DataPath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	return db
}

func TestRecordUsage(t *testing.T) {
	db := openTestDB(t)

	key := APIKey{Key: "parish.sig", Name: "parish"}
	if err := db.Create(&key).Error; err != nil {
		t.Fatalf("create key: %v", err)
	}

	if err := RecordUsage(db, key.ID, 20, 5); err != nil {
		t.Fatalf("record usage: %v", err)
	}
	if err := RecordUsage(db, key.ID, 10, 3); err != nil {
		t.Fatalf("record usage: %v", err)
	}

	history, err := UsageHistory(db, key.ID)
	if err != nil {
		t.Fatalf("usage history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("Expected one usage row for today, got %d", len(history))
	}
	u := history[0]
	if u.RequestCount != 2 || u.TotalParticipants != 30 || u.TotalDays != 8 {
		t.Errorf("unexpected usage %+v", u)
	}

	n, err := RequestsToday(db, key.ID)
	if err != nil || n != 2 {
		t.Errorf("Expected 2 requests today, got %d (%v)", n, err)
	}
}

func TestRequestsToday_NoUsage(t *testing.T) {
	db := openTestDB(t)
	n, err := RequestsToday(db, 99)
	if err != nil || n != 0 {
		t.Errorf("Expected 0 requests, got %d (%v)", n, err)
	}
}
