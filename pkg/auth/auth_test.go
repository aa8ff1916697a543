package auth

import (
	"path/filepath"
	"testing"

	"github.com/arnavshah/roster-api-go/pkg/config"
	"github.com/arnavshah/roster-api-go/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

func testService() *Service {
	s := NewService("jwt-secret", "master-secret")
	s.BcryptCost = bcrypt.MinCost
	return s
}

func TestHMACKey(t *testing.T) {
	s := testService()

	key := s.GenerateHMACKey("st.george")
	name, err := s.VerifyHMACKey(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "st.george" {
		t.Errorf("Expected name st.george, got %s", name)
	}

	other := NewService("jwt-secret", "another-secret")
	if _, err := other.VerifyHMACKey(key); err == nil {
		t.Errorf("Expected a key signed with another secret to be rejected")
	}
	for _, bad := range []string{"", "nodot", ".sig", "name."} {
		if _, err := s.VerifyHMACKey(bad); err == nil {
			t.Errorf("Expected %q to be rejected", bad)
		}
	}
}

func TestToken(t *testing.T) {
	s := testService()

	token, err := s.CreateToken("admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := s.VerifyToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("Expected username admin, got %s", claims.Username)
	}

	if _, err := NewService("other", "master-secret").VerifyToken(token); err == nil {
		t.Errorf("Expected a token signed with another secret to be rejected")
	}
}

func TestPasswordHash(t *testing.T) {
	s := testService()
	hash, err := s.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !CheckPasswordHash("hunter2", hash) || CheckPasswordHash("wrong", hash) {
		t.Errorf("password check mismatch")
	}
}

func TestEnsureAdminExists(t *testing.T) {
	db, err := database.Open(&config.Config{DataPath: filepath.Join(t.TempDir(), "auth.db")})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	s := testService()

	for i := 0; i < 2; i++ {
		if err := s.EnsureAdminExists(db, "admin", "secret"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	var count int64
	db.Model(&database.MasterUser{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly one admin, got %d", count)
	}
}

func TestKeyPreview(t *testing.T) {
	if got := KeyPreview("short"); got != "****" {
		t.Errorf("Expected ****, got %s", got)
	}
	if got := KeyPreview("parish.0123456789abcdef"); got != "par...cdef" {
		t.Errorf("Expected par...cdef, got %s", got)
	}
}
