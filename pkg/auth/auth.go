package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/arnavshah/roster-api-go/pkg/database"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var jwtAlgorithm = jwt.SigningMethodHS256

// TokenTTL is how long an admin token stays valid
const TokenTTL = 24 * time.Hour

// Claims represents the JWT claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service signs admin tokens and roster API keys
type Service struct {
	// BcryptCost is the work factor for admin password hashes
	BcryptCost int

	jwtSecret    []byte
	masterSecret []byte
}

// NewService creates an auth service from the configured secrets
func NewService(jwtSecret, masterSecret string) *Service {
	return &Service{
		BcryptCost:   14,
		jwtSecret:    []byte(jwtSecret),
		masterSecret: []byte(masterSecret),
	}
}

// HashPassword hashes a password using bcrypt
func (s *Service) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CreateToken creates a new JWT token for an admin
func (s *Service) CreateToken(username string) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwtAlgorithm, claims)
	return token.SignedString(s.jwtSecret)
}

// VerifyToken verifies a JWT token
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwtAlgorithm {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// EnsureAdminExists creates the configured admin when no admin exists yet
func (s *Service) EnsureAdminExists(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&database.MasterUser{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return err
	}
	if err := db.Create(&database.MasterUser{Username: username, PasswordHash: hash}).Error; err != nil {
		return err
	}
	log.Printf("Default admin user created: %s", username)
	return nil
}

// GenerateHMACKey creates a signed API key for a parish or group name using HMAC-SHA256
func (s *Service) GenerateHMACKey(name string) string {
	return name + "." + s.sign(name)
}

// VerifyHMACKey validates an HMAC-signed API key and returns the name it was issued to
func (s *Service) VerifyHMACKey(key string) (string, error) {
	i := strings.LastIndex(key, ".")
	if i <= 0 || i == len(key)-1 {
		return "", errors.New("invalid key format")
	}
	name, provided := key[:i], key[i+1:]

	// Constant-time comparison
	if !hmac.Equal([]byte(provided), []byte(s.sign(name))) {
		return "", errors.New("invalid signature")
	}
	return name, nil
}

// KeyPreview masks all but the ends of a key for listings
func KeyPreview(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:3] + "..." + key[len(key)-4:]
}

func (s *Service) sign(name string) string {
	h := hmac.New(sha256.New, s.masterSecret)
	h.Write([]byte(name))
	return hex.EncodeToString(h.Sum(nil))
}
