// File: /services/auth_service.go
package services

import (
	"crypto/rand"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminCookieName holds the signed admin session
const AdminCookieName = "km_admin"

var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminClaims is the admin session payload
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService guards the admin panel with a single shared password. With
// no password hash configured the panel is open.
type AuthService struct {
	passwordHash string
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
	ephemeral    bool
}

// placeholderSecrets are values shipped in sample env files
var placeholderSecrets = map[string]bool{
	"":            true,
	"change-me":   true,
	"changeme":    true,
	"secret":      true,
	"your-secret": true,
}

// NewAuthService signs sessions with secret. An empty or placeholder secret
// is replaced by a random per-process key, so sessions end on restart.
func NewAuthService(passwordHash, secret string, ttl time.Duration) *AuthService {
	s := &AuthService{
		passwordHash: passwordHash,
		secret:       []byte(secret),
		ttl:          ttl,
		now:          time.Now,
	}
	if placeholderSecrets[secret] {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic("auth: read random key: " + err.Error())
		}
		s.secret = key
		s.ephemeral = true
	}
	return s
}

// EphemeralSecret reports whether the signing key was generated at start up
func (s *AuthService) EphemeralSecret() bool {
	return s.ephemeral
}

func (s *AuthService) Enabled() bool {
	return s.passwordHash != ""
}

func (s *AuthService) TTL() time.Duration {
	return s.ttl
}

// Login checks the password and returns a signed session token
func (s *AuthService) Login(password string) (string, error) {
	if !s.Enabled() {
		return s.generateToken()
	}
	if !CheckPassword(s.passwordHash, password) {
		return "", ErrInvalidCredentials
	}
	return s.generateToken()
}

func (s *AuthService) generateToken() (string, error) {
	now := s.now()
	claims := AdminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate parses a session token
func (s *AuthService) Validate(token string) (*AdminClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &AdminClaims{}, func(tok *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*AdminClaims)
	if !ok || !parsed.Valid || claims.Role != "admin" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// HashPassword returns a bcrypt hash for ADMIN_PASSWORD_HASH
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(hash), err
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
