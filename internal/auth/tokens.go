package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Tokens signs and verifies HS256 access/refresh tokens carrying a user id.
type Tokens struct {
	accessSecret  []byte
	refreshSecret []byte
	now           func() time.Time
}

func NewTokens(accessSecret, refreshSecret string) *Tokens {
	return &Tokens{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		now:           time.Now,
	}
}

// Pair issues a fresh access and refresh token for userID.
func (t *Tokens) Pair(userID uint) (access, refresh string, err error) {
	access, err = t.generate(userID, AccessTTL, t.accessSecret)
	if err != nil {
		return "", "", fmt.Errorf("access token: %w", err)
	}
	refresh, err = t.generate(userID, RefreshTTL, t.refreshSecret)
	if err != nil {
		return "", "", fmt.Errorf("refresh token: %w", err)
	}
	return access, refresh, nil
}

func (t *Tokens) ParseAccess(token string) (uint, error) {
	return t.parse(token, t.accessSecret)
}

func (t *Tokens) ParseRefresh(token string) (uint, error) {
	return t.parse(token, t.refreshSecret)
}

func (t *Tokens) generate(userID uint, ttl time.Duration, secret []byte) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(ttl).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (t *Tokens) parse(raw string, secret []byte) (uint, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return 0, ErrInvalidToken
	}
	return uint(userID), nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
