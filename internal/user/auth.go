package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	AccessTokenTTL = 24 * time.Hour
	ResetTokenTTL  = time.Hour

	PurposePasswordReset = "password_reset"
)

type CustomClaims struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Tokens signs and verifies HS256 tokens with one secret.
type Tokens struct {
	secret []byte
	now    func() time.Time
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret), now: time.Now}
}

func (t *Tokens) sign(claims CustomClaims, ttl time.Duration) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrMissingSecret
	}
	now := t.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *Tokens) parse(tokenStr string) (*CustomClaims, error) {
	if len(t.secret) == 0 {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(
		tokenStr,
		&CustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return t.secret, nil
		},
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateJWT issues a 24h access token.
func (t *Tokens) GenerateJWT(userID uint, role, email string) (string, error) {
	return t.sign(CustomClaims{UserID: userID, Email: email, Role: role}, AccessTokenTTL)
}

// ParseJWT accepts access tokens only.
func (t *Tokens) ParseJWT(tokenStr string) (*CustomClaims, error) {
	claims, err := t.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (t *Tokens) GenerateResetToken(userID uint, email string) (string, error) {
	return t.sign(CustomClaims{UserID: userID, Email: email, Purpose: PurposePasswordReset}, ResetTokenTTL)
}

func (t *Tokens) ParseResetToken(tokenStr string) (*CustomClaims, error) {
	claims, err := t.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != PurposePasswordReset {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
