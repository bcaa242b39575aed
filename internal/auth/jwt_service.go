package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// UserTokenExpiry is the duration for which user session tokens are valid.
const UserTokenExpiry = 7 * 24 * time.Hour

// Claims represents the authenticated sender carried in a JWT. CollegeUID is
// included so the vote ledger can derive the stable voter key without a
// database round trip.
type Claims struct {
	UserID     uint   `json:"user_id"`
	CollegeUID string `json:"college_uid"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// GenerateUserToken generates a session token for an authenticated sender.
func (s *JWTService) GenerateUserToken(userID uint, collegeUID, email string) (string, error) {
	claims := &Claims{
		UserID:     userID,
		CollegeUID: collegeUID,
		Email:      email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(UserTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
