package utils

import (
	"errors"                        // Error construction
	"time"                          // Time for token expiration
	"waste_tracker/internal/domain" // Domain models

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// TokenIssuer is written to the iss claim of every token
const TokenIssuer = "waste_tracker"

// JWT Claims
type Claims struct {
	UserID               uint        `json:"userId"`   // User ID
	Username             string      `json:"username"` // Username
	Roles                domain.Role `json:"roles"`    // Role at the time of login
	TruckNum             *int        `json:"truckNum"` // Assigned truck, null for non-collectors
	jwt.RegisteredClaims             // Standard JWT claims
}

// Role returns the claimed role mapped onto the closed role set
func (c *Claims) Role() domain.Role {
	return domain.ParseRole(string(c.Roles))
}

// GenerateJWT creates a JWT token for a given user
func GenerateJWT(user domain.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	// Set token claims
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Roles:    domain.ParseRole(string(user.Roles)),
		TruckNum: user.TruckNum,
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // Token expires after ttl
			IssuedAt:  jwt.NewNumericDate(now),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		// Only accept HMAC signatures
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithExpirationRequired(), jwt.WithIssuer(TokenIssuer))
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}
