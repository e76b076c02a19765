// Package token issues signed access tokens.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Subject identifies the user a token is issued for.
type Subject struct {
	UserID   uuid.UUID
	Email    string
	Role     string
	SchoolID *uuid.UUID
}

// IssueAccess creates an HS256 access token for the subject. The school_id
// claim is omitted for platform-level accounts.
func IssueAccess(secret string, ttl time.Duration, sub Subject) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   sub.UserID.String(),
		"email": sub.Email,
		"role":  sub.Role,
		"type":  "access",
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	if sub.SchoolID != nil {
		claims["school_id"] = sub.SchoolID.String()
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
