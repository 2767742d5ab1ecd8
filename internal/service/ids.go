package service

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is used when a service config leaves the cost unset.
const DefaultBcryptCost = 12

// assignID returns the canonical form of a caller-supplied id, or a fresh
// UUID when none was given.
func assignID(requested *string) string {
	if requested != nil {
		if parsed, err := uuid.Parse(strings.TrimSpace(*requested)); err == nil {
			return parsed.String()
		}
	}
	return uuid.NewString()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
