package utils

import "github.com/google/uuid"

// UUIDGenerator mints identifiers for sessions and order numbers. It prefers
// version 7 UUIDs so identifiers sort by creation time in the database.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a v7 UUID string, falling back to v4 if the clock-based
// generator fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
