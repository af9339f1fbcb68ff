package utils

import "github.com/google/uuid"

// UUIDGenerator hands out the server ids stamped onto envelope records.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate prefers UUIDv7 so freshly assigned ids sort by creation time;
// the purely random form is the fallback when the clocked one fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
