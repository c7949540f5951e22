package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	first := g.Generate()
	second := g.Generate()

	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("generated value is not a valid UUID: %v", err)
	}
	if first == second {
		t.Error("expected distinct identifiers on consecutive calls")
	}
}
