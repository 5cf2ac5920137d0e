// Package ai generates devotional draft text via an external model.
package ai

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no model backend is available.
var ErrNotConfigured = errors.New("ai generator not configured")

// Generator produces draft text from a prompt. Callers own the
// fallback copy shown when generation fails.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NoopGenerator is used when no API key is configured.
type NoopGenerator struct{}

// NewNoopGenerator creates a NoopGenerator.
func NewNoopGenerator() *NoopGenerator {
	return &NoopGenerator{}
}

// Generate always fails with ErrNotConfigured.
func (g *NoopGenerator) Generate(_ context.Context, _ string) (string, error) {
	return "", ErrNotConfigured
}
