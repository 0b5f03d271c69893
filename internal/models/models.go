// Package models provides adapters for the model providers that write the
// daily letters.
package models

import "context"

// Generator produces one completion for a system instruction and a user
// prompt.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
	Name() string
}
