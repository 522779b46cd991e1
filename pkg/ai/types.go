package ai

import "context"

// InsightInput carries the student data bundle and the caller's prompt for
// commentary generation.
type InsightInput struct {
	Prompt   string
	Snapshot map[string]interface{}
}

// Generator describes an AI model capable of turning a student data snapshot
// into free-text commentary. Implementations must not persist anything; the
// caller stores the result only after a successful response.
type Generator interface {
	Generate(ctx context.Context, input InsightInput) (string, error)
}
