package llm

import "context"

// ChatRequest is one JSON-mode chat round trip.
type ChatRequest struct {
	System      string
	User        string
	Temperature float32
}

// ChatCompleter is the transport contract the extraction stages depend on.
// Implementations make a single attempt; retry policy belongs to callers.
type ChatCompleter interface {
	// CompleteJSON sends the request in JSON-object response mode and returns
	// the assistant message content.
	CompleteJSON(ctx context.Context, req ChatRequest) ([]byte, error)

	// Model identifies the configured model, for record metadata.
	Model() string
}
