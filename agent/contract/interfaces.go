package contract

import "context"

// Interpreter turns free text into a structured Intent.
type Interpreter interface {
	Interpret(ctx context.Context, query string) (Intent, error)
}

// StoreGateway is the orchestrator's view of the inventory service.
type StoreGateway interface {
	Fetch(ctx context.Context) (map[string]int, error)
	Update(ctx context.Context, item string, change int) (map[string]int, error)
}
