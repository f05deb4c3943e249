// Package orchestrator executes interpreted intents against the
// inventory service and composes the caller-facing result.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/stockpilot/agent/contract"
)

// Result is a processed query outcome: a human-readable message plus the
// latest full inventory mapping.
type Result struct {
	Message   string
	Inventory map[string]int
}

type Service struct {
	interpreter contractx.Interpreter
	store       contractx.StoreGateway
}

func New(interpreter contractx.Interpreter, store contractx.StoreGateway) (*Service, error) {
	if interpreter == nil {
		return nil, errors.New("interpreter is required")
	}
	if store == nil {
		return nil, errors.New("store gateway is required")
	}

	return &Service{
		interpreter: interpreter,
		store:       store,
	}, nil
}

// Process interprets the query and performs the corresponding read or
// update against the inventory service. Interpreter and store failures
// propagate unchanged so the transport layer can map them to statuses.
func (s *Service) Process(ctx context.Context, query string) (Result, error) {
	intent, err := s.interpreter.Interpret(ctx, query)
	if err != nil {
		return Result{}, err
	}

	switch it := intent.(type) {
	case contractx.ReadIntent:
		return s.processRead(ctx, it)
	case contractx.WriteIntent:
		return s.processWrite(ctx, it)
	case contractx.UnsupportedIntent:
		return Result{}, fmt.Errorf("%w: model returned operation %q. Reasoning: %s",
			contractx.ErrUnsupportedOperation, it.Operation, it.Reason)
	default:
		return Result{}, fmt.Errorf("%w: unexpected intent type %T", contractx.ErrMalformedResponse, intent)
	}
}

func (s *Service) processRead(ctx context.Context, intent contractx.ReadIntent) (Result, error) {
	state, err := s.store.Fetch(ctx)
	if err != nil {
		return Result{}, err
	}

	message := fmt.Sprintf("Successfully retrieved inventory. Reasoning: %s", intent.Reason)
	if intent.Item != "" {
		// A name outside the mapping reads as 0 rather than failing.
		count := state[strings.ToLower(intent.Item)]
		message = fmt.Sprintf("Successfully retrieved inventory for %s: %d. Reasoning: %s",
			intent.Item, count, intent.Reason)
	}

	return Result{Message: message, Inventory: state}, nil
}

func (s *Service) processWrite(ctx context.Context, intent contractx.WriteIntent) (Result, error) {
	if intent.Item == "" || intent.Change == nil {
		return Result{}, fmt.Errorf("%w: model failed to extract required 'item' or 'change' for a write. Reasoning: %s",
			contractx.ErrIncompleteIntent, intent.Reason)
	}

	state, err := s.store.Update(ctx, intent.Item, *intent.Change)
	if err != nil {
		return Result{}, err
	}

	message := fmt.Sprintf("Successfully updated inventory for %s by %d. Reasoning: %s",
		intent.Item, *intent.Change, intent.Reason)
	return Result{Message: message, Inventory: state}, nil
}
