// Package interpreter translates free-text inventory requests into
// structured intents using a hosted language model.
package interpreter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"

	contractx "github.com/tanpawarit/stockpilot/agent/contract"
	promptx "github.com/tanpawarit/stockpilot/agent/prompt"
	openrouterx "github.com/tanpawarit/stockpilot/pkg/openrouter"
)

const fallbackReasoning = "No specific reasoning provided by the model."

// intentSchema constrains the model to the intent wire shape. Strict
// mode requires every property listed under required, so optional
// fields are nullable instead of absent.
var intentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"operation": map[string]any{
			"type": "string",
			"enum": []string{"GET", "POST"},
		},
		"item": map[string]any{
			"type":        []string{"string", "null"},
			"description": "One of the known inventory items, or null.",
		},
		"change": map[string]any{
			"type":        []string{"integer", "null"},
			"description": "Signed stock delta for POST operations, or null.",
		},
		"reasoning": map[string]any{
			"type": "string",
		},
	},
	"required":             []string{"operation", "item", "change", "reasoning"},
	"additionalProperties": false,
}

type intentPayload struct {
	Operation *string `json:"operation"`
	Item      *string `json:"item"`
	Change    *int    `json:"change"`
	Reasoning string  `json:"reasoning"`
}

var _ contractx.Interpreter = (*Interpreter)(nil)

// Interpreter makes one upstream call per Interpret invocation. No
// retries; the only bound is the client's request timeout.
type Interpreter struct {
	client       *openaisdk.Client
	model        string
	maxTokens    int64
	temperature  float64
	systemPrompt string
}

// New builds an Interpreter around an OpenAI-compatible client. A nil
// client is allowed and surfaces as ErrNotConfigured per call, so a
// missing credential degrades the endpoint without crashing the process.
func New(client *openaisdk.Client, cfg openrouterx.Config) *Interpreter {
	return &Interpreter{
		client:       client,
		model:        strings.TrimSpace(cfg.Model),
		maxTokens:    cfg.MaxCompletionToken,
		temperature:  cfg.Temperature,
		systemPrompt: promptx.LoadPromptSet().Interpreter,
	}
}

func (i *Interpreter) Interpret(ctx context.Context, query string) (contractx.Intent, error) {
	if i.client == nil {
		return nil, fmt.Errorf("%w: set OPENROUTER_API_KEY to enable natural language queries", contractx.ErrNotConfigured)
	}

	resp, err := i.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: shared.ChatModel(i.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(i.systemPrompt),
			openaisdk.UserMessage(query),
		},
		MaxTokens:   openaisdk.Int(i.maxTokens),
		Temperature: openaisdk.Float(i.temperature),
		ResponseFormat: openaisdk.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "inventory_intent",
					Strict: openaisdk.Bool(true),
					Schema: intentSchema,
				},
			},
		},
	})
	if err != nil {
		var apierr *openaisdk.Error
		if errors.As(err, &apierr) {
			detail := strings.TrimSpace(apierr.Message)
			if detail == "" {
				detail = apierr.RawJSON()
			}
			return nil, &contractx.UpstreamStatusError{
				StatusCode: apierr.StatusCode,
				Detail:     detail,
			}
		}
		return nil, fmt.Errorf("%w: %v", contractx.ErrUpstreamUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: response contains no choices", contractx.ErrMalformedResponse)
	}

	return ParseIntent(resp.Choices[0].Message.Content)
}

// ParseIntent validates the model's payload and maps it onto the intent
// variants. Anything without a recognized shape is rejected here, before
// it can reach business logic; an unknown operation becomes an
// UnsupportedIntent rather than an error so the orchestrator can report
// it with the model's reasoning.
func ParseIntent(raw string) (contractx.Intent, error) {
	var payload intentPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: not valid json: %v; raw text: %s", contractx.ErrMalformedResponse, err, raw)
	}

	if payload.Operation == nil || strings.TrimSpace(*payload.Operation) == "" {
		return nil, fmt.Errorf("%w: missing 'operation'; raw text: %s", contractx.ErrMalformedResponse, raw)
	}

	reasoning := strings.TrimSpace(payload.Reasoning)
	if reasoning == "" {
		reasoning = fallbackReasoning
	}

	item := ""
	if payload.Item != nil {
		item = strings.TrimSpace(*payload.Item)
	}

	switch op := strings.ToUpper(strings.TrimSpace(*payload.Operation)); op {
	case "GET":
		return contractx.ReadIntent{Item: item, Reason: reasoning}, nil
	case "POST":
		return contractx.WriteIntent{Item: item, Change: payload.Change, Reason: reasoning}, nil
	default:
		return contractx.UnsupportedIntent{
			Operation: op,
			Reason:    reasoning,
			Raw:       json.RawMessage(raw),
		}, nil
	}
}
