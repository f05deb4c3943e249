package contract

import "encoding/json"

// Intent is the structured outcome of interpreting a natural-language
// query: a tagged variant over read, write, and unsupported operations.
// Completeness of a write (item and change both present) is checked by
// the orchestrator, not here.
type Intent interface {
	// Reasoning returns the model's stated rationale for the intent.
	Reasoning() string

	intent()
}

// ReadIntent asks for current stock. Item narrows the answer to one
// item when set; empty means the full inventory.
type ReadIntent struct {
	Item   string
	Reason string
}

func (ReadIntent) intent() {}

func (i ReadIntent) Reasoning() string { return i.Reason }

// WriteIntent adjusts one item's stock by a signed change. Item and
// Change stay optional at this layer so the orchestrator can reject an
// incomplete extraction with the model's own reasoning attached.
type WriteIntent struct {
	Item   string
	Change *int
	Reason string
}

func (WriteIntent) intent() {}

func (i WriteIntent) Reasoning() string { return i.Reason }

// UnsupportedIntent preserves an operation outside the known set along
// with the raw payload for diagnostics.
type UnsupportedIntent struct {
	Operation string
	Reason    string
	Raw       json.RawMessage
}

func (UnsupportedIntent) intent() {}

func (i UnsupportedIntent) Reasoning() string { return i.Reason }
