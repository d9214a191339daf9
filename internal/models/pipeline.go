package models

// Intent is the classified purpose of an inbound message.
type Intent string

const (
	// IntentStock marks a message asking about a specific company or stock.
	IntentStock Intent = "STOCK"
	// IntentOther marks everything else, including classification failures.
	IntentOther Intent = "OTHER"
)

// PipelineState is the single record threaded through one analysis run.
// Prompt and ChatID are set at ingress and never change; the remaining
// fields are filled in by stages as the run progresses. A state lives for
// exactly one request and is discarded after the final message is sent.
type PipelineState struct {
	Prompt string
	ChatID int64

	Intent Intent

	// Entity is the company name or ticker text extracted from the prompt.
	// Absent means no entity was found.
	Entity Optional[string]

	// Ticker is the resolved exchange symbol. Absent when the entity could
	// not be resolved (or no entity existed to resolve).
	Ticker Optional[string]

	// Snapshot is nil until the market data stage runs. An empty snapshot
	// means the fetch failed and Analysis already carries an error message.
	Snapshot *MarketSnapshot

	// Headlines holds at most five recent news titles for the ticker.
	Headlines []string

	// Analysis holds either the generated analysis or a user-facing error
	// message set by an earlier short-circuit. Once present it is final:
	// no later stage may overwrite it.
	Analysis Optional[string]
}

// NewPipelineState creates the initial state for one inbound message.
func NewPipelineState(chatID int64, prompt string) *PipelineState {
	return &PipelineState{
		Prompt: prompt,
		ChatID: chatID,
	}
}
