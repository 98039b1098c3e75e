package draft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/protokollhq/protokoll/pkg/utils"
)

var (
	// ErrEmptyInput is returned for blank user text. The model is never
	// called in that case; callers treat it as a no-op, not a failure.
	ErrEmptyInput = errors.New("empty user input")
)

// ChatModel is the completion collaborator. Any eino chat model satisfies it.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// TurnResult is the outcome of one completed round-trip.
type TurnResult struct {
	// Reply is the conversational text addressed to the user.
	Reply string `json:"reply"`
	// Draft is the updated draft after merging this turn's delta.
	Draft *Protocol `json:"draft"`
	// Delta is the raw structured fragment extracted from the response,
	// nil when the response carried no parseable structure.
	Delta map[string]any `json:"delta,omitempty"`
	// History is the conversation history including this turn's user and
	// assistant entries. The input history is never mutated.
	History []Turn `json:"history"`
}

// Accumulator drives the drafting conversation. It holds no draft state of
// its own; history and draft are threaded through SubmitTurn explicitly.
type Accumulator struct {
	model       ChatModel
	temperature float32
	logger      *slog.Logger
}

// NewAccumulator creates an accumulator on top of a chat model. The
// temperature should be low so the structured output stays well-formed.
func NewAccumulator(chatModel ChatModel, temperature float64) *Accumulator {
	return &Accumulator{
		model:       chatModel,
		temperature: float32(temperature),
		logger:      utils.GetLogger(),
	}
}

// SubmitTurn runs one user turn against the model and merges the structured
// part of the response into the draft.
//
// On completion failure the returned error wraps the transport error and
// neither history nor draft are changed; the caller may resubmit the same
// text. A response without parseable JSON is not an error: the raw text
// becomes the reply and the draft stays as it was.
func (a *Accumulator) SubmitTurn(ctx context.Context, history []Turn, current *Protocol, userText string) (*TurnResult, error) {
	text := strings.TrimSpace(userText)
	if text == "" {
		return nil, ErrEmptyInput
	}
	if current == nil {
		current = NewProtocol()
	}

	// System contract first, then the full history, then the new user turn.
	messages := make([]*schema.Message, 0, len(history)+2)
	messages = append(messages, schema.SystemMessage(systemPrompt))
	for _, t := range history {
		if t.Role == RoleAssistant {
			messages = append(messages, schema.AssistantMessage(t.Content, nil))
		} else {
			messages = append(messages, schema.UserMessage(t.Content))
		}
	}
	messages = append(messages, schema.UserMessage(text))

	resp, err := a.model.Generate(ctx, messages, model.WithTemperature(a.temperature))
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	result := Extract(resp.Content)
	updated := current
	if result.Structured {
		var skipped []string
		updated, skipped = Merge(current, result.Delta)
		if len(skipped) > 0 {
			a.logger.Warn("Dropped malformed draft fields from model response", "fields", skipped)
		}
	}

	// Store the raw assistant output so the model sees its own prior draft
	// state when the history is replayed.
	newHistory := make([]Turn, 0, len(history)+2)
	newHistory = append(newHistory, history...)
	newHistory = append(newHistory,
		Turn{Role: RoleUser, Content: text},
		Turn{Role: RoleAssistant, Content: resp.Content},
	)

	return &TurnResult{
		Reply:   result.Reply,
		Draft:   updated,
		Delta:   result.Delta,
		History: newHistory,
	}, nil
}
