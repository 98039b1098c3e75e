package draft

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// fakeModel returns canned responses and records the messages it was called with.
type fakeModel struct {
	responses []string
	err       error
	calls     [][]*schema.Message
}

func (f *fakeModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.calls = append(f.calls, input)
	if f.err != nil {
		return nil, f.err
	}
	content := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return schema.AssistantMessage(content, nil), nil
}

func TestSubmitTurn_EmptyInput_NoModelCall(t *testing.T) {
	m := &fakeModel{responses: []string{"unused"}}
	acc := NewAccumulator(m, 0.3)

	_, err := acc.SubmitTurn(context.Background(), nil, NewProtocol(), "   \n\t ")
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("SubmitTurn() error = %v, want ErrEmptyInput", err)
	}
	if len(m.calls) != 0 {
		t.Fatalf("model was called %d times for empty input, want 0", len(m.calls))
	}
}

func TestSubmitTurn_CompletionFailure_NothingChanges(t *testing.T) {
	m := &fakeModel{err: errors.New("rate limited")}
	acc := NewAccumulator(m, 0.3)

	history := []Turn{{Role: RoleUser, Content: "hello"}}
	d := NewProtocol()
	d.Number = strp("98.1")

	_, err := acc.SubmitTurn(context.Background(), history, d, "set the date")
	if err == nil {
		t.Fatalf("SubmitTurn() expected error")
	}
	if len(history) != 1 {
		t.Fatalf("history mutated on failure: %+v", history)
	}
	if *d.Number != "98.1" {
		t.Fatalf("draft mutated on failure: %v", *d.Number)
	}
}

func TestSubmitTurn_MessageOrder(t *testing.T) {
	m := &fakeModel{responses: []string{"plain text"}}
	acc := NewAccumulator(m, 0.3)

	history := []Turn{
		{Role: RoleUser, Content: "first"},
		{Role: RoleAssistant, Content: "reply"},
	}

	if _, err := acc.SubmitTurn(context.Background(), history, nil, "second"); err != nil {
		t.Fatalf("SubmitTurn() error = %v", err)
	}

	if len(m.calls) != 1 {
		t.Fatalf("model calls = %d, want 1", len(m.calls))
	}
	msgs := m.calls[0]
	if len(msgs) != 4 {
		t.Fatalf("message count = %d, want 4 (system + 2 history + new turn)", len(msgs))
	}
	if msgs[0].Role != schema.System {
		t.Fatalf("messages[0].Role = %v, want system", msgs[0].Role)
	}
	if msgs[1].Role != schema.User || msgs[1].Content != "first" {
		t.Fatalf("messages[1] = %v %q", msgs[1].Role, msgs[1].Content)
	}
	if msgs[2].Role != schema.Assistant || msgs[2].Content != "reply" {
		t.Fatalf("messages[2] = %v %q", msgs[2].Role, msgs[2].Content)
	}
	if msgs[3].Role != schema.User || msgs[3].Content != "second" {
		t.Fatalf("messages[3] = %v %q", msgs[3].Role, msgs[3].Content)
	}
}

func TestSubmitTurn_GracefulDegradation(t *testing.T) {
	raw := "Sure, what's the protocol number?"
	m := &fakeModel{responses: []string{raw}}
	acc := NewAccumulator(m, 0.3)

	d := NewProtocol()
	d.Number = strp("98.1")

	res, err := acc.SubmitTurn(context.Background(), nil, d, "hello")
	if err != nil {
		t.Fatalf("SubmitTurn() error = %v", err)
	}
	if res.Reply != raw {
		t.Fatalf("Reply = %q, want raw text", res.Reply)
	}
	if res.Draft != d {
		t.Fatalf("draft changed although response had no structure")
	}
	if res.Delta != nil {
		t.Fatalf("Delta = %v, want nil", res.Delta)
	}
}

func TestSubmitTurn_EndToEndFirstTurn(t *testing.T) {
	response := "```json\n{" +
		"\"conversation_result\": \"Got it, number set to 98.1. What committee?\"," +
		"\"number\": \"98.1\"," +
		"\"due_date\": null," +
		"\"committee\": {\"id\": null, \"name\": null}," +
		"\"company\": {\"name\": null, \"number\": null, \"address\": null}," +
		"\"members\": []," +
		"\"agenda_items\": []}" +
		"\n```"
	m := &fakeModel{responses: []string{response}}
	acc := NewAccumulator(m, 0.3)

	res, err := acc.SubmitTurn(context.Background(), nil, NewProtocol(), "protocol number is 98.1")
	if err != nil {
		t.Fatalf("SubmitTurn() error = %v", err)
	}

	if res.Reply != "Got it, number set to 98.1. What committee?" {
		t.Fatalf("Reply = %q", res.Reply)
	}
	if res.Draft.Number == nil || *res.Draft.Number != "98.1" {
		t.Fatalf("Draft.Number = %v, want 98.1", res.Draft.Number)
	}
	if res.Draft.DueDate != nil {
		t.Fatalf("Draft.DueDate = %v, want nil", res.Draft.DueDate)
	}
	if res.Draft.Committee.ID != nil || res.Draft.Committee.Name != nil {
		t.Fatalf("Draft.Committee = %+v, want empty", res.Draft.Committee)
	}
	if len(res.Draft.Members) != 0 || len(res.Draft.AgendaItems) != 0 {
		t.Fatalf("Draft sequences not empty: %+v", res.Draft)
	}

	if len(res.History) != 2 {
		t.Fatalf("History length = %d, want 2", len(res.History))
	}
	if res.History[0].Role != RoleUser || res.History[0].Content != "protocol number is 98.1" {
		t.Fatalf("History[0] = %+v", res.History[0])
	}
	if res.History[1].Role != RoleAssistant || res.History[1].Content != response {
		t.Fatalf("History[1] = %+v", res.History[1])
	}
}

func TestSubmitTurn_PartialFieldResilience(t *testing.T) {
	response := "```json\n{\"conversation_result\": \"ok\", \"number\": \"12\", \"members\": \"not-an-array\"}\n```"
	m := &fakeModel{responses: []string{response}}
	acc := NewAccumulator(m, 0.3)

	d := NewProtocol()
	d.Members = []Member{{Name: strp("Alice")}}

	res, err := acc.SubmitTurn(context.Background(), nil, d, "the number is 12")
	if err != nil {
		t.Fatalf("SubmitTurn() error = %v", err)
	}
	if res.Draft.Number == nil || *res.Draft.Number != "12" {
		t.Fatalf("Draft.Number = %v, want 12", res.Draft.Number)
	}
	if len(res.Draft.Members) != 1 || *res.Draft.Members[0].Name != "Alice" {
		t.Fatalf("Draft.Members = %+v, want unchanged", res.Draft.Members)
	}
}
