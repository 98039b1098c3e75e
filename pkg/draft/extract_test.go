package draft

import "testing"

func TestExtract_FencedBlockWinsOverProse(t *testing.T) {
	raw := "Here is the draft so far.\n```json\n{\"conversation_result\": \"Got it.\", \"number\": \"98.1\"}\n```\nLet me know if anything is missing."

	res := Extract(raw)
	if !res.Structured {
		t.Fatalf("Extract() Structured = false, want true")
	}
	if res.Reply != "Got it." {
		t.Fatalf("Extract() Reply = %q, want %q", res.Reply, "Got it.")
	}
	if got := res.Delta["number"]; got != "98.1" {
		t.Fatalf("Extract() Delta[number] = %v, want 98.1", got)
	}
	if _, ok := res.Delta["conversation_result"]; ok {
		t.Fatalf("conversation_result must be removed from the delta")
	}
}

func TestExtract_FirstFencedBlockIsUsed(t *testing.T) {
	raw := "```json\n{\"conversation_result\": \"first\"}\n```\n```json\n{\"conversation_result\": \"second\"}\n```"

	res := Extract(raw)
	if !res.Structured {
		t.Fatalf("Extract() Structured = false, want true")
	}
	if res.Reply != "first" {
		t.Fatalf("Extract() Reply = %q, want %q", res.Reply, "first")
	}
}

func TestExtract_WholeTextJSONFallback(t *testing.T) {
	raw := "{\"conversation_result\": \"Plain object.\", \"due_date\": \"2026-02-01\"}"

	res := Extract(raw)
	if !res.Structured {
		t.Fatalf("Extract() Structured = false, want true")
	}
	if res.Reply != "Plain object." {
		t.Fatalf("Extract() Reply = %q", res.Reply)
	}
	if got := res.Delta["due_date"]; got != "2026-02-01" {
		t.Fatalf("Extract() Delta[due_date] = %v", got)
	}
}

func TestExtract_NoJSON_RawTextBecomesReply(t *testing.T) {
	raw := "Sure, what's the protocol number?"

	res := Extract(raw)
	if res.Structured {
		t.Fatalf("Extract() Structured = true, want false")
	}
	if res.Reply != raw {
		t.Fatalf("Extract() Reply = %q, want raw text", res.Reply)
	}
	if res.Delta != nil {
		t.Fatalf("Extract() Delta = %v, want nil", res.Delta)
	}
}

func TestExtract_MissingConversationResult_SynthesizesReply(t *testing.T) {
	raw := "```json\n{\"number\": \"12\"}\n```"

	res := Extract(raw)
	if !res.Structured {
		t.Fatalf("Extract() Structured = false, want true")
	}
	if res.Reply != fallbackReply {
		t.Fatalf("Extract() Reply = %q, want fallback", res.Reply)
	}
}

func TestExtract_MalformedFencedBlock_Degrades(t *testing.T) {
	raw := "```json\n{not valid json\n```"

	res := Extract(raw)
	if res.Structured {
		t.Fatalf("Extract() Structured = true, want false")
	}
	if res.Reply != raw {
		t.Fatalf("Extract() Reply = %q, want raw text", res.Reply)
	}
}

func TestExtract_TopLevelArrayIsNotADelta(t *testing.T) {
	raw := "[1, 2, 3]"

	res := Extract(raw)
	if res.Structured {
		t.Fatalf("Extract() Structured = true, want false for non-object JSON")
	}
}
