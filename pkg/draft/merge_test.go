package draft

import (
	"reflect"
	"testing"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func TestMerge_ScalarOverwrite(t *testing.T) {
	d := NewProtocol()

	got, skipped := Merge(d, map[string]any{"number": "98.1", "due_date": "2026-02-01"})
	if len(skipped) != 0 {
		t.Fatalf("Merge() skipped = %v, want none", skipped)
	}
	if got.Number == nil || *got.Number != "98.1" {
		t.Fatalf("Merge() Number = %v, want 98.1", got.Number)
	}
	if got.DueDate == nil || *got.DueDate != "2026-02-01" {
		t.Fatalf("Merge() DueDate = %v, want 2026-02-01", got.DueDate)
	}
}

func TestMerge_NullPreserving(t *testing.T) {
	d := NewProtocol()
	d.Number = strp("98.1")
	d.Committee.Name = strp("Board")

	got, _ := Merge(d, map[string]any{
		"number":    nil,
		"committee": map[string]any{"id": nil, "name": nil},
	})
	if got.Number == nil || *got.Number != "98.1" {
		t.Fatalf("null overwrote Number: %v", got.Number)
	}
	if got.Committee.Name == nil || *got.Committee.Name != "Board" {
		t.Fatalf("null overwrote Committee.Name: %v", got.Committee.Name)
	}
}

func TestMerge_EmptyStringPreserves(t *testing.T) {
	d := NewProtocol()
	d.Number = strp("98.1")

	got, _ := Merge(d, map[string]any{"number": ""})
	if got.Number == nil || *got.Number != "98.1" {
		t.Fatalf("empty string overwrote Number: %v", got.Number)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	d := NewProtocol()
	delta := map[string]any{
		"number":  "12",
		"company": map[string]any{"name": "Acme GmbH", "number": nil, "address": nil},
		"members": []any{
			map[string]any{"id": nil, "name": "Alice", "type": float64(1), "status": float64(2)},
		},
	}

	once, _ := Merge(d, delta)
	twice, _ := Merge(once, delta)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("re-merging the same delta changed the draft:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestMerge_SequenceReplaceNotAppend(t *testing.T) {
	d := NewProtocol()
	d.Members = []Member{{Name: strp("Alice"), Type: intp(1), Status: intp(1)}}

	got, _ := Merge(d, map[string]any{
		"members": []any{
			map[string]any{"id": nil, "name": "Bob", "type": float64(2), "status": float64(1)},
		},
	})
	if len(got.Members) != 1 {
		t.Fatalf("Merge() members = %d entries, want 1", len(got.Members))
	}
	if got.Members[0].Name == nil || *got.Members[0].Name != "Bob" {
		t.Fatalf("Merge() members[0].Name = %v, want Bob", got.Members[0].Name)
	}
}

func TestMerge_EmptySequenceReplaces(t *testing.T) {
	d := NewProtocol()
	d.AgendaItems = []AgendaItem{{Title: strp("Budget")}}

	got, _ := Merge(d, map[string]any{"agenda_items": []any{}})
	if len(got.AgendaItems) != 0 {
		t.Fatalf("empty sequence did not replace: %+v", got.AgendaItems)
	}
}

func TestMerge_AbsentSequenceUntouched(t *testing.T) {
	d := NewProtocol()
	d.AgendaItems = []AgendaItem{{Title: strp("Budget")}}

	got, _ := Merge(d, map[string]any{"number": "7"})
	if len(got.AgendaItems) != 1 || *got.AgendaItems[0].Title != "Budget" {
		t.Fatalf("absent sequence was changed: %+v", got.AgendaItems)
	}
}

func TestMerge_PartialFieldResilience(t *testing.T) {
	d := NewProtocol()
	d.Members = []Member{{Name: strp("Alice")}}

	got, skipped := Merge(d, map[string]any{
		"number":  "12",
		"members": "not-an-array",
	})
	if got.Number == nil || *got.Number != "12" {
		t.Fatalf("valid field lost next to a malformed one: Number = %v", got.Number)
	}
	if len(got.Members) != 1 || *got.Members[0].Name != "Alice" {
		t.Fatalf("malformed members field replaced prior value: %+v", got.Members)
	}
	if len(skipped) != 1 || skipped[0] != "members" {
		t.Fatalf("skipped = %v, want [members]", skipped)
	}
}

func TestMerge_NestedObjectMemberByMember(t *testing.T) {
	d := NewProtocol()
	d.Company.Name = strp("Acme GmbH")
	d.Company.Address = strp("Hauptstr. 1")

	got, _ := Merge(d, map[string]any{
		"company": map[string]any{"number": "HRB 1234", "address": nil},
	})
	if got.Company.Name == nil || *got.Company.Name != "Acme GmbH" {
		t.Fatalf("Company.Name lost: %v", got.Company.Name)
	}
	if got.Company.Number == nil || *got.Company.Number != "HRB 1234" {
		t.Fatalf("Company.Number = %v, want HRB 1234", got.Company.Number)
	}
	if got.Company.Address == nil || *got.Company.Address != "Hauptstr. 1" {
		t.Fatalf("Company.Address lost: %v", got.Company.Address)
	}
}

func TestMerge_NumberCoercedToString(t *testing.T) {
	d := NewProtocol()

	got, _ := Merge(d, map[string]any{"number": float64(98.1)})
	if got.Number == nil || *got.Number != "98.1" {
		t.Fatalf("numeric number not coerced: %v", got.Number)
	}
}

func TestMerge_UnknownStatusBecomesAbsent(t *testing.T) {
	d := NewProtocol()

	got, _ := Merge(d, map[string]any{
		"members": []any{
			map[string]any{"name": "Carol", "type": float64(1), "status": float64(7)},
		},
	})
	if len(got.Members) != 1 {
		t.Fatalf("members = %+v", got.Members)
	}
	if got.Members[0].Status == nil || *got.Members[0].Status != 3 {
		t.Fatalf("status = %v, want 3 (absent)", got.Members[0].Status)
	}
}

func TestMerge_NonObjectSequenceElementsDropped(t *testing.T) {
	d := NewProtocol()

	got, _ := Merge(d, map[string]any{
		"agenda_items": []any{
			"just a string",
			map[string]any{"title": "Budget", "display_order": float64(1)},
		},
	})
	if len(got.AgendaItems) != 1 {
		t.Fatalf("agenda_items = %+v, want the one valid entry", got.AgendaItems)
	}
	if *got.AgendaItems[0].Title != "Budget" {
		t.Fatalf("agenda_items[0].Title = %v", got.AgendaItems[0].Title)
	}
	if got.AgendaItems[0].DisplayOrder == nil || *got.AgendaItems[0].DisplayOrder != 1 {
		t.Fatalf("agenda_items[0].DisplayOrder = %v, want 1", got.AgendaItems[0].DisplayOrder)
	}
}

func TestMerge_InputDraftUnchanged(t *testing.T) {
	d := NewProtocol()
	d.Number = strp("1")

	_, _ = Merge(d, map[string]any{"number": "2", "members": []any{}})
	if *d.Number != "1" {
		t.Fatalf("Merge mutated its input draft: %v", *d.Number)
	}
}

func TestMerge_UnknownKeysIgnored(t *testing.T) {
	d := NewProtocol()

	got, skipped := Merge(d, map[string]any{"number": "5", "totally_unknown": "x"})
	if len(skipped) != 0 {
		t.Fatalf("unknown key reported as skip: %v", skipped)
	}
	if got.Number == nil || *got.Number != "5" {
		t.Fatalf("Number = %v", got.Number)
	}
}
