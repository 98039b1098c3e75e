package draft

import (
	"strconv"
	"strings"
)

// Merge applies a candidate delta onto the draft and returns the updated
// draft plus the paths of any fields that were dropped for being malformed.
// The input draft is never modified.
//
// Merge rules, uniform over the value tree:
//   - null never overwrites: an absent or null delta value keeps the draft's value
//   - scalars overwrite with the delta's non-null value
//   - objects merge member-by-member
//   - sequences replace wholesale when present, even if empty; the model is
//     expected to always echo the full current list, not a diff
//   - a kind mismatch (e.g. a string where a sequence belongs) skips that
//     field and continues with the rest
//
// The field kinds come from the draft's own serialized shape, so the merge
// needs no per-field conditionals.
func Merge(current *Protocol, delta map[string]any) (*Protocol, []string) {
	if current == nil {
		current = NewProtocol()
	}
	if len(delta) == 0 {
		return current, nil
	}

	var skipped []string
	merged := mergeObject(current.asMap(), delta, "", &skipped)
	return decodeProtocol(merged), skipped
}

func mergeObject(dst, src map[string]any, path string, skipped *[]string) map[string]any {
	out := make(map[string]any, len(dst))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		slot, known := out[k]
		if !known {
			// Not part of the draft schema, ignore.
			continue
		}
		out[k] = mergeValue(slot, v, joinPath(path, k), skipped)
	}
	return out
}

func mergeValue(dst, src any, path string, skipped *[]string) any {
	if src == nil {
		return dst
	}

	switch s := src.(type) {
	case map[string]any:
		d, ok := dst.(map[string]any)
		if !ok {
			*skipped = append(*skipped, path)
			return dst
		}
		return mergeObject(d, s, path, skipped)

	case []any:
		if _, ok := dst.([]any); !ok {
			*skipped = append(*skipped, path)
			return dst
		}
		return s

	default:
		switch dst.(type) {
		case map[string]any, []any:
			*skipped = append(*skipped, path)
			return dst
		}
		// The contract uses null or empty for unknown fields; an empty
		// string must preserve the prior value just like null does.
		if str, ok := src.(string); ok && strings.TrimSpace(str) == "" {
			return dst
		}
		return src
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// decodeProtocol turns a merged value tree back into a typed draft. Decoding
// is tolerant: sequence elements that are not objects are dropped, and leaf
// values are coerced (the model may send a number where a string belongs).
func decodeProtocol(m map[string]any) *Protocol {
	p := NewProtocol()
	p.Number = toString(m["number"])
	p.DueDate = toString(m["due_date"])

	if cm, ok := m["committee"].(map[string]any); ok {
		p.Committee.ID = toString(cm["id"])
		p.Committee.Name = toString(cm["name"])
	}
	if cm, ok := m["company"].(map[string]any); ok {
		p.Company.Name = toString(cm["name"])
		p.Company.Number = toString(cm["number"])
		p.Company.Address = toString(cm["address"])
	}

	if arr, ok := m["members"].([]any); ok {
		p.Members = make([]Member, 0, len(arr))
		for _, el := range arr {
			em, ok := el.(map[string]any)
			if !ok {
				continue
			}
			p.Members = append(p.Members, Member{
				ID:     toString(em["id"]),
				Name:   toString(em["name"]),
				Type:   toInt(em["type"]),
				Status: normalizeStatus(toInt(em["status"])),
			})
		}
	}

	if arr, ok := m["agenda_items"].([]any); ok {
		p.AgendaItems = make([]AgendaItem, 0, len(arr))
		for _, el := range arr {
			em, ok := el.(map[string]any)
			if !ok {
				continue
			}
			p.AgendaItems = append(p.AgendaItems, AgendaItem{
				ID:              toString(em["id"]),
				Title:           toString(em["title"]),
				TopicContent:    toString(em["topic_content"]),
				DecisionContent: toString(em["decision_content"]),
				DisplayOrder:    toInt(em["display_order"]),
			})
		}
	}

	return p
}

// normalizeStatus maps anything that is neither invited (1) nor present (2)
// to absent (3).
func normalizeStatus(v *int) *int {
	if v == nil {
		return nil
	}
	if *v != 1 && *v != 2 {
		absent := 3
		return &absent
	}
	return v
}

func toString(v any) *string {
	switch s := v.(type) {
	case string:
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return &s
	case float64:
		formatted := strconv.FormatFloat(s, 'f', -1, 64)
		return &formatted
	}
	return nil
}

func toInt(v any) *int {
	switch n := v.(type) {
	case float64:
		i := int(n)
		return &i
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return &i
		}
	}
	return nil
}
