// Package draft implements the conversational accumulator behind the
// AI-assisted protocol drafting chat. It keeps an evolving partial protocol,
// turns raw model output into validated partial updates and merges them into
// the running draft, one user turn at a time.
package draft

import "encoding/json"

// Conversation roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Turn is one exchange unit of the drafting conversation. Turns are
// immutable once created; their order is replayed verbatim to the model.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Committee is the committee reference inside a draft.
type Committee struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

// Company is the legal entity inside a draft.
type Company struct {
	Name    *string `json:"name"`
	Number  *string `json:"number"`
	Address *string `json:"address"`
}

// Member is one attendee inside a draft.
type Member struct {
	ID     *string `json:"id"`
	Name   *string `json:"name"`
	Type   *int    `json:"type"`   // 1 internal, 2 external
	Status *int    `json:"status"` // 1 invited, 2 present, anything else absent
}

// AgendaItem is one agenda topic inside a draft.
type AgendaItem struct {
	ID              *string `json:"id"`
	Title           *string `json:"title"`
	TopicContent    *string `json:"topic_content"`
	DecisionContent *string `json:"decision_content"`
	DisplayOrder    *int    `json:"display_order"`
}

// Protocol is the accumulating target document. Scalar fields stay nil until
// a turn fills them; sequences are always non-nil so the serialized shape is
// stable across turns.
type Protocol struct {
	Number      *string      `json:"number"`
	DueDate     *string      `json:"due_date"`
	Committee   Committee    `json:"committee"`
	Company     Company      `json:"company"`
	Members     []Member     `json:"members"`
	AgendaItems []AgendaItem `json:"agenda_items"`
}

// NewProtocol returns an empty draft with all fields unset.
func NewProtocol() *Protocol {
	return &Protocol{
		Members:     []Member{},
		AgendaItems: []AgendaItem{},
	}
}

// asMap renders the draft as a generic JSON value tree. The tree always
// contains every schema key, which lets the merge derive field kinds from it.
func (p *Protocol) asMap() map[string]any {
	b, err := json.Marshal(p)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]any{}
	}
	return m
}
