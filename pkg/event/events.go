package event

// ============================================================================
// Event Names (constants)
// ============================================================================

const (
	DraftUpdated     = "draft.updated"
	DraftReset       = "draft.reset"
	ProtocolCreated  = "protocol.created"
	ProtocolUpdated  = "protocol.updated"
	ProtocolDeleted  = "protocol.deleted"
	ProtocolExported = "protocol.exported"
	ProtocolSent     = "protocol.sent"
	TaskCreated      = "task.created"
	TaskUpdated      = "task.updated"
	TaskDeleted      = "task.deleted"
)

// ============================================================================
// Drafting Events
// ============================================================================

// DraftUpdatedEvent is emitted after a drafting turn merged into the draft.
// It carries the draft itself so the live preview needs no extra fetch.
type DraftUpdatedEvent struct {
	SessionID string `json:"session_id"`
	OrgID     string `json:"org_id"`
	Draft     any    `json:"draft"`
}

func (e DraftUpdatedEvent) EventName() string { return DraftUpdated }

// DraftResetEvent is emitted when a drafting session is restarted.
type DraftResetEvent struct {
	SessionID string `json:"session_id"`
	OrgID     string `json:"org_id"`
}

func (e DraftResetEvent) EventName() string { return DraftReset }

// ============================================================================
// Protocol Events
// ============================================================================

// ProtocolCreatedEvent is emitted when a protocol is created.
type ProtocolCreatedEvent struct {
	ProtocolID string `json:"protocol_id"`
	OrgID      string `json:"org_id"`
}

func (e ProtocolCreatedEvent) EventName() string { return ProtocolCreated }

// ProtocolUpdatedEvent is emitted when a protocol is updated.
type ProtocolUpdatedEvent struct {
	ProtocolID string `json:"protocol_id"`
	OrgID      string `json:"org_id"`
}

func (e ProtocolUpdatedEvent) EventName() string { return ProtocolUpdated }

// ProtocolDeletedEvent is emitted when a protocol is deleted.
type ProtocolDeletedEvent struct {
	ProtocolID string `json:"protocol_id"`
	OrgID      string `json:"org_id"`
}

func (e ProtocolDeletedEvent) EventName() string { return ProtocolDeleted }

// ProtocolExportedEvent is emitted when a PDF export finishes.
type ProtocolExportedEvent struct {
	ProtocolID string `json:"protocol_id"`
	OrgID      string `json:"org_id"`
}

func (e ProtocolExportedEvent) EventName() string { return ProtocolExported }

// ProtocolSentEvent is emitted when a protocol was mailed to its members.
type ProtocolSentEvent struct {
	ProtocolID string `json:"protocol_id"`
	OrgID      string `json:"org_id"`
	Recipients int    `json:"recipients"`
}

func (e ProtocolSentEvent) EventName() string { return ProtocolSent }

// ============================================================================
// Task Events
// ============================================================================

// TaskCreatedEvent is emitted when a task is created.
type TaskCreatedEvent struct {
	TaskID string `json:"task_id"`
	OrgID  string `json:"org_id"`
}

func (e TaskCreatedEvent) EventName() string { return TaskCreated }

// TaskUpdatedEvent is emitted when a task changes.
type TaskUpdatedEvent struct {
	TaskID string `json:"task_id"`
	OrgID  string `json:"org_id"`
}

func (e TaskUpdatedEvent) EventName() string { return TaskUpdated }

// TaskDeletedEvent is emitted when a task is deleted.
type TaskDeletedEvent struct {
	TaskID string `json:"task_id"`
	OrgID  string `json:"org_id"`
}

func (e TaskDeletedEvent) EventName() string { return TaskDeleted }
