// API request/response types for the dashboard CRUD endpoints
package models

import "github.com/protokollhq/protokoll/pkg/db"

// ========== Protocols ==========

// ProtocolMemberInput is one attendee in a create/update request.
type ProtocolMemberInput struct {
	MemberID *string `json:"member_id,omitempty"`
	Name     string  `json:"name" binding:"required"`
	Type     int     `json:"type"`
	Status   int     `json:"status"`
}

// AgendaItemInput is one agenda topic in a create/update request.
type AgendaItemInput struct {
	Title           string  `json:"title" binding:"required"`
	TopicContent    *string `json:"topic_content,omitempty"`
	DecisionContent *string `json:"decision_content,omitempty"`
	DisplayOrder    *int    `json:"display_order,omitempty"`
}

// CreateProtocolRequest creates a protocol with its nested rows.
type CreateProtocolRequest struct {
	Number      string                `json:"number" binding:"required"`
	DueDate     string                `json:"due_date,omitempty"`
	CommitteeID *string               `json:"committee_id,omitempty"`
	CompanyID   *string               `json:"company_id,omitempty"`
	Members     []ProtocolMemberInput `json:"members,omitempty"`
	AgendaItems []AgendaItemInput     `json:"agenda_items,omitempty"`
}

// UpdateProtocolRequest updates protocol head fields; nested lists, when
// present, replace the stored lists wholesale.
type UpdateProtocolRequest struct {
	Number      string                 `json:"number,omitempty"`
	DueDate     string                 `json:"due_date,omitempty"`
	CommitteeID *string                `json:"committee_id,omitempty"`
	CompanyID   *string                `json:"company_id,omitempty"`
	Status      string                 `json:"status,omitempty"`
	Members     *[]ProtocolMemberInput `json:"members,omitempty"`
	AgendaItems *[]AgendaItemInput     `json:"agenda_items,omitempty"`
}

// ProtocolListResponse is the paged list of protocols.
type ProtocolListResponse struct {
	Protocols []db.Protocol `json:"protocols"`
	Total     int64         `json:"total"`
}

// ========== Registry (committees, companies, members) ==========

type CreateCommitteeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

type UpdateCommitteeRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type CreateCompanyRequest struct {
	Name    string `json:"name" binding:"required"`
	Number  string `json:"number,omitempty"`
	Address string `json:"address,omitempty"`
}

type UpdateCompanyRequest struct {
	Name    string `json:"name,omitempty"`
	Number  string `json:"number,omitempty"`
	Address string `json:"address,omitempty"`
}

type CreateMemberRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email,omitempty"`
	Type        int     `json:"type,omitempty"`
	CommitteeID *string `json:"committee_id,omitempty"`
}

type UpdateMemberRequest struct {
	Name        string  `json:"name,omitempty"`
	Email       string  `json:"email,omitempty"`
	Type        *int    `json:"type,omitempty"`
	CommitteeID *string `json:"committee_id,omitempty"`
}

// ========== Tasks ==========

type CreateTaskRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description,omitempty"`
	ProtocolID   *string `json:"protocol_id,omitempty"`
	AgendaItemID *string `json:"agenda_item_id,omitempty"`
	AssigneeID   *string `json:"assignee_id,omitempty"`
	DueDate      *string `json:"due_date,omitempty"`
}

type UpdateTaskRequest struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	AssigneeID  *string `json:"assignee_id,omitempty"`
	Status      string  `json:"status,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// ========== Attachments ==========

// CreateAttachmentRequest registers file metadata; the file itself lives in
// external storage.
type CreateAttachmentRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
	StoragePath string `json:"storage_path,omitempty"`
}

// ========== Drafting chat ==========

// SubmitDraftTurnRequest is one user turn of the drafting conversation.
type SubmitDraftTurnRequest struct {
	Text string `json:"text"`
}

// StartDraftSessionRequest starts a drafting session, optionally pinning a model.
type StartDraftSessionRequest struct {
	Model string `json:"model,omitempty"`
}

// SendProtocolRequest mails the exported protocol to additional recipients
// next to the invited members.
type SendProtocolRequest struct {
	ExtraRecipients []string `json:"extra_recipients,omitempty"`
	Message         string   `json:"message,omitempty"`
}
