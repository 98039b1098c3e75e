// Database models for meeting protocols
package db

import "time"

// Protocol represents one meeting protocol (agenda plus attendance).
type Protocol struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	OrgID       string    `json:"org_id" gorm:"index;size:36;not null"`
	Number      string    `json:"number" gorm:"size:50;not null"`
	DueDate     string    `json:"due_date,omitempty" gorm:"size:10"` // ISO-8601 date (YYYY-MM-DD)
	CommitteeID *string   `json:"committee_id,omitempty" gorm:"index;size:36"`
	CompanyID   *string   `json:"company_id,omitempty" gorm:"index;size:36"`
	Status      string    `json:"status" gorm:"size:20;default:'draft'"` // draft, final, sent
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Members     []ProtocolMember `json:"members,omitempty" gorm:"foreignKey:ProtocolID"`
	AgendaItems []AgendaItem     `json:"agenda_items,omitempty" gorm:"foreignKey:ProtocolID"`
	Attachments []Attachment     `json:"attachments,omitempty" gorm:"foreignKey:ProtocolID"`
}

func (Protocol) TableName() string {
	return "protocols"
}

// Protocol status
const (
	ProtocolStatusDraft = "draft"
	ProtocolStatusFinal = "final"
	ProtocolStatusSent  = "sent"
)

// ProtocolMember records one attendee of a protocol.
// MemberID links to the org member registry when the attendee is known there.
type ProtocolMember struct {
	ID         string  `json:"id" gorm:"primaryKey;size:36"`
	ProtocolID string  `json:"protocol_id" gorm:"index;size:36;not null"`
	MemberID   *string `json:"member_id,omitempty" gorm:"size:36"`
	Name       string  `json:"name" gorm:"size:200;not null"`
	Type       int     `json:"type" gorm:"default:1"`   // MemberTypeInternal / MemberTypeExternal
	Status     int     `json:"status" gorm:"default:1"` // AttendanceInvited / AttendancePresent / AttendanceAbsent
}

func (ProtocolMember) TableName() string {
	return "protocol_members"
}

// Attendance status
const (
	AttendanceInvited = 1
	AttendancePresent = 2
	AttendanceAbsent  = 3
)

// AgendaItem is one numbered topic of a protocol.
type AgendaItem struct {
	ID              string  `json:"id" gorm:"primaryKey;size:36"`
	ProtocolID      string  `json:"protocol_id" gorm:"index;size:36;not null"`
	Title           string  `json:"title" gorm:"size:500;not null"`
	TopicContent    *string `json:"topic_content,omitempty" gorm:"type:text"`
	DecisionContent *string `json:"decision_content,omitempty" gorm:"type:text"`
	DisplayOrder    *int    `json:"display_order,omitempty"`
}

func (AgendaItem) TableName() string {
	return "agenda_items"
}

// Attachment stores file metadata only; the bytes live in external storage.
type Attachment struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	OrgID       string    `json:"org_id" gorm:"index;size:36;not null"`
	ProtocolID  string    `json:"protocol_id" gorm:"index;size:36;not null"`
	FileName    string    `json:"file_name" gorm:"size:300;not null"`
	ContentType string    `json:"content_type,omitempty" gorm:"size:100"`
	Size        int64     `json:"size"`
	StoragePath string    `json:"storage_path,omitempty" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Attachment) TableName() string {
	return "attachments"
}
