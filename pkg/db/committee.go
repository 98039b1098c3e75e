// Database models for the organizational registry
package db

import "time"

// Committee represents a committee (board, council, working group) within an org.
type Committee struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	OrgID       string    `json:"org_id" gorm:"index;size:36;not null"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Committee) TableName() string {
	return "committees"
}

// Company represents the legal entity a protocol is recorded for.
type Company struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	OrgID     string    `json:"org_id" gorm:"index;size:36;not null"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	Number    string    `json:"number,omitempty" gorm:"size:100"`
	Address   string    `json:"address,omitempty" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}

// Member represents a person who can be invited to meetings.
type Member struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	OrgID       string    `json:"org_id" gorm:"index;size:36;not null"`
	CommitteeID *string   `json:"committee_id,omitempty" gorm:"index;size:36"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Email       string    `json:"email,omitempty" gorm:"size:200"`
	Type        int       `json:"type" gorm:"default:1"` // MemberTypeInternal / MemberTypeExternal
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// Member types
const (
	MemberTypeInternal = 1
	MemberTypeExternal = 2
)
