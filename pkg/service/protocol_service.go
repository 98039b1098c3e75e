// Protocol service - CRUD over meeting protocols and their nested rows
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/protokollhq/protokoll/pkg/db"
	"github.com/protokollhq/protokoll/pkg/event"
	"github.com/protokollhq/protokoll/pkg/models"
	"github.com/protokollhq/protokoll/pkg/utils"
)

var (
	ErrProtocolNotFound   = errors.New("protocol not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
)

// ProtocolService handles protocol CRUD. Every operation is scoped to an org.
type ProtocolService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewProtocolService(database *gorm.DB) *ProtocolService {
	return &ProtocolService{
		db:     database,
		logger: utils.GetLogger(),
	}
}

// Create stores a protocol with its members and agenda items in one transaction.
func (s *ProtocolService) Create(orgID string, req *models.CreateProtocolRequest) (*db.Protocol, error) {
	protocol := &db.Protocol{
		ID:          uuid.New().String(),
		OrgID:       orgID,
		Number:      req.Number,
		DueDate:     req.DueDate,
		CommitteeID: req.CommitteeID,
		CompanyID:   req.CompanyID,
		Status:      db.ProtocolStatusDraft,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(protocol).Error; err != nil {
			return fmt.Errorf("failed to create protocol: %w", err)
		}
		if err := createProtocolMembers(tx, protocol.ID, req.Members); err != nil {
			return err
		}
		return createAgendaItems(tx, protocol.ID, req.AgendaItems)
	})
	if err != nil {
		return nil, err
	}

	event.Emit(event.ProtocolCreatedEvent{ProtocolID: protocol.ID, OrgID: orgID})
	return s.Get(orgID, protocol.ID)
}

// Get retrieves a protocol with members, ordered agenda items and attachments.
func (s *ProtocolService) Get(orgID, id string) (*db.Protocol, error) {
	var protocol db.Protocol
	err := s.db.
		Preload("Members").
		Preload("AgendaItems", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("display_order ASC")
		}).
		Preload("Attachments").
		First(&protocol, "id = ? AND org_id = ?", id, orgID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProtocolNotFound
		}
		return nil, err
	}
	return &protocol, nil
}

// List returns protocols for an org, newest first, with optional filters.
func (s *ProtocolService) List(orgID, committeeID, status string, limit, offset int) ([]db.Protocol, int64, error) {
	query := s.db.Model(&db.Protocol{}).Where("org_id = ?", orgID)
	if committeeID != "" {
		query = query.Where("committee_id = ?", committeeID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var protocols []db.Protocol
	if err := query.Order("due_date DESC, created_at DESC").
		Limit(limit).Offset(offset).Find(&protocols).Error; err != nil {
		return nil, 0, err
	}

	return protocols, total, nil
}

// Update changes head fields; nested lists, when present in the request,
// replace the stored lists wholesale.
func (s *ProtocolService) Update(orgID, id string, req *models.UpdateProtocolRequest) (*db.Protocol, error) {
	protocol, err := s.Get(orgID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Number != "" {
		updates["number"] = req.Number
	}
	if req.DueDate != "" {
		updates["due_date"] = req.DueDate
	}
	if req.CommitteeID != nil {
		updates["committee_id"] = *req.CommitteeID
	}
	if req.CompanyID != nil {
		updates["company_id"] = *req.CompanyID
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			updates["updated_at"] = time.Now()
			if err := tx.Model(protocol).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.Members != nil {
			if err := tx.Where("protocol_id = ?", id).Delete(&db.ProtocolMember{}).Error; err != nil {
				return err
			}
			if err := createProtocolMembers(tx, id, *req.Members); err != nil {
				return err
			}
		}
		if req.AgendaItems != nil {
			if err := tx.Where("protocol_id = ?", id).Delete(&db.AgendaItem{}).Error; err != nil {
				return err
			}
			if err := createAgendaItems(tx, id, *req.AgendaItems); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	event.Emit(event.ProtocolUpdatedEvent{ProtocolID: id, OrgID: orgID})
	return s.Get(orgID, id)
}

// Delete removes a protocol and everything hanging off it.
func (s *ProtocolService) Delete(orgID, id string) error {
	if _, err := s.Get(orgID, id); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("protocol_id = ?", id).Delete(&db.ProtocolMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("protocol_id = ?", id).Delete(&db.AgendaItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("protocol_id = ?", id).Delete(&db.Attachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Protocol{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	event.Emit(event.ProtocolDeletedEvent{ProtocolID: id, OrgID: orgID})
	return nil
}

// ========== Attachments ==========

// AddAttachment registers attachment metadata for a protocol.
func (s *ProtocolService) AddAttachment(orgID, protocolID string, req *models.CreateAttachmentRequest) (*db.Attachment, error) {
	if _, err := s.Get(orgID, protocolID); err != nil {
		return nil, err
	}

	attachment := &db.Attachment{
		ID:          uuid.New().String(),
		OrgID:       orgID,
		ProtocolID:  protocolID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Size:        req.Size,
		StoragePath: req.StoragePath,
	}
	if err := s.db.Create(attachment).Error; err != nil {
		return nil, fmt.Errorf("failed to create attachment: %w", err)
	}
	return attachment, nil
}

// DeleteAttachment removes attachment metadata.
func (s *ProtocolService) DeleteAttachment(orgID, id string) error {
	result := s.db.Where("id = ? AND org_id = ?", id, orgID).Delete(&db.Attachment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAttachmentNotFound
	}
	return nil
}

func createProtocolMembers(tx *gorm.DB, protocolID string, inputs []models.ProtocolMemberInput) error {
	for _, in := range inputs {
		memberType := in.Type
		if memberType != db.MemberTypeInternal && memberType != db.MemberTypeExternal {
			memberType = db.MemberTypeInternal
		}
		status := in.Status
		if status != db.AttendanceInvited && status != db.AttendancePresent {
			if status == 0 {
				status = db.AttendanceInvited
			} else {
				status = db.AttendanceAbsent
			}
		}
		member := &db.ProtocolMember{
			ID:         uuid.New().String(),
			ProtocolID: protocolID,
			MemberID:   in.MemberID,
			Name:       in.Name,
			Type:       memberType,
			Status:     status,
		}
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("failed to create protocol member: %w", err)
		}
	}
	return nil
}

func createAgendaItems(tx *gorm.DB, protocolID string, inputs []models.AgendaItemInput) error {
	for i, in := range inputs {
		order := in.DisplayOrder
		if order == nil {
			position := i + 1
			order = &position
		}
		item := &db.AgendaItem{
			ID:              uuid.New().String(),
			ProtocolID:      protocolID,
			Title:           in.Title,
			TopicContent:    in.TopicContent,
			DecisionContent: in.DecisionContent,
			DisplayOrder:    order,
		}
		if err := tx.Create(item).Error; err != nil {
			return fmt.Errorf("failed to create agenda item: %w", err)
		}
	}
	return nil
}
