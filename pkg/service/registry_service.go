// Registry service - committees, companies and members of an org
package service

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/protokollhq/protokoll/pkg/db"
	"github.com/protokollhq/protokoll/pkg/models"
	"github.com/protokollhq/protokoll/pkg/utils"
)

var (
	ErrCommitteeNotFound = errors.New("committee not found")
	ErrCompanyNotFound   = errors.New("company not found")
	ErrMemberNotFound    = errors.New("member not found")
)

// RegistryService maintains the org-level registry that protocols refer to.
type RegistryService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRegistryService(database *gorm.DB) *RegistryService {
	return &RegistryService{
		db:     database,
		logger: utils.GetLogger(),
	}
}

// ========== Committees ==========

func (s *RegistryService) CreateCommittee(orgID string, req *models.CreateCommitteeRequest) (*db.Committee, error) {
	committee := &db.Committee{
		ID:          uuid.New().String(),
		OrgID:       orgID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.db.Create(committee).Error; err != nil {
		return nil, err
	}
	return committee, nil
}

func (s *RegistryService) GetCommittee(orgID, id string) (*db.Committee, error) {
	var committee db.Committee
	err := s.db.First(&committee, "id = ? AND org_id = ?", id, orgID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommitteeNotFound
		}
		return nil, err
	}
	return &committee, nil
}

func (s *RegistryService) ListCommittees(orgID string) ([]db.Committee, error) {
	var committees []db.Committee
	err := s.db.Where("org_id = ?", orgID).Order("name ASC").Find(&committees).Error
	return committees, err
}

func (s *RegistryService) UpdateCommittee(orgID, id string, req *models.UpdateCommitteeRequest) (*db.Committee, error) {
	committee, err := s.GetCommittee(orgID, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if len(updates) > 0 {
		if err := s.db.Model(committee).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetCommittee(orgID, id)
}

// DeleteCommittee removes a committee. Members and protocols that referenced
// it keep their rows; the reference is cleared.
func (s *RegistryService) DeleteCommittee(orgID, id string) error {
	if _, err := s.GetCommittee(orgID, id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.Member{}).
			Where("committee_id = ?", id).Update("committee_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&db.Protocol{}).
			Where("committee_id = ?", id).Update("committee_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Committee{}, "id = ?", id).Error
	})
}

// ========== Companies ==========

func (s *RegistryService) CreateCompany(orgID string, req *models.CreateCompanyRequest) (*db.Company, error) {
	company := &db.Company{
		ID:      uuid.New().String(),
		OrgID:   orgID,
		Name:    req.Name,
		Number:  req.Number,
		Address: req.Address,
	}
	if err := s.db.Create(company).Error; err != nil {
		return nil, err
	}
	return company, nil
}

func (s *RegistryService) GetCompany(orgID, id string) (*db.Company, error) {
	var company db.Company
	err := s.db.First(&company, "id = ? AND org_id = ?", id, orgID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (s *RegistryService) ListCompanies(orgID string) ([]db.Company, error) {
	var companies []db.Company
	err := s.db.Where("org_id = ?", orgID).Order("name ASC").Find(&companies).Error
	return companies, err
}

func (s *RegistryService) UpdateCompany(orgID, id string, req *models.UpdateCompanyRequest) (*db.Company, error) {
	company, err := s.GetCompany(orgID, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Number != "" {
		updates["number"] = req.Number
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if len(updates) > 0 {
		if err := s.db.Model(company).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetCompany(orgID, id)
}

func (s *RegistryService) DeleteCompany(orgID, id string) error {
	if _, err := s.GetCompany(orgID, id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.Protocol{}).
			Where("company_id = ?", id).Update("company_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Company{}, "id = ?", id).Error
	})
}

// ========== Members ==========

func (s *RegistryService) CreateMember(orgID string, req *models.CreateMemberRequest) (*db.Member, error) {
	memberType := req.Type
	if memberType != db.MemberTypeInternal && memberType != db.MemberTypeExternal {
		memberType = db.MemberTypeInternal
	}
	member := &db.Member{
		ID:          uuid.New().String(),
		OrgID:       orgID,
		CommitteeID: req.CommitteeID,
		Name:        req.Name,
		Email:       req.Email,
		Type:        memberType,
	}
	if err := s.db.Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (s *RegistryService) GetMember(orgID, id string) (*db.Member, error) {
	var member db.Member
	err := s.db.First(&member, "id = ? AND org_id = ?", id, orgID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// ListMembers lists org members, optionally restricted to one committee.
func (s *RegistryService) ListMembers(orgID, committeeID string) ([]db.Member, error) {
	query := s.db.Where("org_id = ?", orgID)
	if committeeID != "" {
		query = query.Where("committee_id = ?", committeeID)
	}
	var members []db.Member
	err := query.Order("name ASC").Find(&members).Error
	return members, err
}

func (s *RegistryService) UpdateMember(orgID, id string, req *models.UpdateMemberRequest) (*db.Member, error) {
	member, err := s.GetMember(orgID, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.CommitteeID != nil {
		updates["committee_id"] = *req.CommitteeID
	}
	if len(updates) > 0 {
		if err := s.db.Model(member).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetMember(orgID, id)
}

func (s *RegistryService) DeleteMember(orgID, id string) error {
	result := s.db.Where("id = ? AND org_id = ?", id, orgID).Delete(&db.Member{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}
