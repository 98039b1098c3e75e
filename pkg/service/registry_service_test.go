package service

import (
	"errors"
	"testing"

	"github.com/protokollhq/protokoll/pkg/db"
	"github.com/protokollhq/protokoll/pkg/models"
)

func newTestRegistryService(t *testing.T) *RegistryService {
	t.Helper()
	database, err := db.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	return NewRegistryService(database)
}

func TestRegistryService_CommitteeLifecycle(t *testing.T) {
	s := newTestRegistryService(t)

	committee, err := s.CreateCommittee("org-1", &models.CreateCommitteeRequest{Name: "Board", Description: "Main board"})
	if err != nil {
		t.Fatalf("CreateCommittee() error = %v", err)
	}

	updated, err := s.UpdateCommittee("org-1", committee.ID, &models.UpdateCommitteeRequest{Name: "Supervisory board"})
	if err != nil {
		t.Fatalf("UpdateCommittee() error = %v", err)
	}
	if updated.Name != "Supervisory board" || updated.Description != "Main board" {
		t.Fatalf("updated committee = %+v", updated)
	}

	if _, err := s.GetCommittee("org-2", committee.ID); !errors.Is(err, ErrCommitteeNotFound) {
		t.Fatalf("cross-org GetCommittee() error = %v, want ErrCommitteeNotFound", err)
	}

	if err := s.DeleteCommittee("org-1", committee.ID); err != nil {
		t.Fatalf("DeleteCommittee() error = %v", err)
	}
	if _, err := s.GetCommittee("org-1", committee.ID); !errors.Is(err, ErrCommitteeNotFound) {
		t.Fatalf("GetCommittee() after delete error = %v, want ErrCommitteeNotFound", err)
	}
}

func TestRegistryService_DeleteCommittee_ClearsReferences(t *testing.T) {
	s := newTestRegistryService(t)

	committee, err := s.CreateCommittee("org-1", &models.CreateCommitteeRequest{Name: "Board"})
	if err != nil {
		t.Fatalf("CreateCommittee() error = %v", err)
	}
	member, err := s.CreateMember("org-1", &models.CreateMemberRequest{Name: "Alice", CommitteeID: &committee.ID})
	if err != nil {
		t.Fatalf("CreateMember() error = %v", err)
	}

	if err := s.DeleteCommittee("org-1", committee.ID); err != nil {
		t.Fatalf("DeleteCommittee() error = %v", err)
	}

	got, err := s.GetMember("org-1", member.ID)
	if err != nil {
		t.Fatalf("GetMember() error = %v", err)
	}
	if got.CommitteeID != nil {
		t.Fatalf("member committee reference not cleared: %v", *got.CommitteeID)
	}
}

func TestRegistryService_MemberDefaultsAndFilter(t *testing.T) {
	s := newTestRegistryService(t)

	committee, err := s.CreateCommittee("org-1", &models.CreateCommitteeRequest{Name: "Board"})
	if err != nil {
		t.Fatalf("CreateCommittee() error = %v", err)
	}

	member, err := s.CreateMember("org-1", &models.CreateMemberRequest{Name: "Alice", Type: 99, CommitteeID: &committee.ID})
	if err != nil {
		t.Fatalf("CreateMember() error = %v", err)
	}
	if member.Type != db.MemberTypeInternal {
		t.Fatalf("member type = %d, want internal default", member.Type)
	}

	if _, err := s.CreateMember("org-1", &models.CreateMemberRequest{Name: "Bob", Type: db.MemberTypeExternal}); err != nil {
		t.Fatalf("CreateMember() error = %v", err)
	}

	members, err := s.ListMembers("org-1", committee.ID)
	if err != nil {
		t.Fatalf("ListMembers() error = %v", err)
	}
	if len(members) != 1 || members[0].Name != "Alice" {
		t.Fatalf("committee filter got %+v", members)
	}

	members, err = s.ListMembers("org-1", "")
	if err != nil {
		t.Fatalf("ListMembers() error = %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("ListMembers() = %d, want 2", len(members))
	}
}

func TestRegistryService_CompanyLifecycle(t *testing.T) {
	s := newTestRegistryService(t)

	company, err := s.CreateCompany("org-1", &models.CreateCompanyRequest{Name: "Acme AG", Number: "CHE-123"})
	if err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}

	updated, err := s.UpdateCompany("org-1", company.ID, &models.UpdateCompanyRequest{Address: "Bahnhofstrasse 1"})
	if err != nil {
		t.Fatalf("UpdateCompany() error = %v", err)
	}
	if updated.Address != "Bahnhofstrasse 1" || updated.Number != "CHE-123" {
		t.Fatalf("updated company = %+v", updated)
	}

	if err := s.DeleteCompany("org-1", company.ID); err != nil {
		t.Fatalf("DeleteCompany() error = %v", err)
	}
	if _, err := s.GetCompany("org-1", company.ID); !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("GetCompany() after delete error = %v, want ErrCompanyNotFound", err)
	}
}
