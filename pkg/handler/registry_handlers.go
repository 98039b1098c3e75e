package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/protokollhq/protokoll/pkg/models"
	"github.com/protokollhq/protokoll/pkg/service"
)

// RegistryHandler serves the org registry: committees, companies and members.
type RegistryHandler struct {
	registry *service.RegistryService
}

func NewRegistryHandler(registry *service.RegistryService) *RegistryHandler {
	return &RegistryHandler{registry: registry}
}

func notFound(err error) bool {
	return errors.Is(err, service.ErrCommitteeNotFound) ||
		errors.Is(err, service.ErrCompanyNotFound) ||
		errors.Is(err, service.ErrMemberNotFound)
}

func (h *RegistryHandler) respond(c *gin.Context, data any, err error) {
	if err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, models.Response{Code: 404, Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.Response{Code: 500, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.Response{Code: 0, Message: "ok", Data: data})
}

// ========== Committees ==========

func (h *RegistryHandler) CreateCommittee(c *gin.Context) {
	var req models.CreateCommitteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{Code: 400, Message: err.Error()})
		return
	}
	committee, err := h.registry.CreateCommittee(orgID(c), &req)
	h.respond(c, committee, err)
}

func (h *RegistryHandler) ListCommittees(c *gin.Context) {
	committees, err := h.registry.ListCommittees(orgID(c))
	h.respond(c, committees, err)
}

func (h *RegistryHandler) GetCommittee(c *gin.Context) {
	committee, err := h.registry.GetCommittee(orgID(c), c.Param("id"))
	h.respond(c, committee, err)
}

func (h *RegistryHandler) UpdateCommittee(c *gin.Context) {
	var req models.UpdateCommitteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{Code: 400, Message: err.Error()})
		return
	}
	committee, err := h.registry.UpdateCommittee(orgID(c), c.Param("id"), &req)
	h.respond(c, committee, err)
}

func (h *RegistryHandler) DeleteCommittee(c *gin.Context) {
	h.respond(c, nil, h.registry.DeleteCommittee(orgID(c), c.Param("id")))
}

// ========== Companies ==========

func (h *RegistryHandler) CreateCompany(c *gin.Context) {
	var req models.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{Code: 400, Message: err.Error()})
		return
	}
	company, err := h.registry.CreateCompany(orgID(c), &req)
	h.respond(c, company, err)
}

func (h *RegistryHandler) ListCompanies(c *gin.Context) {
	companies, err := h.registry.ListCompanies(orgID(c))
	h.respond(c, companies, err)
}

func (h *RegistryHandler) GetCompany(c *gin.Context) {
	company, err := h.registry.GetCompany(orgID(c), c.Param("id"))
	h.respond(c, company, err)
}

func (h *RegistryHandler) UpdateCompany(c *gin.Context) {
	var req models.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{Code: 400, Message: err.Error()})
		return
	}
	company, err := h.registry.UpdateCompany(orgID(c), c.Param("id"), &req)
	h.respond(c, company, err)
}

func (h *RegistryHandler) DeleteCompany(c *gin.Context) {
	h.respond(c, nil, h.registry.DeleteCompany(orgID(c), c.Param("id")))
}

// ========== Members ==========

func (h *RegistryHandler) CreateMember(c *gin.Context) {
	var req models.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{Code: 400, Message: err.Error()})
		return
	}
	member, err := h.registry.CreateMember(orgID(c), &req)
	h.respond(c, member, err)
}

func (h *RegistryHandler) ListMembers(c *gin.Context) {
	members, err := h.registry.ListMembers(orgID(c), c.Query("committee_id"))
	h.respond(c, members, err)
}

func (h *RegistryHandler) GetMember(c *gin.Context) {
	member, err := h.registry.GetMember(orgID(c), c.Param("id"))
	h.respond(c, member, err)
}

func (h *RegistryHandler) UpdateMember(c *gin.Context) {
	var req models.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{Code: 400, Message: err.Error()})
		return
	}
	member, err := h.registry.UpdateMember(orgID(c), c.Param("id"), &req)
	h.respond(c, member, err)
}

func (h *RegistryHandler) DeleteMember(c *gin.Context) {
	h.respond(c, nil, h.registry.DeleteMember(orgID(c), c.Param("id")))
}
