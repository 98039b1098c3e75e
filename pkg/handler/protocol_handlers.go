package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/protokollhq/protokoll/pkg/models"
	"github.com/protokollhq/protokoll/pkg/service"
)

type ProtocolHandler struct {
	protocols *service.ProtocolService
}

func NewProtocolHandler(protocols *service.ProtocolService) *ProtocolHandler {
	return &ProtocolHandler{protocols: protocols}
}

func (h *ProtocolHandler) Create(c *gin.Context) {
	var req models.CreateProtocolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{Code: 400, Message: err.Error()})
		return
	}
	protocol, err := h.protocols.Create(orgID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Response{Code: 500, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.Response{Code: 0, Message: "ok", Data: protocol})
}

func (h *ProtocolHandler) Get(c *gin.Context) {
	protocol, err := h.protocols.Get(orgID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProtocolNotFound) {
			c.JSON(http.StatusNotFound, models.Response{Code: 404, Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.Response{Code: 500, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.Response{Code: 0, Message: "ok", Data: protocol})
}

func (h *ProtocolHandler) List(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	offset := 0
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	protocols, total, err := h.protocols.List(orgID(c), c.Query("committee_id"), c.Query("status"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Response{Code: 500, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.Response{Code: 0, Message: "ok", Data: models.ProtocolListResponse{
		Protocols: protocols,
		Total:     total,
	}})
}

func (h *ProtocolHandler) Update(c *gin.Context) {
	var req models.UpdateProtocolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{Code: 400, Message: err.Error()})
		return
	}
	protocol, err := h.protocols.Update(orgID(c), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrProtocolNotFound) {
			c.JSON(http.StatusNotFound, models.Response{Code: 404, Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.Response{Code: 500, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.Response{Code: 0, Message: "ok", Data: protocol})
}

func (h *ProtocolHandler) Delete(c *gin.Context) {
	if err := h.protocols.Delete(orgID(c), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrProtocolNotFound) {
			c.JSON(http.StatusNotFound, models.Response{Code: 404, Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.Response{Code: 500, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.Response{Code: 0, Message: "ok"})
}

func (h *ProtocolHandler) AddAttachment(c *gin.Context) {
	var req models.CreateAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{Code: 400, Message: err.Error()})
		return
	}
	attachment, err := h.protocols.AddAttachment(orgID(c), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrProtocolNotFound) {
			c.JSON(http.StatusNotFound, models.Response{Code: 404, Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.Response{Code: 500, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.Response{Code: 0, Message: "ok", Data: attachment})
}

func (h *ProtocolHandler) DeleteAttachment(c *gin.Context) {
	if err := h.protocols.DeleteAttachment(orgID(c), c.Param("attachmentId")); err != nil {
		if errors.Is(err, service.ErrAttachmentNotFound) {
			c.JSON(http.StatusNotFound, models.Response{Code: 404, Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.Response{Code: 500, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.Response{Code: 0, Message: "ok"})
}
