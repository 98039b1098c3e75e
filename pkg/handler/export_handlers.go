package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/protokollhq/protokoll/pkg/models"
	"github.com/protokollhq/protokoll/pkg/service"
)

// ExportHandler serves PDF export and mail delivery of protocols.
type ExportHandler struct {
	exports *service.ExportService
	mail    *service.MailService
}

func NewExportHandler(exports *service.ExportService, mail *service.MailService) *ExportHandler {
	return &ExportHandler{exports: exports, mail: mail}
}

// ExportPDF streams the rendered protocol PDF.
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	id := c.Param("id")
	pdf, err := h.exports.ExportPDF(c.Request.Context(), orgID(c), id)
	if err != nil {
		if errors.Is(err, service.ErrProtocolNotFound) {
			c.JSON(http.StatusNotFound, models.Response{Code: 404, Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.Response{Code: 500, Message: err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="protocol-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Preview returns the protocol rendered as HTML, useful before exporting.
func (h *ExportHandler) Preview(c *gin.Context) {
	html, err := h.exports.RenderHTML(orgID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProtocolNotFound) {
			c.JSON(http.StatusNotFound, models.Response{Code: 404, Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.Response{Code: 500, Message: err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// SendInvitations mails an invitation to the protocol's invited members.
func (h *ExportHandler) SendInvitations(c *gin.Context) {
	count, err := h.mail.SendInvitations(orgID(c), c.Param("id"))
	if err != nil {
		h.mailError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Code: 0, Message: "ok", Data: gin.H{"recipients": count}})
}

// SendProtocol exports the protocol and mails it out.
func (h *ExportHandler) SendProtocol(c *gin.Context) {
	var req models.SendProtocolRequest
	// Body is optional; without it the protocol goes to the member list only.
	_ = c.ShouldBindJSON(&req)

	count, err := h.mail.SendProtocol(c.Request.Context(), orgID(c), c.Param("id"), req.ExtraRecipients, req.Message)
	if err != nil {
		h.mailError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Code: 0, Message: "ok", Data: gin.H{"recipients": count}})
}

func (h *ExportHandler) mailError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProtocolNotFound):
		c.JSON(http.StatusNotFound, models.Response{Code: 404, Message: err.Error()})
	case errors.Is(err, service.ErrSMTPNotConfigured), errors.Is(err, service.ErrNoRecipients):
		c.JSON(http.StatusBadRequest, models.Response{Code: 400, Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, models.Response{Code: 500, Message: err.Error()})
	}
}
