package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/protokollhq/protokoll/pkg/draft"
	"github.com/protokollhq/protokoll/pkg/models"
	"github.com/protokollhq/protokoll/pkg/service"
)

// DraftHandler serves the conversational drafting chat.
type DraftHandler struct {
	drafts *service.DraftService
}

func NewDraftHandler(drafts *service.DraftService) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

func (h *DraftHandler) Start(c *gin.Context) {
	var req models.StartDraftSessionRequest
	// Body is optional; an empty session uses the configured default model.
	_ = c.ShouldBindJSON(&req)

	session := h.drafts.StartSession(orgID(c), req.Model)
	c.JSON(http.StatusOK, models.Response{Code: 0, Message: "ok", Data: session})
}

func (h *DraftHandler) Get(c *gin.Context) {
	session, err := h.drafts.GetSession(orgID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.Response{Code: 404, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.Response{Code: 0, Message: "ok", Data: session})
}

func (h *DraftHandler) SubmitTurn(c *gin.Context) {
	var req models.SubmitDraftTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Response{Code: 400, Message: err.Error()})
		return
	}

	result, err := h.drafts.SubmitTurn(c.Request.Context(), orgID(c), c.Param("id"), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, models.Response{Code: 404, Message: err.Error()})
		case errors.Is(err, service.ErrTurnInFlight):
			c.JSON(http.StatusConflict, models.Response{Code: 409, Message: err.Error()})
		case errors.Is(err, draft.ErrEmptyInput):
			c.JSON(http.StatusBadRequest, models.Response{Code: 400, Message: err.Error()})
		default:
			c.JSON(http.StatusBadGateway, models.Response{Code: 502, Message: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, models.Response{Code: 0, Message: "ok", Data: result})
}

func (h *DraftHandler) Reset(c *gin.Context) {
	session, err := h.drafts.Reset(orgID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, models.Response{Code: 404, Message: err.Error()})
		case errors.Is(err, service.ErrTurnInFlight):
			c.JSON(http.StatusConflict, models.Response{Code: 409, Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, models.Response{Code: 500, Message: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, models.Response{Code: 0, Message: "ok", Data: session})
}

func (h *DraftHandler) Confirm(c *gin.Context) {
	protocol, err := h.drafts.Confirm(orgID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, models.Response{Code: 404, Message: err.Error()})
		case errors.Is(err, service.ErrTurnInFlight):
			c.JSON(http.StatusConflict, models.Response{Code: 409, Message: err.Error()})
		case errors.Is(err, service.ErrDraftIncomplete):
			c.JSON(http.StatusBadRequest, models.Response{Code: 400, Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, models.Response{Code: 500, Message: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, models.Response{Code: 0, Message: "ok", Data: protocol})
}

func (h *DraftHandler) Close(c *gin.Context) {
	if err := h.drafts.CloseSession(orgID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, models.Response{Code: 404, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.Response{Code: 0, Message: "ok"})
}
