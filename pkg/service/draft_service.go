// Draft service - conversational drafting sessions on top of the accumulator
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/protokollhq/protokoll/pkg/config"
	"github.com/protokollhq/protokoll/pkg/db"
	"github.com/protokollhq/protokoll/pkg/draft"
	"github.com/protokollhq/protokoll/pkg/event"
	"github.com/protokollhq/protokoll/pkg/models"
	"github.com/protokollhq/protokoll/pkg/utils"
)

var (
	ErrSessionNotFound = errors.New("drafting session not found")
	// ErrTurnInFlight is returned when a turn is submitted while a previous
	// one is still running. The conversation is strictly sequential.
	ErrTurnInFlight    = errors.New("a drafting turn is already in flight")
	ErrDraftIncomplete = errors.New("draft is incomplete")
)

// draftSession is the in-memory state of one drafting conversation.
type draftSession struct {
	id       string
	orgID    string
	model    string // preferred model name, empty means config default
	history  []draft.Turn
	draft    *draft.Protocol
	inFlight bool
}

// DraftSessionState is the session snapshot returned to handlers.
type DraftSessionState struct {
	ID       string          `json:"id"`
	Model    string          `json:"model,omitempty"`
	Draft    *draft.Protocol `json:"draft"`
	History  []draft.Turn    `json:"history"`
	InFlight bool            `json:"in_flight"`
}

// DraftService manages drafting sessions. Sessions live in memory only;
// nothing is persisted until the draft is confirmed into a protocol.
type DraftService struct {
	mu       sync.Mutex
	sessions map[string]*draftSession

	modelService    *ModelService
	protocolService *ProtocolService
	cfg             *config.AppConfig
	logger          *slog.Logger

	// newChatModel is swappable for tests.
	newChatModel func(ctx context.Context, preferred string) (draft.ChatModel, error)
}

func NewDraftService(cfg *config.AppConfig, modelService *ModelService, protocolService *ProtocolService) *DraftService {
	s := &DraftService{
		sessions:        make(map[string]*draftSession),
		modelService:    modelService,
		protocolService: protocolService,
		cfg:             cfg,
		logger:          utils.GetLogger(),
	}
	s.newChatModel = func(ctx context.Context, preferred string) (draft.ChatModel, error) {
		return modelService.DefaultChatModel(ctx, preferred)
	}
	return s
}

// StartSession creates a fresh drafting session with an empty draft.
func (s *DraftService) StartSession(orgID, modelName string) *DraftSessionState {
	session := &draftSession{
		id:      uuid.New().String(),
		orgID:   orgID,
		model:   modelName,
		history: []draft.Turn{},
		draft:   draft.NewProtocol(),
	}

	s.mu.Lock()
	s.sessions[session.id] = session
	s.mu.Unlock()

	return snapshot(session)
}

// GetSession returns the current state of a session.
func (s *DraftService) GetSession(orgID, id string) (*DraftSessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(orgID, id)
	if err != nil {
		return nil, err
	}
	return snapshot(session), nil
}

// SubmitTurn runs one user turn of the session's conversation. Only one turn
// may be in flight per session; concurrent submissions get ErrTurnInFlight.
// On completion failure the flag is cleared and the session is unchanged, so
// the same text can simply be resubmitted.
func (s *DraftService) SubmitTurn(ctx context.Context, orgID, id, text string) (*draft.TurnResult, error) {
	s.mu.Lock()
	session, err := s.lookup(orgID, id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if session.inFlight {
		s.mu.Unlock()
		return nil, ErrTurnInFlight
	}
	session.inFlight = true
	history := session.history
	current := session.draft
	preferred := session.model
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		session.inFlight = false
		s.mu.Unlock()
	}()

	if preferred == "" {
		preferred = s.cfg.Drafting.Model
	}
	chatModel, err := s.newChatModel(ctx, preferred)
	if err != nil {
		return nil, err
	}

	accumulator := draft.NewAccumulator(chatModel, s.cfg.DraftingTemperature())
	result, err := accumulator.SubmitTurn(ctx, history, current, text)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	session.history = result.History
	session.draft = result.Draft
	s.mu.Unlock()

	event.Emit(event.DraftUpdatedEvent{SessionID: id, OrgID: orgID, Draft: result.Draft})
	return result, nil
}

// Reset restarts a session: history and draft are discarded together. A
// running turn blocks the reset the same way it blocks another turn.
func (s *DraftService) Reset(orgID, id string) (*DraftSessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookup(orgID, id)
	if err != nil {
		return nil, err
	}
	if session.inFlight {
		return nil, ErrTurnInFlight
	}

	session.history = []draft.Turn{}
	session.draft = draft.NewProtocol()

	event.Emit(event.DraftResetEvent{SessionID: id, OrgID: orgID})
	return snapshot(session), nil
}

// Confirm persists the session's draft as a protocol and closes the session.
// The draft must at least carry a number, a due date and one agenda item.
func (s *DraftService) Confirm(orgID, id string) (*db.Protocol, error) {
	s.mu.Lock()
	session, err := s.lookup(orgID, id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if session.inFlight {
		s.mu.Unlock()
		return nil, ErrTurnInFlight
	}
	d := session.draft
	s.mu.Unlock()

	req, err := draftToCreateRequest(d)
	if err != nil {
		return nil, err
	}

	protocol, err := s.protocolService.Create(orgID, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	s.logger.Info("Drafting session confirmed into protocol",
		"session_id", id, "protocol_id", protocol.ID)
	return protocol, nil
}

// CloseSession discards a session without persisting anything.
func (s *DraftService) CloseSession(orgID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(orgID, id); err != nil {
		return err
	}
	delete(s.sessions, id)
	return nil
}

// lookup must be called with s.mu held.
func (s *DraftService) lookup(orgID, id string) (*draftSession, error) {
	session, ok := s.sessions[id]
	if !ok || session.orgID != orgID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func snapshot(session *draftSession) *DraftSessionState {
	history := make([]draft.Turn, len(session.history))
	copy(history, session.history)
	return &DraftSessionState{
		ID:       session.id,
		Model:    session.model,
		Draft:    session.draft,
		History:  history,
		InFlight: session.inFlight,
	}
}

// draftToCreateRequest converts a completed draft into a create request.
func draftToCreateRequest(d *draft.Protocol) (*models.CreateProtocolRequest, error) {
	if d == nil || d.Number == nil || *d.Number == "" {
		return nil, ErrDraftIncomplete
	}
	if d.DueDate == nil || *d.DueDate == "" {
		return nil, ErrDraftIncomplete
	}
	if len(d.AgendaItems) == 0 {
		return nil, ErrDraftIncomplete
	}

	req := &models.CreateProtocolRequest{
		Number:      *d.Number,
		DueDate:     *d.DueDate,
		CommitteeID: d.Committee.ID,
	}

	for _, m := range d.Members {
		if m.Name == nil || *m.Name == "" {
			continue
		}
		input := models.ProtocolMemberInput{
			MemberID: m.ID,
			Name:     *m.Name,
		}
		if m.Type != nil {
			input.Type = *m.Type
		}
		if m.Status != nil {
			input.Status = *m.Status
		}
		req.Members = append(req.Members, input)
	}

	for _, item := range d.AgendaItems {
		if item.Title == nil || *item.Title == "" {
			continue
		}
		req.AgendaItems = append(req.AgendaItems, models.AgendaItemInput{
			Title:           *item.Title,
			TopicContent:    item.TopicContent,
			DecisionContent: item.DecisionContent,
			DisplayOrder:    item.DisplayOrder,
		})
	}
	if len(req.AgendaItems) == 0 {
		return nil, ErrDraftIncomplete
	}

	return req, nil
}
