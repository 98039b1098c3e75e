// Mail service - sends invitations and finished protocols over SMTP
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/protokollhq/protokoll/pkg/config"
	"github.com/protokollhq/protokoll/pkg/db"
	"github.com/protokollhq/protokoll/pkg/event"
	"github.com/protokollhq/protokoll/pkg/utils"
)

var (
	ErrSMTPNotConfigured = errors.New("smtp is not configured")
	ErrNoRecipients      = errors.New("no recipients with an email address")
)

// MailService delivers protocol mails. Recipient addresses come from the
// member registry; draft attendees without a registry link are skipped.
type MailService struct {
	cfg             *config.AppConfig
	protocolService *ProtocolService
	registryService *RegistryService
	exportService   *ExportService
	logger          *slog.Logger

	// dial is swappable for tests.
	dial func(m ...*gomail.Message) error
}

func NewMailService(cfg *config.AppConfig, protocolService *ProtocolService, registryService *RegistryService, exportService *ExportService) *MailService {
	s := &MailService{
		cfg:             cfg,
		protocolService: protocolService,
		registryService: registryService,
		exportService:   exportService,
		logger:          utils.GetLogger(),
	}
	s.dial = func(m ...*gomail.Message) error {
		dialer := gomail.NewDialer(cfg.SMTP.Host, cfg.SMTPPort(), cfg.SMTP.Username, cfg.SMTP.Password)
		return dialer.DialAndSend(m...)
	}
	return s
}

func (s *MailService) configured() bool {
	return s.cfg != nil && s.cfg.SMTP.Host != "" && s.cfg.SMTP.From != ""
}

// SendInvitations mails a meeting invitation to all invited members of a
// protocol that have an email address. Returns the number of recipients.
func (s *MailService) SendInvitations(orgID, protocolID string) (int, error) {
	if !s.configured() {
		return 0, ErrSMTPNotConfigured
	}

	protocol, err := s.protocolService.Get(orgID, protocolID)
	if err != nil {
		return 0, err
	}

	recipients := s.resolveRecipients(orgID, protocol, nil)
	if len(recipients) == 0 {
		return 0, ErrNoRecipients
	}

	subject := fmt.Sprintf("Invitation: meeting %s", protocol.Number)
	body := s.invitationBody(protocol)

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.SMTP.From)
	msg.SetHeader("Bcc", recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := s.dial(msg); err != nil {
		return 0, fmt.Errorf("failed to send invitations: %w", err)
	}

	s.logger.Info("Invitations sent", "protocol_id", protocolID, "recipients", len(recipients))
	return len(recipients), nil
}

// SendProtocol exports the protocol to PDF and mails it to all members with
// an email address plus any extra recipients. On success the protocol status
// moves to sent.
func (s *MailService) SendProtocol(ctx context.Context, orgID, protocolID string, extraRecipients []string, message string) (int, error) {
	if !s.configured() {
		return 0, ErrSMTPNotConfigured
	}

	protocol, err := s.protocolService.Get(orgID, protocolID)
	if err != nil {
		return 0, err
	}

	recipients := s.resolveRecipients(orgID, protocol, extraRecipients)
	if len(recipients) == 0 {
		return 0, ErrNoRecipients
	}

	pdf, err := s.exportService.ExportPDF(ctx, orgID, protocolID)
	if err != nil {
		return 0, err
	}

	body := message
	if strings.TrimSpace(body) == "" {
		body = fmt.Sprintf("Please find attached the protocol %s.", protocol.Number)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.SMTP.From)
	msg.SetHeader("Bcc", recipients...)
	msg.SetHeader("Subject", fmt.Sprintf("Protocol %s", protocol.Number))
	msg.SetBody("text/plain", body)
	msg.Attach(fmt.Sprintf("protocol-%s.pdf", protocol.Number), gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))

	if err := s.dial(msg); err != nil {
		return 0, fmt.Errorf("failed to send protocol: %w", err)
	}

	if err := s.protocolService.db.Model(&db.Protocol{}).
		Where("id = ?", protocolID).Update("status", db.ProtocolStatusSent).Error; err != nil {
		s.logger.Warn("Failed to mark protocol as sent", "protocol_id", protocolID, "error", err)
	}

	event.Emit(event.ProtocolSentEvent{ProtocolID: protocolID, OrgID: orgID, Recipients: len(recipients)})
	s.logger.Info("Protocol sent", "protocol_id", protocolID, "recipients", len(recipients))
	return len(recipients), nil
}

// resolveRecipients maps protocol members to registry emails and merges the
// extra addresses, deduplicated.
func (s *MailService) resolveRecipients(orgID string, protocol *db.Protocol, extra []string) []string {
	seen := map[string]struct{}{}
	var recipients []string

	add := func(addr string) {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			return
		}
		key := strings.ToLower(addr)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		recipients = append(recipients, addr)
	}

	for _, pm := range protocol.Members {
		if pm.MemberID == nil {
			continue
		}
		member, err := s.registryService.GetMember(orgID, *pm.MemberID)
		if err != nil {
			continue
		}
		add(member.Email)
	}
	for _, addr := range extra {
		add(addr)
	}
	return recipients
}

func (s *MailService) invitationBody(protocol *db.Protocol) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are invited to meeting %s", protocol.Number)
	if protocol.DueDate != "" {
		fmt.Fprintf(&b, " on %s", protocol.DueDate)
	}
	b.WriteString(".\n")
	if len(protocol.AgendaItems) > 0 {
		b.WriteString("\nAgenda:\n")
		for i, item := range protocol.AgendaItems {
			n := i + 1
			if item.DisplayOrder != nil {
				n = *item.DisplayOrder
			}
			fmt.Fprintf(&b, "  %d. %s\n", n, item.Title)
		}
	}
	return b.String()
}
