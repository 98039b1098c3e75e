// Export service - renders protocols to PDF via headless Chrome
package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/protokollhq/protokoll/pkg/db"
	"github.com/protokollhq/protokoll/pkg/event"
	"github.com/protokollhq/protokoll/pkg/utils"
)

const exportTimeout = 60 * time.Second

// ExportService turns a stored protocol into a PDF document. Rendering goes
// through headless Chrome so the HTML template is the single source of layout.
type ExportService struct {
	protocolService *ProtocolService
	registryService *RegistryService
	logger          *slog.Logger
}

func NewExportService(protocolService *ProtocolService, registryService *RegistryService) *ExportService {
	return &ExportService{
		protocolService: protocolService,
		registryService: registryService,
		logger:          utils.GetLogger(),
	}
}

// protocolView is the template input: the protocol plus resolved references.
type protocolView struct {
	Protocol  *db.Protocol
	Committee *db.Committee
	Company   *db.Company
	Generated string
}

var protocolTemplate = template.Must(template.New("protocol").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; margin: 40px; color: #222; }
  h1 { font-size: 20px; margin-bottom: 4px; }
  h2 { font-size: 14px; margin: 18px 0 6px; border-bottom: 1px solid #ccc; padding-bottom: 3px; }
  table { border-collapse: collapse; width: 100%; }
  th, td { text-align: left; padding: 4px 8px; border-bottom: 1px solid #eee; }
  .meta { color: #666; margin-bottom: 16px; }
  .agenda-item { margin-bottom: 14px; }
  .agenda-item .title { font-weight: bold; }
  .decision { background: #f6f8f6; padding: 6px 8px; margin-top: 4px; }
  .footer { margin-top: 30px; color: #999; font-size: 10px; }
</style>
</head>
<body>
<h1>Protocol {{.Protocol.Number}}</h1>
<div class="meta">
  {{if .Protocol.DueDate}}Date: {{.Protocol.DueDate}}{{end}}
  {{if .Committee}} | Committee: {{.Committee.Name}}{{end}}
  {{if .Company}} | {{.Company.Name}}{{if .Company.Number}} ({{.Company.Number}}){{end}}{{end}}
</div>

{{if .Protocol.Members}}
<h2>Attendees</h2>
<table>
<tr><th>Name</th><th>Type</th><th>Attendance</th></tr>
{{range .Protocol.Members}}
<tr>
  <td>{{.Name}}</td>
  <td>{{if eq .Type 2}}External{{else}}Internal{{end}}</td>
  <td>{{if eq .Status 2}}Present{{else if eq .Status 1}}Invited{{else}}Absent{{end}}</td>
</tr>
{{end}}
</table>
{{end}}

{{if .Protocol.AgendaItems}}
<h2>Agenda</h2>
{{range $i, $item := .Protocol.AgendaItems}}
<div class="agenda-item">
  <div class="title">{{if $item.DisplayOrder}}{{$item.DisplayOrder}}.{{end}} {{$item.Title}}</div>
  {{if $item.TopicContent}}<div>{{$item.TopicContent}}</div>{{end}}
  {{if $item.DecisionContent}}<div class="decision">Decision: {{$item.DecisionContent}}</div>{{end}}
</div>
{{end}}
{{end}}

<div class="footer">Generated {{.Generated}}</div>
</body>
</html>`))

// RenderHTML renders the protocol document as HTML.
func (s *ExportService) RenderHTML(orgID, protocolID string) ([]byte, error) {
	protocol, err := s.protocolService.Get(orgID, protocolID)
	if err != nil {
		return nil, err
	}

	view := protocolView{
		Protocol:  protocol,
		Generated: time.Now().Format("2006-01-02 15:04"),
	}
	if protocol.CommitteeID != nil {
		if committee, err := s.registryService.GetCommittee(orgID, *protocol.CommitteeID); err == nil {
			view.Committee = committee
		}
	}
	if protocol.CompanyID != nil {
		if company, err := s.registryService.GetCompany(orgID, *protocol.CompanyID); err == nil {
			view.Company = company
		}
	}

	var buf bytes.Buffer
	if err := protocolTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render protocol template: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportPDF renders the protocol and prints it to PDF through headless Chrome.
func (s *ExportService) ExportPDF(ctx context.Context, orgID, protocolID string) ([]byte, error) {
	html, err := s.RenderHTML(orgID, protocolID)
	if err != nil {
		return nil, err
	}

	// Chrome needs a navigable URL; a temp file keeps the page self-contained.
	tmpDir, err := os.MkdirTemp("", "protokoll-export-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create export dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "protocol.html")
	if err := os.WriteFile(htmlPath, html, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write export html: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer allocCancel()

	chromeCtx, chromeCancel := chromedp.NewContext(allocCtx)
	defer chromeCancel()

	var pdf []byte
	err = chromedp.Run(chromeCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 inches
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}

	event.Emit(event.ProtocolExportedEvent{ProtocolID: protocolID, OrgID: orgID})
	s.logger.Info("Protocol exported", "protocol_id", protocolID, "bytes", len(pdf))
	return pdf, nil
}
