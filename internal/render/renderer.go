package render

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/delivery"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/report"
)

// ShareLinkIssuer produces a signed dashboard URL for a client. Implemented
// by the sharelink infra package; failures degrade to a body without a link.
type ShareLinkIssuer interface {
	DashboardURL(clientID int64) (string, error)
}

// Output holds both artifacts produced for one report: the email body and
// the paginated PDF attachment.
type Output struct {
	HTMLBody string
	Document *delivery.Attachment
}

// Renderer turns a snapshot plus its target rows into deliverable artifacts.
type Renderer struct {
	links  ShareLinkIssuer
	logger *logrus.Logger
}

func NewRenderer(links ShareLinkIssuer, logger *logrus.Logger) *Renderer {
	return &Renderer{links: links, logger: logger}
}

// Render produces the HTML body and the paginated PDF for a client's
// snapshot. Rows are read-only input; the renderer never mutates them.
func (r *Renderer) Render(clientID int64, clientName string, snap *report.Snapshot, rows []report.TargetRow) (*Output, error) {
	dashboardURL := ""
	if r.links != nil {
		u, err := r.links.DashboardURL(clientID)
		if err != nil {
			r.logger.WithFields(logrus.Fields{"client_id": clientID}).
				Warnf("Could not issue dashboard link, rendering body without it: %v", err)
		} else {
			dashboardURL = u
		}
	}

	body, err := renderHTMLBody(clientName, snap, rows, dashboardURL)
	if err != nil {
		return nil, fmt.Errorf("failed to render HTML body: %w", err)
	}

	pdfBytes, err := renderPDF(clientName, snap, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to render PDF document: %w", err)
	}

	return &Output{
		HTMLBody: body,
		Document: &delivery.Attachment{
			Filename:    DocumentFilename(clientName, snap.PeriodLabel),
			ContentType: "application/pdf",
			Data:        pdfBytes,
		},
	}, nil
}

// DocumentFilename derives a deterministic attachment name from the client
// name and period label.
func DocumentFilename(clientName, periodLabel string) string {
	return fmt.Sprintf("report-%s-%s.pdf", slugify(clientName), slugify(periodLabel))
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func joinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
