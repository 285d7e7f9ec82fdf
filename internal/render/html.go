package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/report"
)

// The email body is linear and non-paginated. All row and snapshot fields
// are untrusted; html/template's contextual escaping is the only thing
// standing between them and the recipient's mail client, so nothing is ever
// marked template.HTML.
const emailBodyTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Helvetica, Arial, sans-serif; color: #222;">
  <h1 style="font-size: 20px;">{{.ClientName}} Ranking Report</h1>
  <p>Reporting period: {{.PeriodLabel}}</p>
  <table cellpadding="6" cellspacing="0" border="0">
    <tr><td><strong>Clicks</strong></td><td>{{.Clicks}}</td></tr>
    <tr><td><strong>Impressions</strong></td><td>{{.Impressions}}</td></tr>
    <tr><td><strong>Sessions</strong></td><td>{{.Sessions}}</td></tr>
    <tr><td><strong>Average position</strong></td><td>{{printf "%.1f" .AvgPosition}}</td></tr>
    <tr><td><strong>Tracked keywords</strong></td><td>{{.TrackedKeywords}}</td></tr>
    <tr><td><strong>Top 10 rankings</strong></td><td>{{.TopTenKeywords}}</td></tr>
  </table>
  {{if .Rows}}
  <h2 style="font-size: 16px;">Keyword rankings</h2>
  <table cellpadding="4" cellspacing="0" border="1" style="border-collapse: collapse; font-size: 13px;">
    <tr>
      <th>Keyword</th><th>Location</th><th>Rank</th><th>Previous</th><th>Features</th><th>URL</th>
    </tr>
    {{range .Rows}}
    <tr>
      <td>{{.Keyword}}</td>
      <td>{{.Location}}</td>
      <td>{{.Rank}}</td>
      <td>{{.PrevRank}}</td>
      <td>{{.Features}}</td>
      <td><span style="color: #1a56a0;">{{.URL}}</span></td>
    </tr>
    {{end}}
  </table>
  {{end}}
  {{if .DashboardURL}}
  <p><a href="{{.DashboardURL}}">View your live dashboard</a></p>
  {{end}}
  <p style="color: #888; font-size: 12px;">The full paginated report is attached as a PDF.</p>
</body>
</html>`

type emailBodyData struct {
	ClientName      string
	PeriodLabel     string
	Clicks          int64
	Impressions     int64
	Sessions        int64
	AvgPosition     float64
	TrackedKeywords int
	TopTenKeywords  int
	Rows            []emailRowData
	DashboardURL    string
}

type emailRowData struct {
	Keyword  string
	Location string
	Rank     int
	PrevRank int
	Features string
	URL      string
}

var emailTmpl = template.Must(template.New("emailBody").Parse(emailBodyTemplate))

func renderHTMLBody(clientName string, snap *report.Snapshot, rows []report.TargetRow, dashboardURL string) (string, error) {
	data := emailBodyData{
		ClientName:      clientName,
		PeriodLabel:     snap.PeriodLabel,
		Clicks:          snap.Clicks,
		Impressions:     snap.Impressions,
		Sessions:        snap.Sessions,
		AvgPosition:     snap.AvgPosition,
		TrackedKeywords: snap.TrackedKeywords,
		TopTenKeywords:  snap.TopTenKeywords,
		DashboardURL:    dashboardURL,
	}
	for _, r := range rows {
		data.Rows = append(data.Rows, emailRowData{
			Keyword:  r.Keyword,
			Location: r.Location,
			Rank:     r.Rank,
			PrevRank: r.PrevRank,
			Features: joinTags(r.FeatureTags),
			URL:      FilterRankingURL(r.URL),
		})
	}

	var buf bytes.Buffer
	if err := emailTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute email body template: %w", err)
	}
	return buf.String(), nil
}
