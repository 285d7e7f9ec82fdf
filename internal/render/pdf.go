package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/domain/report"
	"github.com/cody-hayes-dmv/DesignMeMarketing-sub006/internal/render/layout"
)

// A4 in points.
var a4 = gofpdf.SizeType{Wd: 595.28, Ht: 841.89}

const (
	pdfMargin     = 36.0
	bodyFontSize  = 9.0
	tableLineHt   = 12.0
	tableRowMinHt = 22.0
	tableHeaderHt = 24.0
)

// tableColumns is the fixed column set for the keyword table. The keyword
// column takes whatever width remains on the landscape page.
var tableColumns = []layout.Column{
	{Title: "Keyword", Remainder: true},
	{Title: "Location", Width: 110},
	{Title: "Added", Width: 65},
	{Title: "Rank", Width: 45},
	{Title: "Prev", Width: 45},
	{Title: "Features", Width: 120},
	{Title: "URL", Width: 190},
}

// renderPDF produces the paginated document: a portrait summary page
// followed by landscape table pages driven by the layout engine's paint
// plan. gofpdf's link annotations are unreliable for wrapped cells, so URLs
// are painted as plain colored text instead of clickable links.
func renderPDF(clientName string, snap *report.Snapshot, rows []report.TargetRow) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)

	drawSummaryPage(pdf, clientName, snap)
	if len(rows) > 0 {
		drawTablePages(pdf, rows)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func drawSummaryPage(pdf *gofpdf.Fpdf, clientName string, snap *report.Snapshot) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(34, 34, 34)
	pdf.Text(pdfMargin, pdfMargin+22, clientName)

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(110, 110, 110)
	pdf.Text(pdfMargin, pdfMargin+44, "Ranking Report  ·  "+snap.PeriodLabel)

	metrics := []struct {
		label string
		value string
	}{
		{"Clicks", fmt.Sprintf("%d", snap.Clicks)},
		{"Impressions", fmt.Sprintf("%d", snap.Impressions)},
		{"Sessions", fmt.Sprintf("%d", snap.Sessions)},
		{"Average position", fmt.Sprintf("%.1f", snap.AvgPosition)},
		{"Tracked keywords", fmt.Sprintf("%d", snap.TrackedKeywords)},
		{"Top 10 rankings", fmt.Sprintf("%d", snap.TopTenKeywords)},
	}

	y := pdfMargin + 90
	for _, m := range metrics {
		pdf.SetFillColor(245, 246, 248)
		pdf.Rect(pdfMargin, y, a4.Wd-2*pdfMargin, 34, "F")
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(90, 90, 90)
		pdf.Text(pdfMargin+12, y+22, m.label)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(34, 34, 34)
		pdf.Text(pdfMargin+220, y+22, m.value)
		y += 42
	}
}

func drawTablePages(pdf *gofpdf.Fpdf, rows []report.TargetRow) {
	pdf.SetFont("Helvetica", "", bodyFontSize)

	engine := layout.NewEngine(layout.Geometry{
		PageWidth:    a4.Ht, // landscape
		PageHeight:   a4.Wd,
		MarginLeft:   pdfMargin,
		MarginTop:    pdfMargin,
		MarginRight:  pdfMargin,
		MarginBottom: pdfMargin,
		PaddingX:     6,
		PaddingY:     5,
		LineHeight:   tableLineHt,
		MinRowHeight: tableRowMinHt,
		HeaderHeight: tableHeaderHt,
	}, pdf.GetStringWidth)

	plan := engine.Layout(tableColumns, tableCells(rows))
	if plan.Pages == 0 {
		return
	}

	pdf.AddPageFormat("L", a4)
	for _, ins := range plan.Instructions {
		switch ins.Op {
		case layout.OpPageBreak:
			pdf.AddPageFormat("L", a4)
		case layout.OpRect:
			if ins.Fill {
				pdf.SetFillColor(38, 50, 66)
				pdf.Rect(ins.X, ins.Y, ins.W, ins.H, "F")
			} else {
				pdf.SetDrawColor(210, 214, 220)
				pdf.Rect(ins.X, ins.Y, ins.W, ins.H, "D")
			}
		case layout.OpText:
			if ins.Header {
				pdf.SetFont("Helvetica", "B", bodyFontSize)
				pdf.SetTextColor(255, 255, 255)
			} else if strings.HasPrefix(ins.Text, "http://") || strings.HasPrefix(ins.Text, "https://") {
				pdf.SetFont("Helvetica", "", bodyFontSize)
				pdf.SetTextColor(26, 86, 160)
			} else {
				pdf.SetFont("Helvetica", "", bodyFontSize)
				pdf.SetTextColor(34, 34, 34)
			}
			// Instruction Y is the top of the line box; Text wants the
			// baseline.
			pdf.Text(ins.X, ins.Y+tableLineHt*0.8, ins.Text)
		}
	}
}

func tableCells(rows []report.TargetRow) [][]string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		url := FilterRankingURL(r.URL)
		if url == "" {
			url = "-"
		}
		created := ""
		if !r.CreatedAt.IsZero() {
			created = r.CreatedAt.Format("2006-01-02")
		}
		cells = append(cells, []string{
			r.Keyword,
			r.Location,
			created,
			rankText(r.Rank),
			rankText(r.PrevRank),
			joinTags(r.FeatureTags),
			url,
		})
	}
	return cells
}

// rankText renders a rank value, treating zero as "not ranked".
func rankText(rank int) string {
	if rank <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", rank)
}
