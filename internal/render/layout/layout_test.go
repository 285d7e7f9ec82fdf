package layout

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// charWidth gives every rune a fixed 5pt width, which makes wrap points easy
// to reason about in tests.
func charWidth(s string) float64 {
	return float64(len([]rune(s))) * 5
}

func testGeometry() Geometry {
	return Geometry{
		PageWidth:    800,
		PageHeight:   600,
		MarginLeft:   40,
		MarginTop:    40,
		MarginRight:  40,
		MarginBottom: 40,
		PaddingX:     6,
		PaddingY:     5,
		LineHeight:   12,
		MinRowHeight: 22,
		HeaderHeight: 24,
	}
}

func testColumns() []Column {
	return []Column{
		{Title: "Keyword", Remainder: true},
		{Title: "Location", Width: 120},
		{Title: "Rank", Width: 60},
	}
}

func countOps(plan *Plan, op Op) int {
	n := 0
	for _, ins := range plan.Instructions {
		if ins.Op == op {
			n++
		}
	}
	return n
}

func TestSolveColumnWidthsSumsToUsableWidth(t *testing.T) {
	e := NewEngine(testGeometry(), charWidth)
	widths := e.SolveColumnWidths(testColumns())

	require.Len(t, widths, 3)
	assert.Equal(t, 120.0, widths[1])
	assert.Equal(t, 60.0, widths[2])

	var sum float64
	for _, w := range widths {
		sum += w
	}
	assert.Equal(t, testGeometry().UsableWidth(), sum)
}

func TestSolveColumnWidthsFloorsCollapsedRemainder(t *testing.T) {
	e := NewEngine(testGeometry(), charWidth)
	widths := e.SolveColumnWidths([]Column{
		{Title: "A", Width: 700},
		{Title: "B", Remainder: true}, // only 20pt left
	})
	assert.GreaterOrEqual(t, widths[1], minColumnWidth)
}

func TestLayoutZeroRowsRendersNothing(t *testing.T) {
	e := NewEngine(testGeometry(), charWidth)
	plan := e.Layout(testColumns(), nil)

	assert.Equal(t, 0, plan.Pages)
	assert.Equal(t, 0, plan.RowsPlaced)
	assert.Empty(t, plan.Instructions)
}

func TestLayoutSinglePageHasNoPageBreaks(t *testing.T) {
	e := NewEngine(testGeometry(), charWidth)
	rows := [][]string{
		{"plumber near me", "Austin, TX", "3"},
		{"emergency plumber", "Austin, TX", "7"},
	}
	plan := e.Layout(testColumns(), rows)

	assert.Equal(t, 1, plan.Pages)
	assert.Equal(t, 0, countOps(plan, OpPageBreak))
	assert.Equal(t, len(rows), plan.RowsPlaced)
}

func TestLayoutPaginatesAndRepaintsHeader(t *testing.T) {
	e := NewEngine(testGeometry(), charWidth)
	// 600pt page minus margins and header leaves 496pt; at 22pt per row,
	// 60 rows must spill across several pages.
	rows := make([][]string, 60)
	for i := range rows {
		rows[i] = []string{"keyword", "location", "1"}
	}
	plan := e.Layout(testColumns(), rows)

	require.Greater(t, plan.Pages, 1)
	assert.Equal(t, plan.Pages-1, countOps(plan, OpPageBreak))
	assert.Equal(t, len(rows), plan.RowsPlaced, "no row dropped or duplicated")

	// The header band is re-emitted on every page: one filled header rect
	// per column per page.
	headerRects := 0
	for _, ins := range plan.Instructions {
		if ins.Op == OpRect && ins.Header {
			headerRects++
		}
	}
	assert.Equal(t, plan.Pages*len(testColumns()), headerRects)
}

func TestLayoutRowNeverSplitsAcrossPageBreak(t *testing.T) {
	geo := testGeometry()
	e := NewEngine(geo, charWidth)
	rows := make([][]string, 40)
	for i := range rows {
		rows[i] = []string{"k", "l", "1"}
	}
	plan := e.Layout(testColumns(), rows)

	bottom := geo.PageHeight - geo.MarginBottom
	for _, ins := range plan.Instructions {
		if ins.Op == OpRect {
			assert.LessOrEqual(t, ins.Y+ins.H, bottom+1e-9, "row rect crosses the bottom margin")
		}
	}
}

func TestLayoutWrapsLongCellText(t *testing.T) {
	e := NewEngine(testGeometry(), charWidth)
	long := strings.Repeat("longkeywordphrase ", 20)
	plan := e.Layout(testColumns(), [][]string{{long, "Austin", "1"}})

	require.Equal(t, 1, plan.RowsPlaced)
	texts := 0
	for _, ins := range plan.Instructions {
		if ins.Op == OpText && !ins.Header {
			texts++
		}
	}
	assert.Greater(t, texts, 1, "long cell content should wrap to multiple lines")
}

func TestLayoutOversizedSingleRowStillPlaced(t *testing.T) {
	e := NewEngine(testGeometry(), charWidth)
	huge := strings.Repeat("word ", 2000)
	plan := e.Layout(testColumns(), [][]string{{huge, "x", "1"}})

	assert.Equal(t, 1, plan.RowsPlaced)
	assert.Equal(t, 1, plan.Pages)
}

// A measurer returning NaN must not leak non-finite geometry into the plan.
func TestLayoutGuardsNonFiniteMeasurements(t *testing.T) {
	e := NewEngine(testGeometry(), func(string) float64 { return math.NaN() })
	plan := e.Layout(testColumns(), [][]string{{"keyword", "location", "1"}})

	for _, ins := range plan.Instructions {
		for _, v := range []float64{ins.X, ins.Y, ins.W, ins.H} {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0),
				"non-finite geometry emitted: %+v", ins)
		}
	}
}

func TestSafeNum(t *testing.T) {
	assert.Equal(t, 5.0, SafeNum(5, 1))
	assert.Equal(t, 1.0, SafeNum(math.NaN(), 1))
	assert.Equal(t, 1.0, SafeNum(math.Inf(1), 1))
	assert.Equal(t, 1.0, SafeNum(math.Inf(-1), 1))
	assert.Equal(t, 2.0, SafePositive(-3, 2))
	assert.Equal(t, 2.0, SafePositive(0, 2))
	assert.Equal(t, 7.0, SafePositive(7, 2))
}
