package layout

// A small paint-plan engine for tabular data. It solves column widths,
// measures wrapped cell text, breaks rows across pages, and emits an ordered
// instruction stream a renderer can draw without doing any geometry of its
// own. Every coordinate in the stream has passed the finite-number guards in
// safe.go.

// Column describes one table column: either a fixed width in points, or the
// remainder of the usable width after fixed columns are subtracted.
type Column struct {
	Title     string
	Width     float64
	Remainder bool
}

// Geometry is the page box and spacing the engine lays out into. All values
// are points.
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	MarginLeft   float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	PaddingX     float64 // horizontal cell padding, applied on both sides
	PaddingY     float64 // vertical cell padding, applied top and bottom
	LineHeight   float64
	MinRowHeight float64
	HeaderHeight float64
}

// UsableWidth is the horizontal space available to the table.
func (g Geometry) UsableWidth() float64 {
	return g.PageWidth - g.MarginLeft - g.MarginRight
}

// Op identifies one kind of paint instruction.
type Op int

const (
	// OpPageBreak tells the renderer to start a new page before continuing.
	OpPageBreak Op = iota
	// OpRect is a rectangle at X,Y with size W,H. Fill requests a filled
	// band (header cells); otherwise a border stroke.
	OpRect
	// OpText places a single line of text whose top-left corner is X,Y.
	OpText
)

// Instruction is one paint operation. Renderers consume these in order.
type Instruction struct {
	Op     Op
	X, Y   float64
	W, H   float64
	Text   string
	Header bool
	Fill   bool
}

// Plan is the complete paint plan for one dataset.
type Plan struct {
	Instructions []Instruction
	ColumnWidths []float64
	Pages        int
	RowsPlaced   int
}

// MeasureFunc reports the rendered width of s in points at the table's body
// font. The engine guards the result, so implementations may be naive.
type MeasureFunc func(s string) float64

const (
	// minColumnWidth keeps a remainder column from collapsing to zero or
	// negative when fixed widths already fill the page.
	minColumnWidth = 40.0
	// maxCellLines clamps pathologically large cell content so a single
	// cell cannot produce an absurdly tall row.
	maxCellLines = 40
)

// Engine lays out rows into paint plans for a fixed geometry and measurer.
type Engine struct {
	geo     Geometry
	measure MeasureFunc
}

func NewEngine(geo Geometry, measure MeasureFunc) *Engine {
	return &Engine{geo: geo, measure: measure}
}

// SolveColumnWidths resolves fixed and remainder columns against the usable
// width. The returned widths sum to exactly the usable width, except when
// fixed columns alone overflow it, in which case remainder columns are held
// at the minimum width.
func (e *Engine) SolveColumnWidths(cols []Column) []float64 {
	usable := SafePositive(e.geo.UsableWidth(), minColumnWidth)
	widths := make([]float64, len(cols))

	var fixedSum float64
	var remainderIdx []int
	for i, c := range cols {
		if c.Remainder {
			remainderIdx = append(remainderIdx, i)
			continue
		}
		widths[i] = SafePositive(c.Width, minColumnWidth)
		fixedSum += widths[i]
	}
	if len(remainderIdx) == 0 {
		return widths
	}

	share := (usable - fixedSum) / float64(len(remainderIdx))
	if share < minColumnWidth {
		share = minColumnWidth
	}
	for _, i := range remainderIdx {
		widths[i] = share
	}
	// Absorb float drift into the last remainder column so the widths sum
	// exactly to the usable width.
	if share > minColumnWidth {
		last := remainderIdx[len(remainderIdx)-1]
		var sum float64
		for i, w := range widths {
			if i != last {
				sum += w
			}
		}
		widths[last] = usable - sum
	}
	return widths
}

// Layout produces the paint plan for the given columns and rows. Each row
// must have one cell per column; shorter rows are padded with empty cells.
// Zero rows produce an empty plan with no pages.
func (e *Engine) Layout(cols []Column, rows [][]string) *Plan {
	plan := &Plan{ColumnWidths: e.SolveColumnWidths(cols)}
	if len(rows) == 0 {
		return plan
	}

	contentTop := e.geo.MarginTop + e.geo.HeaderHeight
	bottom := e.geo.PageHeight - e.geo.MarginBottom

	plan.Pages = 1
	e.emitHeader(plan, cols)
	cursor := contentTop

	for _, row := range rows {
		wrapped, rowHeight := e.measureRow(row, plan.ColumnWidths)
		if cursor+rowHeight > bottom && cursor > contentTop {
			plan.Instructions = append(plan.Instructions, Instruction{Op: OpPageBreak})
			plan.Pages++
			e.emitHeader(plan, cols)
			cursor = contentTop
		}
		e.emitRow(plan, wrapped, plan.ColumnWidths, cursor, rowHeight)
		plan.RowsPlaced++
		cursor += rowHeight
	}
	return plan
}

// measureRow wraps each cell at its column's content width and returns the
// wrapped lines plus the row height: the tallest cell, floored to the
// minimum row height, plus vertical padding.
func (e *Engine) measureRow(row []string, widths []float64) ([][]string, float64) {
	wrapped := make([][]string, len(widths))
	maxLines := 1
	for i := range widths {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		contentWidth := SafePositive(widths[i]-2*e.geo.PaddingX, 1)
		lines := e.wrap(cell, contentWidth)
		wrapped[i] = lines
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}
	height := float64(maxLines)*e.geo.LineHeight + 2*e.geo.PaddingY
	if height < e.geo.MinRowHeight {
		height = e.geo.MinRowHeight
	}
	return wrapped, SafePositive(height, e.geo.MinRowHeight)
}

func (e *Engine) emitHeader(plan *Plan, cols []Column) {
	x := e.geo.MarginLeft
	y := e.geo.MarginTop
	for i, c := range cols {
		w := plan.ColumnWidths[i]
		plan.Instructions = append(plan.Instructions, Instruction{
			Op: OpRect, Header: true, Fill: true,
			X: SafeNum(x, 0), Y: SafeNum(y, 0),
			W: SafePositive(w, minColumnWidth), H: SafePositive(e.geo.HeaderHeight, e.geo.LineHeight),
		})
		plan.Instructions = append(plan.Instructions, Instruction{
			Op: OpText, Header: true, Text: c.Title,
			X: SafeNum(x+e.geo.PaddingX, 0), Y: SafeNum(y+e.geo.PaddingY, 0),
		})
		x += w
	}
}

func (e *Engine) emitRow(plan *Plan, wrapped [][]string, widths []float64, y, rowHeight float64) {
	x := e.geo.MarginLeft
	for i, lines := range wrapped {
		w := widths[i]
		plan.Instructions = append(plan.Instructions, Instruction{
			Op: OpRect,
			X:  SafeNum(x, 0), Y: SafeNum(y, 0),
			W: SafePositive(w, minColumnWidth), H: SafePositive(rowHeight, e.geo.MinRowHeight),
		})
		for li, line := range lines {
			if line == "" {
				continue
			}
			plan.Instructions = append(plan.Instructions, Instruction{
				Op: OpText, Text: line,
				X: SafeNum(x+e.geo.PaddingX, 0),
				Y: SafeNum(y+e.geo.PaddingY+float64(li)*e.geo.LineHeight, 0),
			})
		}
		x += w
	}
}
