package layout

import "strings"

// wrap greedily breaks text into lines that fit the given content width.
// Words wider than a full line are hard-broken by rune so no line ever
// overflows its cell. Line count is clamped at maxCellLines.
func (e *Engine) wrap(text string, contentWidth float64) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{""}
	}

	var lines []string
	var current string
	for _, word := range strings.Fields(text) {
		for _, piece := range e.splitOversized(word, contentWidth) {
			candidate := piece
			if current != "" {
				candidate = current + " " + piece
			}
			if e.textWidth(candidate) <= contentWidth || current == "" {
				current = candidate
				continue
			}
			lines = append(lines, current)
			current = piece
			if len(lines) >= maxCellLines {
				return lines[:maxCellLines]
			}
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) > maxCellLines {
		lines = lines[:maxCellLines]
	}
	return lines
}

// splitOversized breaks a single word into pieces that each fit the content
// width. Words that already fit come back unchanged.
func (e *Engine) splitOversized(word string, contentWidth float64) []string {
	if e.textWidth(word) <= contentWidth {
		return []string{word}
	}
	var pieces []string
	var current []rune
	for _, r := range word {
		current = append(current, r)
		if e.textWidth(string(current)) > contentWidth && len(current) > 1 {
			pieces = append(pieces, string(current[:len(current)-1]))
			current = current[len(current)-1:]
		}
	}
	if len(current) > 0 {
		pieces = append(pieces, string(current))
	}
	return pieces
}

// textWidth measures s through the injected measurer, guarding the result so
// a misbehaving measurer cannot poison the plan with NaN.
func (e *Engine) textWidth(s string) float64 {
	return SafeNum(e.measure(s), 0)
}
