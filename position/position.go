// Package position converts between the 1-based, UTF-8 coordinate space MCP
// tool callers use and the 0-based, negotiated-encoding coordinate space LSP
// servers speak.
package position

import (
	"strings"
	"unicode/utf16"

	"mcplsbridge/errs"
)

// Encoding identifies the code-unit metric a downstream LSP server
// negotiated for position offsets.
type Encoding string

const (
	UTF8  Encoding = "utf-8"
	UTF16 Encoding = "utf-16"
	UTF32 Encoding = "utf-32"
)

// MaxCoordinate is the upper bound on any line or character value accepted
// from an MCP caller; anything larger is rejected as OutOfRange rather than
// walked, since a hostile caller could otherwise force an unbounded text
// scan.
const MaxCoordinate = 1_000_000

// FromLSPString maps the wire value of a negotiated PositionEncodingKind
// onto Encoding, defaulting to UTF16 (LSP's historical default) for unknown
// values.
func FromLSPString(s string) Encoding {
	switch s {
	case "utf-8":
		return UTF8
	case "utf-32":
		return UTF32
	default:
		return UTF16
	}
}

// LineSource supplies the text of a single line of a tracked document,
// needed only when translating under UTF-16 or UTF-32 encodings.
type LineSource interface {
	Line(line int) (string, bool)
}

// ToLSP converts 1-based MCP coordinates (line, character, both counted in
// UTF-8 code units) into 0-based coordinates in the given encoding. lines
// is consulted for every encoding when non-nil, both to convert UTF16/UTF32
// columns and to reject a line past the end of the document; it may be nil
// when the caller has no document text to check against.
func ToLSP(line, character int, enc Encoding, lines LineSource) (int, int, error) {
	if line > MaxCoordinate || character > MaxCoordinate {
		return 0, 0, errs.Newf(errs.OutOfRange, "line/character exceeds maximum coordinate %d", MaxCoordinate)
	}

	lspLine := clampSub1(line)
	mcpCol := clampSub1(character)

	var text string
	if lines != nil {
		var ok bool
		text, ok = lines.Line(lspLine)
		if !ok {
			return 0, 0, errs.Newf(errs.OutOfRange, "line %d is past the end of the document", line)
		}
	}

	if enc == UTF8 || lines == nil {
		return lspLine, mcpCol, nil
	}
	return lspLine, countUnitsToColumn(text, mcpCol, enc), nil
}

// FromLSP converts 0-based LSP coordinates in the given encoding back to
// 1-based MCP coordinates in UTF-8 code units.
func FromLSP(line, character int, enc Encoding, lines LineSource) (int, int, error) {
	mcpLine := line + 1

	if enc == UTF8 {
		return mcpLine, character + 1, nil
	}

	if lines == nil {
		return mcpLine, character + 1, nil
	}
	text, ok := lines.Line(line)
	if !ok {
		return mcpLine, character + 1, nil
	}
	return mcpLine, countUTF8ColumnFromUnits(text, character, enc) + 1, nil
}

func clampSub1(n int) int {
	if n <= 0 {
		return 0
	}
	return n - 1
}

// countUnitsToColumn walks the UTF-8 code points of text up to the mcpCol-th
// code point (0-based, already clamped) and returns how many units of enc
// (UTF-16 code units, or UTF-32 scalar values) those code points occupy.
// Columns past the end of the line clamp to the line's full unit length.
func countUnitsToColumn(text string, mcpCol int, enc Encoding) int {
	units := 0
	col := 0
	for _, r := range text {
		if col >= mcpCol {
			break
		}
		units += unitWidth(r, enc)
		col++
	}
	return units
}

// countUTF8ColumnFromUnits is the inverse of countUnitsToColumn: given a
// target count of encoding units, returns the UTF-8 code point column that
// many units into text. Clamps to the line's code point length.
func countUTF8ColumnFromUnits(text string, targetUnits int, enc Encoding) int {
	units := 0
	col := 0
	for _, r := range text {
		if units >= targetUnits {
			break
		}
		units += unitWidth(r, enc)
		col++
	}
	return col
}

func unitWidth(r rune, enc Encoding) int {
	switch enc {
	case UTF32:
		return 1
	default: // UTF16
		if utf16.IsSurrogate(r) {
			return 1
		}
		if r > 0xFFFF {
			return 2
		}
		return 1
	}
}

// LinesOf is a LineSource backed by a full document string, splitting lazily
// on newlines. bridge.Translator builds one from a tracked document's content
// to hand to position.ToLSP.
type LinesOf struct {
	text  string
	lines []string
}

func NewLinesOf(text string) *LinesOf {
	return &LinesOf{text: text}
}

func (l *LinesOf) Line(line int) (string, bool) {
	if l.lines == nil {
		l.lines = strings.Split(l.text, "\n")
	}
	if line < 0 || line >= len(l.lines) {
		return "", false
	}
	return l.lines[line], true
}
