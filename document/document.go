package document

import (
	"sort"
	"unicode/utf8"
)

// Position is a zero based line and character; Character counts runes
type Position struct {
	Line      int `yaml:"line"`
	Character int `yaml:"character"`
}

// Selection spans from Start to End; an empty selection is a cursor
type Selection struct {
	Start Position `yaml:"start"`
	End   Position `yaml:"end"`
}

// Cursor returns an empty selection at p
func Cursor(p Position) Selection {
	return Selection{Start: p, End: p}
}

// Document is the editor collaborator consumed by the analyzer
type Document interface {
	FileName() string
	Text() string
	// OffsetAt converts a position to a byte offset, clamping to the document bounds
	OffsetAt(p Position) int
	// PositionAt converts a byte offset to a position, clamping to the document bounds
	PositionAt(offset int) Position
	// LineText returns the text of a line without its terminator
	LineText(line int) string
	LineCount() int
}

// TextDocument is an in-memory Document
type TextDocument struct {
	fileName string
	text     string
	lines    []int // start offsets of each line
}

// NewTextDocument creates a document
func NewTextDocument(fileName, text string) *TextDocument {
	ret := &TextDocument{fileName: fileName}
	ret.setText(text)
	return ret
}

func (d *TextDocument) setText(text string) {
	d.text = text
	d.lines = []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			d.lines = append(d.lines, i+1)
		}
	}
}

func (d *TextDocument) FileName() string {
	return d.fileName
}

func (d *TextDocument) Text() string {
	return d.text
}

func (d *TextDocument) LineCount() int {
	return len(d.lines)
}

// lineBounds returns the start and end (excluding \r\n) of a line
func (d *TextDocument) lineBounds(line int) (int, int) {
	start := d.lines[line]
	end := len(d.text)
	if line+1 < len(d.lines) {
		end = d.lines[line+1] - 1
	}
	if end > start && d.text[end-1] == '\r' {
		end--
	}
	return start, end
}

func (d *TextDocument) clampLine(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(d.lines) {
		return len(d.lines) - 1
	}
	return line
}

func (d *TextDocument) LineText(line int) string {
	if line < 0 || line >= len(d.lines) {
		return ""
	}
	start, end := d.lineBounds(line)
	return d.text[start:end]
}

func (d *TextDocument) OffsetAt(p Position) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(d.lines) {
		return len(d.text)
	}
	start, end := d.lineBounds(p.Line)
	offset := start
	for i := 0; i < p.Character && offset < end; i++ {
		_, size := utf8.DecodeRuneInString(d.text[offset:end])
		offset += size
	}
	return offset
}

func (d *TextDocument) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.text) {
		offset = len(d.text)
	}
	line := sort.Search(len(d.lines), func(i int) bool { return d.lines[i] > offset }) - 1
	line = d.clampLine(line)
	start, end := d.lineBounds(line)
	if offset > end {
		offset = end
	}
	return Position{Line: line, Character: utf8.RuneCountInString(d.text[start:offset])}
}

// LineEnd returns the position after the last character of line
func LineEnd(doc Document, line int) Position {
	if count := doc.LineCount(); line >= count {
		line = count - 1
	}
	if line < 0 {
		line = 0
	}
	text := doc.LineText(line)
	return Position{Line: line, Character: utf8.RuneCountInString(text)}
}

// Insert writes text at p and returns the position just after it
func (d *TextDocument) Insert(p Position, text string) Position {
	offset := d.OffsetAt(p)
	d.setText(d.text[:offset] + text + d.text[offset:])
	return d.PositionAt(offset + len(text))
}
