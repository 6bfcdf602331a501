package lint

// PositionConverter translates absolute character (rune) offsets in a
// document into line/column positions. Workers report findings as
// offsets into the text they were given; the editor side wants
// zero-based line and column.
type PositionConverter struct {
	lines []lineInfo
	total int // total rune count
}

// lineInfo stores the rune extent of one line, excluding its newline.
type lineInfo struct {
	start  int
	length int
}

// NewPositionConverter creates a converter for the given content.
func NewPositionConverter(content string) *PositionConverter {
	pc := &PositionConverter{}
	pc.buildLineIndex(content)
	return pc
}

// buildLineIndex creates an index of all lines for position lookup.
func (pc *PositionConverter) buildLineIndex(content string) {
	pc.lines = nil

	offset := 0
	lineStart := 0

	for _, r := range content {
		if r == '\n' {
			pc.lines = append(pc.lines, lineInfo{
				start:  lineStart,
				length: offset - lineStart,
			})
			lineStart = offset + 1
		}
		offset++
	}

	// Last line (may not end with newline)
	pc.lines = append(pc.lines, lineInfo{
		start:  lineStart,
		length: offset - lineStart,
	})
	pc.total = offset
}

// OffsetToPosition converts an absolute rune offset to a Position.
// Offsets before the document clamp to its start; offsets past the end
// clamp to the end of the last line.
func (pc *PositionConverter) OffsetToPosition(offset int) Position {
	if offset < 0 {
		return Position{Line: 0, Character: 0}
	}

	for i, line := range pc.lines {
		// The +1 accounts for the newline that terminates the line.
		if offset < line.start+line.length+1 || i == len(pc.lines)-1 {
			char := offset - line.start
			if char < 0 {
				char = 0
			}
			if char > line.length {
				char = line.length
			}
			return Position{Line: i, Character: char}
		}
	}

	// Unreachable: the loop always returns on the last line.
	return Position{Line: 0, Character: 0}
}

// PositionToOffset converts a Position to an absolute rune offset.
func (pc *PositionConverter) PositionToOffset(pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(pc.lines) {
		return pc.total
	}

	line := pc.lines[pos.Line]
	char := pos.Character
	if char < 0 {
		char = 0
	}
	if char > line.length {
		char = line.length
	}
	return line.start + char
}

// LineCount returns the number of lines.
func (pc *PositionConverter) LineCount() int {
	return len(pc.lines)
}
