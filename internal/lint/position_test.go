package lint

import "testing"

func TestPositionConverter_OffsetToPosition(t *testing.T) {
	content := "<html>\n<body>\n</body>\n</html>"
	pc := NewPositionConverter(content)

	tests := []struct {
		name   string
		offset int
		want   Position
	}{
		{"start", 0, Position{Line: 0, Character: 0}},
		{"mid first line", 3, Position{Line: 0, Character: 3}},
		{"newline clamps to line end", 6, Position{Line: 0, Character: 6}},
		{"second line start", 7, Position{Line: 1, Character: 0}},
		{"second line mid", 10, Position{Line: 1, Character: 3}},
		{"last line", 22, Position{Line: 3, Character: 0}},
		{"end of content", len([]rune(content)), Position{Line: 3, Character: 7}},
		{"negative clamps", -5, Position{Line: 0, Character: 0}},
		{"past end clamps", 1000, Position{Line: 3, Character: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pc.OffsetToPosition(tt.offset); got != tt.want {
				t.Errorf("OffsetToPosition(%d) = %+v, want %+v", tt.offset, got, tt.want)
			}
		})
	}
}

func TestPositionConverter_Multibyte(t *testing.T) {
	// Offsets are rune counts, not bytes.
	pc := NewPositionConverter("héllo\nwörld")

	if got := pc.OffsetToPosition(4); got != (Position{Line: 0, Character: 4}) {
		t.Errorf("OffsetToPosition(4) = %+v", got)
	}
	if got := pc.OffsetToPosition(6); got != (Position{Line: 1, Character: 0}) {
		t.Errorf("OffsetToPosition(6) = %+v", got)
	}
	if got := pc.OffsetToPosition(8); got != (Position{Line: 1, Character: 2}) {
		t.Errorf("OffsetToPosition(8) = %+v", got)
	}
}

func TestPositionConverter_PositionToOffset(t *testing.T) {
	pc := NewPositionConverter("ab\ncd\nef")

	tests := []struct {
		pos  Position
		want int
	}{
		{Position{Line: 0, Character: 0}, 0},
		{Position{Line: 0, Character: 2}, 2},
		{Position{Line: 1, Character: 1}, 4},
		{Position{Line: 2, Character: 2}, 8},
		{Position{Line: -1, Character: 0}, 0},
		{Position{Line: 99, Character: 0}, 8},
		{Position{Line: 0, Character: 99}, 2},
	}

	for _, tt := range tests {
		if got := pc.PositionToOffset(tt.pos); got != tt.want {
			t.Errorf("PositionToOffset(%+v) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestPositionConverter_RoundTrip(t *testing.T) {
	content := "line one\nline two\n\nline four"
	pc := NewPositionConverter(content)

	for offset := 0; offset <= len(content); offset++ {
		pos := pc.OffsetToPosition(offset)
		if back := pc.PositionToOffset(pos); back != offset {
			t.Errorf("offset %d -> %+v -> %d", offset, pos, back)
		}
	}
}

func TestPositionConverter_EmptyContent(t *testing.T) {
	pc := NewPositionConverter("")

	if got := pc.LineCount(); got != 1 {
		t.Errorf("LineCount = %d, want 1", got)
	}
	if got := pc.OffsetToPosition(0); got != (Position{Line: 0, Character: 0}) {
		t.Errorf("OffsetToPosition(0) = %+v", got)
	}
}

func TestPositionConverter_LineCount(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"", 1},
		{"one line", 1},
		{"two\nlines", 2},
		{"trailing newline\n", 2},
	}

	for _, tt := range tests {
		pc := NewPositionConverter(tt.content)
		if got := pc.LineCount(); got != tt.want {
			t.Errorf("LineCount(%q) = %d, want %d", tt.content, got, tt.want)
		}
	}
}
