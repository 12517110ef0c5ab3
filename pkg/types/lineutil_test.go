package types

import "testing"

func TestComputeLineColumn(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		byteOffset int
		wantLine   int
		wantColumn int
	}{
		{
			name:       "empty content at offset 0",
			content:    "",
			byteOffset: 0,
			wantLine:   1,
			wantColumn: 1,
		},
		{
			name:       "single line at offset 2",
			content:    "hello",
			byteOffset: 2,
			wantLine:   1,
			wantColumn: 3,
		},
		{
			name:       "multi-line at offset 7",
			content:    "hello\nworld",
			byteOffset: 7,
			wantLine:   2,
			wantColumn: 2,
		},
		{
			name:       "offset at newline",
			content:    "hello\nworld",
			byteOffset: 5,
			wantLine:   1,
			wantColumn: 6,
		},
		{
			name:       "offset beyond content length",
			content:    "hello",
			byteOffset: 100,
			wantLine:   1,
			wantColumn: 6,
		},
		{
			name:       "offset at start of second line",
			content:    "hello\nworld",
			byteOffset: 6,
			wantLine:   2,
			wantColumn: 1,
		},
		{
			name:       "multiple newlines",
			content:    "line1\nline2\nline3",
			byteOffset: 12,
			wantLine:   3,
			wantColumn: 1,
		},
		{
			name:       "multi-byte characters count once",
			content:    "héllo",
			byteOffset: 3,
			wantLine:   1,
			wantColumn: 3,
		},
		{
			name:       "negative offset",
			content:    "hello",
			byteOffset: -1,
			wantLine:   1,
			wantColumn: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotLine, gotColumn := ComputeLineColumn(tt.content, tt.byteOffset)
			if gotLine != tt.wantLine {
				t.Errorf("ComputeLineColumn() line = %v, want %v", gotLine, tt.wantLine)
			}
			if gotColumn != tt.wantColumn {
				t.Errorf("ComputeLineColumn() column = %v, want %v", gotColumn, tt.wantColumn)
			}
		})
	}
}

func TestAdvancePoint(t *testing.T) {
	line, col := AdvancePoint(SourcePoint{Line: 3, Column: 4}, "ab\ncd")
	if line != 4 || col != 3 {
		t.Errorf("AdvancePoint() = %d:%d, want 4:3", line, col)
	}
}
