// SPDX-License-Identifier: MPL-2.0

package source

import (
	"errors"
	"testing"
)

func TestNewSpan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		start   int
		end     int
		wantErr bool
	}{
		{name: "empty", start: 0, end: 0},
		{name: "range", start: 3, end: 10},
		{name: "reversed", start: 10, end: 3, wantErr: true},
		{name: "negative", start: -1, end: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			span, err := NewSpan(tt.start, tt.end)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSpan) {
					t.Fatalf("NewSpan(%d, %d) error = %v, want ErrInvalidSpan", tt.start, tt.end, err)
				}
				var spanErr *InvalidSpanError
				if !errors.As(err, &spanErr) || spanErr.Start != tt.start {
					t.Errorf("errors.As(InvalidSpanError) failed for %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSpan(%d, %d) unexpected error: %v", tt.start, tt.end, err)
			}
			if span.Start() != tt.start || span.End() != tt.end {
				t.Errorf("NewSpan() = %s, want %d..%d", span, tt.start, tt.end)
			}
			if span.Len() != tt.end-tt.start {
				t.Errorf("Len() = %d, want %d", span.Len(), tt.end-tt.start)
			}
		})
	}
}

func TestMustSpan_Panics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("MustSpan(5, 1) did not panic")
		}
	}()
	MustSpan(5, 1)
}

func TestSpan_Cover(t *testing.T) {
	t.Parallel()
	got := MustSpan(4, 8).Cover(MustSpan(1, 6))
	if got != MustSpan(1, 8) {
		t.Errorf("Cover() = %s, want 1..8", got)
	}
	if !got.Contains(1) || got.Contains(8) {
		t.Errorf("Contains() wrong for %s", got)
	}
}

func TestFiles_Location(t *testing.T) {
	t.Parallel()

	files := NewFiles()
	id := files.Add("example.sdm", []byte("module example is\n  ; é\nend\n"))

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{offset: 0, wantLine: 1, wantCol: 1},
		{offset: 7, wantLine: 1, wantCol: 8},
		{offset: 18, wantLine: 2, wantCol: 1},
		{offset: 25, wantLine: 3, wantCol: 1},
	}
	for _, tt := range tests {
		line, col := files.Location(id, tt.offset)
		if line != tt.wantLine || col != tt.wantCol {
			t.Errorf("Location(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.wantLine, tt.wantCol)
		}
	}

	if got := files.LineText(id, 2); got != "  ; é" {
		t.Errorf("LineText(2) = %q, want %q", got, "  ; é")
	}
	if got := files.Slice(id, MustSpan(7, 14)); got != "example" {
		t.Errorf("Slice() = %q, want %q", got, "example")
	}
	if got := files.Name(id); got != "example.sdm" {
		t.Errorf("Name() = %q", got)
	}
	if got := files.Name(NoFile); got != "" {
		t.Errorf("Name(NoFile) = %q, want empty", got)
	}
}
