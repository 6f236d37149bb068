// SPDX-License-Identifier: MPL-2.0

package source

import (
	"sort"
	"sync"
	"unicode/utf8"
)

type (
	// FileID is an opaque handle to a source registered in Files.
	FileID int

	// Files is an append-only registry of source texts. The line index of
	// each file is computed once, on first use.
	Files struct {
		mu    sync.RWMutex
		files []*file
	}

	file struct {
		name       string
		text       []byte
		lineStarts []int
	}
)

// NoFile is the FileID used for modules without a backing source text.
const NoFile FileID = -1

// NewFiles creates an empty registry.
func NewFiles() *Files {
	return &Files{}
}

// Add registers a source text under name and returns its handle.
func (f *Files) Add(name string, text []byte) FileID {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files = append(f.files, &file{name: name, text: text})
	return FileID(len(f.files) - 1)
}

// Len returns the number of registered files.
func (f *Files) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.files)
}

// Name returns the name a file was registered under, or "" for an unknown id.
func (f *Files) Name(id FileID) string {
	if fl := f.get(id); fl != nil {
		return fl.name
	}
	return ""
}

// Source returns the full text of a file.
func (f *Files) Source(id FileID) []byte {
	if fl := f.get(id); fl != nil {
		return fl.text
	}
	return nil
}

// Slice returns the text covered by span, clamped to the file bounds.
func (f *Files) Slice(id FileID, span Span) string {
	text := f.Source(id)
	start := min(span.Start(), len(text))
	end := min(span.End(), len(text))
	return string(text[start:end])
}

// Location converts a byte offset into a 1-based line and column. Columns
// count runes, not bytes.
func (f *Files) Location(id FileID, offset int) (line, column int) {
	fl := f.get(id)
	if fl == nil {
		return 0, 0
	}
	starts := f.lineStarts(fl)
	offset = max(0, min(offset, len(fl.text)))
	idx := sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
	lineStart := starts[idx]
	return idx + 1, utf8.RuneCount(fl.text[lineStart:offset]) + 1
}

// LineText returns the text of a 1-based line without its terminator.
func (f *Files) LineText(id FileID, line int) string {
	fl := f.get(id)
	if fl == nil {
		return ""
	}
	starts := f.lineStarts(fl)
	if line < 1 || line > len(starts) {
		return ""
	}
	start := starts[line-1]
	end := len(fl.text)
	if line < len(starts) {
		end = starts[line] - 1
	}
	if end > start && fl.text[end-1] == '\r' {
		end--
	}
	return string(fl.text[start:end])
}

func (f *Files) get(id FileID) *file {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if id < 0 || int(id) >= len(f.files) {
		return nil
	}
	return f.files[id]
}

func (f *Files) lineStarts(fl *file) []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fl.lineStarts == nil {
		fl.lineStarts = []int{0}
		for i, b := range fl.text {
			if b == '\n' {
				fl.lineStarts = append(fl.lineStarts, i+1)
			}
		}
	}
	return fl.lineStarts
}
