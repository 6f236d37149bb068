// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

var (
	// ErrInvalidDocument is returned when a document fails schema validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrFileTooLarge is returned when a document exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")
)

type (
	// ValidationError describes every schema violation found in a document.
	// It wraps ErrInvalidDocument for errors.Is() compatibility.
	ValidationError struct {
		// FilePath is the document being validated.
		FilePath string
		// Problems lists each violation as "path: message".
		Problems []string
	}

	// FileTooLargeError carries the offending size.
	// It wraps ErrFileTooLarge for errors.Is() compatibility.
	FileTooLargeError struct {
		FilePath string
		Size     int
		Limit    int64
	}
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("%s: %s", e.FilePath, e.Problems[0])
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.FilePath, strings.Join(e.Problems, "\n  "))
}

// Unwrap returns ErrInvalidDocument.
func (e *ValidationError) Unwrap() error { return ErrInvalidDocument }

// Error implements the error interface.
func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: file size %d bytes exceeds maximum %d bytes", e.FilePath, e.Size, e.Limit)
}

// Unwrap returns ErrFileTooLarge.
func (e *FileTooLargeError) Unwrap() error { return ErrFileTooLarge }

// FormatError converts a CUE error into a *ValidationError whose problems
// are prefixed with JSON-path style locations, e.g.
//
//	sdml-catalog.json: entries.rdf.item.relative_url: conflicting values
//
// Errors that do not come from CUE are wrapped with the file path.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	var cueErr cueerrors.Error
	if !errors.As(err, &cueErr) {
		return fmt.Errorf("%s: %w", filePath, err)
	}
	cueErrs := cueerrors.Errors(err)

	problems := make([]string, 0, len(cueErrs))
	for _, e := range cueErrs {
		pathStr := formatPath(cueerrors.Path(e))
		msg := e.Error()

		// CUE sometimes repeats the path at the start of the message.
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, pathStr), ":"))
		}
		if pathStr != "" {
			msg = pathStr + ": " + msg
		}
		problems = append(problems, msg)
	}
	return &ValidationError{FilePath: filePath, Problems: problems}
}

// formatPath renders ["entries", "0", "name"] as entries[0].name.
func formatPath(path []string) string {
	var result strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			result.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			result.WriteByte('.')
		}
		result.WriteString(part)
	}
	return result.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize rejects data larger than maxSize.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return &FileTooLargeError{FilePath: filename, Size: len(data), Limit: maxSize}
	}
	return nil
}
