// Package errs wraps the cockroachdb/errors primitives the rest of the code
// relies on: message wrapping, sentinel marking and stack extraction.
package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

// Wrap annotates err with msg, preserving the original stack. Nil in, nil out.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

// Mark ties err to a sentinel without losing the underlying cause. The mark
// is carried out of band, so it is visible to Is below but not to the
// standard library's errors.Is.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is reports whether err matches reference, honoring both wrapped causes and
// marks attached with Mark.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

// ExtractStackLines renders the error's verbose form and returns at most
// maxLines lines, for structured log fields.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
