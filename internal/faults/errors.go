package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrAmbiguous = errors.New("ambiguous reference")
	ErrMalformed = errors.New("malformed input")
	ErrIO        = errors.New("io failure")
	ErrExists    = errors.New("already exists")
)

// Wrap builds an error message that names the bank and pipeline step while
// tagging it with the provided marker. The marker should be one of the exported
// sentinel errors above; nil defaults to ErrIO.
func Wrap(marker error, bank, step, message string, err error) error {
	detail := buildDetail(bank, step, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns the short label of the marker carried by err, or "unknown".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAmbiguous):
		return "ambiguous"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrIO):
		return "io"
	case errors.Is(err, ErrExists):
		return "exists"
	default:
		return "unknown"
	}
}

func buildDetail(bank, step, message string) string {
	parts := make([]string, 0, 3)
	if bank = strings.TrimSpace(bank); bank != "" {
		parts = append(parts, bank)
	}
	if step = strings.TrimSpace(step); step != "" {
		parts = append(parts, step)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "build failure"
	}
	return strings.Join(parts, ": ")
}
