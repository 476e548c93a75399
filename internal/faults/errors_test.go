package faults_test

import (
	"errors"
	"strings"
	"testing"

	"devaforge/internal/faults"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := faults.Wrap(faults.ErrIO, "generated/banks/acme.drums", "archive", "write entry", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, faults.ErrIO) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"acme.drums", "archive", "write entry", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := faults.Wrap(nil, " ", "", "", nil)
	if !errors.Is(err, faults.ErrIO) {
		t.Fatalf("expected io marker by default, got %v", err)
	}
	if !strings.Contains(err.Error(), "build failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{faults.Wrap(faults.ErrNotFound, "b", "manifest", "missing", nil), "not_found"},
		{faults.Wrap(faults.ErrAmbiguous, "", "resolve", "two matches", nil), "ambiguous"},
		{faults.Wrap(faults.ErrMalformed, "b", "manifest", "bad toml", nil), "malformed"},
		{faults.Wrap(faults.ErrIO, "b", "archive", "", errors.New("disk")), "io"},
		{faults.Wrap(faults.ErrExists, "acme.drums", "create", "", nil), "exists"},
		{errors.New("plain"), "unknown"},
	}
	for _, tc := range cases {
		if got := faults.Kind(tc.err); got != tc.want {
			t.Fatalf("Kind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
