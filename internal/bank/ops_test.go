package bank_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"devaforge/internal/bank"
	"devaforge/internal/faults"
	"devaforge/internal/fsutil"
	"devaforge/internal/manifest"
	"devaforge/internal/testsupport"
)

func TestCreate(t *testing.T) {
	layout := newLayout(t)

	dir, err := bank.Create(layout, bank.Scaffold{Name: "Big Drums", Author: "AcmeAudio", Description: "Punchy kit", Access: "Private"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if want := filepath.Join(layout.BanksRoot, "acme-audio.big-drums"); dir != want {
		t.Fatalf("dir = %q, want %q", dir, want)
	}
	if !fsutil.IsDir(filepath.Join(dir, bank.AudioDirName)) {
		t.Fatal("audio directory not created")
	}
	doc, err := manifest.Load(filepath.Join(dir, manifest.FileName))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Bank.Version != bank.InitialVersion || doc.Bank.Access != "private" || doc.Bank.Description != "Punchy kit" {
		t.Fatalf("unexpected manifest: %+v", doc.Bank)
	}
	if doc.ID() != "acme-audio.big-drums" {
		t.Fatalf("ID = %q", doc.ID())
	}

	_, err = bank.Create(layout, bank.Scaffold{Name: "big drums", Author: "acme audio"})
	if !errors.Is(err, faults.ErrExists) {
		t.Fatalf("expected exists error, got %v", err)
	}
}

func TestCreateValidates(t *testing.T) {
	layout := newLayout(t)
	for _, s := range []bank.Scaffold{
		{Name: "", Author: "acme"},
		{Name: "drums", Author: "!!"},
		{Name: "drums", Author: "acme", Access: "secret"},
	} {
		if _, err := bank.Create(layout, s); !errors.Is(err, faults.ErrMalformed) {
			t.Fatalf("Create(%+v): expected malformed error, got %v", s, err)
		}
	}
}

func TestKebab(t *testing.T) {
	cases := map[string]string{
		"Big Drums":     "big-drums",
		"acmeAudio":     "acme-audio",
		"  808_kit  ":   "808-kit",
		"already-kebab": "already-kebab",
		"HTTP":          "http",
		"--":            "",
	}
	for in, want := range cases {
		if got := bank.Kebab(in); got != want {
			t.Fatalf("Kebab(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestList(t *testing.T) {
	layout := newLayout(t)
	if infos, err := bank.List(layout); err != nil || len(infos) != 0 {
		t.Fatalf("missing root: %v, %v", infos, err)
	}

	testsupport.WriteBank(t, layout.BanksRoot, "acme.drums", testsupport.BankManifest("acme", "drums")+
		"\n[[triggers]]\nname = \"kick\"\npath = \"./kick.wav\"\n")
	testsupport.WriteBank(t, layout.BanksRoot, "acme.zbroken", "[bank\n")

	infos, err := bank.List(layout)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 banks, got %d", len(infos))
	}
	if infos[0].ID != "acme.drums" || infos[0].Triggers != 1 || infos[0].Version != "0.0.1" || infos[0].Error != "" {
		t.Fatalf("unexpected info: %+v", infos[0])
	}
	if infos[1].ID != "acme.zbroken" || infos[1].Error == "" {
		t.Fatalf("broken bank should carry an error: %+v", infos[1])
	}
}

func TestNextVersion(t *testing.T) {
	cases := []struct {
		current string
		kind    bank.Bump
		want    string
	}{
		{"0.0.1", bank.BumpPatch, "0.0.2"},
		{"0.0.1", bank.BumpMinor, "0.1.0"},
		{"1.4.9", bank.BumpMajor, "2.0.0"},
		{"v1.2.3-beta.1", bank.BumpPatch, "1.2.4"},
		{"", bank.BumpMinor, "0.1.0"},
	}
	for _, tc := range cases {
		got, err := bank.NextVersion(tc.current, tc.kind)
		if err != nil {
			t.Fatalf("NextVersion(%q, %s): %v", tc.current, tc.kind, err)
		}
		if got != tc.want {
			t.Fatalf("NextVersion(%q, %s) = %q, want %q", tc.current, tc.kind, got, tc.want)
		}
	}
	if _, err := bank.NextVersion("banana", bank.BumpPatch); err == nil {
		t.Fatal("expected error for invalid version")
	}
}

func TestParseBump(t *testing.T) {
	if b, err := bank.ParseBump(" Minor "); err != nil || b != bank.BumpMinor {
		t.Fatalf("ParseBump = %q, %v", b, err)
	}
	if _, err := bank.ParseBump("huge"); !errors.Is(err, faults.ErrMalformed) {
		t.Fatalf("expected malformed, got %v", err)
	}
}

func TestBumpVersionPreservesComments(t *testing.T) {
	layout := newLayout(t)
	text := "# drums\n[bank]\nname = \"drums\"\nauthor = \"acme\"\nversion = \"0.2.9\" # release line\n\n[[triggers]]\nname = \"kick\"\npath = \"./kick.wav\"\n"
	dir := testsupport.WriteBank(t, layout.BanksRoot, "acme.drums", text)

	oldVersion, newVersion, err := bank.BumpVersion(layout, "bank.acme.drums", bank.BumpMinor)
	if err != nil {
		t.Fatalf("BumpVersion: %v", err)
	}
	if oldVersion != "0.2.9" || newVersion != "0.3.0" {
		t.Fatalf("versions = %q -> %q", oldVersion, newVersion)
	}
	want := strings.Replace(text, `"0.2.9"`, `"0.3.0"`, 1)
	if got := testsupport.ReadText(t, filepath.Join(dir, manifest.FileName)); got != want {
		t.Fatalf("manifest mismatch:\n%s\nwant:\n%s", got, want)
	}
}
