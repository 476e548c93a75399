package triggers_test

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"devaforge/internal/testsupport"
	"devaforge/internal/triggers"
)

func TestIsAudio(t *testing.T) {
	cases := map[string]bool{
		"kick.wav":     true,
		"KICK.WAV":     true,
		"pad.Flac":     true,
		"loop.aif":     true,
		"loop.aiff":    true,
		"a.mp3":        true,
		"b.ogg":        true,
		"notes.txt":    false,
		"README":       false,
		"kick.wav.bak": false,
	}
	for name, want := range cases {
		if got := triggers.IsAudio(name); got != want {
			t.Errorf("IsAudio(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestDiscoverFiltersAndNormalizes(t *testing.T) {
	audio := t.TempDir()
	for _, rel := range []string{"kick.wav", "kit/Snare.WAV", "kit/deep/hat.flac", "notes.txt", "kit/cover.png"} {
		testsupport.WriteFile(t, filepath.Join(audio, filepath.FromSlash(rel)), 8)
	}

	got, err := triggers.Discover(audio)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []triggers.Trigger{
		{Name: "kick", Path: "./kick.wav"},
		{Name: "Snare", Path: "./kit/Snare.WAV"},
		{Name: "hat", Path: "./kit/deep/hat.flac"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected triggers (-want +got):\n%s", diff)
	}
}

func TestDiscoverEmptyStem(t *testing.T) {
	audio := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(audio, ".wav"), 1)

	got, err := triggers.Discover(audio)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(got) != 1 || got[0].Name != "" || got[0].Path != "./.wav" {
		t.Fatalf("unexpected triggers: %+v", got)
	}
}

func TestMergeRootFileOwnsBareName(t *testing.T) {
	discovered := []triggers.Trigger{
		{Name: "kick", Path: "./kick.wav"},
		{Name: "kick", Path: "./kit/kick.wav"},
	}
	got := triggers.Merge(nil, discovered)
	want := []triggers.Trigger{
		{Name: "kick", Path: "./kick.wav"},
		{Name: "kit.kick", Path: "./kit/kick.wav"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected merge (-want +got):\n%s", diff)
	}
}

func TestMergeSiblingDirectories(t *testing.T) {
	discovered := []triggers.Trigger{
		{Name: "kick", Path: "./a/kick.wav"},
		{Name: "kick", Path: "./b/kick.wav"},
		{Name: "kick", Path: "./kick.wav"},
	}
	got := triggers.Merge(nil, discovered)
	want := []triggers.Trigger{
		{Name: "a.kick", Path: "./a/kick.wav"},
		{Name: "b.kick", Path: "./b/kick.wav"},
		{Name: "kick", Path: "./kick.wav"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected merge (-want +got):\n%s", diff)
	}
}

func TestMergeShallowerPathClaimsFirst(t *testing.T) {
	discovered := []triggers.Trigger{
		{Name: "kick", Path: "./a/x/kick.wav"},
		{Name: "kick", Path: "./b/kick.wav"},
	}
	got := triggers.Merge(nil, discovered)
	want := []triggers.Trigger{
		{Name: "a.x.kick", Path: "./a/x/kick.wav"},
		{Name: "kick", Path: "./b/kick.wav"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected merge (-want +got):\n%s", diff)
	}
}

func TestMergePreservesExistingNamesAndPrunesMissing(t *testing.T) {
	existing := []triggers.Trigger{
		{Name: "boom", Path: "./kick.wav"},
		{Name: "gone", Path: "./deleted.wav"},
	}
	discovered := []triggers.Trigger{
		{Name: "kick", Path: "./kick.wav"},
		{Name: "snare", Path: "./snare.wav"},
	}
	got := triggers.Merge(existing, discovered)
	want := []triggers.Trigger{
		{Name: "boom", Path: "./kick.wav"},
		{Name: "snare", Path: "./snare.wav"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected merge (-want +got):\n%s", diff)
	}
}

func TestMergeTreatsPrunedNamesAsTaken(t *testing.T) {
	existing := []triggers.Trigger{{Name: "kick", Path: "./old/kick.wav"}}
	discovered := []triggers.Trigger{{Name: "kick", Path: "./kick.wav"}}
	got := triggers.Merge(existing, discovered)
	if len(got) != 1 || got[0].Name != "kick_2" {
		t.Fatalf("expected numeric fallback for root file, got %+v", got)
	}
}

func TestDisambiguateFallbackOrder(t *testing.T) {
	path := "./x/y/z/kick.wav"
	names := triggers.NewNameSet()
	want := []string{
		"kick",
		"x.y.z.kick",
		"z.kick",
		"y.z.kick",
		"kick_2",
		"kick_3",
	}
	for i, w := range want {
		if got := triggers.Disambiguate("kick", path, names); got != w {
			t.Fatalf("call %d: got %q want %q", i, got, w)
		}
	}
}

func TestDisambiguateSkipsClaimedVariants(t *testing.T) {
	names := triggers.NewNameSet("kick", "a.b.kick", "b.kick", "kick_2")
	if got := triggers.Disambiguate("kick", "./a/b/kick.wav", names); got != "kick_3" {
		t.Fatalf("got %q want kick_3", got)
	}
	if !names.Has("kick_3") {
		t.Fatal("expected claimed name to be registered")
	}
}

func TestDisambiguateEmptyBase(t *testing.T) {
	names := triggers.NewNameSet()
	if got := triggers.Disambiguate("", "./.wav", names); got != "" {
		t.Fatalf("expected empty base to be claimable, got %q", got)
	}
	if got := triggers.Disambiguate("", "./.wav", names); got != "_2" {
		t.Fatalf("expected suffixed fallback, got %q", got)
	}
	if got := triggers.Disambiguate("", "./kit/.wav", names); got != "kit." {
		t.Fatalf("expected directory fallback, got %q", got)
	}
}

func TestMergeProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	dirs := []string{"", "a/", "b/", "a/b/", "b/a/", "kit/", "kit/a/"}
	stems := []string{"kick", "snare", "hat", "kick_2", "a.kick"}

	for round := 0; round < 200; round++ {
		pathSet := map[string]string{}
		for i := 0; i < 1+rng.Intn(12); i++ {
			stem := stems[rng.Intn(len(stems))]
			pathSet["./"+dirs[rng.Intn(len(dirs))]+stem+".wav"] = stem
		}
		var discovered []triggers.Trigger
		for p, s := range pathSet {
			discovered = append(discovered, triggers.Trigger{Name: s, Path: p})
		}
		rng.Shuffle(len(discovered), func(i, j int) { discovered[i], discovered[j] = discovered[j], discovered[i] })

		var existing []triggers.Trigger
		for i, d := range discovered {
			if rng.Intn(3) == 0 {
				existing = append(existing, triggers.Trigger{Name: fmt.Sprintf("custom%d", i), Path: d.Path})
			}
		}
		existing = append(existing, triggers.Trigger{Name: "orphan", Path: "./nowhere.wav"})

		got := triggers.Merge(existing, discovered)

		if len(got) != len(discovered) {
			t.Fatalf("round %d: expected %d triggers, got %d", round, len(discovered), len(got))
		}
		names := map[string]bool{}
		for i, tr := range got {
			if names[tr.Name] {
				t.Fatalf("round %d: duplicate name %q in %+v", round, tr.Name, got)
			}
			names[tr.Name] = true
			if i > 0 && got[i-1].Path >= tr.Path {
				t.Fatalf("round %d: output not sorted by path: %+v", round, got)
			}
			if tr.Path == "./nowhere.wav" {
				t.Fatalf("round %d: orphan retained", round)
			}
		}
		for _, e := range existing {
			for _, tr := range got {
				if tr.Path == e.Path && tr.Name != e.Name {
					t.Fatalf("round %d: existing name %q for %s replaced by %q", round, e.Name, e.Path, tr.Name)
				}
			}
		}

		reversed := make([]triggers.Trigger, len(discovered))
		for i := range discovered {
			reversed[len(discovered)-1-i] = discovered[i]
		}
		if diff := cmp.Diff(got, triggers.Merge(existing, reversed)); diff != "" {
			t.Fatalf("round %d: merge depends on input order:\n%s", round, diff)
		}
	}
}
