package bank_test

import (
	"errors"
	"path/filepath"
	"testing"

	"devaforge/internal/bank"
	"devaforge/internal/faults"
	"devaforge/internal/testsupport"
)

func TestResolve(t *testing.T) {
	layout := newLayout(t)
	drums := testsupport.WriteBank(t, layout.BanksRoot, "acme.drums", testsupport.BankManifest("acme", "drums"))
	keys := testsupport.WriteBank(t, layout.BanksRoot, "acme.keys", testsupport.BankManifest("acme", "keys"))
	testsupport.WriteBank(t, layout.BanksRoot, "other.keys", testsupport.BankManifest("other", "keys"))

	cases := []struct {
		name string
		ref  string
		want string
		err  error
	}{
		{name: "relative dir", ref: "generated/banks/acme.drums", want: drums},
		{name: "absolute manifest", ref: filepath.Join(drums, "bank.toml"), want: drums},
		{name: "full alias", ref: "bank.acme.keys", want: keys},
		{name: "short alias", ref: "bank.drums", want: drums},
		{name: "bare id", ref: "acme.drums", want: drums},
		{name: "ambiguous short alias", ref: "bank.keys", err: faults.ErrAmbiguous},
		{name: "unknown short alias", ref: "bank.bass", err: faults.ErrNotFound},
		{name: "unknown full alias", ref: "bank.acme.bass", err: faults.ErrNotFound},
		{name: "unknown path", ref: "nowhere", err: faults.ErrNotFound},
		{name: "empty", ref: " ", err: faults.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := bank.Resolve(layout, tc.ref)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expected %v, got %v (dir %q)", tc.err, err, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tc.ref, err)
			}
			if got != tc.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tc.ref, got, tc.want)
			}
		})
	}
}
