// internal/source/list_test.go
package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCodeAndChain(t *testing.T) {
	cases := []struct {
		in, code, chain string
	}{
		{"1abc", "1abc", ""},
		{"1abcA", "1abc", "A"},
		{"xyz", "xyz", ""},
	}
	for _, c := range cases {
		code, chain := CodeAndChain(c.in)
		if code != c.code || chain != c.chain {
			t.Fatalf("CodeAndChain(%q) = (%q, %q), want (%q, %q)", c.in, code, chain, c.code, c.chain)
		}
	}
}

func TestFindStructureFile(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "pdb1abc.ent.gz")
	if err := os.WriteFile(want, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	got, ok := FindStructureFile("1ABC", dir)
	if !ok || got != want {
		t.Fatalf("got (%q, %v), want (%q, true)", got, ok, want)
	}
	if _, ok := FindStructureFile("9zzz", dir); ok {
		t.Fatal("missing entry must not resolve")
	}
}

func TestFromListSkipsUnresolvable(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "1abc.pdb"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	list := filepath.Join(dir, "ids.txt")
	if err := os.WriteFile(list, []byte("# comment\n1abcA extra tokens\n9zzz\n\n"), 0644); err != nil {
		t.Fatal(err)
	}

	sources, warns, err := FromList(list, dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 1 {
		t.Fatalf("got %d sources, want 1", len(sources))
	}
	if len(warns) != 1 {
		t.Fatalf("got %d warnings, want 1 (for 9zzz)", len(warns))
	}
	f := sources[0].(PDBFile)
	if f.Chain != "A" {
		t.Fatalf("chain = %q, want A", f.Chain)
	}
	if f.ID() != "1abcA" {
		t.Fatalf("ID = %q, want 1abcA", f.ID())
	}
}
