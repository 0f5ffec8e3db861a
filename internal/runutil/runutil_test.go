// internal/runutil/runutil_test.go
package runutil

import "testing"

func TestParseResidueTypesDefault(t *testing.T) {
	set := ParseResidueTypes("")
	if len(set) != 20 {
		t.Fatalf("default set has %d tokens, want 20", len(set))
	}
	if !set["G"] || !set["W"] {
		t.Fatal("default set must contain the standard amino acids")
	}
}

func TestParseResidueTypesCustom(t *testing.T) {
	set := ParseResidueTypes(" g, a ,X")
	if len(set) != 3 || !set["G"] || !set["A"] || !set["X"] {
		t.Fatalf("unexpected set: %v", set)
	}
}
