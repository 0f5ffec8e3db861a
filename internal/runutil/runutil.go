// internal/runutil/runutil.go
package runutil

import "strings"

// DefaultResidueTypes is the supported set when --residue-types is empty:
// the twenty standard amino acids as one-letter tokens, matching the
// residue names produced by the structure reader.
const DefaultResidueTypes = "A,C,D,E,F,G,H,I,K,L,M,N,P,Q,R,S,T,V,W,Y"

// ParseResidueTypes turns a comma-separated token list into the supported
// set. Tokens are trimmed and uppercased; empty input falls back to the
// standard amino acids.
func ParseResidueTypes(csv string) map[string]bool {
	if strings.TrimSpace(csv) == "" {
		csv = DefaultResidueTypes
	}
	set := make(map[string]bool)
	for _, tok := range strings.Split(csv, ",") {
		tok = strings.ToUpper(strings.TrimSpace(tok))
		if tok != "" {
			set[tok] = true
		}
	}
	return set
}
