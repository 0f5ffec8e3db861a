// internal/source/list.go
package source

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FromList reads a list file of structure IDs (first whitespace-delimited
// token per line; blank lines and #-comments skipped) and resolves each ID
// against dir. IDs may carry a chain suffix: "1abcA" selects chain A of
// entry 1abc. Unresolvable IDs produce a warning, not an error, so one bad
// entry never sinks the batch.
func FromList(listPath, dir string) ([]Source, []string, error) {
	fh, err := os.Open(listPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open list %s: %w", listPath, err)
	}
	defer fh.Close()

	var (
		sources []Source
		warns   []string
	)
	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		id := strings.Fields(line)[0]
		code, chain := CodeAndChain(id)
		path, ok := FindStructureFile(code, dir)
		if !ok {
			warns = append(warns, fmt.Sprintf("warning: no structure file for ID %q under %s", id, dir))
			continue
		}
		sources = append(sources, PDBFile{Path: path, Chain: chain})
	}
	if err := sc.Err(); err != nil {
		return nil, warns, fmt.Errorf("read list %s: %w", listPath, err)
	}
	return sources, warns, nil
}

// CodeAndChain splits an ID like "1abcA" into the 4-character entry code and
// an optional single-character chain. Shorter or longer tokens pass through
// as plain codes.
func CodeAndChain(id string) (string, string) {
	if len(id) == 5 {
		return id[:4], id[4:]
	}
	return id, ""
}

// FindStructureFile tries the usual PDB file layouts for an entry code under
// dir, including the divided-archive naming (pdb1abc.ent.gz).
func FindStructureFile(code, dir string) (string, bool) {
	lower := strings.ToLower(code)
	candidates := []string{
		code + ".pdb",
		lower + ".pdb",
		lower + ".ent",
		lower + ".pdb.gz",
		lower + ".ent.gz",
		"pdb" + lower + ".ent.gz",
	}
	for _, name := range candidates {
		p := filepath.Join(dir, name)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, true
		}
	}
	return "", false
}
