// internal/source/pdbfile.go
package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/TuftsBCB/io/pdb"
	"github.com/TuftsBCB/seq"

	"strucfeat-core/model"
)

// PDBFile loads one structure from a PDB file (gzip handled by the reader).
// Chain, when non-empty, keeps only that chain.
type PDBFile struct {
	Path  string
	Chain string
}

func (f PDBFile) ID() string {
	base := filepath.Base(f.Path)
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if f.Chain != "" {
		return base + f.Chain
	}
	return base
}

func (f PDBFile) Load() (model.RawStructure, error) {
	entry, err := pdb.ReadPDB(f.Path)
	if err != nil {
		return model.RawStructure{}, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return FromEntry(entry, f.ID(), f.Chain)
}

// FromEntry converts a parsed PDB entry into the core's raw form. Only the
// first model is used; HETATM records (ligands, waters) are discarded. The
// reader resolves alternate locations itself, so occupancy is carried as 1.
func FromEntry(entry *pdb.Entry, id, chain string) (model.RawStructure, error) {
	raw := model.RawStructure{ID: id}
	for _, c := range entry.Chains {
		ident := string(rune(c.Ident))
		if chain != "" && ident != chain {
			continue
		}
		if len(c.Models) == 0 {
			continue
		}
		rc := model.RawChain{ID: ident}
		for _, res := range c.Models[0].Residues {
			rr := model.RawResidue{
				Type:   residueToken(res.Name),
				SeqNum: res.SequenceNum,
				ICode:  res.InsertionCode,
			}
			for _, a := range res.Atoms {
				if a.Het {
					continue
				}
				rr.Atoms = append(rr.Atoms, model.RawAtom{
					Name:      a.Name,
					Occupancy: 1,
					X:         a.X,
					Y:         a.Y,
					Z:         a.Z,
				})
			}
			if len(rr.Atoms) == 0 {
				continue
			}
			rc.Residues = append(rc.Residues, rr)
		}
		if len(rc.Residues) == 0 {
			continue
		}
		raw.Chains = append(raw.Chains, rc)
	}
	if chain != "" && len(raw.Chains) == 0 {
		return raw, fmt.Errorf("%s: chain %q not found", id, chain)
	}
	return raw, nil
}

// residueToken canonicalizes a reader residue name into the core's
// uppercase token form.
func residueToken(r seq.Residue) string {
	return strings.ToUpper(string(rune(r)))
}
