// internal/common/sort.go
package common

import (
	"sort"

	"strucfeat-core/feature"
)

// LessRecord defines a stable order for feature records (for --sort).
func LessRecord(a, b feature.Record) bool {
	if a.StructureID != b.StructureID {
		return a.StructureID < b.StructureID
	}
	if a.ChainID != b.ChainID {
		return a.ChainID < b.ChainID
	}
	if a.ResIndex != b.ResIndex {
		return a.ResIndex < b.ResIndex
	}
	return a.ICode < b.ICode
}

func SortRecords(rs []feature.Record) {
	sort.Slice(rs, func(i, j int) bool { return LessRecord(rs[i], rs[j]) })
}
