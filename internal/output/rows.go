// internal/output/rows.go
package output

import (
	"fmt"
	"strconv"
	"strings"

	"strucfeat-core/feature"
	"strucfeat-core/geom"

	"strucfeat/pkg/api"
)

func fval(v geom.Value) string {
	return strconv.FormatFloat(v.Or(api.MissingSentinel), 'f', 3, 64)
}

func icodeField(c byte) string {
	if c == 0 || c == ' ' {
		return "-"
	}
	return string(rune(c))
}

// FormatRecordTSV returns one record row (no trailing newline). The partner
// group count follows len(r.Partners): fixed under pad-sentinel, variable
// under report-count.
func FormatRecordTSV(r feature.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\t%s\t%d\t%s\t%s",
		r.StructureID, r.ChainID, r.ResIndex, icodeField(r.ICode), r.ResType)
	for _, v := range []geom.Value{r.Phi, r.Psi, r.Omega, r.NCaCAngle, r.CaNextDist, r.CaX, r.CaY, r.CaZ} {
		b.WriteByte('\t')
		b.WriteString(fval(v))
	}
	fmt.Fprintf(&b, "\t%d", r.PartnerCount)
	for _, p := range r.Partners {
		fmt.Fprintf(&b, "\t%s\t%d\t%s\t%s\t%s\t%s",
			p.ChainID, p.ResIndex, strings.Join(p.Kinds, ","),
			fval(p.MinDist), fval(p.HBondDist), fval(p.DonorAngle))
	}
	return b.String()
}
