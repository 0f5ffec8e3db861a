package output

import (
	"fmt"
	"strings"
)

// Output format names accepted by --output.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// baseHeader holds the fixed leading columns of text/TSV output.
// Keep this as the single source of truth; all writers should use it.
const baseHeader = "structure_id\tchain_id\tres_index\ticode\tres_type\t" +
	"phi\tpsi\tomega\tn_ca_c_angle\tca_next_dist\tca_x\tca_y\tca_z\tn_partners"

// TSVHeader returns the header row for a run with maxPartners window slots.
// Partner columns repeat per slot, 1-based suffixes.
func TSVHeader(maxPartners int) string {
	var b strings.Builder
	b.WriteString(baseHeader)
	for k := 1; k <= maxPartners; k++ {
		fmt.Fprintf(&b, "\tpartner_chain_%d\tpartner_index_%d\tkinds_%d\tmin_dist_%d\thbond_dist_%d\tdonor_angle_%d",
			k, k, k, k, k, k)
	}
	return b.String()
}
