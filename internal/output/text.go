// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"strucfeat-core/feature"
)

// WriteText prints all records as TSV from a buffered slice.
func WriteText(w io.Writer, list []feature.Record, header bool, maxPartners int) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader(maxPartners)); err != nil {
			return err
		}
	}
	for _, r := range list {
		if _, err := fmt.Fprintln(w, FormatRecordTSV(r)); err != nil {
			return err
		}
	}
	return nil
}

// StreamText prints records as TSV as they arrive on in.
func StreamText(w io.Writer, in <-chan feature.Record, header bool, maxPartners int) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader(maxPartners)); err != nil {
			return err
		}
	}
	for r := range in {
		if _, err := fmt.Fprintln(w, FormatRecordTSV(r)); err != nil {
			return err
		}
	}
	return nil
}
