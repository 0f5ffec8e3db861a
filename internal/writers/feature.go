package writers

import (
	"encoding/json"
	"fmt"
	"io"

	"strucfeat-core/feature"

	"strucfeat/internal/common"
	"strucfeat/internal/jsonlutil"
	"strucfeat/internal/output"
)

// StartFeatureWriter spins up a writer goroutine for feature.Record items.
// Text output streams unless sort is requested; JSON always buffers (single
// array); JSONL always streams.
func StartFeatureWriter(out io.Writer, format string, sort, header bool, maxPartners, bufSize int) (chan<- feature.Record, <-chan error) {
	if format == output.FormatJSONL {
		return startFeatureJSONLWriter(out, bufSize)
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan feature.Record, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case output.FormatJSON:
			var buf []feature.Record
			for r := range in {
				buf = append(buf, r)
			}
			if sort {
				common.SortRecords(buf)
			}
			err = output.WriteJSON(out, buf)

		case output.FormatText:
			if sort {
				var buf []feature.Record
				for r := range in {
					buf = append(buf, r)
				}
				common.SortRecords(buf)
				err = output.WriteText(out, buf, header, maxPartners)
			} else {
				err = output.StreamText(out, in, header, maxPartners)
			}

		default:
			err = fmt.Errorf("unsupported output %q", format)
		}
		// Drain so producers never block after a failure.
		for range in {
		}
		errCh <- err
	}()

	return in, errCh
}

// startFeatureJSONLWriter streams each record as one JSON line (v1).
func startFeatureJSONLWriter(out io.Writer, bufSize int) (chan<- feature.Record, <-chan error) {
	return jsonlutil.Start[feature.Record](out, bufSize,
		func(enc *json.Encoder, r feature.Record) error {
			return enc.Encode(output.ToAPIRecord(r))
		},
		IsBrokenPipe,
	)
}
