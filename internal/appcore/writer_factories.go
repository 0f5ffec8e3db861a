package appcore

import (
	"io"

	"strucfeat-core/feature"

	"strucfeat/internal/writers"
)

// FeatureWriterFactory selects the serialization path for feature records.
type FeatureWriterFactory struct {
	Format      string
	Sort        bool
	Header      bool
	MaxPartners int
}

func NewFeatureWriterFactory(format string, sort, header bool, maxPartners int) FeatureWriterFactory {
	return FeatureWriterFactory{Format: format, Sort: sort, Header: header, MaxPartners: maxPartners}
}

func (w FeatureWriterFactory) Start(out io.Writer, bufSize int) (chan<- feature.Record, <-chan error) {
	return writers.StartFeatureWriter(out, w.Format, w.Sort, w.Header, w.MaxPartners, bufSize)
}
