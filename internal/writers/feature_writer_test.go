package writers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"strucfeat-core/feature"
	"strucfeat-core/geom"

	"strucfeat/pkg/api"
)

func rec(id, chain string, idx int) feature.Record {
	r := feature.Record{
		StructureID: id,
		ChainID:     chain,
		ResIndex:    idx,
		ResType:     "A",
	}
	r.Phi = geom.Some(-60.5)
	r.Psi = geom.Missing
	r.CaX = geom.Some(1.25)
	r.Partners = []feature.Partner{feature.SentinelPartner(), feature.SentinelPartner()}
	return r
}

func runWriter(t *testing.T, format string, sort bool, recs ...feature.Record) string {
	t.Helper()
	var buf bytes.Buffer
	in, errCh := StartFeatureWriter(&buf, format, sort, true, 2, 4)
	for _, r := range recs {
		in <- r
	}
	close(in)
	if err := <-errCh; err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestTextHeaderAndSentinels(t *testing.T) {
	got := runWriter(t, "text", false, rec("1abc", "A", 1))
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 row:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "structure_id\tchain_id\tres_index") {
		t.Fatalf("bad header: %q", lines[0])
	}
	if !strings.Contains(lines[0], "partner_chain_2") {
		t.Fatalf("header missing second partner group: %q", lines[0])
	}
	row := strings.Split(lines[1], "\t")
	if want := len(strings.Split(lines[0], "\t")); len(row) != want {
		t.Fatalf("row has %d fields, header has %d", len(row), want)
	}
	// psi is undefined: serialized as the numeric sentinel, never NaN.
	if row[6] != "-999.000" {
		t.Fatalf("psi field = %q, want -999.000", row[6])
	}
	if row[5] != "-60.500" {
		t.Fatalf("phi field = %q, want -60.500", row[5])
	}
	if strings.Contains(got, "NaN") {
		t.Fatal("output must never contain NaN")
	}
}

func TestTextSorted(t *testing.T) {
	got := runWriter(t, "text", true,
		rec("zzz", "A", 1), rec("aaa", "B", 2), rec("aaa", "A", 9))
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")[1:]
	order := []string{"aaa\tA\t9", "aaa\tB\t2", "zzz\tA\t1"}
	for i, prefix := range order {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Fatalf("line %d = %q, want prefix %q", i, lines[i], prefix)
		}
	}
}

func TestJSONArray(t *testing.T) {
	got := runWriter(t, "json", true, rec("1abc", "A", 1))
	var out []api.FeatureRecordV1
	if err := json.Unmarshal([]byte(got), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, got)
	}
	if len(out) != 1 || out[0].StructureID != "1abc" {
		t.Fatalf("unexpected payload: %+v", out)
	}
	if out[0].Psi != api.MissingSentinel {
		t.Fatalf("psi = %v, want sentinel %v", out[0].Psi, api.MissingSentinel)
	}
	if len(out[0].Partners) != 2 || out[0].Partners[0].ChainID != "-" {
		t.Fatalf("sentinel partners not preserved: %+v", out[0].Partners)
	}
}

func TestJSONLOneLinePerRecord(t *testing.T) {
	got := runWriter(t, "jsonl", false, rec("1abc", "A", 1), rec("1abc", "A", 2))
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), got)
	}
	for _, ln := range lines {
		var out api.FeatureRecordV1
		if err := json.Unmarshal([]byte(ln), &out); err != nil {
			t.Fatalf("invalid JSONL line: %v\n%s", err, ln)
		}
	}
}

func TestUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	in, errCh := StartFeatureWriter(&buf, "xml", false, true, 2, 4)
	close(in)
	if err := <-errCh; err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
