package quota

import (
	"errors"
	"reflect"
	"testing"
)

const sampleReport = `
#0 0 0 0 0 [--------]
#1 102400 512000 1024000 0 [--------]
#7 2048 0 0 3 [7 days]
`

func TestParseReport(t *testing.T) {
	snapshot, err := ParseReport([]byte(sampleReport))
	if err != nil {
		t.Fatal(err)
	}

	if len(snapshot) != 3 {
		t.Fatalf("expected 3 records, got %d", len(snapshot))
	}

	expected := ProjectQuota{
		ProjectID: 1,
		UsedBytes: 102400 * 1024,
		SoftBytes: 512000 * 1024,
		HardBytes: 1024000 * 1024,
		WarnCount: 0,
		Grace:     "--------",
	}
	if got := snapshot[1]; got != expected {
		t.Fatalf("record 1: expected %+v, got %+v", expected, got)
	}

	if got := snapshot[7]; got.WarnCount != 3 || got.Grace != "7 days" {
		t.Fatalf("record 7: warn/grace not kept verbatim: %+v", got)
	}
}

func TestParseReportMalformed(t *testing.T) {
	testCases := []string{
		"garbage",
		"#x 1 2 3 4 [--------]",
		"#1 1 2 3 4",
		"#1 1 2 3 4 [a[b]",
		"1 1 2 3 4 [--------]",
	}

	for i, line := range testCases {
		_, err := ParseReport([]byte(line))
		if err == nil {
			t.Fatalf("case %v: expected error, but succeeded", i+1)
		}
		var malformed *MalformedReportError
		if !errors.As(err, &malformed) {
			t.Fatalf("case %v: expected MalformedReportError, got %T", i+1, err)
		}
		if malformed.Line != line {
			t.Fatalf("case %v: expected offending line %q, got %q", i+1, line, malformed.Line)
		}
	}
}

func TestParseReportLastRecordWins(t *testing.T) {
	out := "#5 1 2 3 4 [--------]\n#5 10 20 30 40 [--------]\n"
	snapshot, err := ParseReport([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if len(snapshot) != 1 {
		t.Fatalf("expected 1 record, got %d", len(snapshot))
	}
	if snapshot[5].UsedBytes != 10*1024 {
		t.Fatalf("expected last record to win, got %+v", snapshot[5])
	}
}

func TestParseReportDeterministic(t *testing.T) {
	first, err := ParseReport([]byte(sampleReport))
	if err != nil {
		t.Fatal(err)
	}
	second, err := ParseReport([]byte(sampleReport))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parsing the same text twice differs: %+v vs %+v", first, second)
	}
}

func TestParseReportKiBRoundTrip(t *testing.T) {
	snapshot, err := ParseReport([]byte(sampleReport))
	if err != nil {
		t.Fatal(err)
	}

	// Conversion is an exact x1024, so dividing back recovers the report's
	// KiB columns.
	kib := map[uint32][3]uint64{
		0: {0, 0, 0},
		1: {102400, 512000, 1024000},
		7: {2048, 0, 0},
	}
	for id, want := range kib {
		q := snapshot[id]
		got := [3]uint64{q.UsedBytes / 1024, q.SoftBytes / 1024, q.HardBytes / 1024}
		if got != want {
			t.Fatalf("record %d: expected KiB %v, got %v", id, want, got)
		}
	}
}

func TestSnapshotProjectIDs(t *testing.T) {
	snapshot := Snapshot{7: {}, 1: {}, 3: {}}
	ids := snapshot.ProjectIDs()
	if !reflect.DeepEqual(ids, []uint32{1, 3, 7}) {
		t.Fatalf("expected sorted ids, got %v", ids)
	}
}
