package storage

import (
	"errors"
	"testing"

	"genevo/internal/model"
)

func TestRunCodecRoundTrip(t *testing.T) {
	run := testRun("run-1", "2026-02-02T10:00:00Z")
	data, err := EncodeRun(run)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeRun(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != run {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestDecodeRunRejectsVersionMismatch(t *testing.T) {
	run := testRun("run-1", "2026-02-02T10:00:00Z")
	run.SchemaVersion = CurrentSchemaVersion + 1
	data, err := EncodeRun(run)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeRun(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected version mismatch, got %v", err)
	}
}

func TestDecodeRunRejectsMalformedPayload(t *testing.T) {
	if _, err := DecodeRun([]byte("{")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSortRunsNewestFirstBreaksTiesByID(t *testing.T) {
	runs := []model.RunRecord{
		{ID: "b", CreatedAtUTC: "2026-01-01T00:00:00Z"},
		{ID: "c", CreatedAtUTC: "2026-01-03T00:00:00Z"},
		{ID: "a", CreatedAtUTC: "2026-01-01T00:00:00Z"},
	}
	sortRunsNewestFirst(runs)
	got := []string{runs[0].ID, runs[1].ID, runs[2].ID}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: %v", got)
		}
	}
}
