package data

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pairs.csv")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write temp csv: %v", err)
	}
	return path
}

func TestLoadPairs(t *testing.T) {
	path := writeTempCSV(t, "text,summary\nfirst article,first summary\nsecond article,second summary\n")

	pairs, err := LoadPairs(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].Text != "first article" || pairs[0].Summary != "first summary" {
		t.Errorf("unexpected first pair: %+v", pairs[0])
	}
}

func TestLoadPairsColumnLookup(t *testing.T) {
	path := writeTempCSV(t, "id,article,highlights\n1,some article,its summary\n")

	pairs, err := LoadPairs(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pairs[0].Text != "some article" || pairs[0].Summary != "its summary" {
		t.Errorf("columns not located by header: %+v", pairs[0])
	}
}

func TestLoadPairsSkipsBlankRecords(t *testing.T) {
	path := writeTempCSV(t, "text,summary\ngood text,good summary\n,missing text\nmissing summary,\n")

	pairs, err := LoadPairs(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 1 {
		t.Errorf("expected blank records skipped, got %d pairs", len(pairs))
	}
}

func TestStreamingPairReaderEOF(t *testing.T) {
	path := writeTempCSV(t, "text,summary\na text,a summary\n")

	reader, err := NewStreamingPairReader(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer reader.Close()

	batch, err := reader.ReadPairs(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(batch))
	}

	if _, err := reader.ReadPairs(10); err != io.EOF {
		t.Errorf("expected io.EOF after exhaustion, got %v", err)
	}
}

func TestLoadPairsEmptyFile(t *testing.T) {
	path := writeTempCSV(t, "text,summary\n")

	if _, err := LoadPairs(path); err == nil {
		t.Error("expected error for file without pairs")
	}
}
