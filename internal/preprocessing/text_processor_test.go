package preprocessing

import (
	"testing"
)

func TestProcessCleansText(t *testing.T) {
	tp := NewTextProcessor(true, false, nil)

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"quotes", "‘quoted’ and “double”", `'quoted' and "double"`},
		{"email", "contact me@example.com now", "contact now"},
		{"hyperlink", "see https://example.org/page here", "see here"},
		{"hashtag", "trending #topic today", "trending today"},
		{"html", "some <b>bold</b> text", "some bold text"},
		{"spaces", "too   many\tspaces", "too many spaces"},
		{"trim", "  padded  ", "padded"},
	}

	for _, tc := range cases {
		got := tp.Process(tc.in)
		if got != tc.want {
			t.Errorf("%s: Process(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestProcessRemovesNumbers(t *testing.T) {
	tp := NewTextProcessor(false, true, nil)

	got := tp.Process("version 42 released")
	if got != "version released" {
		t.Errorf("expected numbers removed, got %q", got)
	}
}

func TestProcessIgnoreTokens(t *testing.T) {
	tp := NewTextProcessor(false, false, []string{"<pad>", "<unk>"})

	got := tp.Process("a <pad> b <unk> c")
	if got != "a b c" {
		t.Errorf("expected ignore tokens removed, got %q", got)
	}
}

func TestProcessAllPreservesOrderAndCount(t *testing.T) {
	tp := NewTextProcessor(true, false, nil)

	texts := []string{"first  text", "second  text", "third  text"}
	got := tp.ProcessAll(texts)

	if len(got) != len(texts) {
		t.Fatalf("expected %d texts, got %d", len(texts), len(got))
	}
	want := []string{"first text", "second text", "third text"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("text %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
