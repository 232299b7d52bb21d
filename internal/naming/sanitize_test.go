package naming

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Arztbrief_Kardiologe_Müller.pdf", "Arztbrief_Kardiologe_Müller.pdf"},
		{"Labor Berlin / Schmidt.pdf", "Labor_Berlin_Schmidt.pdf"},
		{"a  b?? c.pdf", "a_b_c.pdf"},
		{"__führend und folgend__", "führend_und_folgend"},
		{"bindestrich-bleibt.pdf", "bindestrich-bleibt.pdf"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{"Labor Berlin / Schmidt.pdf", "a  b?? c.pdf", "Überweisung (neu).pdf"}
	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Errorf("Sanitize not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestUniquePathFreshName(t *testing.T) {
	dir := t.TempDir()

	got := UniquePath(dir, "doc.pdf")
	if got != filepath.Join(dir, "doc.pdf") {
		t.Fatalf("UniquePath = %q", got)
	}
}

func TestUniquePathCountsUp(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"doc.pdf", "doc_1.pdf", "doc_2.pdf"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got := UniquePath(dir, "doc.pdf")
	if got != filepath.Join(dir, "doc_3.pdf") {
		t.Fatalf("UniquePath = %q, want doc_3.pdf", got)
	}
}
