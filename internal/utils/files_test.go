package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Customers Distribution":                "customers-distribution",
		"Crypto Transactions (Test Scores)":     "crypto-transactions-test-scores",
		"Active_Users Distribution":             "active-users-distribution",
		"Correlation Heatmap of Crypto Dataset": "correlation-heatmap-of-crypto-dataset",
		"  ":                                    "figure",
		"***":                                   "figure",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSafeWriteFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.txt")
	if err := SafeWriteFile(p, []byte("one")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := SafeWriteFile(p, []byte("two")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil || string(b) != "two" {
		t.Fatalf("content = %q, err = %v", b, err)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := ExpandHome("~/figs")
	if err != nil {
		t.Fatalf("ExpandHome: %v", err)
	}
	if got != filepath.Join(home, "figs") {
		t.Fatalf("got %q", got)
	}
	if got, _ := ExpandHome("rel/dir/"); got != filepath.Join("rel", "dir") {
		t.Fatalf("relative = %q", got)
	}
}
