package editor

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFillCreate(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"Q3 outlook",
		"Numbers",
		"",
		"# Heading",
		"", "", "",
		"ai, labor",
		"published",
		"", "", "", "",
	}, "\n") + "\n")
	var out bytes.Buffer

	got, err := NewPrompter(in, &out).Fill(ReportForm, nil)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	want := map[string]string{
		"title":   "Q3 outlook",
		"summary": "Numbers",
		"content": "# Heading",
		"tags":    "ai, labor",
		"status":  "published",
	}
	if len(got) != len(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
	if !strings.Contains(out.String(), "Status (draft/published/archived) [draft]: ") {
		t.Errorf("status prompt missing from output:\n%s", out.String())
	}
}

func TestFillUpdateFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "body.md")
	if err := os.WriteFile(path, []byte("# From file"), 0o600); err != nil {
		t.Fatal(err)
	}
	current := map[string]string{"title": "Old", "summary": "Keep", "author": "Ana"}

	answers := []string{"New", "", path, "", "", "", "", "", "", "-", "", ""}
	in := strings.NewReader(strings.Join(answers, "\n") + "\n")

	got, err := NewPrompter(in, io.Discard).Fill(ReportForm, current)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	want := map[string]string{"title": "New", "content": "# From file", "author": ""}
	if len(got) != len(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestFillStopsAtEOF(t *testing.T) {
	_, err := NewPrompter(strings.NewReader("only title\n"), io.Discard).Fill(NewsForm, nil)
	if err == nil || !strings.Contains(err.Error(), "description") {
		t.Errorf("want EOF error at description, got %v", err)
	}
}

func TestSecretFromPipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if _, err := w.WriteString("hunter22\n"); err != nil {
		t.Fatal(err)
	}
	w.Close()

	got, err := NewPrompter(r, io.Discard).Secret("Password: ")
	if err != nil {
		t.Fatalf("Secret: %v", err)
	}
	if got != "hunter22" {
		t.Errorf("got %q, want hunter22", got)
	}
}
