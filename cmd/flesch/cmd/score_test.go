package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/f3rmion/flesch/internal/config"
	"github.com/f3rmion/flesch/internal/logging"
	"github.com/f3rmion/flesch/internal/scoring"
)

func TestReadScoreText(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"args joined", "ignored", []string{"The", "quick", "fox."}, "The quick fox."},
		{"stdin trailing newline", "Some text.\n", nil, "Some text."},
		{"stdin crlf", "Some text.\r\n", nil, "Some text."},
		{"stdin keeps inner whitespace", "  a\n\nb  \n", nil, "  a\n\nb  "},
		{"empty stdin", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readScoreText(strings.NewReader(tt.stdin), tt.args)
			if err != nil {
				t.Fatalf("readScoreText: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScoreOncePrintsResult(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.Write([]byte(`{"grade": 2.3, "score": "94.3"}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	client := scoring.NewClient(srv.URL, scoring.DefaultPath)
	_, _, err := scoreOnce(context.Background(), client, logging.Discard(), "The quick brown fox.", &out)
	if err != nil {
		t.Fatalf("scoreOnce: %v", err)
	}

	if body != `{"text":"The quick brown fox."}` {
		t.Errorf("body: got %s", body)
	}
	want := "Grade: 2.3\nScore: 94.3\n"
	if out.String() != want {
		t.Errorf("output: got %q, want %q", out.String(), want)
	}
}

func TestScoreOnceEmptyTextSendsNothing(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	var out bytes.Buffer
	_, _, err := scoreOnce(context.Background(), scoring.NewClient(srv.URL, ""), logging.Discard(), "", &out)
	if err != nil {
		t.Fatalf("scoreOnce: %v", err)
	}
	if called {
		t.Error("empty text reached the server")
	}
	if out.Len() != 0 {
		t.Errorf("output: got %q, want empty", out.String())
	}
}

func TestScoreOnceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	var out bytes.Buffer
	_, _, err := scoreOnce(context.Background(), scoring.NewClient(srv.URL, ""), logging.Discard(), "text", &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if out.Len() != 0 {
		t.Errorf("output on failure: got %q", out.String())
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "flesch")

	path, err := writeDefaultConfig(dir, false)
	if err != nil {
		t.Fatalf("writeDefaultConfig: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *config.Default() {
		t.Errorf("written config: got %+v", *cfg)
	}

	if _, err := writeDefaultConfig(dir, false); err == nil {
		t.Error("second write without force: expected error")
	}

	if err := os.WriteFile(path, []byte("endpoint: http://other\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := writeDefaultConfig(dir, true); err != nil {
		t.Fatalf("forced write: %v", err)
	}
	cfg, _ = config.Load(path)
	if cfg.Endpoint != config.DefaultEndpoint {
		t.Errorf("endpoint after force: got %q", cfg.Endpoint)
	}
}
