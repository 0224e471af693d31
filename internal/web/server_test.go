package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"gubed/internal/model"
	"gubed/internal/scan"
)

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	root := t.TempDir()
	os.WriteFile(filepath.Join(root, "a.rb"), []byte("x = 1\nbinding.pry\n# byebug\n"), 0644)

	s, err := NewServer(root, scan.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts, root
}

func TestHandleBreakpoints(t *testing.T) {
	ts, root := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/breakpoints")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body struct {
		Root        string `json:"root"`
		Breakpoints []struct {
			File       string     `json:"file"`
			LineNumber int        `json:"line_number"`
			Type       model.Kind `json:"type"`
			Location   string     `json:"location"`
			Commented  bool       `json:"commented"`
		} `json:"breakpoints"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Root != root {
		t.Errorf("root = %q", body.Root)
	}
	if len(body.Breakpoints) != 2 {
		t.Fatalf("breakpoints = %+v", body.Breakpoints)
	}
	first, second := body.Breakpoints[0], body.Breakpoints[1]
	if first.Location != "a.rb:2" || first.Type != model.KindPry || first.Commented {
		t.Errorf("first = %+v", first)
	}
	if second.LineNumber != 3 || !second.Commented || second.Type != model.KindByebug {
		t.Errorf("second = %+v", second)
	}

	// Results follow the disk.
	os.WriteFile(filepath.Join(root, "b.rb"), []byte("debugger\n"), 0644)
	resp2, err := http.Get(ts.URL + "/api/breakpoints")
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	json.NewDecoder(resp2.Body).Decode(&body)
	if len(body.Breakpoints) != 3 {
		t.Errorf("expected rescan on each request, got %d", len(body.Breakpoints))
	}
}

func TestHandleContext(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"ok", "?file=a.rb&line=2", http.StatusOK},
		{"missing params", "?file=a.rb", http.StatusBadRequest},
		{"bad line", "?file=a.rb&line=zero", http.StatusBadRequest},
		{"escape root", "?file=../secret.rb&line=1", http.StatusForbidden},
		{"absolute", "?file=/etc/passwd&line=1", http.StatusForbidden},
		{"missing file", "?file=nope.rb&line=1", http.StatusNotFound},
		{"line out of range", "?file=a.rb&line=40", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/api/context" + tt.query)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}

	resp, err := http.Get(ts.URL + "/api/context?file=a.rb&line=2")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var ctx model.LineContext
	if err := json.NewDecoder(resp.Body).Decode(&ctx); err != nil {
		t.Fatal(err)
	}
	if ctx.File != "a.rb" || len(ctx.Lines) != 3 || !ctx.Lines[1].IsTarget {
		t.Errorf("context = %+v", ctx)
	}
}

func TestHandleHelp(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/help")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body struct {
		Commands []struct {
			Keys string `json:"keys"`
		} `json:"commands"`
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Commands) == 0 || body.Version != model.Version {
		t.Errorf("help = %+v", body)
	}
}

func TestNewServer_InvalidRoot(t *testing.T) {
	if _, err := NewServer(filepath.Join(t.TempDir(), "missing"), scan.DefaultConfig()); err == nil {
		t.Error("expected error")
	}
}
