package session

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gubed/internal/model"
)

func TestCommentLine(t *testing.T) {
	tests := []struct {
		in, commented, uncommented string
	}{
		{"binding.pry", "# binding.pry", "binding.pry"},
		{"    debugger # note", "    # debugger # note", "    debugger # note"},
		{"\t\tbyebug", "\t\t# byebug", "\t\tbyebug"},
	}
	for _, tt := range tests {
		got := commentLine(tt.in)
		if got != tt.commented {
			t.Errorf("commentLine(%q) = %q, want %q", tt.in, got, tt.commented)
		}
		if back := uncommentLine(got); back != tt.uncommented {
			t.Errorf("uncommentLine(%q) = %q, want %q", got, back, tt.uncommented)
		}
	}

	if got := uncommentLine("  #    binding.irb"); got != "  binding.irb" {
		t.Errorf("uncommentLine strips following whitespace, got %q", got)
	}
	if got := uncommentLine("  ## binding.irb"); got != "  # binding.irb" {
		t.Errorf("uncommentLine strips a single marker, got %q", got)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a\n"}},
		{"a\r\nb\n\nc", []string{"a\r\n", "b\n", "\n", "c"}},
	}
	for _, tt := range tests {
		got := splitLines(tt.in)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDeleteLine_LastLineWithoutNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.rb")
	os.WriteFile(path, []byte("a\nbinding.pry"), 0644)

	bp := model.NewBreakpoint("a.rb", 2, "binding.pry", model.KindPry)
	if err := deleteLine(path, bp); err != nil {
		t.Fatal(err)
	}
	if got, _ := os.ReadFile(path); string(got) != "a\n" {
		t.Errorf("content = %q", got)
	}

	if err := deleteLine(path, bp); !errors.Is(err, ErrStaleBreakpoint) {
		t.Errorf("expected ErrStaleBreakpoint past end of file, got %v", err)
	}
}

func TestWriteFileAtomic_KeepsModeAndFollowsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "script")
	os.WriteFile(target, []byte("#!/usr/bin/env ruby\ndebugger\n"), 0755)
	link := filepath.Join(dir, "link.rb")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	bp := model.NewBreakpoint("link.rb", 2, "debugger", model.KindDebugger)
	if err := rewriteLine(link, bp, commentLine); err != nil {
		t.Fatal(err)
	}

	info, err := os.Lstat(link)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		t.Error("symlink was replaced")
	}
	st, _ := os.Stat(target)
	if st.Mode().Perm() != 0755 {
		t.Errorf("mode = %v, want 0755", st.Mode().Perm())
	}
	if got, _ := os.ReadFile(target); string(got) != "#!/usr/bin/env ruby\n# debugger\n" {
		t.Errorf("content = %q", got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("temp file left behind: %v", entries)
	}
}
