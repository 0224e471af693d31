package scan

import (
	"testing"

	"gubed/internal/model"
)

func TestClassify(t *testing.T) {
	patterns := DefaultPatterns()

	tests := []struct {
		name   string
		line   string
		want   model.Kind
		wantOK bool
	}{
		{"pry", "binding.pry", model.KindPry, true},
		{"pry indented", "    binding.pry", model.KindPry, true},
		{"pry with trailing comment", "binding.pry # Debug initialization", model.KindPry, true},
		{"pry commented", "# binding.pry", model.KindPry, true},
		{"pry commented indented", "\t#binding.pry", model.KindPry, true},
		{"irb", "binding.irb", model.KindConsole, true},
		{"break", "binding.break if result.nil?", model.KindBreak, true},
		{"debugger", "debugger # Check user addition", model.KindDebugger, true},
		{"byebug", "  byebug", model.KindByebug, true},
		{"require debug then break", `require "debug"; binding.break`, model.KindRequireBreak, true},
		{"require debug single quotes", `# require 'debug'; binding.break`, model.KindRequireBreak, true},
		{"not at line start", "x = 1; binding.pry", "", false},
		{"word boundary", "binding.pryx", "", false},
		{"debugger prefix of identifier", "debugger_enabled = true", "", false},
		{"plain code", "puts 'hello'", "", false},
		{"empty", "", "", false},
		{"double comment", "## binding.pry", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := patterns.Classify(tt.line)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Classify(%q) = (%q, %v), want (%q, %v)", tt.line, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// Both rules would match; the earlier one must win.
	always, err := NewRule("always", `binding\.pry`)
	if err != nil {
		t.Fatal(err)
	}
	patterns := append(DefaultPatterns(), always)
	if got, _ := patterns.Classify("binding.pry"); got != model.KindPry {
		t.Errorf("expected built-in rule to win, got %q", got)
	}

	reversed := PatternSet{always, DefaultPatterns()[0]}
	if got, _ := reversed.Classify("binding.pry"); got != "always" {
		t.Errorf("expected first rule to win, got %q", got)
	}
}

func TestNewRule(t *testing.T) {
	rule, err := NewRule("remote-pry", `binding\.remote_pry\b`)
	if err != nil {
		t.Fatalf("NewRule: %v", err)
	}
	patterns := append(DefaultPatterns(), rule)
	if got, ok := patterns.Classify("  # binding.remote_pry"); !ok || got != "remote-pry" {
		t.Errorf("custom rule not applied, got (%q, %v)", got, ok)
	}

	if _, err := NewRule("", "x"); err == nil {
		t.Error("expected error for empty kind")
	}
	if _, err := NewRule("bad", "("); err == nil {
		t.Error("expected error for invalid expression")
	}
}
