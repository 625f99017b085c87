package applescript

import (
	"strings"
	"testing"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `plain`},
		{`say "hi"`, `say \"hi\"`},
		{`back\slash`, `back\\slash`},
		{`mix "a\b"`, `mix \"a\\b\"`},
	}
	for _, tt := range tests {
		if got := escape(tt.in); got != tt.want {
			t.Errorf("escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildSendScript(t *testing.T) {
	script := buildSendScript("+15551234567", `dinner at "eight"?`)

	if !strings.Contains(script, `participant "+15551234567" of targetService`) {
		t.Errorf("script missing participant clause:\n%s", script)
	}
	if !strings.Contains(script, `send "dinner at \"eight\"?" to targetBuddy`) {
		t.Errorf("script missing escaped send clause:\n%s", script)
	}
	if !strings.HasPrefix(script, `tell application "Messages"`) || !strings.HasSuffix(script, "end tell") {
		t.Errorf("script not wrapped in tell block:\n%s", script)
	}
}
