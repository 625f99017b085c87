// Package applescript sends outbound messages through the Messages app.
// It only works on macOS with Automation permission granted to the caller.
package applescript

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// sendScript is the osascript body; recipient and text are escaped before
// substitution.
const sendScript = `tell application "Messages"
	set targetService to 1st account whose service type = iMessage
	set targetBuddy to participant "%s" of targetService
	send "%s" to targetBuddy
end tell`

// Send delivers text to recipient (a phone number or Apple ID) via the
// Messages app.
func Send(ctx context.Context, recipient, text string) error {
	script := buildSendScript(recipient, text)
	out, err := exec.CommandContext(ctx, "osascript", "-e", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("osascript send to %s: %w: %s", recipient, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func buildSendScript(recipient, text string) string {
	return fmt.Sprintf(sendScript, escape(recipient), escape(text))
}

// escape protects backslashes and double quotes inside an AppleScript
// string literal. Backslashes go first so escaped quotes stay escaped.
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
