// Package typedstream recovers message text from attributedBody blobs.
//
// The blob is an Apple typedstream archive of an NSAttributedString. This
// package does not decode the archive; it locates the embedded string with
// two heuristics that cover the encodings seen in practice.
package typedstream

import (
	"bytes"
	"regexp"
	"strings"
)

// marker precedes the payload string in the archive.
var marker = []byte("NSString")

// Typedstream field delimiters that terminate the payload.
const (
	endMinor = 0x86
	endMajor = 0x84
)

// fallbackText matches the first plausible run of message text in the
// printable projection of a blob.
var fallbackText = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9.,!?\-\s]{3,}`)

// ExtractText returns the best-effort message text recovered from blob,
// or "" when nothing plausible is found. The result is never longer than
// the input.
func ExtractText(blob []byte) string {
	if len(blob) == 0 {
		return ""
	}
	if s := extractAfterMarker(blob); s != "" {
		return s
	}
	return extractPrintableRun(blob)
}

// extractAfterMarker finds the NSString marker, skips the '+' type tag
// and its one-byte length, and collects payload bytes up to the next
// field delimiter or NUL.
func extractAfterMarker(blob []byte) string {
	i := bytes.Index(blob, marker)
	if i < 0 {
		return ""
	}
	rest := blob[i+len(marker):]
	plus := bytes.IndexByte(rest, '+')
	if plus < 0 {
		return ""
	}
	start := plus + 2
	if start >= len(rest) {
		return ""
	}

	var b strings.Builder
	for _, c := range rest[start:] {
		if c == endMinor || c == endMajor || c == 0x00 {
			break
		}
		if c >= 0x20 && c != 0x7f {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// extractPrintableRun maps non-printable bytes to spaces and returns the
// first text-like run.
func extractPrintableRun(blob []byte) string {
	printable := make([]byte, len(blob))
	for i, c := range blob {
		if c >= 0x20 && c < 0x7f {
			printable[i] = c
		} else {
			printable[i] = ' '
		}
	}
	m := fallbackText.Find(printable)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(string(m))
}
