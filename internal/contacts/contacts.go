// Package contacts loads the contact book and resolves names to addresses.
package contacts

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Contact is one entry in the contact book.
type Contact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship_type,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// Book holds the contact list in file order. File order breaks ties
// during resolution.
type Book struct {
	Contacts []Contact `json:"contacts"`
}

// Load reads the contact book from path. A missing file and a malformed
// file are distinct errors; callers that treat the book as optional can
// check with errors.Is(err, os.ErrNotExist).
func Load(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contacts file: %w", err)
	}
	var book Book
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("parse contacts file %s: %w", path, err)
	}
	return &book, nil
}

// Resolve finds the contact best matching query, trying exact name match,
// then substring, then fuzzy distance. All tiers are case-insensitive and
// the earlier entry wins ties. Returns false when nothing matches.
func (b *Book) Resolve(query string) (Contact, bool) {
	if len(b.Contacts) == 0 {
		return Contact{}, false
	}
	q := strings.ToLower(query)

	for _, c := range b.Contacts {
		if strings.ToLower(c.Name) == q {
			return c, true
		}
	}

	for _, c := range b.Contacts {
		if strings.Contains(strings.ToLower(c.Name), q) {
			return c, true
		}
	}

	// Fuzzy tier: global minimum edit distance, accepted only when it is
	// small relative to the matched name.
	best := -1
	bestDist := 0
	for i, c := range b.Contacts {
		d := levenshtein(q, strings.ToLower(c.Name))
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	if bestDist <= len(b.Contacts[best].Name)/2+2 {
		return b.Contacts[best], true
	}
	return Contact{}, false
}

// ByAddress finds the contact whose phone matches address after digit
// normalization, comparing the last ten digits so that formatting and
// country-code prefixes do not matter.
func (b *Book) ByAddress(address string) (Contact, bool) {
	want := lastDigits(address, 10)
	if want == "" {
		return Contact{}, false
	}
	for _, c := range b.Contacts {
		if lastDigits(c.Phone, 10) == want {
			return c, true
		}
	}
	return Contact{}, false
}

// lastDigits strips non-digits from s and keeps at most n trailing digits.
func lastDigits(s string, n int) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > n {
		digits = digits[len(digits)-n:]
	}
	return digits
}

// levenshtein computes edit distance with two reusable rows.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
