package msgstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/imsgtools/imsg/internal/appletime"
	"github.com/imsgtools/imsg/internal/testutil/chatdb"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// newTestStore returns a seedable archive and a Store reading it, with the
// clock pinned to testNow.
func newTestStore(t *testing.T) (*chatdb.TestDB, *Store) {
	t.Helper()
	tdb := chatdb.New(t)
	s := New(tdb.Path)
	s.now = func() time.Time { return testNow }
	return tdb, s
}

// at returns the store timestamp for a wall-clock instant.
func at(t time.Time) int64 {
	return appletime.FromTime(t)
}

func TestAccessible(t *testing.T) {
	tdb, s := newTestStore(t)
	if err := s.Accessible(); err != nil {
		t.Errorf("Accessible on existing file: %v", err)
	}
	missing := New(tdb.Path + ".gone")
	if err := missing.Accessible(); err == nil {
		t.Error("Accessible on missing file: want error, got nil")
	}
}

func TestMessagesByAddress(t *testing.T) {
	tdb, s := newTestStore(t)
	alice := tdb.AddHandle("+15551234567")
	bob := tdb.AddHandle("+15559876543")

	tdb.AddMessage(chatdb.MessageOpts{HandleID: alice, Text: "oldest", Date: at(testNow.Add(-3 * time.Hour))})
	tdb.AddMessage(chatdb.MessageOpts{HandleID: alice, Text: "middle", Date: at(testNow.Add(-2 * time.Hour)), FromMe: true})
	tdb.AddMessage(chatdb.MessageOpts{HandleID: alice, Text: "newest", Date: at(testNow.Add(-1 * time.Hour))})
	tdb.AddMessage(chatdb.MessageOpts{HandleID: bob, Text: "other thread", Date: at(testNow)})

	got, err := s.MessagesByAddress(context.Background(), "+15551234567", 10)
	if err != nil {
		t.Fatalf("MessagesByAddress: %v", err)
	}
	want := []MessageRecord{
		{Text: "newest", Timestamp: "2024-06-15T11:00:00Z", Handle: "+15551234567"},
		{Text: "middle", Timestamp: "2024-06-15T10:00:00Z", IsFromMe: true, Handle: "+15551234567"},
		{Text: "oldest", Timestamp: "2024-06-15T09:00:00Z", Handle: "+15551234567"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}

	got, err = s.MessagesByAddress(context.Background(), "+15551234567", 2)
	if err != nil {
		t.Fatalf("MessagesByAddress with limit: %v", err)
	}
	if len(got) != 2 || got[0].Text != "newest" {
		t.Errorf("limit 2: got %d rows starting %q", len(got), got[0].Text)
	}
}

func TestTextRecovery(t *testing.T) {
	tests := []struct {
		name string
		opts chatdb.MessageOpts
		want string
	}{
		{"plain text column", chatdb.MessageOpts{Text: "plain"}, "plain"},
		{"blob fallback", chatdb.MessageOpts{Body: []byte("\x01\x02Lunch tomorrow!\x00")}, "Lunch tomorrow!"},
		{"nothing recoverable", chatdb.MessageOpts{}, missingText},
		{"text wins over blob", chatdb.MessageOpts{Text: "column", Body: []byte("\x01ignored blob text\x00")}, "column"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tdb, s := newTestStore(t)
			h := tdb.AddHandle("+15551234567")
			tt.opts.HandleID = h
			tt.opts.Date = at(testNow)
			tdb.AddMessage(tt.opts)

			got, err := s.MessagesByAddress(context.Background(), "+15551234567", 1)
			if err != nil {
				t.Fatalf("MessagesByAddress: %v", err)
			}
			if len(got) != 1 || got[0].Text != tt.want {
				t.Errorf("recovered text = %q, want %q", got[0].Text, tt.want)
			}
		})
	}
}

func TestUnknownDateFormatsEmpty(t *testing.T) {
	tdb, s := newTestStore(t)
	h := tdb.AddHandle("+15551234567")
	tdb.AddMessage(chatdb.MessageOpts{HandleID: h, Text: "undated", Date: 0})

	got, err := s.MessagesByAddress(context.Background(), "+15551234567", 1)
	if err != nil {
		t.Fatalf("MessagesByAddress: %v", err)
	}
	if got[0].Timestamp != "" {
		t.Errorf("timestamp for date 0 = %q, want empty", got[0].Timestamp)
	}
}

func TestGroupDetection(t *testing.T) {
	tests := []struct {
		room      string
		wantGroup bool
	}{
		{"", false},
		{"chat123456789", true},
		{"chat", false},
		{"chatroom", false},
		{"+15551234567,+15559876543", true},
		{"iMessage;+;chat12", false},
	}
	for _, tt := range tests {
		if got := isGroupChat(tt.room); got != tt.wantGroup {
			t.Errorf("isGroupChat(%q) = %v, want %v", tt.room, got, tt.wantGroup)
		}
	}

	tdb, s := newTestStore(t)
	h := tdb.AddHandle("+15551234567")
	tdb.AddMessage(chatdb.MessageOpts{HandleID: h, Text: "hi all", Date: at(testNow), Room: "chat42"})
	got, err := s.RecentMessages(context.Background(), 1)
	if err != nil {
		t.Fatalf("RecentMessages: %v", err)
	}
	if !got[0].IsGroup || got[0].GroupID != "chat42" {
		t.Errorf("group record = %+v, want IsGroup with GroupID chat42", got[0])
	}
}

func TestRecentMessagesIncludesHandlelessRows(t *testing.T) {
	tdb, s := newTestStore(t)
	h := tdb.AddHandle("+15551234567")
	tdb.AddMessage(chatdb.MessageOpts{HandleID: h, Text: "with handle", Date: at(testNow.Add(-time.Minute))})
	tdb.AddMessage(chatdb.MessageOpts{Text: "orphan", Date: at(testNow), FromMe: true})

	got, err := s.RecentMessages(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentMessages: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].Text != "orphan" || got[0].Handle != "" {
		t.Errorf("newest row = %+v, want orphan with empty handle", got[0])
	}
}

func TestUnreadMessages(t *testing.T) {
	tdb, s := newTestStore(t)
	h := tdb.AddHandle("+15551234567")

	tdb.AddMessage(chatdb.MessageOpts{HandleID: h, Text: "already read", Date: at(testNow.Add(-5 * time.Minute))})
	tdb.AddMessage(chatdb.MessageOpts{HandleID: h, Text: "my own draft", Date: at(testNow.Add(-4 * time.Minute)), FromMe: true, Unread: true})
	tdb.AddMessage(chatdb.MessageOpts{HandleID: h, Text: "system notice", Date: at(testNow.Add(-3 * time.Minute)), Unread: true, System: true})
	tdb.AddMessage(chatdb.MessageOpts{HandleID: h, Text: "name change", Date: at(testNow.Add(-2 * time.Minute)), Unread: true, ItemType: 2})
	tdb.AddMessage(chatdb.MessageOpts{HandleID: h, Text: "actually unread", Date: at(testNow.Add(-time.Minute)), Unread: true})

	got, err := s.UnreadMessages(context.Background(), 10)
	if err != nil {
		t.Fatalf("UnreadMessages: %v", err)
	}
	if len(got) != 1 || got[0].Text != "actually unread" {
		t.Errorf("got %+v, want only the actually unread message", got)
	}
}

func TestSearchMessages(t *testing.T) {
	tdb, s := newTestStore(t)
	h := tdb.AddHandle("+15551234567")
	tdb.AddMessage(chatdb.MessageOpts{HandleID: h, Text: "Dinner Plans for Friday", Date: at(testNow.Add(-2 * time.Hour))})
	tdb.AddMessage(chatdb.MessageOpts{HandleID: h, Text: "running late", Date: at(testNow.Add(-time.Hour)), FromMe: true})

	got, err := s.SearchMessages(context.Background(), "dinner plans", "", 10)
	if err != nil {
		t.Fatalf("SearchMessages: %v", err)
	}
	if len(got) != 1 || got[0].Text != "Dinner Plans for Friday" {
		t.Errorf("case-insensitive search got %+v", got)
	}

	got, err = s.SearchMessages(context.Background(), "nowhere", "", 10)
	if err != nil {
		t.Fatalf("SearchMessages: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("no-match search returned %d rows", len(got))
	}
}

// Search filters within the newest limit rows, so a match pushed past the
// window by newer messages is not found.
func TestSearchWindowExcludesOlderMatches(t *testing.T) {
	tdb, s := newTestStore(t)
	h := tdb.AddHandle("+15551234567")

	needleDate := testNow.Add(-time.Hour)
	tdb.AddMessage(chatdb.MessageOpts{HandleID: h, Text: "the needle message", Date: at(needleDate)})
	for i := 1; i <= 10; i++ {
		tdb.AddMessage(chatdb.MessageOpts{
			HandleID: h,
			Text:     fmt.Sprintf("filler %d", i),
			Date:     at(needleDate.Add(time.Duration(i) * time.Minute)),
		})
	}

	got, err := s.SearchMessages(context.Background(), "needle", "", 10)
	if err != nil {
		t.Fatalf("SearchMessages: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("match ranked 11th-newest must not surface with limit 10, got %+v", got)
	}

	got, err = s.SearchMessages(context.Background(), "needle", "", 11)
	if err != nil {
		t.Fatalf("SearchMessages: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("limit 11 should reach the match, got %d rows", len(got))
	}
}

func TestSearchMessagesByAddress(t *testing.T) {
	tdb, s := newTestStore(t)
	alice := tdb.AddHandle("+15551234567")
	bob := tdb.AddHandle("+15559876543")
	tdb.AddMessage(chatdb.MessageOpts{HandleID: alice, Text: "project update", Date: at(testNow.Add(-2 * time.Hour))})
	tdb.AddMessage(chatdb.MessageOpts{HandleID: bob, Text: "project kickoff", Date: at(testNow.Add(-time.Hour))})

	got, err := s.SearchMessages(context.Background(), "project", "+15551234567", 10)
	if err != nil {
		t.Fatalf("SearchMessages: %v", err)
	}
	if len(got) != 1 || got[0].Handle != "+15551234567" {
		t.Errorf("address-scoped search got %+v", got)
	}
}
