package msgstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/imsgtools/imsg/internal/appletime"
	"github.com/imsgtools/imsg/internal/typedstream"
)

// followUpMsg carries the raw date so reply ordering does not depend on
// the formatted timestamp.
type followUpMsg struct {
	text   string
	date   int64
	fromMe bool
}

// FollowUps flags conversations from the last days days that likely need
// a reply. A correspondent is flagged stale when their message is the
// newest in the thread and older than staleDays; every inbound question
// with no later outbound message is flagged unanswered. limit caps the
// combined result.
func (s *Store) FollowUps(ctx context.Context, days, staleDays, limit int) ([]FollowUpItem, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := `
		SELECT h.id, m.text, m.attributedBody, m.date, m.is_from_me
		FROM message m
		JOIN handle h ON m.handle_id = h.ROWID
		WHERE m.date >= ?
			AND ` + notReaction + `
			AND m.item_type = 0
		ORDER BY h.id, m.date DESC`
	rows, err := db.QueryContext(ctx, query, appletime.CutoffNanos(s.now(), days))
	if err != nil {
		return nil, fmt.Errorf("query follow-ups: %w", err)
	}
	defer rows.Close()

	// Newest-first per correspondent, correspondents in query order.
	byHandle := make(map[string][]followUpMsg)
	var order []string
	for rows.Next() {
		var (
			handle string
			text   sql.NullString
			body   []byte
			date   sql.NullInt64
			fromMe bool
		)
		if err := rows.Scan(&handle, &text, &body, &date, &fromMe); err != nil {
			return nil, fmt.Errorf("scan follow-up row: %w", err)
		}

		content := text.String
		if content == "" && len(body) > 0 {
			content = typedstream.ExtractText(body)
		}
		// Unrecoverable text cannot be judged for questions; skip it.
		if content == "" {
			continue
		}

		if _, seen := byHandle[handle]; !seen {
			order = append(order, handle)
		}
		byHandle[handle] = append(byHandle[handle], followUpMsg{text: content, date: date.Int64, fromMe: fromMe})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate follow-up rows: %w", err)
	}

	now := s.now()
	staleAge := time.Duration(staleDays) * 24 * time.Hour

	var items []FollowUpItem
	for _, handle := range order {
		msgs := byHandle[handle]

		latest := msgs[0]
		if !latest.fromMe && latest.date > 0 &&
			now.Sub(appletime.ToTime(latest.date)) > staleAge && len(items) < limit {
			items = append(items, FollowUpItem{
				Phone:  handle,
				Text:   latest.text,
				Date:   appletime.Format(latest.date),
				Reason: ReasonStale,
			})
		}

		for _, m := range msgs {
			if len(items) >= limit {
				break
			}
			if m.fromMe || !strings.Contains(m.text, "?") {
				continue
			}
			if hasLaterReply(msgs, m.date) {
				continue
			}
			items = append(items, FollowUpItem{
				Phone:  handle,
				Text:   m.text,
				Date:   appletime.Format(m.date),
				Reason: ReasonUnanswered,
			})
		}
	}
	return items, nil
}

// hasLaterReply reports whether any outbound message postdates date.
func hasLaterReply(msgs []followUpMsg, date int64) bool {
	for _, m := range msgs {
		if m.fromMe && m.date > date {
			return true
		}
	}
	return false
}
