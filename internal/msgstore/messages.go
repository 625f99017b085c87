package msgstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/imsgtools/imsg/internal/appletime"
	"github.com/imsgtools/imsg/internal/typedstream"
)

// messageCols are the columns every list query selects, in scan order.
const messageCols = "m.text, m.attributedBody, m.date, m.is_from_me, h.id, m.cache_roomnames"

// MessagesByAddress returns the newest messages exchanged with the given
// address. The address is bound to LIKE as-is, so callers may include %
// wildcards for prefix matching.
func (s *Store) MessagesByAddress(ctx context.Context, address string, limit int) ([]MessageRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM message m
		JOIN handle h ON m.handle_id = h.ROWID
		WHERE h.id LIKE ?
		ORDER BY m.date DESC
		LIMIT ?`, messageCols)
	return s.listMessages(ctx, query, address, limit)
}

// RecentMessages returns the newest messages across all conversations.
func (s *Store) RecentMessages(ctx context.Context, limit int) ([]MessageRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM message m
		LEFT JOIN handle h ON m.handle_id = h.ROWID
		ORDER BY m.date DESC
		LIMIT ?`, messageCols)
	return s.listMessages(ctx, query, limit)
}

// UnreadMessages returns received messages not yet marked read, excluding
// system messages and non-message items.
func (s *Store) UnreadMessages(ctx context.Context, limit int) ([]MessageRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM message m
		LEFT JOIN handle h ON m.handle_id = h.ROWID
		WHERE m.is_read = 0
			AND m.is_from_me = 0
			AND m.is_finished = 1
			AND m.is_system_message = 0
			AND m.item_type = 0
		ORDER BY m.date DESC
		LIMIT ?`, messageCols)
	return s.listMessages(ctx, query, limit)
}

// SearchMessages returns messages containing term, case-insensitively.
// The candidate set is the newest limit messages (optionally restricted to
// address), filtered after text recovery; a match older than that window
// is not found, and fewer than limit rows may come back.
func (s *Store) SearchMessages(ctx context.Context, term, address string, limit int) ([]MessageRecord, error) {
	var (
		candidates []MessageRecord
		err        error
	)
	if address != "" {
		candidates, err = s.MessagesByAddress(ctx, address, limit)
	} else {
		candidates, err = s.RecentMessages(ctx, limit)
	}
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	var matched []MessageRecord
	for _, m := range candidates {
		if strings.Contains(strings.ToLower(m.Text), needle) {
			matched = append(matched, m)
		}
	}
	return matched, nil
}

// listMessages runs a message query and assembles records. limit must be
// the final arg so it binds to the trailing LIMIT placeholder.
func (s *Store) listMessages(ctx context.Context, query string, args ...interface{}) ([]MessageRecord, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var records []MessageRecord
	for rows.Next() {
		var (
			text   sql.NullString
			body   []byte
			date   sql.NullInt64
			fromMe bool
			handle sql.NullString
			room   sql.NullString
		)
		if err := rows.Scan(&text, &body, &date, &fromMe, &handle, &room); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		records = append(records, buildRecord(text, body, date.Int64, fromMe, handle.String, room.String))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return records, nil
}

// buildRecord recovers text (column, then blob, then placeholder) and
// fills in timestamp and group fields.
func buildRecord(text sql.NullString, body []byte, date int64, fromMe bool, handle, room string) MessageRecord {
	content := text.String
	if content == "" && len(body) > 0 {
		content = typedstream.ExtractText(body)
	}
	if content == "" {
		content = missingText
	}

	rec := MessageRecord{
		Text:      content,
		Timestamp: appletime.Format(date),
		IsFromMe:  fromMe,
		Handle:    handle,
	}
	if isGroupChat(room) {
		rec.IsGroup = true
		rec.GroupID = room
	}
	return rec
}

// isGroupChat reports whether a cache_roomnames value names a group chat:
// either the "chat<digits>" room identifier or a comma-joined handle list.
func isGroupChat(room string) bool {
	if strings.HasPrefix(room, "chat") {
		rest := room[len("chat"):]
		if rest == "" {
			return false
		}
		for _, r := range rest {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	}
	return strings.Contains(room, ",")
}
