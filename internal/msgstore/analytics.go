package msgstore

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math"

	"github.com/imsgtools/imsg/internal/appletime"
)

// notReaction keeps tapbacks and other associated messages out of counts.
const notReaction = "(m.associated_message_type IS NULL OR m.associated_message_type = 0)"

var daysOfWeek = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Analytics aggregates activity over the last days days, optionally
// restricted to one address (bound to LIKE). Each statistic runs as its
// own query; on failure it logs a warning and keeps its zero value, so a
// schema quirk in one area does not blank the whole report.
func (s *Store) Analytics(ctx context.Context, address string, days int) (ConversationStats, error) {
	var stats ConversationStats

	db, err := s.open()
	if err != nil {
		return stats, err
	}
	defer db.Close()

	cutoff := appletime.CutoffNanos(s.now(), days)

	filter := ""
	args := []interface{}{cutoff}
	if address != "" {
		filter = " AND h.id LIKE ?"
		args = append(args, address)
	}

	countQuery := `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN m.is_from_me = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN m.is_from_me = 0 THEN 1 ELSE 0 END), 0)
		FROM message m LEFT JOIN handle h ON m.handle_id = h.ROWID
		WHERE m.date >= ?` + filter + ` AND ` + notReaction
	err = db.QueryRowContext(ctx, countQuery, args...).Scan(&stats.TotalMessages, &stats.SentCount, &stats.ReceivedCount)
	if err != nil {
		log.Printf("warning: message counts unavailable: %v", err)
	} else if days > 0 {
		stats.AvgDailyMessages = math.Round(float64(stats.TotalMessages)/float64(days)*10) / 10
	}

	// Secondary sort on the bucket keeps ties deterministic across runs.
	hourQuery := `
		SELECT CAST((m.date / 1000000000 / 3600) % 24 AS INTEGER) AS hour, COUNT(*) AS cnt
		FROM message m LEFT JOIN handle h ON m.handle_id = h.ROWID
		WHERE m.date >= ?` + filter + `
		GROUP BY hour ORDER BY cnt DESC, hour ASC LIMIT 1`
	var hour int
	switch err := db.QueryRowContext(ctx, hourQuery, args...).Scan(&hour, new(int)); {
	case err == nil:
		stats.BusiestHour = &hour
	case err != sql.ErrNoRows:
		log.Printf("warning: busiest hour unavailable: %v", err)
	}

	dowQuery := `
		SELECT CAST((m.date / 1000000000 / 86400 + 1) % 7 AS INTEGER) AS dow, COUNT(*) AS cnt
		FROM message m LEFT JOIN handle h ON m.handle_id = h.ROWID
		WHERE m.date >= ?` + filter + `
		GROUP BY dow ORDER BY cnt DESC, dow ASC LIMIT 1`
	var dow int
	switch err := db.QueryRowContext(ctx, dowQuery, args...).Scan(&dow, new(int)); {
	case err == nil:
		if dow >= 0 && dow < len(daysOfWeek) {
			stats.BusiestDay = daysOfWeek[dow]
		}
	case err != sql.ErrNoRows:
		log.Printf("warning: busiest day unavailable: %v", err)
	}

	attachmentQuery := `
		SELECT COUNT(DISTINCT a.ROWID)
		FROM attachment a
		JOIN message_attachment_join maj ON a.ROWID = maj.attachment_id
		JOIN message m ON maj.message_id = m.ROWID
		LEFT JOIN handle h ON m.handle_id = h.ROWID
		WHERE m.date >= ?` + filter
	if err := db.QueryRowContext(ctx, attachmentQuery, args...).Scan(&stats.AttachmentCount); err != nil {
		log.Printf("warning: attachment count unavailable: %v", err)
	}

	reactionQuery := `
		SELECT COUNT(*)
		FROM message m LEFT JOIN handle h ON m.handle_id = h.ROWID
		WHERE m.date >= ?` + filter + ` AND m.associated_message_type BETWEEN 2000 AND 3005`
	if err := db.QueryRowContext(ctx, reactionQuery, args...).Scan(&stats.ReactionCount); err != nil {
		log.Printf("warning: reaction count unavailable: %v", err)
	}

	if address == "" {
		if err := s.topCorrespondents(ctx, db, cutoff, &stats); err != nil {
			log.Printf("warning: top correspondents unavailable: %v", err)
		}
	}

	return stats, nil
}

func (s *Store) topCorrespondents(ctx context.Context, db *sql.DB, cutoff int64, stats *ConversationStats) error {
	query := `
		SELECT h.id, COUNT(*) AS cnt
		FROM message m
		JOIN handle h ON m.handle_id = h.ROWID
		WHERE m.date >= ? AND ` + notReaction + `
		GROUP BY h.id ORDER BY cnt DESC, h.id ASC LIMIT 10`
	rows, err := db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var cc CorrespondentCount
		if err := rows.Scan(&cc.Address, &cc.Count); err != nil {
			return fmt.Errorf("scan correspondent: %w", err)
		}
		stats.TopCorrespondents = append(stats.TopCorrespondents, cc)
	}
	return rows.Err()
}
