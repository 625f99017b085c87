// Package msgstore reads and aggregates a Messages SQLite archive (chat.db).
//
// The store is never written to. Every operation opens the database
// read-only, runs its queries, and closes, so a long-lived Store holds no
// connection and the file can be snapshotted or replaced between calls.
package msgstore

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// roParams opens the archive read-only and tolerates brief locking by the
// Messages app itself.
const roParams = "?mode=ro&_busy_timeout=5000"

// Store provides read access to a chat.db archive.
type Store struct {
	path string
	now  func() time.Time
}

// New returns a Store for the archive at path. The file is not touched
// until a query runs; use Accessible to probe up front.
func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the archive path.
func (s *Store) Path() string {
	return s.path
}

// Accessible reports whether the archive file can be reached. It lets
// callers distinguish an unreachable store from an empty query result.
func (s *Store) Accessible() error {
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("message store %s not accessible (on macOS, grant Full Disk Access): %w", s.path, err)
	}
	return nil
}

// open opens a read-only connection for a single logical operation.
func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+s.path+roParams)
	if err != nil {
		return nil, fmt.Errorf("open message store: %w", err)
	}
	return db, nil
}
