// Package chatdb builds throwaway chat.db archives for tests. The archive
// is a real file because the code under test opens it read-only by path;
// an in-memory database would not be visible across connections.
package chatdb

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// schema covers the chat.db tables and columns the queries touch. The real
// schema has many more columns; tests only need these.
const schema = `
	CREATE TABLE handle (
		ROWID INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL
	);
	CREATE TABLE message (
		ROWID INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT,
		attributedBody BLOB,
		date INTEGER NOT NULL DEFAULT 0,
		is_from_me INTEGER NOT NULL DEFAULT 0,
		handle_id INTEGER NOT NULL DEFAULT 0,
		cache_roomnames TEXT,
		associated_message_type INTEGER DEFAULT 0,
		item_type INTEGER NOT NULL DEFAULT 0,
		is_read INTEGER NOT NULL DEFAULT 0,
		is_finished INTEGER NOT NULL DEFAULT 1,
		is_system_message INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE attachment (
		ROWID INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT
	);
	CREATE TABLE message_attachment_join (
		message_id INTEGER NOT NULL,
		attachment_id INTEGER NOT NULL
	);
`

// TestDB wraps a seeded chat.db file with builder helpers.
type TestDB struct {
	DB   *sql.DB
	T    testing.TB
	Path string
}

// New creates an empty chat.db under t.TempDir().
func New(t testing.TB) *TestDB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "chat.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open test chat.db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create chat.db schema: %v", err)
	}

	return &TestDB{DB: db, T: t, Path: path}
}

// AddHandle inserts a handle (a phone number or email) and returns its ROWID.
func (tdb *TestDB) AddHandle(address string) int64 {
	tdb.T.Helper()
	res, err := tdb.DB.Exec(`INSERT INTO handle (id) VALUES (?)`, address)
	if err != nil {
		tdb.T.Fatalf("AddHandle(%q): %v", address, err)
	}
	id, _ := res.LastInsertId()
	return id
}

// MessageOpts configures a message to insert. Unset booleans follow the
// common case: read, finished, not from me, not a reaction.
type MessageOpts struct {
	HandleID  int64  // 0 = no handle (orphaned row)
	Text      string // "" with no Body leaves the text column NULL
	Body      []byte // attributedBody blob
	Date      int64  // store timestamp (ns since 2001-01-01 UTC)
	FromMe    bool
	Unread    bool
	System    bool
	ItemType  int
	AssocType int    // associated_message_type; 2000-3005 marks a reaction
	Room      string // cache_roomnames
}

// AddMessage inserts a message and returns its ROWID.
func (tdb *TestDB) AddMessage(opts MessageOpts) int64 {
	tdb.T.Helper()

	var text interface{}
	if opts.Text != "" {
		text = opts.Text
	}
	var body interface{}
	if len(opts.Body) > 0 {
		body = opts.Body
	}
	var room interface{}
	if opts.Room != "" {
		room = opts.Room
	}

	res, err := tdb.DB.Exec(`
		INSERT INTO message (text, attributedBody, date, is_from_me, handle_id,
			cache_roomnames, associated_message_type, item_type, is_read, is_finished, is_system_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?)`,
		text, body, opts.Date, opts.FromMe, opts.HandleID,
		room, opts.AssocType, opts.ItemType, !opts.Unread, opts.System,
	)
	if err != nil {
		tdb.T.Fatalf("AddMessage: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// AddAttachment inserts an attachment joined to messageID and returns its ROWID.
func (tdb *TestDB) AddAttachment(messageID int64, filename string) int64 {
	tdb.T.Helper()
	res, err := tdb.DB.Exec(`INSERT INTO attachment (filename) VALUES (?)`, filename)
	if err != nil {
		tdb.T.Fatalf("AddAttachment: %v", err)
	}
	id, _ := res.LastInsertId()
	if _, err := tdb.DB.Exec(
		`INSERT INTO message_attachment_join (message_id, attachment_id) VALUES (?, ?)`,
		messageID, id,
	); err != nil {
		tdb.T.Fatalf("AddAttachment join: %v", err)
	}
	return id
}
