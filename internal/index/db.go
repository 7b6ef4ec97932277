package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA cache_size = -64000;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS transcripts (
    transcript_key TEXT PRIMARY KEY,
    file_path      TEXT NOT NULL,
    first_at       TEXT NOT NULL DEFAULT '',
    last_at        TEXT NOT NULL DEFAULT '',
    participants   TEXT NOT NULL DEFAULT '',
    message_count  INTEGER NOT NULL DEFAULT 0,
    mtime          INTEGER NOT NULL DEFAULT 0,
    size           INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS messages (
    transcript_key TEXT NOT NULL,
    seq            INTEGER NOT NULL,
    ts             TEXT NOT NULL DEFAULT '',
    date_token     TEXT NOT NULL,
    time_token     TEXT NOT NULL,
    sender         TEXT NOT NULL,
    body           TEXT NOT NULL,
    language       TEXT NOT NULL DEFAULT '',
    line_number    INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (transcript_key, seq)
);

CREATE INDEX IF NOT EXISTS messages_ts ON messages(ts);

CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
    body,
    content=messages,
    content_rowid=rowid,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
    INSERT INTO messages_fts(rowid, body) VALUES (new.rowid, new.body);
END;

CREATE TRIGGER IF NOT EXISTS messages_ad AFTER DELETE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, body) VALUES('delete', old.rowid, old.body);
END;

CREATE TRIGGER IF NOT EXISTS messages_au AFTER UPDATE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, body) VALUES('delete', old.rowid, old.body);
    INSERT INTO messages_fts(rowid, body) VALUES (new.rowid, new.body);
END;

CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);
`

// TimeLayout is how message and transcript timestamps are stored.
const TimeLayout = "2006-01-02T15:04:05"

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	d := &DB{db: db}
	if err := d.migrateSchemaVersion(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return d, nil
}

// schemaVersion should be bumped whenever transcript parsing changes
// to force a full re-index.
const schemaVersion = "1"

func (d *DB) migrateSchemaVersion() error {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if ver == schemaVersion {
		return nil
	}
	// force re-index by resetting all transcript mtime/size to 0
	if _, err := d.db.Exec("UPDATE transcripts SET mtime = 0, size = 0"); err != nil {
		return err
	}
	_, err = d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	return err
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

type TranscriptInfo struct {
	FilePath string
	Mtime    int64
	Size     int64
}

func (d *DB) GetTranscriptInfo(key string) (*TranscriptInfo, error) {
	var info TranscriptInfo
	err := d.db.QueryRow(
		"SELECT file_path, mtime, size FROM transcripts WHERE transcript_key = ?",
		key,
	).Scan(&info.FilePath, &info.Mtime, &info.Size)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// AllTranscripts maps every indexed transcript key to its file path.
func (d *DB) AllTranscripts() (map[string]string, error) {
	rows, err := d.db.Query("SELECT transcript_key, file_path FROM transcripts")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]string)
	for rows.Next() {
		var k, p string
		if err := rows.Scan(&k, &p); err != nil {
			return nil, err
		}
		keys[k] = p
	}
	return keys, rows.Err()
}

func (d *DB) DeleteTranscript(key string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteTranscript(tx, key); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteTranscript(tx *sql.Tx, key string) error {
	if _, err := tx.Exec("DELETE FROM messages WHERE transcript_key = ?", key); err != nil {
		return err
	}
	_, err := tx.Exec("DELETE FROM transcripts WHERE transcript_key = ?", key)
	return err
}

func (d *DB) TranscriptCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM transcripts").Scan(&n)
	return n, err
}

func (d *DB) MessageCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}

type TranscriptRow struct {
	TranscriptKey string
	FilePath      string
	FirstAt       string
	LastAt        string
	Participants  string
	MessageCount  int
}

func (d *DB) GetTranscriptByKey(key string) (*TranscriptRow, error) {
	var t TranscriptRow
	err := d.db.QueryRow(
		"SELECT transcript_key, file_path, first_at, last_at, participants, message_count FROM transcripts WHERE transcript_key = ?",
		key,
	).Scan(&t.TranscriptKey, &t.FilePath, &t.FirstAt, &t.LastAt, &t.Participants, &t.MessageCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type MessageRow struct {
	TranscriptKey string
	Seq           int
	Ts            string // empty when the header timestamp did not decode
	DateToken     string
	TimeToken     string
	Sender        string
	Body          string
	Language      string
	LineNumber    int
}

const messageColumns = "transcript_key, seq, ts, date_token, time_token, sender, body, language, line_number"

func scanMessage(rows *sql.Rows) (MessageRow, error) {
	var m MessageRow
	err := rows.Scan(&m.TranscriptKey, &m.Seq, &m.Ts, &m.DateToken, &m.TimeToken, &m.Sender, &m.Body, &m.Language, &m.LineNumber)
	return m, err
}

func (d *DB) GetMessages(key string) ([]MessageRow, error) {
	rows, err := d.db.Query(
		"SELECT "+messageColumns+" FROM messages WHERE transcript_key = ? ORDER BY seq",
		key,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []MessageRow
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (d *DB) GetMessage(key string, seq int) (*MessageRow, error) {
	rows, err := d.db.Query(
		"SELECT "+messageColumns+" FROM messages WHERE transcript_key = ? AND seq = ?",
		key, seq,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	m, err := scanMessage(rows)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMessagesWindow returns up to context messages on each side of hitSeq.
// hitIdx is the position of hitSeq in the returned slice (-1 if absent),
// startPos the number of messages before the window and totalCount the
// size of the transcript. A negative hitSeq returns the whole transcript.
func (d *DB) GetMessagesWindow(key string, hitSeq, context int) (msgs []MessageRow, hitIdx int, startPos int, totalCount int, err error) {
	err = d.db.QueryRow(
		"SELECT COUNT(*) FROM messages WHERE transcript_key = ?", key,
	).Scan(&totalCount)
	if err != nil {
		return nil, -1, 0, 0, err
	}

	// seq is dense and 0-based, so it doubles as the row position
	startPos = 0
	limit := totalCount
	if hitSeq >= 0 && hitSeq < totalCount {
		startPos = hitSeq - context
		if startPos < 0 {
			startPos = 0
		}
		endPos := hitSeq + context + 1
		if endPos > totalCount {
			endPos = totalCount
		}
		limit = endPos - startPos
	}

	rows, err := d.db.Query(
		"SELECT "+messageColumns+" FROM messages WHERE transcript_key = ? ORDER BY seq LIMIT ? OFFSET ?",
		key, limit, startPos,
	)
	if err != nil {
		return nil, -1, 0, 0, err
	}
	defer rows.Close()

	localHitIdx := -1
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, -1, 0, 0, err
		}
		if m.Seq == hitSeq {
			localHitIdx = len(msgs)
		}
		msgs = append(msgs, m)
	}
	return msgs, localHitIdx, startPos, totalCount, rows.Err()
}
