package index

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Zuo-Peng/chatlog/internal/enrich"
	"github.com/Zuo-Peng/chatlog/internal/parse"
	"github.com/Zuo-Peng/chatlog/internal/scan"
)

// ErrDuplicateKey is reported for a file whose transcript key was already
// taken by an earlier file in the same run. The earlier file wins.
var ErrDuplicateKey = errors.New("duplicate transcript key")

type Stats struct {
	Scanned int
	Updated int
	Skipped int
	Pruned  int
	Errors  int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d updated=%d skipped=%d pruned=%d errors=%d",
		s.Scanned, s.Updated, s.Skipped, s.Pruned, s.Errors)
}

// Progress is called once per scanned file; it may be nil.
type Progress func(f scan.FileInfo, err error)

// IndexFiles parses every file that changed since it was last indexed and
// prunes transcripts whose files no longer exist.
func IndexFiles(db *DB, files []scan.FileInfo, progress Progress) (Stats, error) {
	stats := Stats{Scanned: len(files)}
	owners := make(map[string]string, len(files))

	for _, fi := range files {
		var err error
		key := scan.Key(fi)
		if owner, dup := owners[key]; dup {
			err = fmt.Errorf("%w %q: %s and %s", ErrDuplicateKey, key, owner, fi.Path)
		} else {
			owners[key] = fi.Path
			err = indexFile(db, key, fi, &stats)
		}
		if err != nil {
			stats.Errors++
		}
		if progress != nil {
			progress(fi, err)
		}
	}

	pruned, err := pruneTranscripts(db)
	if err != nil {
		return stats, fmt.Errorf("prune: %w", err)
	}
	stats.Pruned = pruned

	return stats, nil
}

func indexFile(db *DB, key string, fi scan.FileInfo, stats *Stats) error {
	needs, err := needsUpdate(db, key, fi)
	if err != nil {
		return err
	}
	if !needs {
		stats.Skipped++
		return nil
	}

	result, err := parse.ParseFile(fi.Path)
	if err != nil {
		return fmt.Errorf("parse %s: %w", fi.Path, err)
	}
	if err := indexTranscript(db, key, fi, result); err != nil {
		return fmt.Errorf("index %s: %w", fi.Path, err)
	}
	stats.Updated++
	return nil
}

func needsUpdate(db *DB, key string, fi scan.FileInfo) (bool, error) {
	info, err := db.GetTranscriptInfo(key)
	if err != nil {
		return false, err
	}
	if info == nil {
		return true, nil // new transcript
	}
	return info.FilePath != fi.Path || info.Mtime != fi.Mtime || info.Size != fi.Size, nil
}

// indexTranscript replaces the stored transcript in one transaction, so a
// failed insert leaves the previous rows in place.
func indexTranscript(db *DB, key string, fi scan.FileInfo, result *parse.Result) error {
	tx, err := db.Raw().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteTranscript(tx, key); err != nil {
		return err
	}

	first, last := span(result.Messages)
	_, err = tx.Exec(
		`INSERT INTO transcripts (transcript_key, file_path, first_at, last_at, participants, message_count, mtime, size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		key,
		fi.Path,
		first,
		last,
		strings.Join(participants(result.Messages), ", "),
		len(result.Messages),
		fi.Mtime,
		fi.Size,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (transcript_key, seq, ts, date_token, time_token, sender, body, language, line_number)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for seq, m := range result.Messages {
		_, err := stmt.Exec(
			key,
			seq,
			formatTime(m),
			m.DateToken,
			m.TimeToken,
			m.Sender,
			m.Body,
			string(enrich.Language(m.Body)),
			m.Line,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func pruneTranscripts(db *DB) (int, error) {
	all, err := db.AllTranscripts()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for key, path := range all {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			continue
		}
		if err := db.DeleteTranscript(key); err != nil {
			return pruned, err
		}
		pruned++
	}
	return pruned, nil
}

func formatTime(m parse.Message) string {
	if m.Timestamp == nil {
		return ""
	}
	return m.Timestamp.Format(TimeLayout)
}

func span(msgs []parse.Message) (first, last string) {
	for _, m := range msgs {
		ts := formatTime(m)
		if ts == "" {
			continue
		}
		if first == "" || ts < first {
			first = ts
		}
		if ts > last {
			last = ts
		}
	}
	return first, last
}

func participants(msgs []parse.Message) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range msgs {
		if !seen[m.Sender] {
			seen[m.Sender] = true
			names = append(names, m.Sender)
		}
	}
	sort.Strings(names)
	return names
}
