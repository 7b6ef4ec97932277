package search

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/Zuo-Peng/chatlog/internal/index"
)

type Result struct {
	TranscriptKey string
	Seq           int
	Ts            string
	DateToken     string
	TimeToken     string
	Sender        string
	Snippet       string
	Rank          float64
}

type Options struct {
	Query  string
	Sender string // "" = all senders
	Since  string // "" = no filter, e.g. "2021-01-01"
	Limit  int
}

// needsLike reports whether the query contains scripts that the unicode61
// tokenizer does not split into words (Han, Devanagari).
func needsLike(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Devanagari, r) {
			return true
		}
	}
	return false
}

// ftsQuery quotes every term so punctuation in user input is never parsed
// as FTS5 syntax. Terms are ANDed.
func ftsQuery(q string) string {
	fields := strings.Fields(q)
	for i, f := range fields {
		fields[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(fields, " ")
}

// indexFold returns the rune offset of the first case-insensitive match of
// q in runes, or -1. Comparing rune by rune keeps the offset valid for the
// original text even where lowercasing would change byte lengths.
func indexFold(runes, q []rune) int {
	if len(q) == 0 {
		return -1
	}
	needle := string(q)
	for i := 0; i+len(q) <= len(runes); i++ {
		if strings.EqualFold(string(runes[i:i+len(q)]), needle) {
			return i
		}
	}
	return -1
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	runes := []rune(text)
	qRunes := []rune(query)
	runePos := indexFold(runes, qRunes)
	if runePos < 0 {
		// no match, return head
		if len(runes) > contextChars*2 {
			return string(runes[:contextChars*2]) + "..."
		}
		return text
	}
	qLen := len(qRunes)
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + qLen + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+qLen]) + "<<<" +
		string(runes[runePos+qLen:end])
	return prefix + snippet + suffix
}

// Search returns messages whose body matches the query, best match first.
func Search(db *index.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	if strings.TrimSpace(opts.Query) == "" {
		return ListAll(db, opts)
	}
	if needsLike(opts.Query) {
		return searchLike(db, opts)
	}
	return searchFTS(db, opts)
}

// ListAll returns messages newest first, optionally filtered by sender and date.
func ListAll(db *index.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	where, args := filters(opts, nil, nil)

	query := `
		SELECT m.transcript_key, m.seq, m.ts, m.date_token, m.time_token, m.sender, m.body
		FROM messages m`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY m.ts DESC, m.transcript_key, m.seq DESC LIMIT ?"
	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	return scanBodies(rows, "")
}

func filters(opts Options, conditions []string, args []interface{}) ([]string, []interface{}) {
	if opts.Sender != "" {
		conditions = append(conditions, "m.sender LIKE ?")
		args = append(args, "%"+opts.Sender+"%")
	}
	if opts.Since != "" {
		conditions = append(conditions, "m.ts >= ?")
		args = append(args, opts.Since)
	}
	return conditions, args
}

func searchFTS(db *index.DB, opts Options) ([]Result, error) {
	where, args := filters(opts, []string{"messages_fts MATCH ?"}, []interface{}{ftsQuery(opts.Query)})

	query := fmt.Sprintf(`
		SELECT
			m.transcript_key,
			m.seq,
			m.ts,
			m.date_token,
			m.time_token,
			m.sender,
			snippet(messages_fts, 0, '>>>', '<<<', '...', 24) AS snip,
			bm25(messages_fts) AS rank
		FROM messages_fts
		JOIN messages m ON messages_fts.rowid = m.rowid
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, strings.Join(where, " AND "))
	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(
			&r.TranscriptKey, &r.Seq, &r.Ts, &r.DateToken, &r.TimeToken,
			&r.Sender, &r.Snippet, &r.Rank,
		); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func searchLike(db *index.DB, opts Options) ([]Result, error) {
	where, args := filters(opts, []string{"m.body LIKE ?"}, []interface{}{"%" + opts.Query + "%"})

	query := fmt.Sprintf(`
		SELECT m.transcript_key, m.seq, m.ts, m.date_token, m.time_token, m.sender, m.body
		FROM messages m
		WHERE %s
		ORDER BY m.ts DESC
		LIMIT ?
	`, strings.Join(where, " AND "))
	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanBodies(rows, opts.Query)
}

func scanBodies(rows *sql.Rows, query string) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		var body string
		if err := rows.Scan(
			&r.TranscriptKey, &r.Seq, &r.Ts, &r.DateToken, &r.TimeToken,
			&r.Sender, &body,
		); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(body, query, 30)
		results = append(results, r)
	}
	return results, rows.Err()
}
