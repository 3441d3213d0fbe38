package chargram

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// SetupSchema initializes the corpus table in the provided database. It is
// idempotent and safe to call on an already-initialized database. The
// frequency table itself is never persisted; only the raw word list is.
func SetupSchema(db *sql.DB) error {
	const schemaWords = `
CREATE TABLE IF NOT EXISTS corpus_words (
    word_id INTEGER PRIMARY KEY,
    word TEXT NOT NULL,
    ann_a REAL,
    ann_b REAL
);
`

	if _, err := db.Exec(schemaWords); err != nil {
		return fmt.Errorf("could not create corpus schema: %w", err)
	}
	return nil
}

// Store keeps a word-list corpus in a SQLite database so that repeated
// analysis runs do not have to re-parse the flat file. Words keep their
// insertion order and the two numeric annotation fields of the flat-file
// format.
type Store struct {
	db              *sql.DB
	stmtInsertWord  *sql.Stmt
	stmtSelectWords *sql.Stmt
	stmtCountWords  *sql.Stmt
	logger          *slog.Logger
}

// NewStore creates a Store over a database that has had SetupSchema run on
// it. It pre-compiles all necessary SQL statements, returning an error if
// any preparation fails.
func NewStore(db *sql.DB) (*Store, error) {
	stmtInsertWord, err := db.Prepare(`INSERT INTO corpus_words (word, ann_a, ann_b) VALUES (?, ?, ?);`)
	if err != nil {
		return nil, err
	}

	stmtSelectWords, err := db.Prepare(`SELECT word FROM corpus_words ORDER BY word_id;`)
	if err != nil {
		return nil, err
	}

	stmtCountWords, err := db.Prepare(`SELECT COUNT(*) FROM corpus_words;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:              db,
		stmtInsertWord:  stmtInsertWord,
		stmtSelectWords: stmtSelectWords,
		stmtCountWords:  stmtCountWords,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared SQL statements held by the Store.
func (s *Store) Close() {
	_ = s.stmtInsertWord.Close()
	_ = s.stmtSelectWords.Close()
	_ = s.stmtCountWords.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are
// discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Import loads a flat word list into the corpus table. Each line is
// whitespace-split into the word and up to two numeric annotations; blank
// lines are skipped. The whole import happens in a single transaction and
// returns the number of words stored.
func (s *Store) Import(ctx context.Context, r io.Reader) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	stmtInsert := tx.StmtContext(ctx, s.stmtInsertWord)

	var stored int
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		annA := annotation(fields, 1)
		annB := annotation(fields, 2)
		if _, err := stmtInsert.ExecContext(ctx, fields[0], annA, annB); err != nil {
			return 0, fmt.Errorf("could not insert word '%s': %w", fields[0], err)
		}
		stored++
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("corpus read error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "Corpus imported",
		slog.Int("words_stored", stored),
	)

	return stored, nil
}

// annotation parses the optional numeric field at position i, returning a
// NULL value when the field is missing or not numeric.
func annotation(fields []string, i int) sql.NullFloat64 {
	if i >= len(fields) {
		return sql.NullFloat64{}
	}
	f, err := strconv.ParseFloat(fields[i], 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

// WordCount returns the number of words in the corpus table.
func (s *Store) WordCount(ctx context.Context) (int, error) {
	var n int
	if err := s.stmtCountWords.QueryRowContext(ctx).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Source returns a word Source over the stored corpus, in insertion order.
// The source holds an open result set until it is read to exhaustion, so a
// caller that abandons it early should close the Store's database rather
// than rely on the source being collected.
func (s *Store) Source(ctx context.Context) (Source, error) {
	rows, err := s.stmtSelectWords.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not query corpus words: %w", err)
	}
	return &dbSource{rows: rows}, nil
}

// dbSource adapts a corpus result set to the Source interface.
type dbSource struct {
	rows *sql.Rows
	done bool
}

// Next returns the next stored word, or io.EOF once the result set is
// exhausted. The underlying rows are closed before io.EOF is returned.
func (s *dbSource) Next() (string, error) {
	if s.done {
		return "", io.EOF
	}

	if !s.rows.Next() {
		s.done = true
		if err := s.rows.Err(); err != nil {
			_ = s.rows.Close()
			return "", err
		}
		_ = s.rows.Close()
		return "", io.EOF
	}

	var word string
	if err := s.rows.Scan(&word); err != nil {
		return "", err
	}
	return word, nil
}
