package eventlog

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/smartcontractkit/governor/chain"
	"github.com/smartcontractkit/governor/sdk"
)

//go:embed schema.sql
var schemaSQL string

// Record is a stored log. Payload is the JSON encoding of the event.
type Record struct {
	Session uuid.UUID       `json:"session"`
	Seq     uint64          `json:"seq"`
	Block   uint64          `json:"block"`
	Address common.Address  `json:"address"`
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// Filter selects records of one session. Zero fields match everything.
type Filter struct {
	Name      string
	Address   common.Address
	FromBlock uint64
	ToBlock   uint64
}

// Store writes committed logs to a SQLite database. Every Open starts a new session, so logs of
// separate runs sharing a database never mix.
type Store struct {
	db      *sql.DB
	session uuid.UUID
	logger  sdk.Logger

	mu  sync.Mutex
	seq uint64
	err error
}

// ErrReadOnly is returned when writing to a store opened with OpenReader.
var ErrReadOnly = errors.New("event log opened read only")

// Open creates or opens the database at path and starts a session. Use ":memory:" for a
// throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	s, err := open(ctx, path)
	if err != nil {
		return nil, err
	}

	session := uuid.New()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, created_at) VALUES (?, ?)`,
		session.String(), time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		s.db.Close()
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	s.session = session

	return s, nil
}

// OpenReader opens the database at path for queries without starting a session.
func OpenReader(ctx context.Context, path string) (*Store, error) {
	return open(ctx, path)
}

func open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite has a single writer, and an in-memory database lives on one connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db, logger: sdk.LoggerFrom(ctx)}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Session returns the id of the session logs are written to, uuid.Nil for a reader.
func (s *Store) Session() uuid.UUID {
	return s.session
}

// Consume implements chain.Sink. A failed write is logged and kept for Err, the chain carries on.
func (s *Store) Consume(logs []chain.Log) {
	if err := s.Write(context.Background(), logs); err != nil {
		s.logger.Warnf("event log session %s: %v", s.session, err)

		s.mu.Lock()
		if s.err == nil {
			s.err = err
		}
		s.mu.Unlock()
	}
}

// Err returns the first error Consume ran into.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

// Write stores logs in one database transaction.
func (s *Store) Write(ctx context.Context, logs []chain.Log) error {
	if s.session == uuid.Nil {
		return ErrReadOnly
	}
	if len(logs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write logs: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	seq := s.seq
	for _, log := range logs {
		payload, err := json.Marshal(log.Event)
		if err != nil {
			return fmt.Errorf("write logs: encode %s: %w", log.Event.EventName(), err)
		}

		seq++
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO logs (session_id, seq, block, address, name, payload)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			s.session.String(),
			seq,
			log.Block,
			log.Address.Hex(),
			log.Event.EventName(),
			string(payload),
		); err != nil {
			return fmt.Errorf("write logs: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write logs: %w", err)
	}
	s.seq = seq

	return nil
}

// Query returns the records of the current session matching filter, in commit order.
func (s *Store) Query(ctx context.Context, filter Filter) ([]Record, error) {
	return s.QuerySession(ctx, s.session, filter)
}

// QuerySession returns the records of session matching filter, in commit order.
func (s *Store) QuerySession(ctx context.Context, session uuid.UUID, filter Filter) ([]Record, error) {
	where := []string{"session_id = ?"}
	args := []any{session.String()}
	if filter.Name != "" {
		where = append(where, "name = ?")
		args = append(args, filter.Name)
	}
	if filter.Address != (common.Address{}) {
		where = append(where, "address = ?")
		args = append(args, filter.Address.Hex())
	}
	if filter.FromBlock > 0 {
		where = append(where, "block >= ?")
		args = append(args, filter.FromBlock)
	}
	if filter.ToBlock > 0 {
		where = append(where, "block <= ?")
		args = append(args, filter.ToBlock)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, block, address, name, payload FROM logs WHERE `+strings.Join(where, " AND ")+` ORDER BY seq`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r       Record
			address string
			payload string
		)
		if err := rows.Scan(&r.Seq, &r.Block, &address, &r.Name, &payload); err != nil {
			return nil, fmt.Errorf("query logs: %w", err)
		}
		r.Session = session
		r.Address = common.HexToAddress(address)
		r.Payload = json.RawMessage(payload)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}

	return records, nil
}

// Sessions returns the ids of every session in the database, oldest first.
func (s *Store) Sessions(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM sessions ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []uuid.UUID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("query sessions: %w", err)
		}
		session, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("query sessions: %w", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}
