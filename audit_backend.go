// audit_backend.go: Backend interface and implementations for the Hestia audit trail
//
// Two backends share one interface: an append-only JSONL file for
// simple deployments, and SQLite (WAL mode) for queryable trails shared
// across processes. Selection is by OutputFile extension.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hestia

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver registration
)

// auditBackend is the pluggable persistence interface for audit events.
type auditBackend interface {
	Write(events []AuditEvent) error
	Close() error
}

// newAuditBackend selects a backend from the configured output file.
func newAuditBackend(config AuditConfig) (auditBackend, error) {
	if config.OutputFile == "" {
		return nil, fmt.Errorf("audit enabled but no output file configured")
	}
	if strings.HasSuffix(config.OutputFile, ".jsonl") {
		return newJSONLBackend(config.OutputFile)
	}
	return newSQLiteBackend(config.OutputFile)
}

// JSONL backend

// jsonlAuditBackend appends one JSON document per event to a plain file.
type jsonlAuditBackend struct {
	mu   sync.Mutex
	file *os.File
}

func newJSONLBackend(path string) (*jsonlAuditBackend, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304 -- audit path is operator-provided
	if err != nil {
		return nil, fmt.Errorf("failed to open audit file: %w", err)
	}
	return &jsonlAuditBackend{file: f}, nil
}

func (j *jsonlAuditBackend) Write(events []AuditEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal audit event: %w", err)
		}
		if _, err := j.file.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to append audit event: %w", err)
		}
	}

	return j.file.Sync()
}

func (j *jsonlAuditBackend) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}

// SQLite backend

// sqliteAuditBackend persists events to a SQLite database in WAL mode
// so concurrent store processes can share one trail.
type sqliteAuditBackend struct {
	mu         sync.Mutex
	db         *sql.DB
	insertStmt *sql.Stmt
}

// SQLite pragmas tuned for a write-mostly audit workload: WAL keeps
// writers and readers from blocking each other, busy_timeout rides out
// multi-process contention, NORMAL sync trades the last ~1s of events
// for a 3x write speedup.
func newSQLiteBackend(dbPath string) (*sqliteAuditBackend, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	if err := db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database (close error: %v): %w", closeErr, err)
		}
		return nil, fmt.Errorf("failed to ping audit database: %w", err)
	}

	backend := &sqliteAuditBackend{db: db}
	if err := backend.initializeSchema(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to initialize schema (close error: %v): %w", closeErr, err)
		}
		return nil, fmt.Errorf("failed to initialize audit database schema: %w", err)
	}

	stmt, err := db.Prepare(`
		INSERT INTO audit_events
			(timestamp, level, event, component, file_path, section, key, old_value, new_value, process_id, process_name, checksum)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to prepare statement (close error: %v): %w", closeErr, err)
		}
		return nil, fmt.Errorf("failed to prepare audit insert statement: %w", err)
	}
	backend.insertStmt = stmt

	return backend, nil
}

func (s *sqliteAuditBackend) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS audit_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		level INTEGER NOT NULL,
		event TEXT NOT NULL,
		component TEXT NOT NULL,
		file_path TEXT,
		section TEXT,
		key TEXT,
		old_value TEXT,
		new_value TEXT,
		process_id INTEGER,
		process_name TEXT,
		checksum TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_audit_timestamp ON audit_events(timestamp);
	CREATE INDEX IF NOT EXISTS idx_audit_event ON audit_events(event);
	CREATE INDEX IF NOT EXISTS idx_audit_file_path ON audit_events(file_path);`

	_, err := s.db.Exec(schema)
	return err
}

// Write persists a batch of events in one transaction.
func (s *sqliteAuditBackend) Write(events []AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin audit transaction: %w", err)
	}

	stmt := tx.Stmt(s.insertStmt)
	for _, event := range events {
		_, err := stmt.Exec(
			event.Timestamp.UTC().Format(time.RFC3339Nano),
			int(event.Level),
			event.Event,
			event.Component,
			event.FilePath,
			event.Section,
			event.Key,
			event.OldValue,
			event.NewValue,
			event.ProcessID,
			event.ProcessName,
			event.Checksum,
		)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("failed to insert audit event (rollback error: %v): %w", rbErr, err)
			}
			return fmt.Errorf("failed to insert audit event: %w", err)
		}
	}

	return tx.Commit()
}

func (s *sqliteAuditBackend) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.insertStmt != nil {
		if err := s.insertStmt.Close(); err != nil {
			return fmt.Errorf("failed to close audit statement: %w", err)
		}
	}
	return s.db.Close()
}

// AuditQueryFilter narrows QueryAuditEvents results.
type AuditQueryFilter struct {
	Since    time.Time
	Event    string
	FilePath string
	Limit    int
}

// QueryAuditEvents reads events back from a SQLite audit database,
// newest first. Used by the CLI audit commands; the JSONL backend is
// append-only and not queryable through this API.
func QueryAuditEvents(dbPath string, filter AuditQueryFilter) ([]AuditEvent, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	defer func() { _ = db.Close() }()

	query := `SELECT timestamp, level, event, component, file_path, section, key, old_value, new_value, process_id, process_name, checksum
		FROM audit_events WHERE 1=1`
	args := make([]interface{}, 0, 4)

	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since.UTC().Format(time.RFC3339Nano))
	}
	if filter.Event != "" {
		query += " AND event = ?"
		args = append(args, filter.Event)
	}
	if filter.FilePath != "" {
		query += " AND file_path = ?"
		args = append(args, filter.FilePath)
	}

	query += " ORDER BY timestamp DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []AuditEvent
	for rows.Next() {
		var event AuditEvent
		var timestamp string
		var level int
		if err := rows.Scan(&timestamp, &level, &event.Event, &event.Component,
			&event.FilePath, &event.Section, &event.Key,
			&event.OldValue, &event.NewValue,
			&event.ProcessID, &event.ProcessName, &event.Checksum); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, timestamp); parseErr == nil {
			event.Timestamp = ts
		}
		event.Level = AuditLevel(level)
		events = append(events, event)
	}

	return events, rows.Err()
}
