package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/samqfs/samqfsui/internal/protocol"
)

var (
	ErrNotFound      = errors.New("operation not found")
	ErrUnknownHost   = errors.New("host is not part of operation")
	ErrInvalidStatus = errors.New("invalid host status")
)

// Fixed width keeps created_utc ordering lexical.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA busy_timeout=5000;`,
		`PRAGMA foreign_keys=ON;`,
		`CREATE TABLE IF NOT EXISTS operations (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			created_utc TEXT NOT NULL,
			updated_utc TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS operation_hosts (
			operation_id TEXT NOT NULL,
			host TEXT NOT NULL,
			position INTEGER NOT NULL,
			status TEXT NOT NULL,
			error_text TEXT,
			updated_utc TEXT NOT NULL,
			PRIMARY KEY(operation_id, host),
			FOREIGN KEY(operation_id) REFERENCES operations(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_operations_created ON operations(created_utc);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}
	return nil
}

// CreateOperation registers a new fan-out over hosts. Every host starts
// pending; duplicate and blank host names are dropped.
func (s *Store) CreateOperation(ctx context.Context, kind string, hosts []string) (protocol.Operation, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return protocol.Operation{}, fmt.Errorf("create operation: kind is required")
	}
	hosts = uniqueHosts(hosts)
	if len(hosts) == 0 {
		return protocol.Operation{}, fmt.Errorf("create operation: at least one host is required")
	}

	now := time.Now().UTC()
	op := protocol.Operation{ID: uuid.NewString(), Kind: kind, CreatedUTC: now, UpdatedUTC: now}
	stamp := now.Format(timeLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return protocol.Operation{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO operations (id, kind, created_utc, updated_utc)
		VALUES (?, ?, ?, ?)
	`, op.ID, op.Kind, stamp, stamp); err != nil {
		return protocol.Operation{}, fmt.Errorf("insert operation: %w", err)
	}
	for i, h := range hosts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO operation_hosts (operation_id, host, position, status, updated_utc)
			VALUES (?, ?, ?, ?, ?)
		`, op.ID, h, i, protocol.HostStatusPending, stamp); err != nil {
			return protocol.Operation{}, fmt.Errorf("insert operation host: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return protocol.Operation{}, fmt.Errorf("commit operation: %w", err)
	}
	return op, nil
}

// RecordHostResult updates one host's status and reports whether the row
// changed. A host that already reached a terminal status keeps it and the
// update is ignored.
func (s *Store) RecordHostResult(ctx context.Context, operationID string, req protocol.RecordHostResultRequest) (bool, error) {
	status := protocol.NormalizeHostStatus(req.Status)
	if !protocol.IsValidHostStatus(status) {
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}
	host := strings.TrimSpace(req.Host)
	errText := strings.TrimSpace(req.Error)
	now := time.Now().UTC().Format(timeLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var current string
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM operation_hosts WHERE operation_id = ? AND host = ?
	`, operationID, host).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := s.getOperation(ctx, tx, operationID); err != nil {
			return false, err
		}
		return false, fmt.Errorf("%w: %q", ErrUnknownHost, host)
	}
	if err != nil {
		return false, fmt.Errorf("lookup operation host: %w", err)
	}
	if protocol.IsTerminalHostStatus(current) {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE operation_hosts SET status = ?, error_text = ?, updated_utc = ?
		WHERE operation_id = ? AND host = ?
	`, status, nullIfEmpty(errText), now, operationID, host); err != nil {
		return false, fmt.Errorf("update operation host: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE operations SET updated_utc = ? WHERE id = ?`, now, operationID); err != nil {
		return false, fmt.Errorf("touch operation: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit host result: %w", err)
	}
	return true, nil
}

func (s *Store) OperationSummary(ctx context.Context, operationID string) (protocol.HostStatusSummary, error) {
	if _, err := s.getOperation(ctx, s.db, operationID); err != nil {
		return protocol.HostStatusSummary{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT host, status, COALESCE(error_text, '')
		FROM operation_hosts
		WHERE operation_id = ?
		ORDER BY position ASC
	`, operationID)
	if err != nil {
		return protocol.HostStatusSummary{}, fmt.Errorf("query operation hosts: %w", err)
	}
	defer rows.Close()

	var hosts []protocol.HostStatus
	for rows.Next() {
		var h protocol.HostStatus
		if err := rows.Scan(&h.Name, &h.Status, &h.Error); err != nil {
			return protocol.HostStatusSummary{}, fmt.Errorf("scan operation host: %w", err)
		}
		hosts = append(hosts, h)
	}
	if err := rows.Err(); err != nil {
		return protocol.HostStatusSummary{}, fmt.Errorf("iterate operation hosts: %w", err)
	}
	return protocol.Tally(operationID, hosts), nil
}

// ListOperations returns the newest operations first.
func (s *Store) ListOperations(ctx context.Context, limit int) ([]protocol.Operation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, created_utc, updated_utc
		FROM operations
		ORDER BY created_utc DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	out := []protocol.Operation{}
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operations: %w", err)
	}
	return out, nil
}

func (s *Store) GetOperation(ctx context.Context, operationID string) (protocol.Operation, error) {
	return s.getOperation(ctx, s.db, operationID)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) getOperation(ctx context.Context, q queryer, operationID string) (protocol.Operation, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, kind, created_utc, updated_utc FROM operations WHERE id = ?
	`, operationID)
	op, err := scanOperation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return protocol.Operation{}, fmt.Errorf("%w: %q", ErrNotFound, operationID)
	}
	return op, err
}

func scanOperation(row scanner) (protocol.Operation, error) {
	var op protocol.Operation
	var created, updated string
	if err := row.Scan(&op.ID, &op.Kind, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return op, err
		}
		return op, fmt.Errorf("scan operation: %w", err)
	}
	op.CreatedUTC, _ = time.Parse(timeLayout, created)
	op.UpdatedUTC, _ = time.Parse(timeLayout, updated)
	return op, nil
}

func uniqueHosts(hosts []string) []string {
	seen := make(map[string]struct{}, len(hosts))
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}

func nullIfEmpty(v string) any {
	if v == "" {
		return nil
	}
	return v
}
