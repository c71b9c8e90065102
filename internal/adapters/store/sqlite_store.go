package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/davidferra13/chefleads/internal/core"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore is a SQLite implementation of the LeadRepository interface
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite lead store
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS leads (
			id TEXT PRIMARY KEY,
			sender TEXT,
			content TEXT,
			score REAL,
			classification TEXT,
			matched_keywords TEXT,
			matched_categories TEXT,
			status TEXT,
			archived BOOLEAN,
			received_at TEXT,
			updated_at TEXT
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_received_at ON leads(received_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

// Save stores a new lead or updates an existing one
func (s *SQLiteStore) Save(ctx context.Context, lead *core.Lead) error {
	keywords, categories, err := encodeMatches(lead)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO leads (id, sender, content, score, classification,
			matched_keywords, matched_categories, status, archived,
			received_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sender = excluded.sender,
			content = excluded.content,
			score = excluded.score,
			classification = excluded.classification,
			matched_keywords = excluded.matched_keywords,
			matched_categories = excluded.matched_categories,
			status = excluded.status,
			archived = excluded.archived,
			updated_at = excluded.updated_at
	`, lead.ID, lead.Sender, lead.Content, lead.Score, lead.Classification.String(),
		keywords, categories, lead.Status, lead.Archived,
		lead.ReceivedAt.UTC().Format(time.RFC3339Nano),
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save lead: %w", err)
	}

	return nil
}

// Get retrieves a lead by ID
func (s *SQLiteStore) Get(ctx context.Context, id string) (*core.Lead, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, sender, content, score, classification,
			matched_keywords, matched_categories, status, archived,
			received_at, updated_at
		FROM leads
		WHERE id = ?
	`, id)

	lead, err := scanLead(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query lead: %w", err)
	}
	return lead, nil
}

// List returns stored leads, newest first
func (s *SQLiteStore) List(ctx context.Context, includeArchived bool) ([]*core.Lead, error) {
	query := `
		SELECT id, sender, content, score, classification,
			matched_keywords, matched_categories, status, archived,
			received_at, updated_at
		FROM leads`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY received_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	var leads []*core.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leads: %w", err)
	}

	return leads, nil
}

// UpdateStatus changes the follow-up status of a lead
func (s *SQLiteStore) UpdateStatus(ctx context.Context, id string, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("failed to update lead status: %w", err)
	}
	return checkAffected(res)
}

// Archive marks a lead as archived without deleting it
func (s *SQLiteStore) Archive(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET archived = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("failed to archive lead: %w", err)
	}
	return checkAffected(res)
}

// Delete removes a lead
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	return checkAffected(res)
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func checkAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func encodeMatches(lead *core.Lead) (string, string, error) {
	keywords, err := json.Marshal(lead.MatchedKeywords)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode matched keywords: %w", err)
	}
	categories, err := json.Marshal(lead.MatchedCategories)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode matched categories: %w", err)
	}
	return string(keywords), string(categories), nil
}

func scanLead(row rowScanner) (*core.Lead, error) {
	var lead core.Lead
	var classification, keywords, categories, receivedAt, updatedAt string

	err := row.Scan(&lead.ID, &lead.Sender, &lead.Content, &lead.Score,
		&classification, &keywords, &categories, &lead.Status, &lead.Archived,
		&receivedAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	lead.Classification, err = core.ParseClassification(classification)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(keywords), &lead.MatchedKeywords); err != nil {
		return nil, fmt.Errorf("failed to decode matched keywords: %w", err)
	}
	if err := json.Unmarshal([]byte(categories), &lead.MatchedCategories); err != nil {
		return nil, fmt.Errorf("failed to decode matched categories: %w", err)
	}
	if lead.ReceivedAt, err = time.Parse(time.RFC3339Nano, receivedAt); err != nil {
		return nil, fmt.Errorf("failed to parse received_at timestamp: %w", err)
	}
	if lead.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
	}

	return &lead, nil
}
