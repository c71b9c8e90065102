package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/davidferra13/chefleads/internal/core"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// MySQLStore is a MySQL implementation of the LeadRepository interface
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore creates a new MySQL lead store
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS leads (
			id VARCHAR(64) PRIMARY KEY,
			sender VARCHAR(255),
			content TEXT,
			score DOUBLE,
			classification VARCHAR(16),
			matched_keywords TEXT,
			matched_categories TEXT,
			status VARCHAR(32),
			archived BOOLEAN,
			received_at VARCHAR(64),
			updated_at VARCHAR(64),
			INDEX idx_received_at (received_at)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{
		db:     db,
		logger: logger,
	}, nil
}

// Save stores a new lead or updates an existing one
func (s *MySQLStore) Save(ctx context.Context, lead *core.Lead) error {
	keywords, categories, err := encodeMatches(lead)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO leads (id, sender, content, score, classification,
			matched_keywords, matched_categories, status, archived,
			received_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			sender = VALUES(sender),
			content = VALUES(content),
			score = VALUES(score),
			classification = VALUES(classification),
			matched_keywords = VALUES(matched_keywords),
			matched_categories = VALUES(matched_categories),
			status = VALUES(status),
			archived = VALUES(archived),
			updated_at = VALUES(updated_at)
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
func (s *MySQLStore) Get(ctx context.Context, id string) (*core.Lead, error) {
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
func (s *MySQLStore) List(ctx context.Context, includeArchived bool) ([]*core.Lead, error) {
	query := `
		SELECT id, sender, content, score, classification,
			matched_keywords, matched_categories, status, archived,
			received_at, updated_at
		FROM leads`
	if !includeArchived {
		query += ` WHERE archived = FALSE`
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
func (s *MySQLStore) UpdateStatus(ctx context.Context, id string, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("failed to update lead status: %w", err)
	}
	return checkAffected(res)
}

// Archive marks a lead as archived without deleting it
func (s *MySQLStore) Archive(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE leads SET archived = TRUE, updated_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("failed to archive lead: %w", err)
	}
	return checkAffected(res)
}

// Delete removes a lead
func (s *MySQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	return checkAffected(res)
}

// Close closes the underlying database
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
