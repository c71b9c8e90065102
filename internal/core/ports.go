package core

import (
	"context"
)

// LeadRepository defines the interface for storing forwarded leads
type LeadRepository interface {
	// Save stores a new lead or updates an existing one
	Save(ctx context.Context, lead *Lead) error

	// Get retrieves a lead by ID
	Get(ctx context.Context, id string) (*Lead, error)

	// List returns stored leads, newest first
	List(ctx context.Context, includeArchived bool) ([]*Lead, error)

	// UpdateStatus changes the follow-up status of a lead
	UpdateStatus(ctx context.Context, id string, status string) error

	// Archive marks a lead as archived without deleting it
	Archive(ctx context.Context, id string) error

	// Delete removes a lead
	Delete(ctx context.Context, id string) error
}

// LeadNotifier defines the interface for pushing detected leads to an
// external channel
type LeadNotifier interface {
	// Notify announces a newly detected lead
	Notify(ctx context.Context, lead *Lead) error
}

// SenderBlocklist defines the interface for rejecting senders before scoring
type SenderBlocklist interface {
	// IsBlocked reports whether messages from the sender should be dropped
	IsBlocked(sender string) bool
}
