package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/davidferra13/chefleads/internal/core"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a lead is not found
var ErrNotFound = errors.New("lead not found")

// MemoryStore is an in-memory implementation of the LeadRepository
// interface. It holds the newest leads first and drops the oldest once
// the configured capacity is exceeded, matching the dashboard's bounded
// in-memory lead list.
type MemoryStore struct {
	leads    []*core.Lead
	maxLeads int
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewMemoryStore creates a new in-memory lead store
func NewMemoryStore(maxLeads int, logger *zap.Logger) *MemoryStore {
	if maxLeads <= 0 {
		maxLeads = 200
	}
	return &MemoryStore{
		leads:    make([]*core.Lead, 0),
		maxLeads: maxLeads,
		logger:   logger,
	}
}

// Save stores a new lead or updates an existing one
func (s *MemoryStore) Save(ctx context.Context, lead *core.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.leads {
		if existing.ID == lead.ID {
			updated := *lead
			updated.UpdatedAt = time.Now().UTC()
			s.leads[i] = &updated
			return nil
		}
	}

	stored := *lead
	s.leads = append([]*core.Lead{&stored}, s.leads...)

	if len(s.leads) > s.maxLeads {
		dropped := len(s.leads) - s.maxLeads
		s.leads = s.leads[:s.maxLeads]
		s.logger.Debug("Evicted oldest leads", zap.Int("dropped", dropped))
	}

	return nil
}

// Get retrieves a lead by ID
func (s *MemoryStore) Get(ctx context.Context, id string) (*core.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, lead := range s.leads {
		if lead.ID == id {
			found := *lead
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// List returns stored leads, newest first
func (s *MemoryStore) List(ctx context.Context, includeArchived bool) ([]*core.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*core.Lead, 0, len(s.leads))
	for _, lead := range s.leads {
		if !includeArchived && lead.Archived {
			continue
		}
		found := *lead
		results = append(results, &found)
	}
	return results, nil
}

// UpdateStatus changes the follow-up status of a lead
func (s *MemoryStore) UpdateStatus(ctx context.Context, id string, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, lead := range s.leads {
		if lead.ID == id {
			lead.Status = status
			lead.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}

// Archive marks a lead as archived without deleting it
func (s *MemoryStore) Archive(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, lead := range s.leads {
		if lead.ID == id {
			lead.Archived = true
			lead.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a lead
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, lead := range s.leads {
		if lead.ID == id {
			s.leads = append(s.leads[:i], s.leads[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
