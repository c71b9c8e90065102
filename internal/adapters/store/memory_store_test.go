package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/davidferra13/chefleads/internal/core"
)

func testLead(id string) *core.Lead {
	return &core.Lead{
		ID:                id,
		Sender:            "+15551234567",
		Content:           "I need a chef for a dinner party",
		Score:             0.82,
		Classification:    core.ClassificationHigh,
		MatchedKeywords:   []string{"chef", "dinner party"},
		MatchedCategories: []string{"service", "event"},
		Status:            core.LeadStatusNew,
		ReceivedAt:        time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	}
}

func TestMemoryStoreSaveAndGet(t *testing.T) {
	s := NewMemoryStore(10, zap.NewNop())
	ctx := context.Background()

	lead := testLead("lead-1")
	if err := s.Save(ctx, lead); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "lead-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Sender != lead.Sender || got.Score != lead.Score {
		t.Errorf("Get returned %+v, want %+v", got, lead)
	}

	// Returned leads are copies: mutating one must not affect the store.
	got.Status = core.LeadStatusBooked
	again, err := s.Get(ctx, "lead-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.Status != core.LeadStatusNew {
		t.Error("mutation of returned lead leaked into the store")
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreSaveUpdatesExisting(t *testing.T) {
	s := NewMemoryStore(10, zap.NewNop())
	ctx := context.Background()

	if err := s.Save(ctx, testLead("lead-1")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	updated := testLead("lead-1")
	updated.Status = core.LeadStatusContacted
	if err := s.Save(ctx, updated); err != nil {
		t.Fatalf("Save update: %v", err)
	}

	leads, err := s.List(ctx, true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("List returned %d leads, want 1", len(leads))
	}
	if leads[0].Status != core.LeadStatusContacted {
		t.Errorf("status = %q, want updated", leads[0].Status)
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	s := NewMemoryStore(10, zap.NewNop())
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := s.Save(ctx, testLead(fmt.Sprintf("lead-%d", i))); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	leads, err := s.List(ctx, false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(leads) != 3 {
		t.Fatalf("List returned %d leads, want 3", len(leads))
	}
	if leads[0].ID != "lead-3" || leads[2].ID != "lead-1" {
		t.Errorf("order = [%s %s %s], want newest first", leads[0].ID, leads[1].ID, leads[2].ID)
	}
}

func TestMemoryStoreEvictsOldestBeyondCapacity(t *testing.T) {
	s := NewMemoryStore(2, zap.NewNop())
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := s.Save(ctx, testLead(fmt.Sprintf("lead-%d", i))); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	leads, err := s.List(ctx, true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("List returned %d leads, want capacity 2", len(leads))
	}
	if _, err := s.Get(ctx, "lead-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("oldest lead survived eviction: err = %v", err)
	}
	if _, err := s.Get(ctx, "lead-3"); err != nil {
		t.Errorf("newest lead missing after eviction: %v", err)
	}
}

func TestMemoryStoreUpdateStatus(t *testing.T) {
	s := NewMemoryStore(10, zap.NewNop())
	ctx := context.Background()

	if err := s.Save(ctx, testLead("lead-1")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.UpdateStatus(ctx, "lead-1", core.LeadStatusBooked); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	got, err := s.Get(ctx, "lead-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != core.LeadStatusBooked {
		t.Errorf("status = %q, want %q", got.Status, core.LeadStatusBooked)
	}

	if err := s.UpdateStatus(ctx, "missing", core.LeadStatusBooked); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateStatus(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreArchive(t *testing.T) {
	s := NewMemoryStore(10, zap.NewNop())
	ctx := context.Background()

	if err := s.Save(ctx, testLead("lead-1")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, testLead("lead-2")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Archive(ctx, "lead-1"); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	active, err := s.List(ctx, false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(active) != 1 || active[0].ID != "lead-2" {
		t.Errorf("active list = %v, want only lead-2", active)
	}

	all, err := s.List(ctx, true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("full list has %d leads, want 2", len(all))
	}

	if err := s.Archive(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Archive(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore(10, zap.NewNop())
	ctx := context.Background()

	if err := s.Save(ctx, testLead("lead-1")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(ctx, "lead-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "lead-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted lead still present: err = %v", err)
	}
	if err := s.Delete(ctx, "lead-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}
