package core

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/davidferra13/chefleads/internal/blocklist"
)

type fakeRepo struct {
	saved   []*Lead
	saveErr error
}

func (r *fakeRepo) Save(ctx context.Context, lead *Lead) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, lead)
	return nil
}

func (r *fakeRepo) Get(ctx context.Context, id string) (*Lead, error) { return nil, nil }
func (r *fakeRepo) List(ctx context.Context, includeArchived bool) ([]*Lead, error) {
	return nil, nil
}
func (r *fakeRepo) UpdateStatus(ctx context.Context, id, status string) error { return nil }
func (r *fakeRepo) Archive(ctx context.Context, id string) error              { return nil }
func (r *fakeRepo) Delete(ctx context.Context, id string) error               { return nil }

type fakeNotifier struct {
	notified  []*Lead
	notifyErr error
}

func (n *fakeNotifier) Notify(ctx context.Context, lead *Lead) error {
	if n.notifyErr != nil {
		return n.notifyErr
	}
	n.notified = append(n.notified, lead)
	return nil
}

func newTestService(t *testing.T, repo LeadRepository, notifier LeadNotifier, blocked []string) *LeadService {
	t.Helper()
	engine, err := NewEngine(DefaultScoringConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	var checker SenderBlocklist
	if blocked != nil {
		checker = blocklist.NewChecker(blocked, zap.NewNop())
	}
	return NewLeadService(engine, repo, notifier, zap.NewNop(), checker)
}

func TestProcessMessageStoresAndNotifiesLead(t *testing.T) {
	repo := &fakeRepo{}
	notifier := &fakeNotifier{}
	service := newTestService(t, repo, notifier, nil)

	result, err := service.ProcessMessage(context.Background(), InboundMessage{
		RawText: "From: +15551234567 - I need a private chef for a dinner party for 10 people, what are your rates?",
	})
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if !result.ShouldForward {
		t.Fatalf("message not forwarded, score %v reason %q", result.Score, result.FilterReason)
	}

	if len(repo.saved) != 1 {
		t.Fatalf("saved %d leads, want 1", len(repo.saved))
	}
	lead := repo.saved[0]
	if lead.ID == "" {
		t.Error("stored lead has no ID")
	}
	if lead.Sender != "+15551234567" {
		t.Errorf("lead sender = %q", lead.Sender)
	}
	if lead.Status != LeadStatusNew {
		t.Errorf("lead status = %q, want %q", lead.Status, LeadStatusNew)
	}
	if lead.Score != result.Score {
		t.Errorf("lead score %v != result score %v", lead.Score, result.Score)
	}

	if len(notifier.notified) != 1 {
		t.Fatalf("notified %d leads, want 1", len(notifier.notified))
	}
	if notifier.notified[0].ID != lead.ID {
		t.Error("notifier received a different lead than the store")
	}
}

func TestProcessMessageFilteredMessageHasNoSideEffects(t *testing.T) {
	repo := &fakeRepo{}
	notifier := &fakeNotifier{}
	service := newTestService(t, repo, notifier, nil)

	result, err := service.ProcessMessage(context.Background(), InboundMessage{
		RawText: "Just checking in about that thing.",
	})
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if result.ShouldForward {
		t.Fatal("vague message forwarded")
	}

	if len(repo.saved) != 0 {
		t.Errorf("filtered message stored %d leads", len(repo.saved))
	}
	if len(notifier.notified) != 0 {
		t.Errorf("filtered message sent %d notifications", len(notifier.notified))
	}
}

func TestProcessMessageBlockedSender(t *testing.T) {
	repo := &fakeRepo{}
	service := newTestService(t, repo, nil, []string{"realtor.com", "no-reply"})

	result, err := service.ProcessMessage(context.Background(), InboundMessage{
		RawText: "From: listings@Realtor.com - I need a chef for a dinner party, what are your rates?",
	})
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}

	if result.ShouldForward {
		t.Error("blocked sender forwarded")
	}
	if result.FilterReason != FilterReasonBlockedSender {
		t.Errorf("filterReason = %q, want %q", result.FilterReason, FilterReasonBlockedSender)
	}
	if result.Score != 0 {
		t.Errorf("blocked sender scored %v, want 0", result.Score)
	}
	if len(repo.saved) != 0 {
		t.Error("blocked sender stored a lead")
	}
}

func TestProcessMessageStoreFailureStillReturnsResult(t *testing.T) {
	repo := &fakeRepo{saveErr: errors.New("disk full")}
	notifier := &fakeNotifier{}
	service := newTestService(t, repo, notifier, nil)

	result, err := service.ProcessMessage(context.Background(), InboundMessage{
		RawText: "I want to book a personal chef for a birthday dinner, how much do you charge?",
	})
	if err != nil {
		t.Fatalf("ProcessMessage returned error on store failure: %v", err)
	}
	if !result.ShouldForward {
		t.Fatalf("message not forwarded, score %v", result.Score)
	}
	// The notifier still runs even when the store fails.
	if len(notifier.notified) != 1 {
		t.Errorf("notified %d leads, want 1", len(notifier.notified))
	}
}

func TestProcessMessageNilCollaborators(t *testing.T) {
	service := newTestService(t, nil, nil, nil)

	result, err := service.ProcessMessage(context.Background(), InboundMessage{
		RawText: "I want to book a personal chef for a birthday dinner, how much do you charge?",
	})
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if !result.ShouldForward {
		t.Errorf("message not forwarded, score %v", result.Score)
	}
}
