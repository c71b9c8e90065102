package ingest

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/davidferra13/chefleads/internal/adapters/store"
	"github.com/davidferra13/chefleads/internal/core"
	"github.com/davidferra13/chefleads/internal/utils"
)

func newTestSMTP(t *testing.T) (*SMTPIngest, *store.MemoryStore) {
	t.Helper()

	logger := zap.NewNop()
	engine, err := core.NewEngine(core.DefaultScoringConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	repo := store.NewMemoryStore(50, logger)
	service := core.NewLeadService(engine, repo, nil, logger, nil)

	return NewSMTPIngest(service, logger, "127.0.0.1:0", "localhost",
		utils.NewTextProcessor(logger), 4096), repo
}

const testEmail = "Subject: Dinner party\r\n\r\n" +
	"I need a private chef for a dinner party, what are your rates?\r\n"

func TestSMTPDataCarriesSender(t *testing.T) {
	f, repo := newTestSMTP(t)
	session := &smtpSession{ingest: f}

	if err := session.Mail("jane@example.com", nil); err != nil {
		t.Fatalf("Mail: %v", err)
	}
	if err := session.Data(strings.NewReader(testEmail)); err != nil {
		t.Fatalf("Data: %v", err)
	}

	leads, err := repo.List(context.Background(), true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("stored %d leads, want 1", len(leads))
	}
	if leads[0].Sender != "jane@example.com" {
		t.Errorf("lead sender = %q, want SMTP sender", leads[0].Sender)
	}
}

func TestSMTPDataNullReversePath(t *testing.T) {
	f, repo := newTestSMTP(t)

	// MAIL FROM:<> leaves the session without a sender.
	session := &smtpSession{ingest: f}
	if err := session.Data(strings.NewReader(testEmail)); err != nil {
		t.Fatalf("Data: %v", err)
	}

	leads, err := repo.List(context.Background(), true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("stored %d leads, want 1", len(leads))
	}
	if leads[0].Sender != core.UnknownSender {
		t.Errorf("lead sender = %q, want %q", leads[0].Sender, core.UnknownSender)
	}
	if strings.Contains(leads[0].Content, "From:") {
		t.Errorf("envelope prefix leaked into content: %q", leads[0].Content)
	}
}
