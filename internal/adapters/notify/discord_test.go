package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/davidferra13/chefleads/internal/core"
)

func testLead() *core.Lead {
	return &core.Lead{
		ID:              "lead-1",
		Sender:          "+15551234567",
		Content:         "I need a chef for a dinner party",
		Score:           0.82,
		Classification:  core.ClassificationHigh,
		MatchedKeywords: []string{"chef", "dinner party"},
		Status:          core.LeadStatusNew,
		ReceivedAt:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNotifyPostsEmbed(t *testing.T) {
	var received webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("payload not JSON: %v", err)
		}
		rw.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	notifier, err := NewDiscordNotifier(server.URL, 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("NewDiscordNotifier: %v", err)
	}

	if err := notifier.Notify(context.Background(), testLead()); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if len(received.Embeds) != 1 {
		t.Fatalf("payload has %d embeds, want 1", len(received.Embeds))
	}
	e := received.Embeds[0]
	if e.Title != "New Chef Lead" {
		t.Errorf("title = %q", e.Title)
	}
	if e.Color != colorHigh {
		t.Errorf("color = %#x, want %#x", e.Color, colorHigh)
	}
	if e.Description != "I need a chef for a dinner party" {
		t.Errorf("description = %q", e.Description)
	}

	fields := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		fields[f.Name] = f.Value
	}
	if fields["From"] != "+15551234567" {
		t.Errorf("From field = %q", fields["From"])
	}
	if !strings.Contains(fields["Confidence"], "82%") || !strings.Contains(fields["Confidence"], "High") {
		t.Errorf("Confidence field = %q", fields["Confidence"])
	}
	if fields["Keywords"] != "chef, dinner party" {
		t.Errorf("Keywords field = %q", fields["Keywords"])
	}
}

func TestNotifyErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	notifier, err := NewDiscordNotifier(server.URL, 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("NewDiscordNotifier: %v", err)
	}

	if err := notifier.Notify(context.Background(), testLead()); err == nil {
		t.Error("Notify succeeded on 400 response")
	}
}

func TestNewDiscordNotifierRequiresURL(t *testing.T) {
	if _, err := NewDiscordNotifier("", 5*time.Second, zap.NewNop()); err == nil {
		t.Error("empty webhook URL accepted")
	}
}

func TestEmbedColor(t *testing.T) {
	tests := []struct {
		classification core.Classification
		want           int
	}{
		{core.ClassificationHigh, colorHigh},
		{core.ClassificationMedium, colorMedium},
		{core.ClassificationLow, colorLow},
		{core.ClassificationNone, colorLow},
	}
	for _, tt := range tests {
		if got := embedColor(tt.classification); got != tt.want {
			t.Errorf("embedColor(%s) = %#x, want %#x", tt.classification, got, tt.want)
		}
	}
}
