package blocklist

import (
	"testing"

	"go.uber.org/zap"
)

func TestIsBlocked(t *testing.T) {
	checker := NewChecker(DefaultFragments, zap.NewNop())

	tests := []struct {
		sender string
		want   bool
	}{
		{"listings@realtor.com", true},
		{"Listings@REALTOR.COM", true},
		{"no-reply@example.com", true},
		{"noreply@example.com", true},
		{"notifications@tiktok.com", true},
		{"mailer-daemon@mail.example.com", true},
		{"+15551234567", false},
		{"jane@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := checker.IsBlocked(tt.sender); got != tt.want {
			t.Errorf("IsBlocked(%q) = %t, want %t", tt.sender, got, tt.want)
		}
	}
}

func TestNewCheckerNormalizesFragments(t *testing.T) {
	checker := NewChecker([]string{"  Realtor.COM ", "", "no-reply"}, nil)

	fragments := checker.Fragments()
	if len(fragments) != 2 {
		t.Fatalf("kept %d fragments, want 2: %v", len(fragments), fragments)
	}
	if fragments[0] != "realtor.com" {
		t.Errorf("fragment = %q, want lowercased and trimmed", fragments[0])
	}

	if !checker.IsBlocked("agent@realtor.com") {
		t.Error("normalized fragment did not match")
	}
}

func TestEmptyBlocklistBlocksNothing(t *testing.T) {
	checker := NewChecker(nil, nil)
	if checker.IsBlocked("anything@example.com") {
		t.Error("empty blocklist blocked a sender")
	}
}
