package core

import (
	"strings"
	"testing"
)

func validConfig() *ScoringConfig {
	return &ScoringConfig{
		Categories: []KeywordCategory{
			{Name: "a", Terms: []string{"foo"}, Weight: 0.3},
			{Name: "b", Terms: []string{"bar"}, Weight: 0.2},
		},
		BonusRules: []BonusRule{
			{RequiredCategories: []string{"a", "b"}, Bonus: 0.1},
		},
		Thresholds:        Thresholds{Low: 0.2, Medium: 0.4, High: 0.65},
		ForwardThreshold:  0.4,
		LengthBonusWeight: 0.1,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := DefaultScoringConfig().Validate(); err != nil {
		t.Errorf("default config rejected: %v", err)
	}
	if err := validConfig().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*ScoringConfig)
		wantText string
	}{
		{
			name:     "no categories",
			mutate:   func(c *ScoringConfig) { c.Categories = nil },
			wantText: "no keyword categories",
		},
		{
			name: "empty category name",
			mutate: func(c *ScoringConfig) {
				c.Categories[0].Name = ""
				c.BonusRules = nil
			},
			wantText: "empty name",
		},
		{
			name: "duplicate category name",
			mutate: func(c *ScoringConfig) {
				c.Categories[1].Name = "a"
				c.BonusRules = nil
			},
			wantText: "duplicate category",
		},
		{
			name:     "category without terms",
			mutate:   func(c *ScoringConfig) { c.Categories[0].Terms = nil },
			wantText: "has no terms",
		},
		{
			name:     "empty term",
			mutate:   func(c *ScoringConfig) { c.Categories[0].Terms = []string{"foo", ""} },
			wantText: "empty term",
		},
		{
			name:     "negative weight",
			mutate:   func(c *ScoringConfig) { c.Categories[0].Weight = -0.1 },
			wantText: "negative weight",
		},
		{
			name:     "thresholds not ascending",
			mutate:   func(c *ScoringConfig) { c.Thresholds = Thresholds{Low: 0.4, Medium: 0.4, High: 0.65} },
			wantText: "ascending",
		},
		{
			name:     "threshold above one",
			mutate:   func(c *ScoringConfig) { c.Thresholds.High = 1.5 },
			wantText: "[0,1]",
		},
		{
			name:     "negative forward threshold",
			mutate:   func(c *ScoringConfig) { c.ForwardThreshold = -0.1 },
			wantText: "forward threshold",
		},
		{
			name:     "length bonus weight too large",
			mutate:   func(c *ScoringConfig) { c.LengthBonusWeight = 0.5 },
			wantText: "length bonus",
		},
		{
			name: "bonus rule with unknown category",
			mutate: func(c *ScoringConfig) {
				c.BonusRules = []BonusRule{{RequiredCategories: []string{"a", "missing"}, Bonus: 0.1}}
			},
			wantText: "unknown category",
		},
		{
			name: "bonus rule without categories",
			mutate: func(c *ScoringConfig) {
				c.BonusRules = []BonusRule{{Bonus: 0.1}}
			},
			wantText: "no required categories",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate accepted a broken config")
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantText)
			}

			if _, err := NewEngine(cfg); err == nil {
				t.Error("NewEngine accepted a broken config")
			}
		})
	}
}
