package core

import "fmt"

// KeywordCategory represents a weighted set of terms matched against
// normalized message text. Terms are substring-matched in declared order.
type KeywordCategory struct {
	Name   string
	Terms  []string
	Weight float64
}

// BonusRule represents a co-occurrence bonus applied once when every
// required category has at least one matched term.
type BonusRule struct {
	RequiredCategories []string
	Bonus              float64
}

// Thresholds represents the ascending score cut-offs for classification
type Thresholds struct {
	Low    float64
	Medium float64
	High   float64
}

// ScoringConfig represents the full scoring configuration. It is read-only
// after construction and safe to share across goroutines.
type ScoringConfig struct {
	Categories []KeywordCategory
	BonusRules []BonusRule
	Thresholds Thresholds

	// SpamTerms are an absolute veto: any phrase present in the message
	// forces rejection before category scoring runs.
	SpamTerms []string

	// ForwardThreshold is the minimum score for a message to be treated
	// as a lead. Defaults to Thresholds.Medium.
	ForwardThreshold float64

	// LengthBonusWeight caps the score contribution of message length.
	// Must stay small so long filler text cannot cross a threshold alone.
	LengthBonusWeight float64
}

const (
	// matchFactorCap bounds the per-category reward for multiple term
	// matches so contributions never scale with term-list size.
	matchFactorCap = 3

	// lengthBonusCap is the character count at which the length bonus
	// saturates.
	lengthBonusCap = 100

	// maxLengthBonusWeight bounds the configurable length bonus weight.
	maxLengthBonusWeight = 0.1
)

// Validate checks the configuration for structural problems. It is called
// once at startup; an error here must halt the calling service rather than
// be discovered per message.
func (c *ScoringConfig) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("scoring config: no keyword categories defined")
	}

	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.Name == "" {
			return fmt.Errorf("scoring config: category with empty name")
		}
		if seen[cat.Name] {
			return fmt.Errorf("scoring config: duplicate category %q", cat.Name)
		}
		seen[cat.Name] = true

		if len(cat.Terms) == 0 {
			return fmt.Errorf("scoring config: category %q has no terms", cat.Name)
		}
		for _, term := range cat.Terms {
			if term == "" {
				return fmt.Errorf("scoring config: category %q has an empty term", cat.Name)
			}
		}
		if cat.Weight < 0 {
			return fmt.Errorf("scoring config: category %q has negative weight %v", cat.Name, cat.Weight)
		}
	}

	t := c.Thresholds
	if t.Low < 0 || t.High > 1 {
		return fmt.Errorf("scoring config: thresholds must lie in [0,1], got low=%v high=%v", t.Low, t.High)
	}
	if !(t.Low < t.Medium && t.Medium < t.High) {
		return fmt.Errorf("scoring config: thresholds must be ascending, got low=%v medium=%v high=%v", t.Low, t.Medium, t.High)
	}

	if c.ForwardThreshold < 0 || c.ForwardThreshold > 1 {
		return fmt.Errorf("scoring config: forward threshold %v outside [0,1]", c.ForwardThreshold)
	}
	if c.LengthBonusWeight < 0 || c.LengthBonusWeight > maxLengthBonusWeight {
		return fmt.Errorf("scoring config: length bonus weight %v outside [0,%v]", c.LengthBonusWeight, maxLengthBonusWeight)
	}

	for _, rule := range c.BonusRules {
		if len(rule.RequiredCategories) == 0 {
			return fmt.Errorf("scoring config: bonus rule with no required categories")
		}
		for _, name := range rule.RequiredCategories {
			if !seen[name] {
				return fmt.Errorf("scoring config: bonus rule references unknown category %q", name)
			}
		}
	}

	return nil
}

// DefaultScoringConfig returns the built-in chef-lead configuration
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		Categories: []KeywordCategory{
			{
				Name:   "service",
				Terms:  []string{"chef", "cook", "cooking", "catering", "food service", "culinary", "personal chef"},
				Weight: 0.30,
			},
			{
				Name:   "booking",
				Terms:  []string{"book", "booking", "reserve", "reservation", "schedule", "availability", "available", "hire"},
				Weight: 0.25,
			},
			{
				Name:   "event",
				Terms:  []string{"party", "event", "gathering", "dinner party", "reception", "celebration", "wedding", "birthday", "anniversary"},
				Weight: 0.20,
			},
			{
				Name:   "meal",
				Terms:  []string{"dinner", "lunch", "breakfast", "brunch", "meal", "food", "menu", "dish", "cuisine"},
				Weight: 0.20,
			},
			{
				Name:   "inquiry",
				Terms:  []string{"price", "pricing", "rate", "rates", "cost", "quote", "fee", "charge", "how much"},
				Weight: 0.20,
			},
			{
				Name:   "guests",
				Terms:  []string{"people", "guests", "persons", "adults", "kids", "children", "family", "friends"},
				Weight: 0.15,
			},
			{
				Name:   "date",
				Terms:  []string{"tonight", "tomorrow", "weekend", "friday", "saturday", "sunday", "next week", "this week"},
				Weight: 0.15,
			},
			{
				Name:   "location",
				Terms:  []string{"airbnb", "come to", "at home", "travel to", "vacation", "rental", "house", "condo", "cabin"},
				Weight: 0.15,
			},
			{
				Name:   "dietary",
				Terms:  []string{"vegan", "vegetarian", "gluten-free", "dairy-free", "allergies", "keto", "paleo", "kosher", "halal"},
				Weight: 0.10,
			},
		},
		BonusRules: []BonusRule{
			{RequiredCategories: []string{"service", "booking"}, Bonus: 0.20},
			{RequiredCategories: []string{"service", "inquiry"}, Bonus: 0.20},
			{RequiredCategories: []string{"event", "booking"}, Bonus: 0.15},
			{RequiredCategories: []string{"meal", "guests"}, Bonus: 0.10},
		},
		Thresholds: Thresholds{
			Low:    0.20,
			Medium: 0.40,
			High:   0.65,
		},
		SpamTerms: []string{
			"click here", "unsubscribe", "buy now", "limited time", "offer",
			"warranty", "insurance", "discount", "prize", "crypto", "bitcoin",
			"investment", "loan", "credit score", "free money", "make money",
			"earn from home", "work from home", "marketing", "promotion",
		},
		ForwardThreshold:  0.40,
		LengthBonusWeight: 0.10,
	}
}
