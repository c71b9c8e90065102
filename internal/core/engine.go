package core

import (
	"strings"
	"time"
)

// Engine scores inbound messages against a fixed ScoringConfig. It holds no
// mutable state, so a single Engine may evaluate messages from any number of
// goroutines without coordination.
type Engine struct {
	cfg *ScoringConfig
}

// NewEngine validates the configuration and returns a ready engine.
// Validation failures are fatal to the caller; they are never deferred to
// per-message evaluation.
func NewEngine(cfg *ScoringConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine's scoring configuration
func (e *Engine) Config() *ScoringConfig {
	return e.cfg
}

// Evaluate scores a single message. It never fails: malformed or empty
// input yields a zero-score, non-forwarding result with a filter reason.
func (e *Engine) Evaluate(msg InboundMessage) EvaluationResult {
	ts := msg.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	res := EvaluationResult{
		MessageID:         msg.ID,
		Timestamp:         ts,
		MatchedKeywords:   []string{},
		MatchedCategories: []string{},
	}

	sender, content := Normalize(msg.RawText)
	res.Sender = sender
	res.Content = content

	if strings.TrimSpace(content) == "" {
		res.Content = ""
		res.FilterReason = FilterReasonEmpty
		return res
	}

	text := matchText(content)

	// Spam phrases are a hard veto: no category scoring runs and no
	// matched terms are reported.
	if containsAnyTerm(text, e.cfg.SpamTerms) {
		res.FilterReason = FilterReasonSpam
		return res
	}

	matches := matchCategories(text, e.cfg.Categories)

	var score float64
	for _, m := range matches {
		res.MatchedCategories = append(res.MatchedCategories, m.category.Name)
		res.MatchedKeywords = append(res.MatchedKeywords, m.terms...)

		// Multiple distinct matches within a category raise its
		// contribution with diminishing returns, capped so long term
		// lists cannot inflate the score.
		n := len(m.terms)
		if n > matchFactorCap {
			n = matchFactorCap
		}
		score += m.category.Weight * float64(n) / matchFactorCap
	}

	// Longer messages tend to be more detailed inquiries. The bonus
	// saturates quickly so length alone cannot cross the forward
	// threshold.
	length := len(content)
	if length > lengthBonusCap {
		length = lengthBonusCap
	}
	score += float64(length) / lengthBonusCap * e.cfg.LengthBonusWeight

	score += e.bonusScore(res.MatchedCategories)

	if score < 0 {
		score = 0
	} else if score > 1 {
		score = 1
	}
	res.Score = score

	res.Classification = e.classify(score)
	res.ShouldForward = score >= e.cfg.ForwardThreshold
	if !res.ShouldForward {
		res.FilterReason = FilterReasonBelowThreshold
	}

	return res
}

// bonusScore sums the co-occurrence bonuses whose required categories all
// matched. Each rule fires at most once.
func (e *Engine) bonusScore(matchedCategories []string) float64 {
	present := make(map[string]bool, len(matchedCategories))
	for _, name := range matchedCategories {
		present[name] = true
	}

	var bonus float64
	for _, rule := range e.cfg.BonusRules {
		all := true
		for _, name := range rule.RequiredCategories {
			if !present[name] {
				all = false
				break
			}
		}
		if all {
			bonus += rule.Bonus
		}
	}
	return bonus
}

// classify maps a score onto the threshold ladder with inclusive lower
// bounds at each step.
func (e *Engine) classify(score float64) Classification {
	t := e.cfg.Thresholds
	switch {
	case score >= t.High:
		return ClassificationHigh
	case score >= t.Medium:
		return ClassificationMedium
	case score >= t.Low:
		return ClassificationLow
	default:
		return ClassificationNone
	}
}
