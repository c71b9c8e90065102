package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// InboundMessage represents a raw inbound SMS or email message
type InboundMessage struct {
	ID        string
	RawText   string
	Timestamp time.Time
}

// Classification represents the confidence level of an evaluation
type Classification int

const (
	ClassificationNone Classification = iota
	ClassificationLow
	ClassificationMedium
	ClassificationHigh
)

// String returns the textual label for the classification
func (c Classification) String() string {
	switch c {
	case ClassificationLow:
		return "Low"
	case ClassificationMedium:
		return "Medium"
	case ClassificationHigh:
		return "High"
	default:
		return "None"
	}
}

// MarshalJSON serializes the classification as its textual label
func (c Classification) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON parses a classification from its textual label
func (c *Classification) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, err := ParseClassification(label)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseClassification converts a textual label into a Classification
func ParseClassification(label string) (Classification, error) {
	switch label {
	case "None":
		return ClassificationNone, nil
	case "Low":
		return ClassificationLow, nil
	case "Medium":
		return ClassificationMedium, nil
	case "High":
		return ClassificationHigh, nil
	default:
		return ClassificationNone, fmt.Errorf("unknown classification label: %q", label)
	}
}

// Filter reasons reported when a message is not forwarded
const (
	FilterReasonEmpty          = "empty message"
	FilterReasonSpam           = "spam detected"
	FilterReasonBelowThreshold = "confidence score below threshold"
	FilterReasonBlockedSender  = "blocked sender"
)

// EvaluationResult represents the outcome of scoring a single message.
// It is pure output of the engine and is never mutated after creation.
type EvaluationResult struct {
	Sender            string         `json:"sender"`
	Content           string         `json:"content"`
	Score             float64        `json:"score"`
	MatchedKeywords   []string       `json:"matchedKeywords"`
	MatchedCategories []string       `json:"matchedCategories"`
	Classification    Classification `json:"classification"`
	ShouldForward     bool           `json:"shouldForward"`
	FilterReason      string         `json:"filterReason,omitempty"`
	MessageID         string         `json:"messageId"`
	Timestamp         time.Time      `json:"timestamp"`
}

// Lead statuses as tracked by the dashboard collaborators
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusBooked    = "booked"
	LeadStatusClosed    = "closed"
)

// Lead represents a forwarded message stored for follow-up
type Lead struct {
	ID                string         `json:"id"`
	Sender            string         `json:"sender"`
	Content           string         `json:"content"`
	Score             float64        `json:"score"`
	Classification    Classification `json:"classification"`
	MatchedKeywords   []string       `json:"matchedKeywords"`
	MatchedCategories []string       `json:"matchedCategories"`
	Status            string         `json:"status"`
	Archived          bool           `json:"archived"`
	ReceivedAt        time.Time      `json:"receivedAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}
