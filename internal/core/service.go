package core

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// LeadService is the core service for lead detection. It wraps the scoring
// engine and owns the side effects around it: storing forwarded leads and
// pushing notifications.
type LeadService struct {
	engine    *Engine
	repo      LeadRepository
	notifier  LeadNotifier
	logger    *zap.Logger
	blocklist SenderBlocklist
}

// NewLeadService creates a new lead detection service
func NewLeadService(
	engine *Engine,
	repo LeadRepository,
	notifier LeadNotifier,
	logger *zap.Logger,
	blocklist SenderBlocklist,
) *LeadService {
	return &LeadService{
		engine:    engine,
		repo:      repo,
		notifier:  notifier,
		logger:    logger,
		blocklist: blocklist,
	}
}

// ProcessMessage scores a message and, when it qualifies as a lead, stores
// and announces it. Scoring problems never surface as errors: a bad message
// is simply not a lead.
func (s *LeadService) ProcessMessage(ctx context.Context, msg InboundMessage) (*EvaluationResult, error) {
	sender, _ := Normalize(msg.RawText)
	if s.blocklist != nil && s.blocklist.IsBlocked(sender) {
		s.logger.Info("Skipping message from blocked sender",
			zap.String("sender", sender),
			zap.String("action", "blocklist_reject"))

		res := EvaluationResult{
			Sender:            sender,
			MatchedKeywords:   []string{},
			MatchedCategories: []string{},
			MessageID:         msg.ID,
			Timestamp:         msg.Timestamp,
			FilterReason:      FilterReasonBlockedSender,
		}
		if res.Timestamp.IsZero() {
			res.Timestamp = time.Now().UTC()
		}
		return &res, nil
	}

	result := s.engine.Evaluate(msg)

	s.logger.Debug("Scored message",
		zap.String("sender", result.Sender),
		zap.Float64("score", result.Score),
		zap.String("classification", result.Classification.String()),
		zap.Strings("keywords", result.MatchedKeywords))

	if !result.ShouldForward {
		s.logger.Info("Message filtered out",
			zap.Float64("score", result.Score),
			zap.String("reason", result.FilterReason))
		return &result, nil
	}

	lead := s.buildLead(&result)
	s.logger.Info("Detected new lead",
		zap.String("lead_id", lead.ID),
		zap.String("sender", lead.Sender),
		zap.Float64("score", lead.Score),
		zap.String("classification", lead.Classification.String()))

	if s.repo != nil {
		if err := s.repo.Save(ctx, lead); err != nil {
			s.logger.Error("Failed to store lead", zap.Error(err), zap.String("lead_id", lead.ID))
		}
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, lead); err != nil {
			s.logger.Error("Failed to send lead notification", zap.Error(err), zap.String("lead_id", lead.ID))
		}
	}

	return &result, nil
}

// buildLead converts a forwarded evaluation into a stored lead record
func (s *LeadService) buildLead(result *EvaluationResult) *Lead {
	now := time.Now().UTC()
	return &Lead{
		ID:                newLeadID(),
		Sender:            result.Sender,
		Content:           result.Content,
		Score:             result.Score,
		Classification:    result.Classification,
		MatchedKeywords:   result.MatchedKeywords,
		MatchedCategories: result.MatchedCategories,
		Status:            LeadStatusNew,
		ReceivedAt:        result.Timestamp,
		UpdatedAt:         now,
	}
}

// newLeadID generates a unique lead identifier
func newLeadID() string {
	return fmt.Sprintf("lead-%d-%03d", time.Now().UnixMilli(), rand.Intn(1000))
}
