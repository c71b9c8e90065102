package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/davidferra13/chefleads/internal/core"
	"github.com/davidferra13/chefleads/internal/utils"
)

// SMTPIngest accepts inbound email over SMTP and scores message bodies.
// Unlike a relay filter it is a terminal endpoint: messages are scored and
// either recorded as leads or dropped, never forwarded onward.
type SMTPIngest struct {
	service     *core.LeadService
	logger      *zap.Logger
	listenAddr  string
	domain      string
	server      *smtp.Server
	textProc    *utils.TextProcessor
	maxBodySize int
}

// NewSMTPIngest creates a new SMTP ingest adapter
func NewSMTPIngest(
	service *core.LeadService,
	logger *zap.Logger,
	listenAddr string,
	domain string,
	textProc *utils.TextProcessor,
	maxBodySize int,
) *SMTPIngest {
	return &SMTPIngest{
		service:     service,
		logger:      logger,
		listenAddr:  listenAddr,
		domain:      domain,
		textProc:    textProc,
		maxBodySize: maxBodySize,
	}
}

// ProcessMessage scores a single message and returns the evaluation
func (f *SMTPIngest) ProcessMessage(ctx context.Context, msg core.InboundMessage) (*core.EvaluationResult, error) {
	msg.RawText = f.textProc.PrepareBody(msg.RawText, f.maxBodySize)
	return f.service.ProcessMessage(ctx, msg)
}

// Start starts the SMTP server
func (f *SMTPIngest) Start() error {
	f.server = smtp.NewServer(&smtpBackend{ingest: f})

	f.server.Addr = f.listenAddr
	f.server.Domain = f.domain
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = 10 * 1024 * 1024 // 10MB
	f.server.MaxRecipients = 10
	f.server.AllowInsecureAuth = true

	f.logger.Info("SMTP ingest starting", zap.String("address", f.listenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil {
			if !errors.Is(err, smtp.ErrServerClosed) {
				f.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP server
func (f *SMTPIngest) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	ingest *SMTPIngest
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{ingest: b.ingest}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	ingest *SMTPIngest
	sender string
}

// Reset resets the session state
func (s *smtpSession) Reset() {
	s.sender = ""
}

// AuthPlain handles PLAIN authentication (not needed for ingestion)
func (s *smtpSession) AuthPlain(_, _ string) error {
	return smtp.ErrAuthUnsupported
}

// Mail sets the sender address
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt accepts any recipient; routing is not this adapter's concern
func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	return nil
}

// Data scores the email body
func (s *smtpSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.ingest.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	msg, err := mail.ReadMessage(bytes.NewReader(rawData))
	if err != nil {
		s.ingest.logger.Error("Failed to parse email message", zap.Error(err))
		return err
	}

	body, err := io.ReadAll(msg.Body)
	if err != nil {
		s.ingest.logger.Error("Failed to read message body", zap.Error(err))
		return err
	}

	subject := msg.Header.Get("Subject")
	text := subject + "\n" + string(body)

	// Wrap in the sender envelope the scoring engine understands so the
	// evaluation carries the SMTP sender instead of "Unknown". A null
	// reverse-path (MAIL FROM:<>) leaves no sender to wrap.
	raw := text
	if s.sender != "" {
		raw = fmt.Sprintf("From: %s - %s", s.sender, text)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.ingest.ProcessMessage(ctx, core.InboundMessage{
		ID:      msg.Header.Get("Message-Id"),
		RawText: raw,
	})
	if err != nil {
		s.ingest.logger.Error("Failed to process email", zap.Error(err), zap.String("sender", s.sender))
		return err
	}

	s.ingest.logger.Info("Processed email",
		zap.String("sender", s.sender),
		zap.Float64("score", result.Score),
		zap.String("classification", result.Classification.String()),
		zap.Bool("lead", result.ShouldForward))

	return nil
}

// Logout handles SMTP logout
func (s *smtpSession) Logout() error {
	return nil
}
