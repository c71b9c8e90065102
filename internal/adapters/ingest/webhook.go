package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/davidferra13/chefleads/internal/adapters/store"
	"github.com/davidferra13/chefleads/internal/core"
	"github.com/davidferra13/chefleads/internal/dedup"
	"github.com/davidferra13/chefleads/internal/utils"
)

// WebhookIngest receives SMS messages over HTTP and scores them. It also
// exposes the lead API consumed by the dashboard collaborator.
type WebhookIngest struct {
	service     *core.LeadService
	repo        core.LeadRepository
	logger      *zap.Logger
	listenAddr  string
	server      *http.Server
	limiter     *RateLimiter
	seen        *dedup.Set
	textProc    *utils.TextProcessor
	maxBodySize int
}

// NewWebhookIngest creates a new HTTP webhook ingest adapter
func NewWebhookIngest(
	service *core.LeadService,
	repo core.LeadRepository,
	logger *zap.Logger,
	listenAddr string,
	rateLimit int,
	rateWindow time.Duration,
	dedupCapacity int,
	textProc *utils.TextProcessor,
	maxBodySize int,
) *WebhookIngest {
	return &WebhookIngest{
		service:     service,
		repo:        repo,
		logger:      logger,
		listenAddr:  listenAddr,
		limiter:     NewRateLimiter(rateLimit, rateWindow),
		seen:        dedup.New(dedupCapacity),
		textProc:    textProc,
		maxBodySize: maxBodySize,
	}
}

// ProcessMessage scores a single message and returns the evaluation
func (w *WebhookIngest) ProcessMessage(ctx context.Context, msg core.InboundMessage) (*core.EvaluationResult, error) {
	msg.RawText = w.textProc.PrepareBody(msg.RawText, w.maxBodySize)
	return w.service.ProcessMessage(ctx, msg)
}

// Start starts the HTTP server
func (w *WebhookIngest) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/webhook", func(r chi.Router) {
		r.Use(w.rateLimitMiddleware)
		r.Post("/sms", w.handleSMS)
	})

	r.Route("/api/leads", func(r chi.Router) {
		r.Get("/", w.handleListLeads)
		r.Get("/{id}", w.handleGetLead)
		r.Patch("/{id}/status", w.handleUpdateStatus)
		r.Post("/{id}/archive", w.handleArchiveLead)
		r.Delete("/{id}", w.handleDeleteLead)
	})

	w.server = &http.Server{
		Addr:         w.listenAddr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	w.logger.Info("Webhook ingest starting", zap.String("address", w.listenAddr))

	go func() {
		if err := w.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			w.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the HTTP server
func (w *WebhookIngest) Stop() error {
	w.limiter.Stop()
	if w.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return w.server.Shutdown(ctx)
	}
	return nil
}

func (w *WebhookIngest) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !w.limiter.Allow(host) {
			writeJSON(rw, http.StatusTooManyRequests, map[string]any{
				"success": false,
				"error":   "Too many requests from this IP, please try again later",
			})
			return
		}
		next.ServeHTTP(rw, r)
	})
}

// smsPayload is the inbound webhook shape
type smsPayload struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

func (w *WebhookIngest) handleSMS(rw http.ResponseWriter, r *http.Request) {
	var payload smsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Content == "" {
		writeJSON(rw, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Invalid message format",
		})
		return
	}

	// Retried webhook deliveries carry identical content; score each
	// message once.
	if w.seen.Seen(payload.Content) {
		writeJSON(rw, http.StatusOK, map[string]any{
			"success": true,
			"status":  "skipped",
			"message": "Duplicate message",
		})
		return
	}

	msg := core.InboundMessage{
		ID:      payload.ID,
		RawText: payload.Content,
	}
	if payload.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, payload.Timestamp); err == nil {
			msg.Timestamp = ts
		}
	}

	result, err := w.ProcessMessage(r.Context(), msg)
	if err != nil {
		w.logger.Error("Failed to process message", zap.Error(err))
		writeJSON(rw, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "Failed to process message",
		})
		return
	}

	if result.ShouldForward {
		writeJSON(rw, http.StatusOK, map[string]any{
			"success":      true,
			"leadDetected": true,
			"score":        result.Score,
			"keywords":     result.MatchedKeywords,
		})
		return
	}

	writeJSON(rw, http.StatusOK, map[string]any{
		"success":      true,
		"leadDetected": false,
		"score":        result.Score,
		"reason":       result.FilterReason,
	})
}

func (w *WebhookIngest) handleListLeads(rw http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("archived") == "true"

	leads, err := w.repo.List(r.Context(), includeArchived)
	if err != nil {
		w.logger.Error("Failed to list leads", zap.Error(err))
		writeJSON(rw, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "Failed to list leads",
		})
		return
	}

	writeJSON(rw, http.StatusOK, map[string]any{
		"success": true,
		"leads":   leads,
	})
}

func (w *WebhookIngest) handleGetLead(rw http.ResponseWriter, r *http.Request) {
	lead, err := w.repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		w.respondLeadError(rw, err)
		return
	}

	writeJSON(rw, http.StatusOK, map[string]any{
		"success": true,
		"lead":    lead,
	})
}

func (w *WebhookIngest) handleUpdateStatus(rw http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		writeJSON(rw, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Missing status",
		})
		return
	}

	if err := w.repo.UpdateStatus(r.Context(), chi.URLParam(r, "id"), body.Status); err != nil {
		w.respondLeadError(rw, err)
		return
	}

	writeJSON(rw, http.StatusOK, map[string]any{"success": true})
}

func (w *WebhookIngest) handleArchiveLead(rw http.ResponseWriter, r *http.Request) {
	if err := w.repo.Archive(r.Context(), chi.URLParam(r, "id")); err != nil {
		w.respondLeadError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, map[string]any{"success": true})
}

func (w *WebhookIngest) handleDeleteLead(rw http.ResponseWriter, r *http.Request) {
	if err := w.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		w.respondLeadError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, map[string]any{"success": true})
}

func (w *WebhookIngest) respondLeadError(rw http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(rw, http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "Lead not found",
		})
		return
	}
	w.logger.Error("Lead store error", zap.Error(err))
	writeJSON(rw, http.StatusInternalServerError, map[string]any{
		"success": false,
		"error":   "Internal error",
	})
}

func writeJSON(rw http.ResponseWriter, status int, body any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(body)
}
