package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/davidbz/ember/internal/config"
	"github.com/davidbz/ember/internal/domain"
	"github.com/davidbz/ember/internal/observability"
)

// Handler handles HTTP requests.
type Handler struct {
	gateway         *domain.GatewayService
	registry        domain.ProviderRegistry
	defaultProvider string
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(
	gateway *domain.GatewayService,
	registry domain.ProviderRegistry,
	providers *config.ProvidersConfig,
) *Handler {
	return &Handler{
		gateway:         gateway,
		registry:        registry,
		defaultProvider: providers.Default,
	}
}

// chatRequest is the inbound body; optional fields stay nil when omitted.
type chatRequest struct {
	Model       string           `json:"model"`
	Messages    []domain.Message `json:"messages"`
	MaxTokens   *int             `json:"max_tokens"`
	Temperature *float64         `json:"temperature"`
	Stream      *bool            `json:"stream"`
}

func (c *chatRequest) canonical() (*domain.CompletionRequest, error) {
	if c.Model == "" {
		return nil, errors.New("model is required")
	}
	if len(c.Messages) == 0 {
		return nil, errors.New("messages are required")
	}

	req := &domain.CompletionRequest{
		Model:       c.Model,
		Messages:    c.Messages,
		MaxTokens:   domain.DefaultMaxTokens,
		Temperature: domain.DefaultTemperature,
		Stream:      true,
	}
	if c.MaxTokens != nil {
		req.MaxTokens = *c.MaxTokens
	}
	if c.Temperature != nil {
		req.Temperature = *c.Temperature
	}
	if c.Stream != nil {
		req.Stream = *c.Stream
	}
	return req, nil
}

// HandleChatCompletion streams a completion from the provider named in the
// path, or from the default provider on the unprefixed route.
func (h *Handler) HandleChatCompletion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	provider := r.PathValue("provider")
	if provider == "" {
		provider = h.defaultProvider
	}
	ctx = observability.WithProvider(ctx, provider)

	var body chatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	req, err := body.canonical()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx = observability.WithModel(ctx, req.Model)
	logger := observability.FromContext(ctx)
	logger.Info("completion request received",
		observability.Int("messages", len(req.Messages)),
		observability.Int("max_tokens", req.MaxTokens),
	)

	observability.StreamingConnections.Inc()
	defer observability.StreamingConnections.Dec()

	// Set headers for SSE.
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	_ = rc.Flush()

	events := 0
	for chunk := range h.gateway.Stream(ctx, provider, req) {
		if err := WriteChunk(w, chunk); err != nil {
			// Returning cancels ctx, which stops the gateway and closes upstream.
			logger.Warn("client write failed", observability.Error(err))
			return
		}
		if err := rc.Flush(); err != nil {
			logger.Warn("flush failed", observability.Error(err))
			return
		}
		events++
	}

	logger.Info("stream completed", observability.Int("events", events))
}

// HandleRoot reports that the gateway is up.
func (h *Handler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Ember chat-completion gateway is running. Use the /v1/chat/completions endpoint.",
	})
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	providers, err := h.registry.List(r.Context())
	if err != nil {
		observability.FromContext(r.Context()).Error("failed to list providers", observability.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"providers": providers,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}
