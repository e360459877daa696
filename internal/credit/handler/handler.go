package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lendgate/internal/credit"
	dErrors "lendgate/pkg/domain-errors"
	"lendgate/pkg/platform/httputil"
	"lendgate/pkg/requestcontext"
)

// Service defines the interface for eligibility evaluations.
type Service interface {
	Evaluate(ctx context.Context, req credit.EligibilityRequest) (*credit.Decision, error)
}

// HealthCheck probes one dependency. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

// Handler wires the credit endpoints to the decision service.
type Handler struct {
	service Service
	logger  *slog.Logger
	checks  map[string]HealthCheck
}

// New constructs a credit handler with its dependencies.
func New(service Service, logger *slog.Logger, checks map[string]HealthCheck) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		checks:  checks,
	}
}

// Register mounts credit endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/credit/eligibility-check", h.HandleEligibilityCheck)
	r.Post("/credit/health", h.HandleHealth)
}

// HandleEligibilityCheck handles POST /credit/eligibility-check requests.
func (h *Handler) HandleEligibilityCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	if requestcontext.CallerID(ctx) == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[EligibilityRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	decision, err := h.service.Evaluate(ctx, req.ToDomain())
	if err != nil {
		h.logger.ErrorContext(ctx, "eligibility evaluation failed",
			"request_id", requestID,
			"merchant_id", req.MerchantID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "eligibility evaluated",
		"request_id", requestID,
		"merchant_id", req.MerchantID,
		"check_id", decision.CheckID.String(),
		"status", string(decision.Status),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromDecision(decision))
}

// HandleHealth handles POST /credit/health requests. The response degrades
// to 503 when any configured dependency check fails.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := http.StatusOK
	body := map[string]any{
		"status":    "ok",
		"service":   "lendgate",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.WarnContext(ctx, "health check failed", "dependency", name, "error", err)
			deps[name] = "unhealthy"
			body["status"] = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}
	if len(deps) > 0 {
		body["dependencies"] = deps
	}

	httputil.WriteJSON(w, status, body)
}
