package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/starlingkids/leads-api/internal/entity"
	"github.com/starlingkids/leads-api/internal/infra/http/middleware"
	"github.com/starlingkids/leads-api/internal/usecase"
)

type LeadHandler struct {
	DeliverUC   *usecase.DeliverLeadUseCase
	LeadRepo    entity.LeadRepositoryInterface
	RateLimiter *RateLimiter // nil = limiter disabled
}

func NewLeadHandler(uc *usecase.DeliverLeadUseCase, repo entity.LeadRepositoryInterface, limiter *RateLimiter) *LeadHandler {
	return &LeadHandler{
		DeliverUC:   uc,
		LeadRepo:    repo,
		RateLimiter: limiter,
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HandleDeliver is the single delivery entry point: the public form posts the
// full payload here, the dashboard posts {applicationId} for retry and
// {applicationId, skipCrm} for resend.
func (h *LeadHandler) HandleDeliver(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if h.RateLimiter != nil && !h.RateLimiter.Allow(ctx, clientIP) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "Too many requests. Please try again later."})
		return
	}

	var input usecase.DeliverLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON", Details: err.Error()})
		return
	}

	input.ClientIP = clientIP
	input.UserAgent = r.UserAgent()

	mode := deliveryMode(input)

	output, err := h.DeliverUC.Execute(ctx, input)
	if err != nil {
		h.writeDeliveryError(w, mode, err)
		return
	}

	status := entity.CrmStatusSuccess
	if input.SkipCrm {
		status = entity.CrmStatusSkipped
	}
	middleware.RecordLeadDelivery(mode, status)

	writeJSON(w, http.StatusOK, output)
}

func (h *LeadHandler) writeDeliveryError(w http.ResponseWriter, mode string, err error) {
	if domainErr, ok := err.(*usecase.DomainError); ok {
		switch domainErr.Code {
		case usecase.CodeLeadNotFound:
			writeJSON(w, http.StatusNotFound, errorResponse{Error: domainErr.Message})
			return
		case usecase.CodeCrmDeliveryFailed:
			middleware.RecordLeadDelivery(mode, entity.CrmStatusFailed)
			middleware.RecordIntegrationError("studiocrm")
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:   "Failed to send to CRM",
				Details: domainErr.Message,
			})
			return
		}
	}

	// Anything unclassified stays server-side; the caller gets a plain 500.
	log.Printf("❌ Delivery: internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
}

// HandleList powers the dashboard table: leads newest-first, optionally
// filtered by submission date. The "to" date is inclusive, so the query
// bound extends to the end of that day.
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var from, to *time.Time

	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid 'from' date, expected YYYY-MM-DD"})
			return
		}
		from = &t
	}

	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid 'to' date, expected YYYY-MM-DD"})
			return
		}
		end := t.AddDate(0, 0, 1)
		to = &end
	}

	leads, err := h.LeadRepo.List(r.Context(), from, to)
	if err != nil {
		log.Printf("❌ Leads: list failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to load leads"})
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

func deliveryMode(input usecase.DeliverLeadInput) string {
	if input.ApplicationID == "" || input.Email != "" {
		return "fresh"
	}
	if input.SkipCrm {
		return "resend"
	}
	return "retry"
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i > 0 {
			return strings.TrimSpace(xff[:i])
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}
