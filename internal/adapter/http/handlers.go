package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/huntready/huntready/internal/domain"
	"github.com/huntready/huntready/internal/domain/identity"
	"github.com/huntready/huntready/internal/domain/launch"
	"github.com/huntready/huntready/internal/domain/memory"
	"github.com/huntready/huntready/internal/service"
)

// Limits holds per-request resource limits.
type Limits struct {
	MaxRequestBodySize int64
}

// DefaultLimits returns the default request limits.
func DefaultLimits() Limits {
	return Limits{MaxRequestBodySize: 1 << 20} // 1 MiB
}

// Handlers bundles the services the HTTP layer dispatches to.
type Handlers struct {
	Identity    *service.IdentityService
	Memory      *service.MemoryService
	Coordinator *service.Coordinator
	Limits      Limits
}

// CreateSession handles POST /api/v1/sessions.
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[identity.CreateSessionRequest](w, r, h.Limits.MaxRequestBodySize)
	if !ok {
		return
	}

	sess, err := h.Identity.CreateSession(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "session creation failed")
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

// GetSession handles GET /api/v1/sessions/{id}.
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	sess, err := h.Identity.GetSession(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// ListAgents handles GET /api/v1/agents.
func (h *Handlers) ListAgents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Coordinator.Catalog())
}

// routeBody is the envelope for agent invocations.
type routeBody struct {
	UserID    string          `json:"user_id"`
	SessionID string          `json:"session_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// InvokeAgent handles POST /api/v1/agents/{route}. user_id and session_id
// are optional; the coordinator mints a fresh identity when they are absent
// and returns it in the response.
func (h *Handlers) InvokeAgent(w http.ResponseWriter, r *http.Request) {
	route := urlParam(r, "route")

	body, ok := readJSON[routeBody](w, r, h.Limits.MaxRequestBodySize)
	if !ok {
		return
	}

	resp := h.Coordinator.Route(r.Context(), route, body.UserID, body.SessionID, body.Payload)
	writeJSON(w, statusForResponse(resp), resp)
}

// statusForResponse maps the in-band error category to an HTTP status. The
// body always carries the explicit success flag regardless of status.
func statusForResponse(resp launch.AgentResponse) int {
	if resp.Success {
		return http.StatusOK
	}
	switch {
	case hasCategory(resp, "unknown_route"):
		return http.StatusNotFound
	case hasCategory(resp, "validation"):
		return http.StatusBadRequest
	case hasCategory(resp, "store_unavailable"):
		return http.StatusServiceUnavailable
	case hasCategory(resp, "generation"):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func hasCategory(resp launch.AgentResponse, category string) bool {
	return len(resp.Error) >= len(category) && resp.Error[:len(category)] == category
}

// seedBody is the envelope for explicit memory seeding.
type seedBody struct {
	UserID string `json:"user_id"`
	memory.SeedRequest
}

// seedResult reports the outcome of a seed write.
type seedResult struct {
	Success       bool   `json:"success"`
	UserID        string `json:"user_id"`
	RecordsSeeded int    `json:"records_seeded"`
}

// SeedMemory handles POST /api/v1/memory/seed. user_id is optional; a
// caller without one gets a freshly minted user, returned in the result.
func (h *Handlers) SeedMemory(w http.ResponseWriter, r *http.Request) {
	body, ok := readJSON[seedBody](w, r, h.Limits.MaxRequestBodySize)
	if !ok {
		return
	}
	if err := body.SeedRequest.Validate(); err != nil {
		writeDomainError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err), "invalid product data")
		return
	}

	userID := body.UserID
	if !identity.ValidUserID(userID) {
		sess, err := h.Identity.CreateSession(r.Context(), identity.CreateSessionRequest{ExistingUserID: userID})
		if err != nil {
			writeDomainError(w, err, "seed failed")
			return
		}
		userID = sess.UserID
	}

	written, err := h.Memory.Seed(r.Context(), userID, body.SeedRequest)
	if err != nil {
		writeDomainError(w, err, "seed failed")
		return
	}
	writeJSON(w, http.StatusCreated, seedResult{Success: true, UserID: userID, RecordsSeeded: written})
}

// GetMemorySummary handles GET /api/v1/memory/{userID}/summary.
func (h *Handlers) GetMemorySummary(w http.ResponseWriter, r *http.Request) {
	userID := urlParam(r, "userID")
	sessionID := r.URL.Query().Get("session_id")
	writeJSON(w, http.StatusOK, h.Memory.Summary(r.Context(), userID, sessionID))
}

// analyzeBody combines product seed data with the identity of the caller.
type analyzeBody struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id,omitempty"`
	memory.SeedRequest
}

// analyzeResult is the combined seed-then-plan response.
type analyzeResult struct {
	Seeded        bool                 `json:"seeded"`
	UserID        string               `json:"user_id"`
	RecordsSeeded int                  `json:"records_seeded"`
	Plan          launch.AgentResponse `json:"plan"`
}

// Analyze handles POST /api/v1/analyze: seed product memory, then generate a
// launch plan in one call. user_id is optional and minted when absent.
// Seeding failure is reported but does not block plan generation.
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	body, ok := readJSON[analyzeBody](w, r, h.Limits.MaxRequestBodySize)
	if !ok {
		return
	}
	if err := body.SeedRequest.Validate(); err != nil {
		writeDomainError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err), "invalid product data")
		return
	}

	userID, sessionID := body.UserID, body.SessionID
	if !identity.ValidUserID(userID) {
		sess, err := h.Identity.CreateSession(r.Context(), identity.CreateSessionRequest{ExistingUserID: userID})
		if err != nil {
			writeDomainError(w, err, "analyze failed")
			return
		}
		userID, sessionID = sess.UserID, sess.ID
	}

	written, seedErr := h.Memory.Seed(r.Context(), userID, body.SeedRequest)

	planReq, err := json.Marshal(launch.PlanningRequest{
		ProductName:     body.ProductName,
		ProductType:     body.ProductType,
		LaunchDate:      orDate(body.LaunchDate),
		AdditionalNotes: body.AdditionalNotes,
	})
	if err != nil {
		writeDomainError(w, err, "analyze failed")
		return
	}

	resp := h.Coordinator.Route(r.Context(), string(launch.RoutePlanning), userID, sessionID, planReq)
	writeJSON(w, statusForResponse(resp), analyzeResult{
		Seeded:        seedErr == nil,
		UserID:        userID,
		RecordsSeeded: written,
		Plan:          resp,
	})
}

// orDate substitutes a default planning horizon when no launch date is given.
func orDate(s string) string {
	if s == "" {
		return "30"
	}
	return s
}
