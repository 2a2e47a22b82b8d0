package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	hrotel "github.com/huntready/huntready/internal/adapter/otel"
	"github.com/huntready/huntready/internal/adapter/ws"
	"github.com/huntready/huntready/internal/domain"
	"github.com/huntready/huntready/internal/domain/identity"
	"github.com/huntready/huntready/internal/domain/launch"
	"github.com/huntready/huntready/internal/port/broadcast"
	"github.com/huntready/huntready/internal/port/llm"
)

// Coordinator routes agent requests: validate, resolve identity, retrieve
// memory, run the route's tools, persist what was learned, respond.
// Validation failures and unknown routes short-circuit before any identity,
// memory, or model call.
type Coordinator struct {
	ident   *IdentityService
	memory  *MemoryService
	gen     llm.Generator
	hub     broadcast.Broadcaster
	metrics *hrotel.Metrics
	log     *slog.Logger
	now     func() time.Time // for testing
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(ident *IdentityService, memory *MemoryService, gen llm.Generator, hub broadcast.Broadcaster, log *slog.Logger) *Coordinator {
	return &Coordinator{
		ident:  ident,
		memory: memory,
		gen:    gen,
		hub:    hub,
		log:    log,
		now:    time.Now,
	}
}

// SetMetrics attaches the metric instruments. Recording is skipped while
// unset.
func (c *Coordinator) SetMetrics(m *hrotel.Metrics) {
	c.metrics = m
}

// AgentInfo describes one routable agent for the catalog endpoint.
type AgentInfo struct {
	Route       launch.Route `json:"agent_type"`
	Description string       `json:"description"`
}

// Catalog lists the routable agents in fixed order.
func (c *Coordinator) Catalog() []AgentInfo {
	out := make([]AgentInfo, 0, len(launch.Routes))
	for _, r := range launch.Routes {
		out = append(out, AgentInfo{Route: r, Description: launch.Descriptions[r]})
	}
	return out
}

// Route dispatches one agent request. Both identifiers are optional: a
// caller without a usable user ID gets a freshly minted user and session,
// returned in the response. The response always carries an explicit Success
// flag; errors are reported in-band, never as panics or half-filled
// payloads.
func (c *Coordinator) Route(ctx context.Context, routeName, userID, sessionID string, payload json.RawMessage) launch.AgentResponse {
	start := c.now()

	route, err := launch.ParseRoute(routeName)
	if err != nil {
		return c.failure(ctx, route, userID, sessionID, err)
	}

	req, err := decodeRequest(route, payload)
	if err != nil {
		return c.failure(ctx, route, userID, sessionID, err)
	}
	if err := req.Validate(); err != nil {
		return c.failure(ctx, route, userID, sessionID, err)
	}

	// Identity is resolved only once the request is known to be runnable, so
	// rejected requests never mint users or provision namespaces.
	if !identity.ValidUserID(userID) {
		sess, err := c.ident.CreateSession(ctx, identity.CreateSessionRequest{ExistingUserID: userID})
		if err != nil {
			return c.failure(ctx, route, userID, sessionID, err)
		}
		userID, sessionID = sess.UserID, sess.ID
	}

	ctx, span := hrotel.StartRouteSpan(ctx, string(route), userID)
	defer span.End()
	routeAttrs := metric.WithAttributes(attribute.String("route", string(route)))
	if c.metrics != nil {
		c.metrics.RoutesStarted.Add(ctx, 1, routeAttrs)
	}

	mc := c.memory.Retrieve(ctx, userID)

	result, note, err := c.run(ctx, route, req, mc)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return c.failure(ctx, route, userID, sessionID, err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return c.failure(ctx, route, userID, sessionID, fmt.Errorf("%w: marshal result: %v", domain.ErrGeneration, err))
	}

	if !mc.Degraded {
		// Both halves of the exchange are recorded: what the user asked for
		// and what was produced for them.
		c.memory.Persist(ctx, userID, req.Statement(), "")
		c.memory.Persist(ctx, userID, note, "")
	}

	c.hub.BroadcastEvent(ctx, ws.EventRouteCompleted, ws.RouteCompletedEvent{
		UserID:    userID,
		SessionID: sessionID,
		Route:     string(route),
		Success:   true,
		Degraded:  mc.Degraded,
	})

	if c.metrics != nil {
		c.metrics.RoutesCompleted.Add(ctx, 1, routeAttrs)
		if mc.Degraded {
			c.metrics.RoutesDegraded.Add(ctx, 1, routeAttrs)
		}
		c.metrics.RouteDuration.Record(ctx, c.now().Sub(start).Seconds(), routeAttrs)
	}

	c.log.Info("route completed", "route", route, "user_id", userID, "degraded", mc.Degraded)
	return launch.AgentResponse{
		Success:   true,
		Route:     route,
		UserID:    userID,
		SessionID: sessionID,
		Data:      data,
		Degraded:  mc.Degraded,
	}
}

// routeRequest is the common shape of all per-route payloads.
type routeRequest interface {
	Validate() error
	Statement() string
}

func decodeRequest(route launch.Route, payload json.RawMessage) (routeRequest, error) {
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}

	var req routeRequest
	switch route {
	case launch.RoutePlanning:
		req = &launch.PlanningRequest{}
	case launch.RouteAssetPrep:
		req = &launch.AssetPrepRequest{}
	case launch.RouteResearch:
		req = &launch.ResearchRequest{}
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRoute, route)
	}

	if err := json.Unmarshal(payload, req); err != nil {
		return nil, fmt.Errorf("%w: malformed payload: %v", domain.ErrValidation, err)
	}
	return req, nil
}

// run executes the route's tools. It returns the result payload plus a
// one-line interaction note for the persistence hook.
func (c *Coordinator) run(ctx context.Context, route launch.Route, req routeRequest, mc Context) (any, string, error) {
	switch r := req.(type) {
	case *launch.PlanningRequest:
		result, err := c.runPlanning(ctx, r, mc)
		if err != nil {
			return nil, "", err
		}
		note := fmt.Sprintf("Generated a %d-day launch plan for %s targeting %s", result.TotalDays, r.ProductName, result.LaunchDate)
		return result, note, nil

	case *launch.AssetPrepRequest:
		result, err := c.runAssetPrep(ctx, r, mc)
		if err != nil {
			return nil, "", err
		}
		note := fmt.Sprintf("Prepared launch assets for %s (%d taglines, %d tweets)", r.ProductName, len(result.Taglines), len(result.Tweets))
		return result, note, nil

	case *launch.ResearchRequest:
		result, err := c.runResearch(ctx, r, mc)
		if err != nil {
			return nil, "", err
		}
		note := fmt.Sprintf("Researched %s launches: %d comparable launches, %d hunter recommendations", r.ProductCategory, len(result.TopLaunches), len(result.RecommendedHunters))
		return result, note, nil
	}
	return nil, "", fmt.Errorf("%w: %q", domain.ErrUnknownRoute, route)
}

func (c *Coordinator) failure(ctx context.Context, route launch.Route, userID, sessionID string, err error) launch.AgentResponse {
	c.log.Warn("route failed", "route", route, "user_id", userID, "error", err)

	if c.metrics != nil {
		c.metrics.RoutesFailed.Add(ctx, 1, metric.WithAttributes(attribute.String("route", string(route))))
	}

	if route != "" {
		c.hub.BroadcastEvent(ctx, ws.EventRouteCompleted, ws.RouteCompletedEvent{
			UserID:    userID,
			SessionID: sessionID,
			Route:     string(route),
			Success:   false,
		})
	}

	return launch.AgentResponse{
		Success:   false,
		Route:     route,
		UserID:    userID,
		SessionID: sessionID,
		Error:     errorCategory(err) + ": " + err.Error(),
	}
}

// errorCategory maps an error to its stable response category.
func errorCategory(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownRoute):
		return "unknown_route"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, domain.ErrGeneration):
		return "generation"
	default:
		return "internal"
	}
}
