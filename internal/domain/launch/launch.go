// Package launch defines the route variants, per-route request payloads, and
// response shapes for the launch-assistant agents.
package launch

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/huntready/huntready/internal/domain"
)

// Route identifies one of the fixed agent variants. The set is closed:
// adding a variant means adding one tagged case and one tool list.
type Route string

const (
	RoutePlanning  Route = "planning"
	RouteAssetPrep Route = "asset_prep"
	RouteResearch  Route = "research"
)

// Routes lists all valid routes.
var Routes = []Route{RoutePlanning, RouteAssetPrep, RouteResearch}

// Descriptions maps each route to a short human-readable purpose line.
var Descriptions = map[Route]string{
	RoutePlanning:  "Generate launch timeline and checklist",
	RouteAssetPrep: "Create taglines, descriptions, and tweets",
	RouteResearch:  "Find top launches and recommend hunters",
}

// ParseRoute resolves a route name. Unknown names fail with
// domain.ErrUnknownRoute before any tool or memory operation occurs.
func ParseRoute(name string) (Route, error) {
	r := Route(strings.ToLower(strings.TrimSpace(name)))
	switch r {
	case RoutePlanning, RouteAssetPrep, RouteResearch:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownRoute, name)
}

// AgentResponse is the uniform result of routing a request to an agent.
// Success is always explicit; on failure Error names the cause category.
type AgentResponse struct {
	Success   bool            `json:"success"`
	Route     Route           `json:"agent_type,omitempty"`
	UserID    string          `json:"user_id,omitempty"`
	SessionID string          `json:"session_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	Degraded  bool            `json:"degraded,omitempty"` // served without memory context
}

// PlanningRequest is the payload for the planning agent.
type PlanningRequest struct {
	ProductName     string `json:"product_name"`
	ProductType     string `json:"product_type"`
	LaunchDate      string `json:"launch_date"`
	AdditionalNotes string `json:"additional_notes,omitempty"`
}

// Validate checks required planning fields, naming the first missing one.
func (r *PlanningRequest) Validate() error {
	if strings.TrimSpace(r.ProductName) == "" {
		return fmt.Errorf("%w: product_name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(r.LaunchDate) == "" {
		return fmt.Errorf("%w: launch_date is required", domain.ErrValidation)
	}
	return nil
}

// Statement summarizes the request as one retrievable memory line.
func (r *PlanningRequest) Statement() string {
	return fmt.Sprintf("User is planning a launch for %s on %s", r.ProductName, r.LaunchDate)
}

// PlanningResult is the fixed output shape of the planning agent. The
// timeline structure is deterministic; StrategyNotes is model-generated
// free text and may be empty.
type PlanningResult struct {
	Timeline      []Phase  `json:"timeline"`
	TotalDays     int      `json:"total_days"`
	LaunchDate    string   `json:"launch_date"`
	KeyMilestones []string `json:"key_milestones"`
	StrategyNotes string   `json:"strategy_notes"`
}

// AssetPrepRequest is the payload for the asset-prep agent.
type AssetPrepRequest struct {
	ProductName    string `json:"product_name"`
	ElevatorPitch  string `json:"elevator_pitch"`
	TargetAudience string `json:"target_audience"`
	Tone           string `json:"tone,omitempty"`
}

// Validate checks required asset-prep fields, naming the first missing one.
func (r *AssetPrepRequest) Validate() error {
	if strings.TrimSpace(r.ProductName) == "" {
		return fmt.Errorf("%w: product_name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(r.ElevatorPitch) == "" {
		return fmt.Errorf("%w: elevator_pitch is required", domain.ErrValidation)
	}
	return nil
}

// Statement summarizes the request as one retrievable memory line. The tone,
// when supplied, makes the statement classify as a preference.
func (r *AssetPrepRequest) Statement() string {
	if strings.TrimSpace(r.Tone) == "" {
		return fmt.Sprintf("User requested launch assets for %s", r.ProductName)
	}
	return fmt.Sprintf("User requested launch assets for %s in a %s tone", r.ProductName, r.Tone)
}

// AssetBundle is the fixed output shape of the asset-prep agent. Content
// fields may be empty strings but the structure is always fully present, so
// downstream formatting never needs to null-check.
type AssetBundle struct {
	Taglines         []string `json:"taglines"`
	ShortDescription string   `json:"short_description"`
	Tweets           []string `json:"tweets"`
	Suggestions      []string `json:"suggestions"`
}

// ResearchRequest is the payload for the research agent.
type ResearchRequest struct {
	ProductCategory string `json:"product_category"`
	TargetAudience  string `json:"target_audience"`
	BudgetRange     string `json:"budget_range,omitempty"`
}

// Validate checks required research fields, naming the first missing one.
func (r *ResearchRequest) Validate() error {
	if strings.TrimSpace(r.ProductCategory) == "" {
		return fmt.Errorf("%w: product_category is required", domain.ErrValidation)
	}
	return nil
}

// Statement summarizes the request as one retrievable memory line.
func (r *ResearchRequest) Statement() string {
	if strings.TrimSpace(r.TargetAudience) == "" {
		return fmt.Sprintf("User researched %s launches", r.ProductCategory)
	}
	return fmt.Sprintf("User researched %s launches aimed at %s", r.ProductCategory, r.TargetAudience)
}

// PastLaunch describes one researched launch.
type PastLaunch struct {
	Name           string   `json:"name"`
	Tagline        string   `json:"tagline"`
	LaunchDate     string   `json:"launch_date"`
	Ranking        string   `json:"ranking"`
	SuccessFactors []string `json:"success_factors"`
	Lessons        string   `json:"lessons"`
}

// Hunter describes a recommended hunter for outreach.
type Hunter struct {
	Name           string `json:"name"`
	Handle         string `json:"handle"`
	Specialization string `json:"specialization"`
	WhyFit         string `json:"why_fit"`
}

// ResearchReport is the fixed output shape of the research agent.
type ResearchReport struct {
	TopLaunches        []PastLaunch        `json:"top_launches"`
	RecommendedHunters []Hunter            `json:"recommended_hunters"`
	Insights           []string            `json:"insights"`
	CompetitorAnalysis map[string][]string `json:"competitor_analysis"`
}

// ErrPastLaunchDate is returned when a planning request targets a date that
// has already passed.
var ErrPastLaunchDate = errors.New("launch date is in the past")
