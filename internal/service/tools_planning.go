package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/huntready/huntready/internal/domain"
	"github.com/huntready/huntready/internal/domain/launch"
)

// runPlanning builds the deterministic launch timeline, then asks the model
// for strategy notes on top of it. The timeline never depends on the model:
// a generation failure degrades to template notes instead of failing the
// route.
func (c *Coordinator) runPlanning(ctx context.Context, req *launch.PlanningRequest, mc Context) (*launch.PlanningResult, error) {
	now := c.now()

	launchDate, err := launch.ParseLaunchDate(req.LaunchDate, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	days := launch.DaysUntil(now, launchDate)
	if days < 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, launch.ErrPastLaunchDate)
	}

	timeline := launch.BuildTimeline(req.ProductName, days)
	result := &launch.PlanningResult{
		Timeline:      timeline,
		TotalDays:     days,
		LaunchDate:    launch.FormatDate(launchDate),
		KeyMilestones: launch.Milestones(timeline),
	}

	notes, err := c.gen.Generate(ctx, planningPrompt(req, result, mc), 0.7)
	if err != nil {
		c.log.Warn("strategy notes generation failed, using template", "product", req.ProductName, "error", err)
		notes = templateStrategyNotes(req, days)
	}
	result.StrategyNotes = strings.TrimSpace(notes)

	return result, nil
}

func planningPrompt(req *launch.PlanningRequest, result *launch.PlanningResult, mc Context) string {
	var b strings.Builder
	b.WriteString(memoryBlock(mc))
	fmt.Fprintf(&b, "You are a Product Hunt launch strategist. The product %q (%s) launches on %s, %d days from now.\n",
		req.ProductName, orUnspecified(req.ProductType), result.LaunchDate, result.TotalDays)
	if req.AdditionalNotes != "" {
		fmt.Fprintf(&b, "Additional notes from the founder: %s\n", req.AdditionalNotes)
	}
	b.WriteString("A phased checklist already exists. Write 3-5 sentences of strategy advice ")
	b.WriteString("specific to this product and timeframe: what to emphasize, what usually goes wrong, ")
	b.WriteString("and how to use the remaining time. Plain prose, no lists.")
	return b.String()
}

// templateStrategyNotes is the deterministic fallback when the model is
// unavailable.
func templateStrategyNotes(req *launch.PlanningRequest, days int) string {
	switch {
	case days < 7:
		return fmt.Sprintf("With only %d days until launch, focus %s's remaining time on assets and hunter outreach; skip anything that is not directly visible on launch day.", days, req.ProductName)
	case days < 14:
		return fmt.Sprintf("%s has %d days of runway: lock the tagline and visuals this week, then spend the final week on outreach and scheduling.", req.ProductName, days)
	default:
		return fmt.Sprintf("%s has %d days before launch, enough for a full pre-launch cycle: build an audience early, warm up hunters, and keep the final week free for polish.", req.ProductName, days)
	}
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unspecified type"
	}
	return s
}
