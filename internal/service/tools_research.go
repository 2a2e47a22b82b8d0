package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huntready/huntready/internal/domain/launch"
)

// runResearch asks the model for a structured report and parses the JSON
// block out of its reply. Model failure or unparseable output degrades to a
// curated baseline report so the route still returns something usable.
func (c *Coordinator) runResearch(ctx context.Context, req *launch.ResearchRequest, mc Context) (*launch.ResearchReport, error) {
	out, err := c.gen.Generate(ctx, researchPrompt(req, mc), 0.5)
	if err != nil {
		c.log.Warn("research generation failed, using baseline report", "category", req.ProductCategory, "error", err)
		return baselineReport(req), nil
	}

	block, ok := extractJSONBlock(out)
	if !ok {
		c.log.Warn("research output had no JSON block, using baseline report", "category", req.ProductCategory)
		return baselineReport(req), nil
	}

	var report launch.ResearchReport
	if err := json.Unmarshal([]byte(block), &report); err != nil {
		c.log.Warn("research output JSON malformed, using baseline report", "category", req.ProductCategory, "error", err)
		return baselineReport(req), nil
	}

	// Keep the response shape total even when the model omits sections.
	if report.TopLaunches == nil {
		report.TopLaunches = []launch.PastLaunch{}
	}
	if report.RecommendedHunters == nil {
		report.RecommendedHunters = []launch.Hunter{}
	}
	if report.Insights == nil {
		report.Insights = []string{}
	}
	if report.CompetitorAnalysis == nil {
		report.CompetitorAnalysis = map[string][]string{}
	}
	return &report, nil
}

func researchPrompt(req *launch.ResearchRequest, mc Context) string {
	var b strings.Builder
	b.WriteString(memoryBlock(mc))
	fmt.Fprintf(&b, "Research Product Hunt launches in the %q category", req.ProductCategory)
	if req.TargetAudience != "" {
		fmt.Fprintf(&b, " aimed at %s", req.TargetAudience)
	}
	if req.BudgetRange != "" {
		fmt.Fprintf(&b, " with a %s marketing budget", req.BudgetRange)
	}
	b.WriteString(".\n")
	b.WriteString(`Respond with a single JSON object, no prose, in this exact shape:
{
  "top_launches": [{"name": "", "tagline": "", "launch_date": "", "ranking": "", "success_factors": [""], "lessons": ""}],
  "recommended_hunters": [{"name": "", "handle": "", "specialization": "", "why_fit": ""}],
  "insights": [""],
  "competitor_analysis": {"strengths": [""], "gaps": [""]}
}
Include 3 launches, 3 hunters, and 3-5 insights.`)
	return b.String()
}

// baselineReport is category-independent guidance used when the model cannot
// produce a structured report.
func baselineReport(req *launch.ResearchRequest) *launch.ResearchReport {
	return &launch.ResearchReport{
		TopLaunches:        []launch.PastLaunch{},
		RecommendedHunters: []launch.Hunter{},
		Insights: []string{
			"Tuesday through Thursday launches historically collect the most upvotes",
			"Products launched at 12:01 AM PST get the full 24-hour voting window",
			fmt.Sprintf("Study the top 5 recent %s launches manually before picking a positioning angle", req.ProductCategory),
			"A committed first-hour upvote group matters more than total audience size",
		},
		CompetitorAnalysis: map[string][]string{},
	}
}
