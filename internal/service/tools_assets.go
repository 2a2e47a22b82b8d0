package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/huntready/huntready/internal/domain/launch"
)

const (
	taglineCount = 5
	tweetCount   = 3
)

// runAssetPrep generates launch copy in a fixed order: taglines first, then
// the description, then tweets, then checklist suggestions. Later steps may
// reference earlier output, so the order is part of the contract.
func (c *Coordinator) runAssetPrep(ctx context.Context, req *launch.AssetPrepRequest, mc Context) (*launch.AssetBundle, error) {
	tone := req.Tone
	if strings.TrimSpace(tone) == "" {
		tone = "professional"
	}

	ctxBlock := memoryBlock(mc)

	taglineOut, err := c.gen.Generate(ctx, taglinePrompt(req, tone, ctxBlock), 0.9)
	if err != nil {
		return nil, err
	}
	taglines := splitListLines(taglineOut, taglineCount)
	if len(taglines) == 0 {
		taglines = []string{fmt.Sprintf("%s: %s", req.ProductName, req.ElevatorPitch)}
	}

	descOut, err := c.gen.Generate(ctx, descriptionPrompt(req, tone, taglines[0], ctxBlock), 0.7)
	if err != nil {
		return nil, err
	}
	description := strings.TrimSpace(descOut)
	if description == "" {
		description = req.ElevatorPitch
	}

	tweetOut, err := c.gen.Generate(ctx, tweetPrompt(req, tone, taglines[0], ctxBlock), 0.9)
	if err != nil {
		return nil, err
	}
	tweets := splitListLines(tweetOut, tweetCount)

	return &launch.AssetBundle{
		Taglines:         taglines,
		ShortDescription: description,
		Tweets:           tweets,
		Suggestions:      assetSuggestions(req, tone),
	}, nil
}

func taglinePrompt(req *launch.AssetPrepRequest, tone, ctxBlock string) string {
	var b strings.Builder
	b.WriteString(ctxBlock)
	fmt.Fprintf(&b, "Write %d Product Hunt taglines for %q.\n", taglineCount, req.ProductName)
	fmt.Fprintf(&b, "Elevator pitch: %s\n", req.ElevatorPitch)
	if req.TargetAudience != "" {
		fmt.Fprintf(&b, "Target audience: %s\n", req.TargetAudience)
	}
	fmt.Fprintf(&b, "Tone: %s. Under 60 characters each. One per line, no numbering.", tone)
	return b.String()
}

func descriptionPrompt(req *launch.AssetPrepRequest, tone, tagline, ctxBlock string) string {
	var b strings.Builder
	b.WriteString(ctxBlock)
	fmt.Fprintf(&b, "Write a Product Hunt launch description for %q (tagline: %q).\n", req.ProductName, tagline)
	fmt.Fprintf(&b, "Elevator pitch: %s\n", req.ElevatorPitch)
	if req.TargetAudience != "" {
		fmt.Fprintf(&b, "Target audience: %s\n", req.TargetAudience)
	}
	fmt.Fprintf(&b, "Tone: %s. 2-3 short paragraphs, plain text, no headings.", tone)
	return b.String()
}

func tweetPrompt(req *launch.AssetPrepRequest, tone, tagline, ctxBlock string) string {
	var b strings.Builder
	b.WriteString(ctxBlock)
	fmt.Fprintf(&b, "Write %d launch-day tweets for %q (tagline: %q).\n", tweetCount, req.ProductName, tagline)
	fmt.Fprintf(&b, "Elevator pitch: %s\n", req.ElevatorPitch)
	fmt.Fprintf(&b, "Tone: %s. Under 280 characters each, include a call to action. One per line, no numbering.", tone)
	return b.String()
}

// assetSuggestions is the deterministic checklist appended to every bundle.
func assetSuggestions(req *launch.AssetPrepRequest, tone string) []string {
	suggestions := []string{
		"Prepare a 60-second demo video before launch day",
		"Add at least 4 product screenshots in a consistent visual style",
		fmt.Sprintf("Keep replies to launch-day comments in the same %s tone", tone),
	}
	if req.TargetAudience != "" {
		suggestions = append(suggestions, fmt.Sprintf("Post in communities where %s already gather", req.TargetAudience))
	}
	return suggestions
}
