// Package memory provides the domain model for durable per-user launch
// memory, partitioned into preference and semantic namespaces.
package memory

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Strategy classifies a memory record.
type Strategy string

const (
	// StrategyPreference holds behavioral and stylistic statements
	// (tone, timing, strategic approach).
	StrategyPreference Strategy = "preference"

	// StrategySemantic holds factual statements about the product,
	// its features, and research findings.
	StrategySemantic Strategy = "semantic"
)

// Strategies lists all valid strategies, in summary order.
var Strategies = []Strategy{StrategyPreference, StrategySemantic}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return s == StrategyPreference || s == StrategySemantic
}

// NamespaceRoot is the top segment of every memory namespace.
const NamespaceRoot = "huntready"

// Namespace returns the store namespace for a (user, strategy) pair:
// huntready/user/{user_id}/{strategy}. The namespace is the isolation
// boundary: a record is reachable only through its owning user's namespace.
func Namespace(userID string, strategy Strategy) string {
	return fmt.Sprintf("%s/user/%s/%s", NamespaceRoot, userID, strategy)
}

// Record is a single append-only memory entry. Records are never mutated
// after creation; expiry is enforced by the store's retention window, not by
// this layer.
type Record struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Strategy  Strategy  `json:"strategy"`
	Content   string    `json:"content"`
	Tag       string    `json:"tag,omitempty"` // optional structured tag, e.g. product name
	CreatedAt time.Time `json:"created_at"`
}

// Summary is a derived, read-only aggregate of a user's namespaces.
// It is recomputed on every request and never cached.
type Summary struct {
	UserID           string   `json:"user_id"`
	SessionID        string   `json:"session_id,omitempty"`
	Preferences      []string `json:"preferences"`
	SemanticMemories []string `json:"semantic_memories"`
	TotalMemories    int      `json:"total_memories"`
	Degraded         bool     `json:"degraded,omitempty"` // store was unreachable
}

// SeedRequest is the input for the explicit bulk write used when a user
// supplies structured product data up front.
type SeedRequest struct {
	ProductName        string `json:"product_name"`
	ProductType        string `json:"product_type,omitempty"`
	ProductDescription string `json:"product_description"`
	TargetAudience     string `json:"target_audience,omitempty"`
	LaunchDate         string `json:"launch_date,omitempty"`
	Tone               string `json:"tone,omitempty"`
	AdditionalNotes    string `json:"additional_notes,omitempty"`
	GitHubRepo         string `json:"github_repo,omitempty"`
}

// Validate checks that a SeedRequest carries the minimum product data.
// Invalid requests must not touch the store.
func (r *SeedRequest) Validate() error {
	if strings.TrimSpace(r.ProductName) == "" {
		return errors.New("product_name is required")
	}
	if strings.TrimSpace(r.ProductDescription) == "" {
		return errors.New("product_description is required")
	}
	return nil
}

// ProductContext renders the seed data as a single semantic memory record.
func (r *SeedRequest) ProductContext() string {
	var b strings.Builder
	b.WriteString("Product information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", r.ProductName)
	fmt.Fprintf(&b, "- Type: %s\n", orDefault(r.ProductType, "SaaS"))
	fmt.Fprintf(&b, "- Description: %s\n", r.ProductDescription)
	fmt.Fprintf(&b, "- Target audience: %s\n", orDefault(r.TargetAudience, "not specified"))
	fmt.Fprintf(&b, "- Launch date: %s\n", orDefault(r.LaunchDate, "not specified"))
	fmt.Fprintf(&b, "- Additional notes: %s\n", orDefault(r.AdditionalNotes, "none"))
	fmt.Fprintf(&b, "- GitHub repository: %s", orDefault(r.GitHubRepo, "not provided"))
	return b.String()
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
