package service

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestMemoryBlockEmptyForNewUser(t *testing.T) {
	if got := memoryBlock(Context{}); got != "" {
		t.Errorf("empty context rendered %q", got)
	}
}

func TestMemoryBlockRendersBothSections(t *testing.T) {
	got := memoryBlock(Context{
		Preferences: []string{"casual tone"},
		Semantic:    []string{"Nova is a dashboard"},
	})
	if !strings.Contains(got, "User preferences:") || !strings.Contains(got, "- casual tone") {
		t.Errorf("missing preferences section: %q", got)
	}
	if !strings.Contains(got, "Known product context:") || !strings.Contains(got, "- Nova is a dashboard") {
		t.Errorf("missing semantic section: %q", got)
	}
}

func TestExtractJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare", `{"a": 1}`, `{"a": 1}`, true},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`, true},
		{"prose around", `Sure! {"a": {"b": 2}} Hope that helps.`, `{"a": {"b": 2}}`, true},
		{"braces in strings", `{"a": "closing } brace"}`, `{"a": "closing } brace"}`, true},
		{"escaped quote", `{"a": "quote \" and } brace"}`, `{"a": "quote \" and } brace"}`, true},
		{"no json", "no structure here", "", false},
		{"unterminated", `{"a": 1`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONBlock(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if ok && !json.Valid([]byte(got)) {
				t.Errorf("extracted block is not valid JSON: %q", got)
			}
		})
	}
}

func TestSplitListLines(t *testing.T) {
	in := "1. First tagline\n- Second tagline\n\n* \"Third tagline\"\nFourth tagline\n5) Fifth\n6. Sixth"
	got := splitListLines(in, 5)
	want := []string{"First tagline", "Second tagline", "Third tagline", "Fourth tagline", "Fifth"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
