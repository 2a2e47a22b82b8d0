package identity

import (
	"strings"
	"testing"
)

func TestValidUserID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"simple", "user-123", true},
		{"uuid", "b3f4c9a2-1d2e-4f5a-8b6c-7d8e9f0a1b2c", true},
		{"empty", "", false},
		{"too long", strings.Repeat("a", 65), false},
		{"max length", strings.Repeat("a", 64), true},
		{"space", "user 123", false},
		{"slash", "user/123", false},
		{"backslash", `user\123`, false},
		{"dot", "user.123", false},
		{"newline", "user\n123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidUserID(tt.id); got != tt.want {
				t.Errorf("ValidUserID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}
