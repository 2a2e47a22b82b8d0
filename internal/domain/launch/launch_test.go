package launch

import (
	"errors"
	"strings"
	"testing"

	"github.com/huntready/huntready/internal/domain"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		in      string
		want    Route
		wantErr bool
	}{
		{"planning", RoutePlanning, false},
		{"asset_prep", RouteAssetPrep, false},
		{"research", RouteResearch, false},
		{"PLANNING", RoutePlanning, false},
		{"  research  ", RouteResearch, false},
		{"marketing", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRoute(tt.in)
		if tt.wantErr {
			if !errors.Is(err, domain.ErrUnknownRoute) {
				t.Errorf("ParseRoute(%q): expected ErrUnknownRoute, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRoute(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRoute(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlanningRequestValidate(t *testing.T) {
	req := PlanningRequest{ProductName: "Nova", LaunchDate: "next tuesday"}
	if err := req.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	req = PlanningRequest{LaunchDate: "next tuesday"}
	err := req.Validate()
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "product_name") {
		t.Errorf("error should name the missing field: %v", err)
	}

	req = PlanningRequest{ProductName: "Nova"}
	err = req.Validate()
	if !errors.Is(err, domain.ErrValidation) || !strings.Contains(err.Error(), "launch_date") {
		t.Errorf("expected launch_date validation error, got %v", err)
	}
}

func TestAssetPrepRequestValidate(t *testing.T) {
	req := AssetPrepRequest{ProductName: "Nova", ElevatorPitch: "Analytics for everyone"}
	if err := req.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	req = AssetPrepRequest{ProductName: "Nova"}
	if err := req.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for missing pitch, got %v", err)
	}
}

func TestResearchRequestValidate(t *testing.T) {
	req := ResearchRequest{ProductCategory: "developer tools"}
	if err := req.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	req = ResearchRequest{}
	if err := req.Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for missing category, got %v", err)
	}
}
