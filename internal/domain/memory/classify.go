package memory

import "strings"

// preferenceMarkers are phrases that indicate a statement is about how the
// user wants to work (tone, timing, style) rather than about the product.
var preferenceMarkers = []string{
	"tone",
	"style",
	"voice",
	"prefer",
	"timing",
	"schedule",
	"casual",
	"formal",
	"playful",
	"professional",
}

// Classify assigns a strategy to a free-text statement. Statements about
// tone, timing, or style are preferences; everything else (the product
// itself, its features, research findings) is semantic.
func Classify(content string) Strategy {
	lower := strings.ToLower(content)
	for _, marker := range preferenceMarkers {
		if strings.Contains(lower, marker) {
			return StrategyPreference
		}
	}
	return StrategySemantic
}
