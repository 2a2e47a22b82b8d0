package service

import (
	"strings"
)

// memoryBlock renders retrieved memory as a prompt preamble. Empty context
// yields an empty string so prompts stay clean for new users.
func memoryBlock(mc Context) string {
	if len(mc.Preferences) == 0 && len(mc.Semantic) == 0 {
		return ""
	}

	var b strings.Builder
	if len(mc.Preferences) > 0 {
		b.WriteString("User preferences:\n")
		for _, p := range mc.Preferences {
			b.WriteString("- " + p + "\n")
		}
	}
	if len(mc.Semantic) > 0 {
		b.WriteString("Known product context:\n")
		for _, s := range mc.Semantic {
			b.WriteString("- " + s + "\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

// extractJSONBlock pulls the first top-level JSON object out of model output,
// tolerating markdown fences and surrounding prose.
func extractJSONBlock(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}

// splitListLines turns model output into clean list items, stripping bullets,
// numbering, and quotes.
func splitListLines(s string, max int) []string {
	var items []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		for i := 0; i < len(line); i++ {
			if line[i] >= '0' && line[i] <= '9' {
				continue
			}
			if line[i] == '.' || line[i] == ')' {
				line = strings.TrimSpace(line[i+1:])
			}
			break
		}
		line = strings.Trim(line, `"`)
		if line == "" {
			continue
		}
		items = append(items, line)
		if len(items) == max {
			break
		}
	}
	return items
}
