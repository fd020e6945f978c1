package analyzer

import "strings"

// Classify derives the verdict from a model answer. The answer is safe when
// it mentions "safe" without "not safe", and flags a breaking change when it
// mentions "breaking". Matching is case-insensitive.
func Classify(answer string) (safe, breaking bool) {
	lower := strings.ToLower(answer)
	safe = strings.Contains(lower, "safe") && !strings.Contains(lower, "not safe")
	breaking = strings.Contains(lower, "breaking")
	return safe, breaking
}
