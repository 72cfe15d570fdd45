package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/buildwise/buildwise-backend/internal/planner/domain"
)

// ParseNarrative decodes model output, tolerating markdown code fences.
func ParseNarrative(content string) (domain.Narrative, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var n domain.Narrative
	if content == "" {
		return n, fmt.Errorf("%w: empty response", domain.ErrNarrativeParse)
	}
	if err := json.Unmarshal([]byte(content), &n); err != nil {
		return n, fmt.Errorf("%w: %v (response: %.200s)", domain.ErrNarrativeParse, err, content)
	}
	return n, nil
}
