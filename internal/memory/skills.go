package memory

import (
	"time"

	"github.com/rcliao/agent-console/internal/model"
)

// Skill is a capability reconstructed from a skill pattern.
type Skill struct {
	Type                     model.PatternType `json:"type"`
	Complexity               float64           `json:"complexity"`
	LastUsed                 time.Time         `json:"lastUsed"`
	UsageFrequency           int               `json:"usageFrequency"`
	ReconstructionConfidence float64           `json:"reconstructionConfidence"`
	Dependencies             []string          `json:"dependencies,omitempty"`
}

// ReconstructSkills derives the skill map from the patterns of type skill,
// keyed by pattern id. A pattern without a timestamp is stamped with now.
func ReconstructSkills(state model.MemoryState, now time.Time) map[string]Skill {
	skills := map[string]Skill{}
	for _, p := range state.Patterns {
		if p.Type != model.PatternSkill {
			continue
		}
		last := p.Timestamp
		if last.IsZero() {
			last = now.UTC()
		}
		skills[p.ID] = Skill{
			Type:                     p.Type,
			Complexity:               p.Confidence,
			LastUsed:                 last,
			UsageFrequency:           1,
			ReconstructionConfidence: p.Confidence,
			Dependencies:             p.Context,
		}
	}
	return skills
}

// Related resolves the relatedPatterns references of the pattern with the
// given id. References to patterns that no longer exist are returned in
// dangling rather than treated as an error. ok is false when id itself is
// not present.
func Related(state model.MemoryState, id string) (related []model.Pattern, dangling []string, ok bool) {
	var src *model.Pattern
	for i := range state.Patterns {
		if state.Patterns[i].ID == id {
			src = &state.Patterns[i]
			break
		}
	}
	if src == nil {
		return nil, nil, false
	}

	for _, ref := range src.RelatedPatterns {
		found := false
		for _, p := range state.Patterns {
			if p.ID == ref {
				related = append(related, p)
				found = true
				break
			}
		}
		if !found {
			dangling = append(dangling, ref)
		}
	}
	return related, dangling, true
}
