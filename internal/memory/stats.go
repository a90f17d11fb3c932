package memory

import "github.com/rcliao/agent-console/internal/model"

// Stats holds memory store counts.
type Stats struct {
	Patterns           int                `json:"patterns"`
	KnowledgeBases     int                `json:"knowledge_bases"`
	KnowledgeEntries   int                `json:"knowledge_entries"`
	Messages           int                `json:"messages"`
	Directives         int                `json:"directives"`
	ActiveDirectives   int                `json:"active_directives"`
	LearningObjectives int                `json:"learning_objectives"`
	PatternsByType     []PatternTypeCount `json:"patterns_by_type"`
}

// PatternTypeCount holds per-type pattern counts.
type PatternTypeCount struct {
	Type  model.PatternType `json:"type"`
	Count int               `json:"count"`
}

// ComputeStats summarizes a memory snapshot.
func ComputeStats(state model.MemoryState) *Stats {
	st := &Stats{
		Patterns:           len(state.Patterns),
		KnowledgeBases:     len(state.KnowledgeBases),
		Messages:           len(state.Messages),
		Directives:         len(state.Directives),
		LearningObjectives: len(state.LearningObjectives),
	}

	for _, kb := range state.KnowledgeBases {
		st.KnowledgeEntries += kb.Entries
	}
	for _, d := range state.Directives {
		if d.Status == model.DirectiveActive {
			st.ActiveDirectives++
		}
	}

	counts := map[model.PatternType]int{}
	var order []model.PatternType
	for _, p := range state.Patterns {
		if counts[p.Type] == 0 {
			order = append(order, p.Type)
		}
		counts[p.Type]++
	}
	for _, t := range order {
		st.PatternsByType = append(st.PatternsByType, PatternTypeCount{Type: t, Count: counts[t]})
	}

	return st
}
