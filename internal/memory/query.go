package memory

import (
	"slices"
	"strings"
	"time"

	"github.com/rcliao/agent-console/internal/model"
)

// SortOrder orders timestamped items.
type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// QueryParams holds parameters for filtering a memory snapshot.
type QueryParams struct {
	Priority    model.Priority    // empty or "all" disables the filter
	PatternType model.PatternType // empty or "all" disables the filter
	Search      string            // case-insensitive substring on name/description/content
	Order       SortOrder         // defaults to desc
}

// Query returns the subset of state matching p. Items without a priority
// are dropped when a priority filter is set. Items without a timestamp keep
// their insertion order.
func Query(state model.MemoryState, p QueryParams) model.MemoryState {
	if p.Priority == "all" {
		p.Priority = ""
	}
	if p.PatternType == "all" {
		p.PatternType = ""
	}
	q := strings.ToLower(p.Search)

	matches := func(prio model.Priority, text ...string) bool {
		if p.Priority != "" && prio != p.Priority {
			return false
		}
		if q == "" {
			return true
		}
		for _, t := range text {
			if strings.Contains(strings.ToLower(t), q) {
				return true
			}
		}
		return false
	}

	out := model.MemoryState{
		Patterns: filter(state.Patterns, func(v model.Pattern) bool {
			if p.PatternType != "" && v.Type != p.PatternType {
				return false
			}
			return matches(v.Priority, v.Description)
		}),
		KnowledgeBases: filter(state.KnowledgeBases, func(v model.KnowledgeBase) bool {
			return matches("", v.Name, v.Description)
		}),
		Messages: filter(state.Messages, func(v model.SystemMessage) bool {
			var prio model.Priority
			if v.Metadata != nil {
				prio = v.Metadata.Priority
			}
			return matches(prio, v.Content)
		}),
		Directives: filter(state.Directives, func(v model.SystemDirective) bool {
			return matches(v.Priority, v.Name, v.Description)
		}),
		LearningObjectives: filter(state.LearningObjectives, func(v model.LearningObjective) bool {
			return matches(v.Priority, v.Name, v.Description)
		}),
	}

	sortByTime(out.Patterns, p.Order, func(v model.Pattern) time.Time { return v.Timestamp })
	sortByTime(out.KnowledgeBases, p.Order, func(v model.KnowledgeBase) time.Time { return v.LastUpdated })
	sortByTime(out.Messages, p.Order, func(v model.SystemMessage) time.Time { return v.Timestamp })
	return out
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, v := range items {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func sortByTime[T any](items []T, order SortOrder, at func(T) time.Time) {
	slices.SortStableFunc(items, func(a, b T) int {
		if order == SortAsc {
			return at(a).Compare(at(b))
		}
		return at(b).Compare(at(a))
	})
}
