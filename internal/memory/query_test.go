package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/agent-console/internal/model"
)

func TestQueryFilters(t *testing.T) {
	s := Seed(seedTime)

	got := Query(s, QueryParams{Priority: model.PriorityHigh})
	assert.Equal(t, []string{"1"}, ids(got.Patterns, patternID))
	assert.Equal(t, []string{"1"}, ids(got.Directives, directiveID))
	assert.Equal(t, []string{"1"}, ids(got.LearningObjectives, objectiveID))
	assert.Len(t, got.Messages, 1)
	assert.Empty(t, got.KnowledgeBases, "knowledge bases carry no priority")

	got = Query(s, QueryParams{PatternType: model.PatternBehavior})
	assert.Equal(t, []string{"2"}, ids(got.Patterns, patternID))
	assert.Len(t, got.KnowledgeBases, 2)

	got = Query(s, QueryParams{Search: "PRIVACY"})
	assert.Equal(t, []string{"1"}, ids(got.Patterns, patternID))
	assert.Equal(t, []string{"1"}, ids(got.Directives, directiveID))
	assert.Empty(t, got.LearningObjectives)

	all := Query(s, QueryParams{Priority: "all", PatternType: "all"})
	assert.Len(t, all.Patterns, 2)
	assert.Len(t, all.KnowledgeBases, 2)
}

func TestQuerySortsByTime(t *testing.T) {
	s := Seed(seedTime)
	older := newPattern("old")
	older.Timestamp = seedTime.Add(-time.Hour)
	newer := newPattern("new")
	newer.Timestamp = seedTime.Add(time.Hour)
	s = Reduce(s, AddPattern{Pattern: older})
	s = Reduce(s, AddPattern{Pattern: newer})

	desc := Query(s, QueryParams{})
	assert.Equal(t, []string{"new", "1", "2", "old"}, ids(desc.Patterns, patternID))

	asc := Query(s, QueryParams{Order: SortAsc})
	assert.Equal(t, []string{"old", "1", "2", "new"}, ids(asc.Patterns, patternID))

	assert.Equal(t, []string{"1", "2", "old", "new"}, ids(s.Patterns, patternID), "query must not reorder the input")
}

func TestComputeStats(t *testing.T) {
	s := Seed(seedTime)
	s = Reduce(s, AddPattern{Pattern: newPattern("3")})
	s = Reduce(s, AddPattern{Pattern: newPattern("4")})
	s = Reduce(s, ToggleDirective(s.Directives[1]))

	st := ComputeStats(s)
	assert.Equal(t, 4, st.Patterns)
	assert.Equal(t, 37, st.KnowledgeEntries)
	assert.Equal(t, 1, st.ActiveDirectives)
	assert.Equal(t, 2, st.LearningObjectives)
	assert.Equal(t, []PatternTypeCount{
		{Type: model.PatternDirective, Count: 1},
		{Type: model.PatternBehavior, Count: 1},
		{Type: model.PatternPreference, Count: 2},
	}, st.PatternsByType)
}

func TestReconstructSkills(t *testing.T) {
	now := seedTime.Add(time.Hour)
	s := Seed(seedTime)
	assert.Empty(t, ReconstructSkills(s, now))

	skill := newPattern("s1")
	skill.Type = model.PatternSkill
	skill.Confidence = 0.6
	skill.Context = []string{"go", "sql"}
	undated := newPattern("s2")
	undated.Type = model.PatternSkill
	undated.Timestamp = time.Time{}
	s = Reduce(s, AddPattern{Pattern: skill})
	s = Reduce(s, AddPattern{Pattern: undated})

	skills := ReconstructSkills(s, now)
	require.Len(t, skills, 2)
	assert.Equal(t, Skill{
		Type:                     model.PatternSkill,
		Complexity:               0.6,
		LastUsed:                 seedTime,
		UsageFrequency:           1,
		ReconstructionConfidence: 0.6,
		Dependencies:             []string{"go", "sql"},
	}, skills["s1"])
	assert.Equal(t, now, skills["s2"].LastUsed)
}

func TestRelated(t *testing.T) {
	s := Seed(seedTime)
	p := newPattern("3")
	p.RelatedPatterns = []string{"1", "gone"}
	s = Reduce(s, AddPattern{Pattern: p})

	related, dangling, ok := Related(s, "3")
	require.True(t, ok)
	assert.Equal(t, []string{"1"}, ids(related, patternID))
	assert.Equal(t, []string{"gone"}, dangling)

	_, _, ok = Related(s, "missing")
	assert.False(t, ok)
}
