package memory

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/agent-console/internal/model"
)

var seedTime = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newPattern(id string) model.Pattern {
	return model.Pattern{
		ID:          id,
		Type:        model.PatternPreference,
		Description: "prefers short answers",
		Confidence:  0.7,
		Source:      "test",
		Timestamp:   seedTime,
		Context:     []string{"style"},
		Status:      model.PatternPending,
	}
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, v := range items {
		out = append(out, id(v))
	}
	return out
}

func TestSeedShape(t *testing.T) {
	s := Seed(seedTime)
	assert.Len(t, s.Patterns, 2)
	assert.Len(t, s.KnowledgeBases, 2)
	assert.Len(t, s.Messages, 1)
	assert.Len(t, s.Directives, 2)
	assert.Len(t, s.LearningObjectives, 2)
	for _, p := range s.Patterns {
		assert.NoError(t, p.Validate())
	}
}

func TestAddThenRemovePattern(t *testing.T) {
	s := Seed(seedTime)

	s = Reduce(s, AddPattern{Pattern: newPattern("3")})
	require.Len(t, s.Patterns, 3)
	assert.Equal(t, "3", s.Patterns[2].ID)

	s = Reduce(s, RemovePattern{ID: "1"})
	assert.Equal(t, []string{"2", "3"}, ids(s.Patterns, patternID))
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	actions := []Action{
		AddPattern{Pattern: newPattern("9")},
		RemovePattern{ID: "1"},
		AddKnowledge{KnowledgeBase: model.KnowledgeBase{ID: "9", Name: "kb"}},
		RemoveKnowledge{ID: "2"},
		AddMessage{Message: NewMessage("9", "hello", seedTime)},
		RemoveMessage{ID: "1"},
		AddDirective{Directive: model.SystemDirective{ID: "9", Name: "d"}},
		RemoveDirective{ID: "1"},
		ToggleDirective(Seed(seedTime).Directives[0]),
		AddObjective{Objective: model.LearningObjective{ID: "9", Name: "o"}},
		ToggleObjective(Seed(seedTime).LearningObjectives[0]),
		RemoveObjective{ID: "2"},
		Reset{},
		Import{State: model.MemoryState{Patterns: []model.Pattern{newPattern("x")}}},
		Unknown{Type: "SOMETHING_ELSE"},
	}

	for _, a := range actions {
		t.Run(string(a.Kind()), func(t *testing.T) {
			s := Seed(seedTime)
			before := Seed(seedTime)

			first := Reduce(s, a)
			second := Reduce(s, a)

			if diff := cmp.Diff(before, s); diff != "" {
				t.Fatalf("input mutated (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(first, second); diff != "" {
				t.Fatalf("reduce not deterministic (-first +second):\n%s", diff)
			}
		})
	}
}

func TestAddRemoveInverse(t *testing.T) {
	s := Seed(seedTime)

	cases := []struct {
		name   string
		add    Action
		remove Action
	}{
		{"pattern", AddPattern{Pattern: newPattern("new")}, RemovePattern{ID: "new"}},
		{"knowledge", AddKnowledge{KnowledgeBase: model.KnowledgeBase{ID: "new"}}, RemoveKnowledge{ID: "new"}},
		{"message", AddMessage{Message: NewMessage("new", "hi", seedTime)}, RemoveMessage{ID: "new"}},
		{"directive", AddDirective{Directive: model.SystemDirective{ID: "new"}}, RemoveDirective{ID: "new"}},
		{"objective", AddObjective{Objective: model.LearningObjective{ID: "new"}}, RemoveObjective{ID: "new"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Reduce(Reduce(s, tc.add), tc.remove)
			if diff := cmp.Diff(s, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("add then remove changed state (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnknownIDIsNoOp(t *testing.T) {
	s := Seed(seedTime)
	name := "renamed"
	status := model.ObjectiveCompleted

	for _, a := range []Action{
		RemovePattern{ID: "does-not-exist"},
		RemoveKnowledge{ID: "does-not-exist"},
		RemoveMessage{ID: "does-not-exist"},
		RemoveDirective{ID: "does-not-exist"},
		RemoveObjective{ID: "does-not-exist"},
		UpdateDirective{Patch: model.DirectivePatch{ID: "does-not-exist", Name: &name}},
		UpdateObjective{Patch: model.ObjectivePatch{ID: "does-not-exist", Status: &status}},
		Unknown{Type: "NOT_A_REAL_ACTION"},
	} {
		got := Reduce(s, a)
		if diff := cmp.Diff(s, got); diff != "" {
			t.Errorf("%s changed state (-want +got):\n%s", a.Kind(), diff)
		}
	}
}

func TestResetClearsEverything(t *testing.T) {
	s := Reduce(Seed(seedTime), Reset{})
	assert.Empty(t, s.Patterns)
	assert.Empty(t, s.KnowledgeBases)
	assert.Empty(t, s.Messages)
	assert.Empty(t, s.Directives)
	assert.Empty(t, s.LearningObjectives)
	assert.NotNil(t, s.Patterns, "collections stay non-nil so they serialize as []")
}

func TestImportReplacesWholesale(t *testing.T) {
	s := Seed(seedTime)
	imported := model.MemoryState{Patterns: []model.Pattern{newPattern("a")}}

	got := Reduce(s, Import{State: imported})
	assert.Equal(t, []string{"a"}, ids(got.Patterns, patternID))
	assert.Empty(t, got.KnowledgeBases)
	assert.NotNil(t, got.LearningObjectives)

	imported.Patterns[0].Description = "changed after import"
	assert.Equal(t, "prefers short answers", got.Patterns[0].Description)
}

func TestAddDoesNotDeduplicate(t *testing.T) {
	s := Reduce(Seed(seedTime), AddPattern{Pattern: newPattern("1")})
	assert.Equal(t, []string{"1", "2", "1"}, ids(s.Patterns, patternID))

	s = Reduce(s, RemovePattern{ID: "1"})
	assert.Equal(t, []string{"2"}, ids(s.Patterns, patternID))
}

func TestUpdateDirectiveMerges(t *testing.T) {
	s := Seed(seedTime)
	name := "Privacy Always"

	got := Reduce(s, UpdateDirective{Patch: model.DirectivePatch{ID: "1", Name: &name}})
	assert.Equal(t, "Privacy Always", got.Directives[0].Name)
	assert.Equal(t, s.Directives[0].Description, got.Directives[0].Description)
	assert.Equal(t, s.Directives[0].Actions, got.Directives[0].Actions)
	assert.Equal(t, "Privacy First", s.Directives[0].Name)
}

func TestToggles(t *testing.T) {
	s := Seed(seedTime)

	s = Reduce(s, ToggleDirective(s.Directives[0]))
	assert.Equal(t, model.DirectiveInactive, s.Directives[0].Status)
	s = Reduce(s, ToggleDirective(s.Directives[0]))
	assert.Equal(t, model.DirectiveActive, s.Directives[0].Status)

	pending := model.SystemDirective{ID: "p", Status: model.DirectivePending}
	assert.Equal(t, model.DirectiveActive, *ToggleDirective(pending).Patch.Status)

	s = Reduce(s, ToggleObjective(s.LearningObjectives[1]))
	assert.Equal(t, model.ObjectiveCompleted, s.LearningObjectives[1].Status)
	s = Reduce(s, ToggleObjective(s.LearningObjectives[1]))
	assert.Equal(t, model.ObjectiveInProgress, s.LearningObjectives[1].Status)
	assert.Equal(t, float64(45), s.LearningObjectives[1].Progress)
}
