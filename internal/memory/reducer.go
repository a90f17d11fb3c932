package memory

import (
	"slices"

	"github.com/rcliao/agent-console/internal/model"
	"github.com/rcliao/agent-console/internal/reducer"
)

func patternID(p model.Pattern) string { return p.ID }
func knowledgeID(kb model.KnowledgeBase) string { return kb.ID }
func messageID(m model.SystemMessage) string { return m.ID }
func directiveID(d model.SystemDirective) string { return d.ID }
func objectiveID(o model.LearningObjective) string { return o.ID }

// Reduce returns the state that results from applying a to state. It never
// modifies state; collections that change are copied. Removing or updating
// an id that is not present, and unknown actions, return state unchanged.
// Reduce does not validate entities; DecodeAction and the store's import
// path do.
func Reduce(state model.MemoryState, a Action) model.MemoryState {
	switch a := a.(type) {
	case Reset:
		return model.MemoryState{}.Normalized()

	case Import:
		// Wholesale replace: collections missing from the document end up empty.
		return model.MemoryState{
			Patterns:           slices.Clone(a.State.Patterns),
			KnowledgeBases:     slices.Clone(a.State.KnowledgeBases),
			Messages:           slices.Clone(a.State.Messages),
			Directives:         slices.Clone(a.State.Directives),
			LearningObjectives: slices.Clone(a.State.LearningObjectives),
		}.Normalized()

	case AddPattern:
		state.Patterns = reducer.Append(state.Patterns, a.Pattern)
	case RemovePattern:
		state.Patterns = reducer.Without(state.Patterns, a.ID, patternID)

	case AddKnowledge:
		state.KnowledgeBases = reducer.Append(state.KnowledgeBases, a.KnowledgeBase)
	case RemoveKnowledge:
		state.KnowledgeBases = reducer.Without(state.KnowledgeBases, a.ID, knowledgeID)

	case AddMessage:
		state.Messages = reducer.Append(state.Messages, a.Message)
	case RemoveMessage:
		state.Messages = reducer.Without(state.Messages, a.ID, messageID)

	case AddDirective:
		state.Directives = reducer.Append(state.Directives, a.Directive)
	case RemoveDirective:
		state.Directives = reducer.Without(state.Directives, a.ID, directiveID)
	case UpdateDirective:
		state.Directives = reducer.Update(state.Directives, a.Patch.ID, directiveID, a.Patch.Apply)

	case AddObjective:
		state.LearningObjectives = reducer.Append(state.LearningObjectives, a.Objective)
	case UpdateObjective:
		state.LearningObjectives = reducer.Update(state.LearningObjectives, a.Patch.ID, objectiveID, a.Patch.Apply)
	case RemoveObjective:
		state.LearningObjectives = reducer.Without(state.LearningObjectives, a.ID, objectiveID)
	}
	return state
}
