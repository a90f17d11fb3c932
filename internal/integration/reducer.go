package integration

import (
	"slices"

	"github.com/rcliao/agent-console/internal/model"
	"github.com/rcliao/agent-console/internal/reducer"
)

func integrationID(i model.Integration) string { return i.ID }

// Reduce returns the state that results from applying a to state without
// modifying state.
func Reduce(state model.IntegrationState, a Action) model.IntegrationState {
	switch a := a.(type) {
	case Add:
		state.Integrations = reducer.Append(state.Integrations, a.Integration)
	case Remove:
		state.Integrations = reducer.Without(state.Integrations, a.ID, integrationID)
	case Update:
		state.Integrations = reducer.Update(state.Integrations, a.Patch.ID, integrationID, a.Patch.Apply)
	case Reset:
		return model.IntegrationState{}.Normalized()
	case Import:
		return model.IntegrationState{Integrations: slices.Clone(a.Integrations)}.Normalized()
	}
	return state
}
