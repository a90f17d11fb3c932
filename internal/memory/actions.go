// Package memory implements the memory store: patterns, knowledge bases,
// messages, directives and learning objectives, mutated only through actions.
package memory

import (
	"fmt"

	"github.com/rcliao/agent-console/internal/model"
	"github.com/rcliao/agent-console/internal/reducer"
)

// ActionType is the discriminant carried on the wire.
type ActionType string

const (
	ActionReset           ActionType = "RESET_MEMORY"
	ActionImport          ActionType = "IMPORT_STATE"
	ActionAddPattern      ActionType = "ADD_PATTERN"
	ActionRemovePattern   ActionType = "REMOVE_PATTERN"
	ActionAddKnowledge    ActionType = "ADD_KNOWLEDGE"
	ActionRemoveKnowledge ActionType = "REMOVE_KNOWLEDGE"
	ActionAddMessage      ActionType = "ADD_MESSAGE"
	ActionRemoveMessage   ActionType = "REMOVE_MESSAGE"
	ActionAddDirective    ActionType = "ADD_DIRECTIVE"
	ActionRemoveDirective ActionType = "REMOVE_DIRECTIVE"
	ActionUpdateDirective ActionType = "UPDATE_DIRECTIVE"
	ActionAddObjective    ActionType = "ADD_OBJECTIVE"
	ActionUpdateObjective ActionType = "UPDATE_OBJECTIVE"
	ActionRemoveObjective ActionType = "REMOVE_OBJECTIVE"
)

// Action is a memory store mutation.
type Action interface {
	Kind() ActionType
}

type (
	Reset           struct{}
	Import          struct{ State model.MemoryState }
	AddPattern      struct{ Pattern model.Pattern }
	RemovePattern   struct{ ID string }
	AddKnowledge    struct{ KnowledgeBase model.KnowledgeBase }
	RemoveKnowledge struct{ ID string }
	AddMessage      struct{ Message model.SystemMessage }
	RemoveMessage   struct{ ID string }
	AddDirective    struct{ Directive model.SystemDirective }
	RemoveDirective struct{ ID string }
	UpdateDirective struct{ Patch model.DirectivePatch }
	AddObjective    struct{ Objective model.LearningObjective }
	UpdateObjective struct{ Patch model.ObjectivePatch }
	RemoveObjective struct{ ID string }

	// Unknown carries a tag this package does not recognize. Reducing it
	// is the identity.
	Unknown struct{ Type ActionType }
)

func (Reset) Kind() ActionType { return ActionReset }
func (Import) Kind() ActionType { return ActionImport }
func (AddPattern) Kind() ActionType { return ActionAddPattern }
func (RemovePattern) Kind() ActionType { return ActionRemovePattern }
func (AddKnowledge) Kind() ActionType { return ActionAddKnowledge }
func (RemoveKnowledge) Kind() ActionType { return ActionRemoveKnowledge }
func (AddMessage) Kind() ActionType { return ActionAddMessage }
func (RemoveMessage) Kind() ActionType { return ActionRemoveMessage }
func (AddDirective) Kind() ActionType { return ActionAddDirective }
func (RemoveDirective) Kind() ActionType { return ActionRemoveDirective }
func (UpdateDirective) Kind() ActionType { return ActionUpdateDirective }
func (AddObjective) Kind() ActionType { return ActionAddObjective }
func (UpdateObjective) Kind() ActionType { return ActionUpdateObjective }
func (RemoveObjective) Kind() ActionType { return ActionRemoveObjective }
func (u Unknown) Kind() ActionType { return u.Type }

// DecodeAction parses {"type": ..., "payload": ...}. Remove actions take the
// id string as payload; update actions take a partial entity with an id.
func DecodeAction(data []byte) (Action, error) {
	env, err := reducer.ParseEnvelope(data)
	if err != nil {
		return nil, err
	}

	switch ActionType(env.Type) {
	case ActionReset:
		return Reset{}, nil
	case ActionImport:
		s, err := reducer.Payload[model.MemoryState](env)
		return Import{State: s}, err
	case ActionAddPattern:
		p, err := reducer.Payload[model.Pattern](env)
		if err == nil {
			err = p.Validate()
		}
		return AddPattern{Pattern: p}, err
	case ActionRemovePattern:
		id, err := reducer.Payload[string](env)
		return RemovePattern{ID: id}, err
	case ActionAddKnowledge:
		kb, err := reducer.Payload[model.KnowledgeBase](env)
		return AddKnowledge{KnowledgeBase: kb}, err
	case ActionRemoveKnowledge:
		id, err := reducer.Payload[string](env)
		return RemoveKnowledge{ID: id}, err
	case ActionAddMessage:
		m, err := reducer.Payload[model.SystemMessage](env)
		return AddMessage{Message: m}, err
	case ActionRemoveMessage:
		id, err := reducer.Payload[string](env)
		return RemoveMessage{ID: id}, err
	case ActionAddDirective:
		d, err := reducer.Payload[model.SystemDirective](env)
		return AddDirective{Directive: d}, err
	case ActionRemoveDirective:
		id, err := reducer.Payload[string](env)
		return RemoveDirective{ID: id}, err
	case ActionUpdateDirective:
		p, err := reducer.Payload[model.DirectivePatch](env)
		if err == nil && p.ID == "" {
			err = fmt.Errorf("%s: payload id is required", env.Type)
		}
		return UpdateDirective{Patch: p}, err
	case ActionAddObjective:
		o, err := reducer.Payload[model.LearningObjective](env)
		if err == nil {
			err = o.Validate()
		}
		return AddObjective{Objective: o}, err
	case ActionUpdateObjective:
		p, err := reducer.Payload[model.ObjectivePatch](env)
		if err == nil && p.ID == "" {
			err = fmt.Errorf("%s: payload id is required", env.Type)
		}
		return UpdateObjective{Patch: p}, err
	case ActionRemoveObjective:
		id, err := reducer.Payload[string](env)
		return RemoveObjective{ID: id}, err
	default:
		return Unknown{Type: ActionType(env.Type)}, nil
	}
}

// EncodeAction is the inverse of DecodeAction.
func EncodeAction(a Action) ([]byte, error) {
	var payload any
	switch a := a.(type) {
	case Reset, Unknown:
	case Import:
		payload = a.State
	case AddPattern:
		payload = a.Pattern
	case RemovePattern:
		payload = a.ID
	case AddKnowledge:
		payload = a.KnowledgeBase
	case RemoveKnowledge:
		payload = a.ID
	case AddMessage:
		payload = a.Message
	case RemoveMessage:
		payload = a.ID
	case AddDirective:
		payload = a.Directive
	case RemoveDirective:
		payload = a.ID
	case UpdateDirective:
		payload = a.Patch
	case AddObjective:
		payload = a.Objective
	case UpdateObjective:
		payload = a.Patch
	case RemoveObjective:
		payload = a.ID
	default:
		return nil, fmt.Errorf("encode action: unsupported type %T", a)
	}
	return reducer.Encode(string(a.Kind()), payload)
}

// ToggleDirective flips an operator directive between active and inactive.
// A pending directive becomes active.
func ToggleDirective(d model.SystemDirective) UpdateDirective {
	next := model.DirectiveActive
	if d.Status == model.DirectiveActive {
		next = model.DirectiveInactive
	}
	return UpdateDirective{Patch: model.DirectivePatch{ID: d.ID, Status: &next}}
}

// ToggleObjective flips an objective between in_progress and completed.
// Any other status restarts it as in_progress.
func ToggleObjective(o model.LearningObjective) UpdateObjective {
	next := model.ObjectiveInProgress
	if o.Status == model.ObjectiveInProgress {
		next = model.ObjectiveCompleted
	}
	return UpdateObjective{Patch: model.ObjectivePatch{ID: o.ID, Status: &next}}
}
