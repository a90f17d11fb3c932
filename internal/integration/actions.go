// Package integration implements the integration store: the configured
// external system connectors.
package integration

import (
	"fmt"

	"github.com/rcliao/agent-console/internal/model"
	"github.com/rcliao/agent-console/internal/reducer"
)

// ActionType is the discriminant carried on the wire.
type ActionType string

const (
	ActionAdd    ActionType = "ADD_INTEGRATION"
	ActionRemove ActionType = "REMOVE_INTEGRATION"
	ActionUpdate ActionType = "UPDATE_INTEGRATION"
	ActionReset  ActionType = "RESET_INTEGRATIONS"
	ActionImport ActionType = "IMPORT_INTEGRATIONS"
)

// Action is an integration store mutation.
type Action interface {
	Kind() ActionType
}

type (
	Add    struct{ Integration model.Integration }
	Remove struct{ ID string }
	Update struct{ Patch model.IntegrationPatch }
	Reset  struct{}
	// Import replaces the whole integrations sequence.
	Import struct{ Integrations []model.Integration }
	// Unknown carries an unrecognized tag; reducing it is the identity.
	Unknown struct{ Type ActionType }
)

func (Add) Kind() ActionType { return ActionAdd }
func (Remove) Kind() ActionType { return ActionRemove }
func (Update) Kind() ActionType { return ActionUpdate }
func (Reset) Kind() ActionType { return ActionReset }
func (Import) Kind() ActionType { return ActionImport }
func (u Unknown) Kind() ActionType { return u.Type }

// DecodeAction parses {"type": ..., "payload": ...}. The IMPORT_INTEGRATIONS
// payload is the integrations array.
func DecodeAction(data []byte) (Action, error) {
	env, err := reducer.ParseEnvelope(data)
	if err != nil {
		return nil, err
	}

	switch ActionType(env.Type) {
	case ActionAdd:
		i, err := reducer.Payload[model.Integration](env)
		if err == nil && i.ID == "" {
			err = fmt.Errorf("%s: payload id is required", env.Type)
		}
		return Add{Integration: i}, err
	case ActionRemove:
		id, err := reducer.Payload[string](env)
		return Remove{ID: id}, err
	case ActionUpdate:
		p, err := reducer.Payload[model.IntegrationPatch](env)
		if err == nil && p.ID == "" {
			err = fmt.Errorf("%s: payload id is required", env.Type)
		}
		return Update{Patch: p}, err
	case ActionReset:
		return Reset{}, nil
	case ActionImport:
		list, err := reducer.Payload[[]model.Integration](env)
		return Import{Integrations: list}, err
	default:
		return Unknown{Type: ActionType(env.Type)}, nil
	}
}

// EncodeAction is the inverse of DecodeAction.
func EncodeAction(a Action) ([]byte, error) {
	var payload any
	switch a := a.(type) {
	case Reset, Unknown:
	case Add:
		payload = a.Integration
	case Remove:
		payload = a.ID
	case Update:
		payload = a.Patch
	case Import:
		payload = a.Integrations
	default:
		return nil, fmt.Errorf("encode action: unsupported type %T", a)
	}
	return reducer.Encode(string(a.Kind()), payload)
}
