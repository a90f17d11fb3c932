// Package model defines the core memory and integration data types.
package model

import (
	"fmt"
	"time"
)

// Priority is the shared low/medium/high ranking.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriorities are the allowed priority levels.
var ValidPriorities = map[Priority]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
}

func (p Priority) Valid() bool { return ValidPriorities[p] }

// PatternType classifies a learned pattern.
type PatternType string

const (
	PatternPreference PatternType = "preference"
	PatternBehavior   PatternType = "behavior"
	PatternSkill      PatternType = "skill"
	PatternDirective  PatternType = "directive"
)

// ValidPatternTypes are the allowed pattern types.
var ValidPatternTypes = map[PatternType]bool{
	PatternPreference: true,
	PatternBehavior:   true,
	PatternSkill:      true,
	PatternDirective:  true,
}

// PatternStatus is the lifecycle state of a pattern.
type PatternStatus string

const (
	PatternActive   PatternStatus = "active"
	PatternPending  PatternStatus = "pending"
	PatternArchived PatternStatus = "archived"
)

// Pattern is a learned behavioral or preference observation.
type Pattern struct {
	ID              string        `json:"id"`
	Type            PatternType   `json:"type"`
	Description     string        `json:"description"`
	Confidence      float64       `json:"confidence"`
	Source          string        `json:"source"`
	Timestamp       time.Time     `json:"timestamp"`
	Context         []string      `json:"context"`
	Status          PatternStatus `json:"status"`
	Priority        Priority      `json:"priority,omitempty"`
	Impact          []string      `json:"impact,omitempty"`
	RelatedPatterns []string      `json:"relatedPatterns,omitempty"`
}

// Validate checks the pattern invariants.
func (p Pattern) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("pattern id is required")
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return fmt.Errorf("pattern %s: confidence %v out of range [0,1]", p.ID, p.Confidence)
	}
	if !ValidPatternTypes[p.Type] {
		return fmt.Errorf("pattern %s: invalid type %q", p.ID, p.Type)
	}
	if p.Priority != "" && !p.Priority.Valid() {
		return fmt.Errorf("pattern %s: invalid priority %q", p.ID, p.Priority)
	}
	return nil
}

// Access controls who can read a knowledge base.
type Access string

const (
	AccessPublic  Access = "public"
	AccessPrivate Access = "private"
	AccessShared  Access = "shared"
)

// KnowledgeBase is a named collection of entries the system can draw on.
type KnowledgeBase struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Type         string    `json:"type"`
	Entries      int       `json:"entries"`
	LastUpdated  time.Time `json:"lastUpdated"`
	Category     string    `json:"category,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Access       Access    `json:"access,omitempty"`
	Format       string    `json:"format,omitempty"`
	Source       string    `json:"source,omitempty"`
	Version      string    `json:"version,omitempty"`
	Dependencies []string  `json:"dependencies,omitempty"`
}

// MessageType classifies a system message.
type MessageType string

const (
	MessageInput     MessageType = "input"
	MessageResponse  MessageType = "response"
	MessageError     MessageType = "error"
	MessageSuccess   MessageType = "success"
	MessageSystem    MessageType = "system"
	MessageDirective MessageType = "directive"
)

// MessageMetadata is optional message context.
type MessageMetadata struct {
	Source   string   `json:"source,omitempty"`
	Context  string   `json:"context,omitempty"`
	Priority Priority `json:"priority,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// SystemMessage is one entry of the communication log.
type SystemMessage struct {
	ID              string           `json:"id"`
	Content         string           `json:"content"`
	Type            MessageType      `json:"type"`
	Timestamp       time.Time        `json:"timestamp"`
	Metadata        *MessageMetadata `json:"metadata,omitempty"`
	RelatedMessages []string         `json:"relatedMessages,omitempty"`
}

// DirectiveStatus is toggled by an operator.
type DirectiveStatus string

const (
	DirectiveActive   DirectiveStatus = "active"
	DirectiveInactive DirectiveStatus = "inactive"
	DirectivePending  DirectiveStatus = "pending"
)

// DirectiveMetadata records authorship of a directive.
type DirectiveMetadata struct {
	Author   string `json:"author,omitempty"`
	Created  string `json:"created,omitempty"`
	Modified string `json:"modified,omitempty"`
	Version  string `json:"version,omitempty"`
}

// SystemDirective is an operator-authored rule.
type SystemDirective struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Type        string             `json:"type"`
	Priority    Priority           `json:"priority"`
	Status      DirectiveStatus    `json:"status"`
	Conditions  []string           `json:"conditions,omitempty"`
	Actions     []string           `json:"actions,omitempty"`
	Constraints []string           `json:"constraints,omitempty"`
	Metadata    *DirectiveMetadata `json:"metadata,omitempty"`
}

// DirectivePatch is a partial directive. Nil fields are left untouched.
type DirectivePatch struct {
	ID          string             `json:"id"`
	Name        *string            `json:"name,omitempty"`
	Description *string            `json:"description,omitempty"`
	Type        *string            `json:"type,omitempty"`
	Priority    *Priority          `json:"priority,omitempty"`
	Status      *DirectiveStatus   `json:"status,omitempty"`
	Conditions  *[]string          `json:"conditions,omitempty"`
	Actions     *[]string          `json:"actions,omitempty"`
	Constraints *[]string          `json:"constraints,omitempty"`
	Metadata    *DirectiveMetadata `json:"metadata,omitempty"`
}

// Apply shallow-merges the patch into d and returns the result.
func (p DirectivePatch) Apply(d SystemDirective) SystemDirective {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Type != nil {
		d.Type = *p.Type
	}
	if p.Priority != nil {
		d.Priority = *p.Priority
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.Conditions != nil {
		d.Conditions = *p.Conditions
	}
	if p.Actions != nil {
		d.Actions = *p.Actions
	}
	if p.Constraints != nil {
		d.Constraints = *p.Constraints
	}
	if p.Metadata != nil {
		d.Metadata = p.Metadata
	}
	return d
}

// ObjectiveStatus is the state of a learning objective.
type ObjectiveStatus string

const (
	ObjectivePending    ObjectiveStatus = "pending"
	ObjectiveInProgress ObjectiveStatus = "in_progress"
	ObjectiveCompleted  ObjectiveStatus = "completed"
	ObjectiveFailed     ObjectiveStatus = "failed"
)

// ObjectiveMetrics tracks how an objective is going.
type ObjectiveMetrics struct {
	Accuracy   *float64 `json:"accuracy,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	Iterations *int     `json:"iterations,omitempty"`
}

// LearningObjective is a tracked improvement goal.
type LearningObjective struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Status       ObjectiveStatus   `json:"status"`
	Priority     Priority          `json:"priority"`
	Progress     float64           `json:"progress"`
	Metrics      *ObjectiveMetrics `json:"metrics,omitempty"`
	Dependencies []string          `json:"dependencies,omitempty"`
	Outcomes     []string          `json:"outcomes,omitempty"`
}

// Validate checks the objective invariants.
func (o LearningObjective) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("objective id is required")
	}
	if o.Progress < 0 || o.Progress > 100 {
		return fmt.Errorf("objective %s: progress %v out of range [0,100]", o.ID, o.Progress)
	}
	return nil
}

// ObjectivePatch is a partial learning objective.
type ObjectivePatch struct {
	ID           string            `json:"id"`
	Name         *string           `json:"name,omitempty"`
	Description  *string           `json:"description,omitempty"`
	Status       *ObjectiveStatus  `json:"status,omitempty"`
	Priority     *Priority         `json:"priority,omitempty"`
	Progress     *float64          `json:"progress,omitempty"`
	Metrics      *ObjectiveMetrics `json:"metrics,omitempty"`
	Dependencies *[]string         `json:"dependencies,omitempty"`
	Outcomes     *[]string         `json:"outcomes,omitempty"`
}

// Apply shallow-merges the patch into o and returns the result.
func (p ObjectivePatch) Apply(o LearningObjective) LearningObjective {
	if p.Name != nil {
		o.Name = *p.Name
	}
	if p.Description != nil {
		o.Description = *p.Description
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.Priority != nil {
		o.Priority = *p.Priority
	}
	if p.Progress != nil {
		o.Progress = *p.Progress
	}
	if p.Metrics != nil {
		o.Metrics = p.Metrics
	}
	if p.Dependencies != nil {
		o.Dependencies = *p.Dependencies
	}
	if p.Outcomes != nil {
		o.Outcomes = *p.Outcomes
	}
	return o
}

// MemoryState is the full memory store snapshot.
type MemoryState struct {
	Patterns           []Pattern           `json:"patterns"`
	KnowledgeBases     []KnowledgeBase     `json:"knowledgeBases"`
	Messages           []SystemMessage     `json:"messages"`
	Directives         []SystemDirective   `json:"directives"`
	LearningObjectives []LearningObjective `json:"learningObjectives"`
}

// Normalized replaces nil collections with empty ones so that the
// serialized form always carries all five arrays.
func (s MemoryState) Normalized() MemoryState {
	if s.Patterns == nil {
		s.Patterns = []Pattern{}
	}
	if s.KnowledgeBases == nil {
		s.KnowledgeBases = []KnowledgeBase{}
	}
	if s.Messages == nil {
		s.Messages = []SystemMessage{}
	}
	if s.Directives == nil {
		s.Directives = []SystemDirective{}
	}
	if s.LearningObjectives == nil {
		s.LearningObjectives = []LearningObjective{}
	}
	return s
}

// MemoryFields are the top-level keys of a serialized MemoryState.
var MemoryFields = []string{"patterns", "knowledgeBases", "messages", "directives", "learningObjectives"}

// Validate checks every pattern and learning objective.
func (s MemoryState) Validate() error {
	for _, p := range s.Patterns {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for _, o := range s.LearningObjectives {
		if err := o.Validate(); err != nil {
			return err
		}
	}
	return nil
}
