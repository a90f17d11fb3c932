package memory

import (
	"time"

	"github.com/rcliao/agent-console/internal/model"
)

func ptr[T any](v T) *T { return &v }

// Seed returns the built-in state used when nothing has been persisted yet.
func Seed(now time.Time) model.MemoryState {
	now = now.UTC()
	return model.MemoryState{
		Patterns: []model.Pattern{
			{
				ID:          "1",
				Type:        model.PatternDirective,
				Description: "Prioritize user safety and data privacy in all operations",
				Confidence:  1.0,
				Source:      "System Core",
				Timestamp:   now,
				Context:     []string{"security", "privacy", "user protection"},
				Status:      model.PatternActive,
				Priority:    model.PriorityHigh,
				Impact:      []string{"All system operations", "Data handling", "User interactions"},
			},
			{
				ID:          "2",
				Type:        model.PatternBehavior,
				Description: "Adapt communication style based on user expertise level",
				Confidence:  0.95,
				Source:      "Interaction Analysis",
				Timestamp:   now,
				Context:     []string{"communication", "user experience", "adaptability"},
				Status:      model.PatternActive,
				Priority:    model.PriorityMedium,
			},
		},
		KnowledgeBases: []model.KnowledgeBase{
			{
				ID:          "1",
				Name:        "Core System Directives",
				Description: "Fundamental behavioral and operational guidelines",
				Type:        "directive",
				Entries:     12,
				LastUpdated: now,
				Category:    "system",
				Access:      model.AccessPrivate,
				Version:     "1.0",
			},
			{
				ID:          "2",
				Name:        "Learning Patterns",
				Description: "Collected learning patterns and adaptations",
				Type:        "learning",
				Entries:     25,
				LastUpdated: now,
				Category:    "learning",
				Access:      model.AccessPrivate,
			},
		},
		Messages: []model.SystemMessage{
			{
				ID:        "1",
				Content:   "Initiating system learning protocols",
				Type:      model.MessageSystem,
				Timestamp: now,
				Metadata: &model.MessageMetadata{
					Source:   "System Core",
					Priority: model.PriorityHigh,
					Tags:     []string{"initialization", "learning"},
				},
			},
		},
		Directives: []model.SystemDirective{
			{
				ID:          "1",
				Name:        "Privacy First",
				Description: "Ensure user data privacy and security in all operations",
				Type:        "security",
				Priority:    model.PriorityHigh,
				Status:      model.DirectiveActive,
				Conditions:  []string{"All data operations", "External communications"},
				Actions:     []string{"Encrypt sensitive data", "Validate data access", "Log security events"},
				Constraints: []string{"No unauthorized data sharing", "Minimum necessary access"},
			},
			{
				ID:          "2",
				Name:        "Adaptive Learning",
				Description: "Continuously adapt and improve based on user interactions",
				Type:        "learning",
				Priority:    model.PriorityMedium,
				Status:      model.DirectiveActive,
				Conditions:  []string{"User interactions", "Task completion"},
				Actions:     []string{"Pattern recognition", "Behavior adaptation", "Performance optimization"},
			},
		},
		LearningObjectives: []model.LearningObjective{
			{
				ID:          "1",
				Name:        "Communication Optimization",
				Description: "Improve response accuracy and relevance",
				Status:      model.ObjectiveInProgress,
				Priority:    model.PriorityHigh,
				Progress:    65,
				Metrics: &model.ObjectiveMetrics{
					Accuracy:   ptr(0.89),
					Confidence: ptr(0.92),
					Iterations: ptr(150),
				},
			},
			{
				ID:          "2",
				Name:        "Task Efficiency",
				Description: "Optimize task completion workflows",
				Status:      model.ObjectiveInProgress,
				Priority:    model.PriorityMedium,
				Progress:    45,
				Metrics: &model.ObjectiveMetrics{
					Accuracy:   ptr(0.85),
					Confidence: ptr(0.88),
					Iterations: ptr(75),
				},
			},
		},
	}
}

// NewMessage builds an operator input message for the communication log.
func NewMessage(id, content string, now time.Time) model.SystemMessage {
	return model.SystemMessage{
		ID:        id,
		Content:   content,
		Type:      model.MessageInput,
		Timestamp: now.UTC(),
		Metadata: &model.MessageMetadata{
			Source:   "user",
			Priority: model.PriorityMedium,
			Tags:     []string{"user-input"},
		},
	}
}
