// Package provider models AI providers and locally installable models, and
// the collaborators that test connections and install models.
package provider

// Type is where a provider runs.
type Type string

const (
	TypeLocal  Type = "local"
	TypeCloud  Type = "cloud"
	TypeCustom Type = "custom"
)

// Status is the last known connection state.
type Status string

const (
	StatusConnected    Status = "connected"
	StatusDisconnected Status = "disconnected"
	StatusError        Status = "error"
)

// Config holds request tuning for a provider. Timeout is in milliseconds.
type Config struct {
	MaxConcurrentRequests int     `json:"maxConcurrentRequests,omitempty" yaml:"max_concurrent_requests,omitempty"`
	Timeout               int     `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	RetryAttempts         int     `json:"retryAttempts,omitempty" yaml:"retry_attempts,omitempty"`
	Temperature           float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens             int     `json:"maxTokens,omitempty" yaml:"max_tokens,omitempty"`
}

// Provider is an AI backend the console can talk to.
type Provider struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         Type     `json:"type"`
	Status       Status   `json:"status"`
	Endpoint     string   `json:"endpoint,omitempty"`
	APIKey       string   `json:"apiKey,omitempty"`
	Models       []string `json:"models,omitempty"`
	Capabilities []string `json:"capabilities"`
	Config       Config   `json:"config"`
}

// ModelType classifies a local model.
type ModelType string

const (
	ModelLLM       ModelType = "llm"
	ModelEmbedding ModelType = "embedding"
	ModelImage     ModelType = "image"
)

// ModelStatus is the install state of a local model.
type ModelStatus string

const (
	ModelInstalled   ModelStatus = "installed"
	ModelAvailable   ModelStatus = "available"
	ModelDownloading ModelStatus = "downloading"
)

// Requirements are the host resources a model needs.
type Requirements struct {
	CPU  string `json:"cpu"`
	RAM  string `json:"ram"`
	Disk string `json:"disk"`
}

// Model is a locally installable model.
type Model struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         ModelType    `json:"type"`
	Status       ModelStatus  `json:"status"`
	Size         string       `json:"size"`
	Capabilities []string     `json:"capabilities"`
	Requirements Requirements `json:"requirements"`
}

// DefaultProviders returns the built-in provider list.
func DefaultProviders() []Provider {
	return []Provider{
		{
			ID:           "ollama-local",
			Name:         "Ollama Local",
			Type:         TypeLocal,
			Status:       StatusDisconnected,
			Endpoint:     "http://localhost:11434",
			Models:       []string{"llama2", "codellama", "mistral"},
			Capabilities: []string{"text_generation", "code_completion", "embedding"},
			Config: Config{
				MaxConcurrentRequests: 4,
				Timeout:               30000,
				RetryAttempts:         3,
				Temperature:           0.7,
			},
		},
		{
			ID:       "openai",
			Name:     "OpenAI",
			Type:     TypeCloud,
			Status:   StatusDisconnected,
			Endpoint: "https://api.openai.com/v1",
			Models:   []string{"gpt-4", "gpt-3.5-turbo", "dall-e-3", "text-embedding-3-small"},
			Capabilities: []string{
				"text_generation", "code_completion", "function_calling",
				"image_generation", "embedding", "vision",
			},
			Config: Config{
				MaxConcurrentRequests: 10,
				Timeout:               60000,
				RetryAttempts:         3,
				Temperature:           0.7,
				MaxTokens:             2048,
			},
		},
	}
}

// DefaultModels returns the built-in local model catalog.
func DefaultModels() []Model {
	req := Requirements{CPU: "4 cores", RAM: "8GB", Disk: "6GB"}
	return []Model{
		{
			ID: "llama2", Name: "Llama 2 7B", Type: ModelLLM, Status: ModelAvailable, Size: "3.9GB",
			Capabilities: []string{"text_generation", "chat", "completion"},
			Requirements: req,
		},
		{
			ID: "codellama", Name: "CodeLlama 7B", Type: ModelLLM, Status: ModelAvailable, Size: "4.1GB",
			Capabilities: []string{"code_completion", "code_explanation", "debugging"},
			Requirements: req,
		},
		{
			ID: "mistral", Name: "Mistral 7B", Type: ModelLLM, Status: ModelAvailable, Size: "4.1GB",
			Capabilities: []string{"text_generation", "chat", "analysis"},
			Requirements: req,
		},
	}
}
