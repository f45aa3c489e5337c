package wrapped

import "github.com/davidbz/ember/internal/domain"

// Default RPC metadata used when a descriptor leaves its envelope empty.
const (
	DefaultInterface = "puter-chat-completion"
	DefaultDriver    = "openai-completion"
	DefaultMethod    = "complete"
)

type envelope struct {
	Interface string `json:"interface"`
	Driver    string `json:"driver"`
	Method    string `json:"method"`
	Args      args   `json:"args"`
}

type args struct {
	Model       string           `json:"model"`
	Messages    []domain.Message `json:"messages"`
	MaxTokens   int              `json:"max_tokens"`
	Temperature float64          `json:"temperature"`
	Stream      bool             `json:"stream"`
	TestMode    bool             `json:"test_mode"`
}

func newEnvelope(meta domain.Envelope, req *domain.CompletionRequest) envelope {
	env := envelope{
		Interface: meta.Interface,
		Driver:    meta.Driver,
		Method:    meta.Method,
		Args: args{
			Model:       req.Model,
			Messages:    req.Messages,
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
			Stream:      req.Stream,
			TestMode:    false,
		},
	}

	if env.Interface == "" {
		env.Interface = DefaultInterface
	}
	if env.Driver == "" {
		env.Driver = DefaultDriver
	}
	if env.Method == "" {
		env.Method = DefaultMethod
	}

	return env
}
