package faturai

import (
	"context"
	"log/slog"
	"sync"

	"google.golang.org/genai"
)

// StubInvoker is a canned-response Invoker for tests. It records the last
// request it received so tests can assert on composition. Safe for
// concurrent use (AnalyzeBatch calls it from several goroutines).
type StubInvoker struct {
	Response []byte
	Err      error

	mu            sync.Mutex
	LastModel     Model
	LastDirective string
	LastParts     []*Part
	Calls         int
}

func (s *StubInvoker) Generate(
	ctx context.Context,
	model Model,
	directive string,
	parts []*Part,
	schema *genai.Schema,
) ([]byte, error) {
	s.mu.Lock()
	s.Calls++
	s.LastModel = model
	s.LastDirective = directive
	s.LastParts = parts
	s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	return s.Response, nil
}

// NewForTesting creates an Analyzer wired to the given invoker, so tests run
// without a real client.
func NewForTesting(inv Invoker, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		invoker:      inv,
		defaultModel: DefaultModel,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = slog.Default()
	}
	if a.prompts == nil {
		prompts, err := NewPromptSet()
		if err != nil {
			panic(err) // built-in templates always render
		}
		a.prompts = prompts
	}
	return a
}
