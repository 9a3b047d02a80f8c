package faturai

import (
	"context"
	"time"

	"google.golang.org/genai"
)

// Model represents a model identifier.
type Model string

// DefaultModel is used when no model is configured on the analyzer or the call.
const DefaultModel Model = "gemini-2.5-flash"

// Runner lets AnalyzeBatch schedule work with any concurrency model.
type Runner interface {
	Go(fn func() error) // schedule
	Wait() error        // join / propagate first err
}

// Invoker performs the single round-trip to the structured-generation service.
// The abstraction allows mocking the service in tests.
type Invoker interface {
	Generate(ctx context.Context, model Model, directive string, parts []*Part, schema *genai.Schema) ([]byte, error)
}

// Options represents per-call options for an analysis.
type Options struct {
	Model        Model         // "" → analyzer default
	Timeout      time.Duration // 0 → no deadline beyond the caller's ctx
	Reference    *Document     // optional few-shot example document
	Instructions string        // optional caller instructions, passed through verbatim
	Runner       Runner        // batch only; nil → DefaultRunner
}

// Functional option constructors

func WithModel(name string) func(*Options) {
	return func(o *Options) { o.Model = Model(name) }
}

func WithTimeout(d time.Duration) func(*Options) {
	return func(o *Options) { o.Timeout = d }
}

func WithReference(doc Document) func(*Options) {
	return func(o *Options) { o.Reference = &doc }
}

func WithInstructions(text string) func(*Options) {
	return func(o *Options) { o.Instructions = text }
}

func WithRunner(r Runner) func(*Options) {
	return func(o *Options) { o.Runner = r }
}
