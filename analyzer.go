package faturai

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"google.golang.org/genai"
)

// Analyzer runs the document-to-record extraction pipeline: encode documents,
// compose the multi-part request, invoke the model once, parse and normalize
// the response. Calls are independent and share no mutable state beyond the
// in-flight counter.
type Analyzer struct {
	invoker      Invoker
	prompts      *PromptSet
	defaultModel Model
	log          *slog.Logger

	inFlight atomic.Int64
}

// AnalyzerOption configures an Analyzer at construction time.
type AnalyzerOption func(*Analyzer)

// WithLogger lets the caller supply their own logger.
func WithLogger(log *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) { a.log = log }
}

// WithPrompts replaces the built-in prompt set.
func WithPrompts(p *PromptSet) AnalyzerOption {
	return func(a *Analyzer) { a.prompts = p }
}

// WithDefaultModel sets the model used when a call does not name one.
func WithDefaultModel(name string) AnalyzerOption {
	return func(a *Analyzer) { a.defaultModel = Model(name) }
}

// New returns an Analyzer backed by the given GenAI client. The client is
// constructed once at process start by the caller and passed in explicitly.
func New(client *genai.Client, opts ...AnalyzerOption) (*Analyzer, error) {
	a := &Analyzer{defaultModel: DefaultModel}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = slog.Default()
	}
	if a.prompts == nil {
		prompts, err := NewPromptSet()
		if err != nil {
			return nil, fmt.Errorf("build prompt set: %w", err)
		}
		a.prompts = prompts
	}
	a.invoker = &genaiInvoker{client: client, log: a.log}
	return a, nil
}

// InFlight reports whether any analysis is currently running. Useful for UI
// spinners; no other intermediate state is observable.
func (a *Analyzer) InFlight() bool {
	return a.inFlight.Load() > 0
}

// Analyze runs one extraction call: target document in, AnalysisResult out.
// Steps are strictly sequential; the model is invoked exactly once, with no
// retries. On failure nothing partial is returned — a failed call is
// restarted from scratch with fresh inputs.
func (a *Analyzer) Analyze(
	ctx context.Context,
	target Document,
	optFns ...func(*Options),
) (*AnalysisResult, error) {
	a.inFlight.Add(1)
	defer a.inFlight.Add(-1)

	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	model := opts.Model
	if model == "" {
		model = a.defaultModel
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	a.log.Debug("Starting analysis",
		"model", string(model),
		"target_bytes", len(target.Data),
		"has_reference", opts.Reference != nil,
		"has_instructions", opts.Instructions != "")

	builder := NewRequestBuilder(a.prompts).Target(target)
	if opts.Reference != nil {
		builder.Reference(*opts.Reference)
	}
	if opts.Instructions != "" {
		builder.Instructions(opts.Instructions)
	}

	req, err := builder.Build()
	if err != nil {
		a.log.Debug("Request composition failed", "error", err)
		return nil, err
	}
	a.log.Debug("Request composed", "part_count", len(req.Parts))

	raw, err := a.invoker.Generate(ctx, model, req.Directive, req.Parts, ResponseSchema())
	if err != nil {
		a.log.Debug("Generation failed", "error", err)
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyResponse
	}

	result, err := ParseAnalysis(raw)
	if err != nil {
		a.log.Debug("Response parsing failed", "error", err)
		return nil, err
	}

	a.log.Info("Analysis completed",
		"model", string(model),
		"distribuidora", result.Data.Fatura.Distribuidora,
		"history_points", len(result.Data.Consumo.HistoricoConsumo))
	return result, nil
}

// AnalyzeBatch runs independent analyses for several target documents
// concurrently. Each call owns its own request and record; results are
// returned in input order. The first error aborts the batch.
func (a *Analyzer) AnalyzeBatch(
	ctx context.Context,
	targets []Document,
	optFns ...func(*Options),
) ([]*AnalysisResult, error) {
	if len(targets) == 0 {
		return nil, ErrMissingTarget
	}

	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}
	r := opts.Runner
	if r == nil {
		r = DefaultRunner(ctx)
	}

	results := make([]*AnalysisResult, len(targets))
	for i, target := range targets {
		i, target := i, target
		r.Go(func() error {
			res, err := a.Analyze(ctx, target, optFns...)
			if err != nil {
				return fmt.Errorf("target %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := r.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
