package faturai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTarget() Document {
	return NewDocument([]byte("%PDF-1.4 fatura alvo"), "application/pdf")
}

func TestAnalyzeSuccess(t *testing.T) {
	stub := &StubInvoker{Response: []byte(fullResponse)}
	analyzer := NewForTesting(stub)

	result, err := analyzer.Analyze(context.Background(), validTarget())
	require.NoError(t, err)

	assert.Greater(t, result.Data.Financeiro.ValorTotal, 0.0)
	assert.NotEqual(t, NotIdentified, result.Data.Cliente.NomeTitular)
	assert.NotEmpty(t, result.ResumoExecutivo)

	assert.Equal(t, 1, stub.Calls, "exactly one round-trip per call")
	assert.Equal(t, DefaultModel, stub.LastModel)
	assert.Contains(t, stub.LastDirective, NotIdentified)
}

func TestAnalyzeRejectsInputBeforeServiceCall(t *testing.T) {
	stub := &StubInvoker{Response: []byte(fullResponse)}
	analyzer := NewForTesting(stub)

	target := NewDocument([]byte("name,value\na,1"), "text/plain")
	result, err := analyzer.Analyze(context.Background(), target)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInputRejected)
	assert.Zero(t, stub.Calls, "no service call may be made for rejected input")
}

func TestAnalyzeEmptyResponse(t *testing.T) {
	stub := &StubInvoker{Response: []byte("   ")}
	analyzer := NewForTesting(stub)

	result, err := analyzer.Analyze(context.Background(), validTarget())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestAnalyzeTransportFailure(t *testing.T) {
	cause := errors.New("connection reset")
	stub := &StubInvoker{Err: cause}
	analyzer := NewForTesting(stub)

	result, err := analyzer.Analyze(context.Background(), validTarget())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, stub.Calls, "single-shot: no retry on failure")
}

func TestAnalyzeMalformedResponse(t *testing.T) {
	stub := &StubInvoker{Response: []byte("not json at all")}
	analyzer := NewForTesting(stub)

	result, err := analyzer.Analyze(context.Background(), validTarget())
	assert.Nil(t, result)

	var malformed *MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, []byte("not json at all"), malformed.Raw)
}

func TestAnalyzePassesReferenceAndInstructions(t *testing.T) {
	stub := &StubInvoker{Response: []byte(fullResponse)}
	analyzer := NewForTesting(stub)

	_, err := analyzer.Analyze(context.Background(), validTarget(),
		WithReference(NewDocument(pngBytes, "image/png")),
		WithInstructions("ignore page 2"),
	)
	require.NoError(t, err)

	require.Len(t, stub.LastParts, 4)
	assert.Equal(t, PartPayload, stub.LastParts[0].Type)
	assert.Equal(t, PartAnnotation, stub.LastParts[1].Type)
	assert.Equal(t, PartPayload, stub.LastParts[2].Type)
	assert.Equal(t, PartInstruction, stub.LastParts[3].Type)
	assert.Contains(t, stub.LastParts[3].Text, "ignore page 2")
}

func TestAnalyzeModelOverride(t *testing.T) {
	stub := &StubInvoker{Response: []byte(fullResponse)}
	analyzer := NewForTesting(stub, WithDefaultModel("gemini-2.0-flash"))

	_, err := analyzer.Analyze(context.Background(), validTarget())
	require.NoError(t, err)
	assert.Equal(t, Model("gemini-2.0-flash"), stub.LastModel)

	_, err = analyzer.Analyze(context.Background(), validTarget(), WithModel("gemini-1.5-pro"))
	require.NoError(t, err)
	assert.Equal(t, Model("gemini-1.5-pro"), stub.LastModel)
}

func TestAnalyzeIdempotent(t *testing.T) {
	stub := &StubInvoker{Response: []byte(fullResponse)}
	analyzer := NewForTesting(stub)

	first, err := analyzer.Analyze(context.Background(), validTarget(), WithTimeout(5*time.Second))
	require.NoError(t, err)
	second, err := analyzer.Analyze(context.Background(), validTarget(), WithTimeout(5*time.Second))
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data, "identical inputs against a deterministic service yield identical records")
}

func TestAnalyzeBatch(t *testing.T) {
	stub := &StubInvoker{Response: []byte(fullResponse)}
	analyzer := NewForTesting(stub)

	targets := []Document{validTarget(), validTarget(), validTarget()}
	results, err := analyzer.AnalyzeBatch(context.Background(), targets,
		WithRunner(NewLimitedRunner(context.Background(), 2)),
	)
	require.NoError(t, err)

	require.Len(t, results, 3)
	for _, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, "Enel SP", r.Data.Fatura.Distribuidora)
	}
	assert.Equal(t, 3, stub.Calls)
}

func TestAnalyzeBatchEmpty(t *testing.T) {
	analyzer := NewForTesting(&StubInvoker{Response: []byte(fullResponse)})

	_, err := analyzer.AnalyzeBatch(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMissingTarget)
}

func TestAnalyzeBatchPropagatesFirstError(t *testing.T) {
	stub := &StubInvoker{Err: errors.New("quota exceeded")}
	analyzer := NewForTesting(stub)

	results, err := analyzer.AnalyzeBatch(context.Background(), []Document{validTarget(), validTarget()})
	assert.Nil(t, results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestInFlightIsIdleBetweenCalls(t *testing.T) {
	analyzer := NewForTesting(&StubInvoker{Response: []byte(fullResponse)})

	assert.False(t, analyzer.InFlight())
	_, err := analyzer.Analyze(context.Background(), validTarget())
	require.NoError(t, err)
	assert.False(t, analyzer.InFlight())
}
