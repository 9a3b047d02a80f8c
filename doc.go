// Package faturai extracts structured billing data from Brazilian electricity
// invoices (images or PDFs) by delegating interpretation to a generative
// model and enforcing a strict output schema on its response.
//
// The pipeline is a single synchronous sequence per call:
//
//	Document → Encode (base64 inline payload) → RequestBuilder (ordered parts)
//	→ Invoker (one GenerateContent round-trip with system directive and
//	response schema) → ParseAnalysis (parse + normalize) → AnalysisResult
//
// # Basic Usage
//
//	ctx := context.Background()
//	client, _ := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
//	analyzer, _ := faturai.New(client)
//
//	data, _ := os.ReadFile("fatura.pdf")
//	result, err := analyzer.Analyze(ctx, faturai.NewDocument(data, "application/pdf"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Data.Financeiro.ValorTotal, result.ResumoExecutivo)
//
// A reference example document and free-text instructions can steer the
// extraction:
//
//	result, err := analyzer.Analyze(ctx, target,
//	    faturai.WithReference(example),
//	    faturai.WithInstructions("ignore a página 2"),
//	)
//
// # Request Composition
//
// Part order is semantically load-bearing: the optional reference payload and
// its annotation come first, the target payload is always the last inline
// document, and exactly one instruction part closes the request. The model is
// told that the last document provided is the analysis subject, so
// RequestBuilder fixes this order at Build time regardless of call order.
//
// # Output Guarantees
//
// The response schema sent with every request mirrors ExtractedData leaf for
// leaf. After parsing, a normalization pass guarantees no null leaf: missing
// strings carry the "Não identificado" sentinel, missing numbers are 0 and
// the consumption history is never nil. Either a complete record is returned
// or an error — never a partial one.
//
// # Failure Modes
//
// Unsupported media types fail with ErrInputRejected before any service call.
// Transport failures propagate with their cause. A successful call with no
// text fails with ErrEmptyResponse, and unparseable output fails with
// MalformedResponseError, which keeps the raw text for diagnostics. The model
// is invoked exactly once per call; retry policy belongs to the caller.
package faturai
