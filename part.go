package faturai

// Part kinds. A request is an ordered sequence of these three variants.
const (
	PartPayload     = "payload"     // inline base64 document
	PartAnnotation  = "annotation"  // label attached to a reference payload
	PartInstruction = "instruction" // trailing analysis order
)

// Part is one element of a multi-part model request.
type Part struct {
	Type     string
	Text     string // annotation and instruction parts
	Data     string // base64 content for payload parts
	MimeType string // media type for payload parts
}

// NewPayloadPart creates an inline document payload part.
func NewPayloadPart(base64Data, mimeType string) *Part {
	return &Part{Type: PartPayload, Data: base64Data, MimeType: mimeType}
}

// NewAnnotationPart creates a text part labeling the preceding payload.
func NewAnnotationPart(text string) *Part {
	return &Part{Type: PartAnnotation, Text: text}
}

// NewInstructionPart creates the trailing instruction text part.
func NewInstructionPart(text string) *Part {
	return &Part{Type: PartInstruction, Text: text}
}

// ExtractionRequest is a fully composed model request: ordered parts plus the
// system directive sent alongside them. Immutable once built.
type ExtractionRequest struct {
	Parts     []*Part
	Directive string
}

// RequestBuilder assembles an ExtractionRequest. The part order is fixed at
// Build time and cannot be altered by call order:
//
//  1. reference payload, immediately followed by its annotation (if any)
//  2. target payload — always the last inline payload; the model is told
//     that the last document provided is the analysis subject
//  3. exactly one instruction part, always last
type RequestBuilder struct {
	prompts      *PromptSet
	target       *Document
	reference    *Document
	instructions string
}

// NewRequestBuilder creates a builder rendering its text parts from prompts.
func NewRequestBuilder(prompts *PromptSet) *RequestBuilder {
	return &RequestBuilder{prompts: prompts}
}

// Target sets the invoice under analysis. Mandatory.
func (b *RequestBuilder) Target(doc Document) *RequestBuilder {
	b.target = &doc
	return b
}

// Reference sets an optional example document. It steers interpretation and
// is never the subject of analysis.
func (b *RequestBuilder) Reference(doc Document) *RequestBuilder {
	b.reference = &doc
	return b
}

// Instructions sets optional caller instructions, appended verbatim to the
// instruction part. The content is not validated or escaped.
func (b *RequestBuilder) Instructions(text string) *RequestBuilder {
	b.instructions = text
	return b
}

// Build validates and encodes the documents and assembles the part sequence.
func (b *RequestBuilder) Build() (*ExtractionRequest, error) {
	if b.target == nil {
		return nil, ErrMissingTarget
	}

	parts := make([]*Part, 0, 4)

	if b.reference != nil {
		refPart, err := b.reference.Encode()
		if err != nil {
			return nil, err
		}
		annotation, err := b.prompts.ReferenceAnnotation()
		if err != nil {
			return nil, err
		}
		parts = append(parts, refPart, NewAnnotationPart(annotation))
	}

	targetPart, err := b.target.Encode()
	if err != nil {
		return nil, err
	}
	parts = append(parts, targetPart)

	instruction, err := b.prompts.AnalysisInstruction(b.instructions)
	if err != nil {
		return nil, err
	}
	parts = append(parts, NewInstructionPart(instruction))

	directive, err := b.prompts.SystemDirective()
	if err != nil {
		return nil, err
	}

	return &ExtractionRequest{Parts: parts, Directive: directive}, nil
}
