package faturai

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"google.golang.org/genai"
)

// genaiInvoker implements Invoker against the Google GenAI API. One call to
// Generate is exactly one GenerateContent round-trip; there is no retry or
// backoff here, by contract.
type genaiInvoker struct {
	client *genai.Client
	log    *slog.Logger
}

func (gv *genaiInvoker) Generate(
	ctx context.Context,
	model Model,
	directive string,
	parts []*Part,
	schema *genai.Schema,
) ([]byte, error) {
	if gv.client == nil {
		return nil, fmt.Errorf("client not initialized")
	}

	genaiParts := make([]*genai.Part, 0, len(parts))
	for _, part := range parts {
		gv.log.Debug("Processing request part", "type", part.Type, "mime_type", part.MimeType)
		switch part.Type {
		case PartPayload:
			data, err := base64.StdEncoding.DecodeString(part.Data)
			if err != nil {
				return nil, fmt.Errorf("decode payload part: %w", err)
			}
			genaiParts = append(genaiParts, genai.NewPartFromBytes(data, part.MimeType))
		case PartAnnotation, PartInstruction:
			genaiParts = append(genaiParts, genai.NewPartFromText(part.Text))
		default:
			return nil, fmt.Errorf("unknown part type %q", part.Type)
		}
	}

	if len(genaiParts) == 0 {
		return nil, fmt.Errorf("no valid content provided")
	}

	contents := []*genai.Content{genai.NewContentFromParts(genaiParts, genai.RoleUser)}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(directive, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    schema,
	}

	gv.log.Debug("Generating content", "model", string(model), "part_count", len(genaiParts))

	resp, err := gv.client.Models.GenerateContent(ctx, string(model), contents, config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates: %w", ErrEmptyResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("no parts in candidate content: %w", ErrEmptyResponse)
	}
	text := candidate.Content.Parts[0].Text
	if text == "" {
		return nil, fmt.Errorf("no text in response: %w", ErrEmptyResponse)
	}

	gv.log.Debug("Generated content successfully", "response_length", len(text))
	return []byte(text), nil
}
