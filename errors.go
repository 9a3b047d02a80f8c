package faturai

import (
	"errors"
	"fmt"
)

// ErrInputRejected is returned when a document's media type is outside the
// accepted set (image/* or application/pdf).
var ErrInputRejected = errors.New("unsupported document media type")

// ErrMissingTarget is returned when a request is built without a target document.
var ErrMissingTarget = errors.New("target document is required")

// ErrEmptyResponse is returned when the model call succeeds but carries no text.
var ErrEmptyResponse = errors.New("empty response from model")

// ErrEmptyDocument is returned when a document has no content bytes.
var ErrEmptyDocument = errors.New("document is empty")

// MalformedResponseError wraps a parse failure and keeps the raw model output
// so callers can inspect what the model actually returned.
type MalformedResponseError struct {
	Raw []byte
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// UserMessage reduces any pipeline error to a single human-readable message.
// Unknown failure classes collapse into a generic "try again" message.
func UserMessage(err error) string {
	var malformed *MalformedResponseError
	switch {
	case errors.Is(err, ErrInputRejected):
		return "Formato de arquivo não suportado. Envie uma imagem ou um PDF."
	case errors.Is(err, ErrMissingTarget), errors.Is(err, ErrEmptyDocument):
		return "Nenhuma fatura foi enviada para análise."
	case errors.Is(err, ErrEmptyResponse):
		return "O serviço de análise não retornou dados. Tente novamente."
	case errors.As(err, &malformed):
		return "A resposta do serviço de análise não pôde ser interpretada. Tente novamente."
	default:
		return "Falha ao processar a fatura. Tente novamente."
	}
}
