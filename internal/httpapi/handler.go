package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/enersight/faturai"
)

// maxUploadBytes bounds the multipart form size (target + reference).
const maxUploadBytes = 32 << 20

// Service is the slice of the analyzer the HTTP layer needs.
type Service interface {
	Analyze(ctx context.Context, target faturai.Document, opts ...func(*faturai.Options)) (*faturai.AnalysisResult, error)
}

// Handler exposes the extraction pipeline over HTTP.
type Handler struct {
	svc Service
	log *slog.Logger
}

// NewHandler creates a Handler. A nil logger falls back to slog.Default().
func NewHandler(svc Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, log: log}
}

// Routes builds the router for the API.
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger(h.log))
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/analises", h.CriarAnalise).Methods(http.MethodPost)
	return r
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CriarAnalise receives a multipart form with the invoice under analysis
// ("fatura"), an optional reference document ("referencia") and optional
// free-text instructions ("instrucoes"), and returns the AnalysisResult.
func (h *Handler) CriarAnalise(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Envio inválido: esperado um formulário multipart com o campo 'fatura'.")
		return
	}

	target, err := documentFromForm(r, "fatura")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Nenhuma fatura foi enviada para análise.")
		return
	}

	var opts []func(*faturai.Options)
	if reference, err := documentFromForm(r, "referencia"); err == nil {
		opts = append(opts, faturai.WithReference(reference))
	}
	if instrucoes := r.FormValue("instrucoes"); instrucoes != "" {
		opts = append(opts, faturai.WithInstructions(instrucoes))
	}

	result, err := h.svc.Analyze(r.Context(), target, opts...)
	if err != nil {
		h.log.Error("análise falhou", "error", err)
		writeError(w, statusFor(err), faturai.UserMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// documentFromForm reads one uploaded file into a Document. The declared
// Content-Type is passed through; a generic octet-stream counts as
// undeclared so the pipeline sniffs the real type from the content.
func documentFromForm(r *http.Request, field string) (faturai.Document, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return faturai.Document{}, err
	}
	defer closeQuietly(file)

	mediaType := header.Header.Get("Content-Type")
	if mediaType == "application/octet-stream" {
		mediaType = ""
	}
	return faturai.NewDocumentFromReader(file, mediaType)
}

func closeQuietly(f multipart.File) { _ = f.Close() }

// statusFor maps the pipeline's failure classes to HTTP statuses.
func statusFor(err error) int {
	var malformed *faturai.MalformedResponseError
	switch {
	case errors.Is(err, faturai.ErrInputRejected),
		errors.Is(err, faturai.ErrEmptyDocument),
		errors.Is(err, faturai.ErrMissingTarget):
		return http.StatusUnprocessableEntity
	case errors.Is(err, faturai.ErrEmptyResponse), errors.As(err, &malformed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"erro": message})
}
