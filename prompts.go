package faturai

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/tyler-sommer/stick"
)

// Template tags for the three fixed prompts of the pipeline.
const (
	PromptDirective   = "directive"
	PromptReference   = "reference"
	PromptInstruction = "instruction"
)

const directiveTemplate = `Você é um especialista em análise de faturas de energia elétrica. Sua função é extrair e consolidar informações críticas de faturas de energia para facilitar a cotação no mercado livre de energia.

Leia todo o documento meticulosamente.
Identifique padrões e seções comuns em faturas de energia.
Extraia dados numéricos e textuais com precisão.

TRATAMENTO DE EXCEÇÕES:
Se algum dado não for encontrado, retorne "Não identificado" (para strings) ou 0 (para números).
Mantenha a formatação numérica padrão (decimal com ponto).
Valide dados críticos como CPF/CNPJ e números de instalação.

A resposta DEVE estar em formato JSON.`

const referenceTemplate = `CONTEXTO / MODELO DE REFERÊNCIA: Use o documento acima como exemplo de como interpretar os dados ou como documentação auxiliar.`

const instructionTemplate = `Analise esta fatura de energia ALVO (a última imagem fornecida) e extraia os dados conforme o schema JSON.{% if custom_instructions %}

INSTRUÇÕES ESPECÍFICAS DO USUÁRIO: {{ custom_instructions }}{% endif %}`

var defaultTemplates = map[string]string{
	PromptDirective:   directiveTemplate,
	PromptReference:   referenceTemplate,
	PromptInstruction: instructionTemplate,
}

// PromptSet renders the fixed prompt texts of the pipeline. Templates can be
// overridden, e.g. to localize them or load them from disk.
type PromptSet struct {
	env       *stick.Env
	templates map[string]string
}

// PromptOption configures a PromptSet.
type PromptOption func(*PromptSet) error

// WithTemplates overrides templates from an in-memory map.
func WithTemplates(m map[string]string) PromptOption {
	return func(p *PromptSet) error {
		for tag, tpl := range m {
			p.templates[tag] = tpl
		}
		return nil
	}
}

// WithTemplateFS loads every *.twig file under dir in the supplied FS; the
// file base name (minus extension) becomes the template tag.
func WithTemplateFS(fsys fs.FS, dir string) PromptOption {
	return func(p *PromptSet) error {
		return fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".twig") {
				return nil
			}
			content, readErr := fs.ReadFile(fsys, path)
			if readErr != nil {
				return fmt.Errorf("read %s: %w", path, readErr)
			}
			tag := strings.TrimSuffix(filepath.Base(path), ".twig")
			p.templates[tag] = string(content)
			return nil
		})
	}
}

// NewPromptSet builds a PromptSet carrying the built-in templates plus any
// overrides.
func NewPromptSet(opts ...PromptOption) (*PromptSet, error) {
	p := &PromptSet{
		env:       stick.New(nil),
		templates: make(map[string]string, len(defaultTemplates)),
	}
	for tag, tpl := range defaultTemplates {
		p.templates[tag] = tpl
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// SystemDirective returns the fixed role description and exception-handling
// rules sent as the system instruction of every request.
func (p *PromptSet) SystemDirective() (string, error) {
	return p.render(PromptDirective, nil)
}

// ReferenceAnnotation returns the label attached right after a reference
// payload, marking it as an example rather than the analysis subject.
func (p *PromptSet) ReferenceAnnotation() (string, error) {
	return p.render(PromptReference, nil)
}

// AnalysisInstruction returns the trailing instruction part. Custom caller
// instructions are appended verbatim when present.
func (p *PromptSet) AnalysisInstruction(customInstructions string) (string, error) {
	return p.render(PromptInstruction, map[string]stick.Value{
		"custom_instructions": customInstructions,
	})
}

func (p *PromptSet) render(tag string, vars map[string]stick.Value) (string, error) {
	tpl, ok := p.templates[tag]
	if !ok {
		return "", fmt.Errorf("template %q not found", tag)
	}

	templateCtx := make(map[string]stick.Value, len(vars)+1)
	templateCtx["tag"] = tag
	for k, v := range vars {
		templateCtx[k] = v
	}

	var out strings.Builder
	if err := p.env.Execute(tpl, &out, templateCtx); err != nil {
		return "", fmt.Errorf("execute %q: %w", tag, err)
	}
	return out.String(), nil
}
