package faturai

import (
	"encoding/json"
	"reflect"
)

// NotIdentified is the sentinel for string fields the model could not find.
// Numeric fields fall back to 0.
const NotIdentified = "Não identificado"

// Cliente holds the account-holder data of the invoice.
type Cliente struct {
	NomeTitular      string `json:"nome_titular"`
	CpfCnpj          string `json:"cpf_cnpj"`
	Endereco         string `json:"endereco"`
	NumeroInstalacao string `json:"numero_instalacao"`
}

// Fatura holds the invoice identification data.
type Fatura struct {
	PeriodoReferencia string `json:"periodo_referencia"`
	DataVencimento    string `json:"data_vencimento"`
	NumeroFatura      string `json:"numero_fatura"`
	Distribuidora     string `json:"distribuidora"`
}

// HistoricoItem is one month of the consumption history.
type HistoricoItem struct {
	MesAno     string  `json:"mes_ano"`
	ConsumoKwh float64 `json:"consumo_kwh"`
}

// Consumo holds the energy consumption and demand figures.
// The history is expected in chronological order but not verified here.
type Consumo struct {
	TotalKwh          float64         `json:"total_kwh"`
	ConsumoPontaKwh   float64         `json:"consumo_ponta_kwh"`
	ConsumoForaPonta  float64         `json:"consumo_fora_ponta_kwh"`
	DemandaContratada float64         `json:"demanda_contratada_kw"`
	DemandaMedida     float64         `json:"demanda_medida_kw"`
	HistoricoConsumo  []HistoricoItem `json:"historico_consumo"`
}

// Financeiro holds the billed amounts and the tariff-flag label.
type Financeiro struct {
	ValorTotal        float64 `json:"valor_total"`
	ValorEnergiaKwh   float64 `json:"valor_energia_kwh"`
	EncargosTributos  float64 `json:"encargos_tributos"`
	BandeiraTarifaria string  `json:"bandeira_tarifaria"`
}

// Instalacao holds the installation's supply characteristics.
type Instalacao struct {
	Tensao              string `json:"tensao"`
	SubgrupoTarifario   string `json:"subgrupo_tarifario"`
	ModalidadeTarifaria string `json:"modalidade_tarifaria"`
}

// ExtractedData is the structured record extracted from one invoice.
// Its shape must stay in lockstep with ResponseSchema.
type ExtractedData struct {
	Cliente    Cliente    `json:"cliente"`
	Fatura     Fatura     `json:"fatura"`
	Consumo    Consumo    `json:"consumo"`
	Financeiro Financeiro `json:"financeiro"`
	Instalacao Instalacao `json:"instalacao"`
}

// AnalysisResult is the unit returned to the caller: the extracted record plus
// a free-text executive summary. Immutable once produced.
type AnalysisResult struct {
	Data            ExtractedData `json:"data"`
	ResumoExecutivo string        `json:"resumo_executivo"`
}

// ParseAnalysis parses raw model output into a normalized AnalysisResult.
// Malformed text is fatal; the raw bytes stay attached to the error for
// diagnostics. On success no leaf is ever null: missing strings carry the
// NotIdentified sentinel, missing numbers decode as 0 and the history slice
// is never nil. Either a complete record is returned or an error.
func ParseAnalysis(raw []byte) (*AnalysisResult, error) {
	clean := SanitizeJSONResponse(raw)

	var result AnalysisResult
	if err := json.Unmarshal(clean, &result); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	normalizeValue(reflect.ValueOf(&result).Elem())
	return &result, nil
}

// normalizeValue walks the record and applies the exception-handling rules
// the system directive asks of the model, so correctness does not depend on
// the model actually following them.
func normalizeValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			normalizeValue(v.Field(i))
		}
	case reflect.String:
		if v.String() == "" {
			v.SetString(NotIdentified)
		}
	case reflect.Slice:
		if v.IsNil() {
			v.Set(reflect.MakeSlice(v.Type(), 0, 0))
			return
		}
		for i := 0; i < v.Len(); i++ {
			normalizeValue(v.Index(i))
		}
	}
}
