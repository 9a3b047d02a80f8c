package faturai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullResponse = `{
  "data": {
    "cliente": {
      "nome_titular": "Indústria Alfa Ltda",
      "cpf_cnpj": "12.345.678/0001-90",
      "endereco": "Av. Paulista, 1000 - São Paulo/SP",
      "numero_instalacao": "700123456"
    },
    "fatura": {
      "periodo_referencia": "05/2024",
      "data_vencimento": "15/06/2024",
      "numero_fatura": "004512-9",
      "distribuidora": "Enel SP"
    },
    "consumo": {
      "total_kwh": 18500,
      "consumo_ponta_kwh": 2100,
      "consumo_fora_ponta_kwh": 16400,
      "demanda_contratada_kw": 120,
      "demanda_medida_kw": 114.5,
      "historico_consumo": [
        {"mes_ano": "03/2024", "consumo_kwh": 17200},
        {"mes_ano": "04/2024", "consumo_kwh": 17900},
        {"mes_ano": "05/2024", "consumo_kwh": 18500}
      ]
    },
    "financeiro": {
      "valor_total": 14230.77,
      "valor_energia_kwh": 0.72,
      "encargos_tributos": 3120.4,
      "bandeira_tarifaria": "Verde"
    },
    "instalacao": {
      "tensao": "13.8 kV",
      "subgrupo_tarifario": "A4",
      "modalidade_tarifaria": "Horária Verde"
    }
  },
  "resumo_executivo": "Consumo concentrado fora de ponta; bom candidato ao mercado livre."
}`

func TestParseAnalysisFullRecord(t *testing.T) {
	result, err := ParseAnalysis([]byte(fullResponse))
	require.NoError(t, err)

	assert.Equal(t, "Indústria Alfa Ltda", result.Data.Cliente.NomeTitular)
	assert.Equal(t, "Enel SP", result.Data.Fatura.Distribuidora)
	assert.Equal(t, 18500.0, result.Data.Consumo.TotalKwh)
	assert.Equal(t, 14230.77, result.Data.Financeiro.ValorTotal)
	assert.Equal(t, "A4", result.Data.Instalacao.SubgrupoTarifario)
	require.Len(t, result.Data.Consumo.HistoricoConsumo, 3)
	assert.Equal(t, "03/2024", result.Data.Consumo.HistoricoConsumo[0].MesAno)
	assert.NotEmpty(t, result.ResumoExecutivo)
}

func TestParseAnalysisNormalizesPartialRecord(t *testing.T) {
	// A model that ignores the directive and omits most fields.
	partial := `{
	  "data": {
	    "cliente": {"nome_titular": "Maria"},
	    "consumo": {"total_kwh": 350, "historico_consumo": [{"consumo_kwh": 340}]}
	  }
	}`

	result, err := ParseAnalysis([]byte(partial))
	require.NoError(t, err)

	// Present values survive untouched.
	assert.Equal(t, "Maria", result.Data.Cliente.NomeTitular)
	assert.Equal(t, 350.0, result.Data.Consumo.TotalKwh)

	// Missing strings resolve to the sentinel, missing numbers to zero.
	assert.Equal(t, NotIdentified, result.Data.Cliente.CpfCnpj)
	assert.Equal(t, NotIdentified, result.Data.Fatura.Distribuidora)
	assert.Equal(t, NotIdentified, result.Data.Instalacao.Tensao)
	assert.Equal(t, NotIdentified, result.Data.Financeiro.BandeiraTarifaria)
	assert.Zero(t, result.Data.Financeiro.ValorTotal)
	assert.Zero(t, result.Data.Consumo.DemandaMedida)

	// History entries are normalized too.
	require.Len(t, result.Data.Consumo.HistoricoConsumo, 1)
	assert.Equal(t, NotIdentified, result.Data.Consumo.HistoricoConsumo[0].MesAno)
	assert.Equal(t, 340.0, result.Data.Consumo.HistoricoConsumo[0].ConsumoKwh)

	assert.Equal(t, NotIdentified, result.ResumoExecutivo)
}

func TestParseAnalysisNeverNilHistory(t *testing.T) {
	result, err := ParseAnalysis([]byte(`{"data": {}, "resumo_executivo": "ok"}`))
	require.NoError(t, err)
	assert.NotNil(t, result.Data.Consumo.HistoricoConsumo)
	assert.Empty(t, result.Data.Consumo.HistoricoConsumo)
}

func TestParseAnalysisNullLeaves(t *testing.T) {
	withNulls := `{"data": {"cliente": {"nome_titular": null}, "financeiro": {"valor_total": null}}}`

	result, err := ParseAnalysis([]byte(withNulls))
	require.NoError(t, err)
	assert.Equal(t, NotIdentified, result.Data.Cliente.NomeTitular)
	assert.Zero(t, result.Data.Financeiro.ValorTotal)
}

func TestParseAnalysisStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + fullResponse + "\n```"

	result, err := ParseAnalysis([]byte(fenced))
	require.NoError(t, err)
	assert.Equal(t, "Enel SP", result.Data.Fatura.Distribuidora)
}

func TestParseAnalysisMalformed(t *testing.T) {
	raw := []byte("the invoice looks fine to me")

	result, err := ParseAnalysis(raw)
	require.Error(t, err)
	assert.Nil(t, result)

	var malformed *MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, raw, malformed.Raw, "the original text must stay retrievable")
	assert.NotNil(t, errors.Unwrap(malformed))
}

func TestSanitizeJSONResponse(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"```json\n{\"key\": \"value\"}\n```", "{\"key\": \"value\"}"},
		{"```\n{\"key\": \"value\"}\n```", "{\"key\": \"value\"}"},
		{"  {\"key\": \"value\"}  ", "{\"key\": \"value\"}"},
		{"{\"key\": \"value\"}", "{\"key\": \"value\"}"},
	}

	for _, test := range tests {
		result := string(SanitizeJSONResponse([]byte(test.input)))
		if result != test.expected {
			t.Errorf("For input %q, expected %q, got %q", test.input, test.expected, result)
		}
	}
}
