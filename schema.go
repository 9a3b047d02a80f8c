package faturai

import "google.golang.org/genai"

// responseSchema constrains the model's output to the exact shape of
// AnalysisResult. Leaf for leaf it mirrors the record types in record.go;
// any field added to one must be added to the other (schema_test.go checks
// the two against each other).
var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"data": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"cliente": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"nome_titular":      {Type: genai.TypeString},
						"cpf_cnpj":          {Type: genai.TypeString},
						"endereco":          {Type: genai.TypeString},
						"numero_instalacao": {Type: genai.TypeString},
					},
				},
				"fatura": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"periodo_referencia": {Type: genai.TypeString},
						"data_vencimento":    {Type: genai.TypeString},
						"numero_fatura":      {Type: genai.TypeString},
						"distribuidora":      {Type: genai.TypeString},
					},
				},
				"consumo": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"total_kwh":              {Type: genai.TypeNumber},
						"consumo_ponta_kwh":      {Type: genai.TypeNumber},
						"consumo_fora_ponta_kwh": {Type: genai.TypeNumber},
						"demanda_contratada_kw":  {Type: genai.TypeNumber},
						"demanda_medida_kw":      {Type: genai.TypeNumber},
						"historico_consumo": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"mes_ano":     {Type: genai.TypeString, Description: "Formato MM/AAAA ou similar"},
									"consumo_kwh": {Type: genai.TypeNumber},
								},
							},
						},
					},
				},
				"financeiro": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"valor_total":       {Type: genai.TypeNumber},
						"valor_energia_kwh": {Type: genai.TypeNumber},
						"encargos_tributos": {Type: genai.TypeNumber},
						"bandeira_tarifaria": {
							Type: genai.TypeString,
						},
					},
				},
				"instalacao": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"tensao":               {Type: genai.TypeString},
						"subgrupo_tarifario":   {Type: genai.TypeString},
						"modalidade_tarifaria": {Type: genai.TypeString},
					},
				},
			},
		},
		"resumo_executivo": {
			Type:        genai.TypeString,
			Description: "Resumo executivo em português destacando perfil de consumo, oportunidades de economia e dados relevantes para cotação.",
		},
	},
}

// ResponseSchema returns the static schema contract sent with every request.
func ResponseSchema() *genai.Schema { return responseSchema }
