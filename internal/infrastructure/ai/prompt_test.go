package ai

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/domain/intent"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct{ in, want string }{
		{`{"intent":"X"}`, `{"intent":"X"}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"Claro! Aqui está: {\"a\":{\"b\":2}} fim.", `{"a":{"b":2}}`},
		{`[{"intent":"SAVE_TRANSACTION"}]`, `[{"intent":"SAVE_TRANSACTION"}]`},
		{"sem json aqui", ""},
		{"} invertido {", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, extractJSON(tc.in), tc.in)
	}
}

func TestParseEnvelope_Normaliza(t *testing.T) {
	env, err := parseEnvelope("```json\n{\"intent\":\" register_sale \",\"status\":\"complete\",\"data\":{\"amount\":59.7,\"quantity\":3,\"product_id\":7}}\n```")
	require.NoError(t, err)
	assert.Equal(t, intent.RegisterSale, env.Intent)
	assert.Equal(t, intent.StatusComplete, env.Status)
	assert.Equal(t, "59.7", env.Data.Amount.String())
	assert.Equal(t, int64(3), *env.Data.Quantity)
	assert.Nil(t, env.Data.PartnerID)
}

func TestParseEnvelope_SinJSON(t *testing.T) {
	_, err := parseEnvelope("não entendi")
	assert.Error(t, err)
}

func TestParseRecords_ArrayYEnvoltorio(t *testing.T) {
	arr, err := parseRecords(`[{"intent":"SAVE_TRANSACTION","data":{"type":"Despesa","amount":12.5}}]`)
	require.NoError(t, err)
	require.Len(t, arr, 1)
	assert.Equal(t, "Despesa", arr[0].Data.Type)

	wrapped, err := parseRecords(`{"records":[{"intent":"SAVE_TRANSACTION","data":{"type":"Receita","amount":1}},{"intent":"REGISTER_SALE","data":{}}]}`)
	require.NoError(t, err)
	assert.Len(t, wrapped, 2)
}

func TestDecodeStatement_Latin1(t *testing.T) {
	// "Pão" en ISO-8859-1
	text, err := decodeStatement([]byte{'P', 0xE3, 'o'})
	require.NoError(t, err)
	assert.Equal(t, "Pão", text)

	text, err = decodeStatement([]byte("Serviço"))
	require.NoError(t, err)
	assert.Equal(t, "Serviço", text)
}

func TestDecodeStatement_Trunca(t *testing.T) {
	text, err := decodeStatement([]byte(strings.Repeat("ç", maxStatementChars+50)))
	require.NoError(t, err)
	assert.Equal(t, maxStatementChars, len([]rune(text)))
}

func TestBuildIntentPrompt(t *testing.T) {
	prompt, err := buildIntentPrompt(intent.ResolveRequest{
		Message:         "vendi 3 widgets por 59,70",
		SuggestedIntent: intent.RegisterSale,
		Products:        []intent.EntityRef{{ID: 7, Name: "Widget"}},
		Today:           time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Data de hoje: 2026-03-15")
	assert.Contains(t, prompt, "Intenção sugerida: REGISTER_SALE")
	assert.Contains(t, prompt, `Produtos: [{"id":7,"name":"Widget"}]`)
	assert.Contains(t, prompt, "Sócios: []")
	assert.NotContains(t, prompt, "Dados já coletados")
}
