package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/ledger-api/internal/domain/intent"
)

// maxStatementChars tope de caracteres del extracto enviado al modelo.
const maxStatementChars = 10000

const intentSystemPrompt = `Você é o assistente de lançamentos de uma pequena empresa.
Classifique a mensagem em UMA intenção e devolva SOMENTE um objeto JSON (sem markdown):
{
  "intent": "SAVE_TRANSACTION|REGISTER_SALE|STOCK_MOVEMENT|PARTNER_CONTRIBUTION|PARTNER_WITHDRAWAL|CREATE_PRODUCT",
  "status": "COMPLETE|INCOMPLETE",
  "data": {
    "amount": <número>, "description": "<texto>", "date": "YYYY-MM-DD",
    "type": "Receita|Despesa|in|out", "category": "<texto>",
    "product_id": <id>, "product_name": "<texto>", "quantity": <inteiro>,
    "partner_id": <id>, "company_id": <id>,
    "source": "próprio|consignado", "is_paid": <true|false>
  },
  "missing_fields": ["<campo>"]
}

Regras:
- Use SOMENTE os ids das listas de produtos e sócios fornecidas; nunca invente ids.
- REGISTER_SALE: amount é o valor total da venda.
- STOCK_MOVEMENT: amount é o custo total da entrada; type "in" ou "out".
- Se faltar um campo obrigatório, status INCOMPLETE e liste-o em missing_fields.
- Omita campos desconhecidos em vez de devolver null.`

const statementSystemPrompt = `Você recebe o texto de um extrato bancário.
Devolva SOMENTE um array JSON (sem markdown) com um item por lançamento:
[{"intent": "SAVE_TRANSACTION", "data": {"type": "Receita|Despesa", "amount": <número positivo>,
"category": "<categoria>", "description": "<histórico>", "date": "YYYY-MM-DD"}}]
Créditos são Receita e débitos são Despesa. Ignore saldos e linhas de totais.`

// buildIntentPrompt arma el mensaje de usuario con el contexto de la conversación.
func buildIntentPrompt(req intent.ResolveRequest) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Data de hoje: %s\n", req.Today.Format(time.DateOnly))
	if req.SuggestedIntent != "" {
		fmt.Fprintf(&b, "Intenção sugerida: %s\n", req.SuggestedIntent)
	}
	products, err := json.Marshal(refsOrEmpty(req.Products))
	if err != nil {
		return "", err
	}
	partners, err := json.Marshal(refsOrEmpty(req.Partners))
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "Produtos: %s\nSócios: %s\n", products, partners)
	if req.Pending != nil {
		pending, err := json.Marshal(req.Pending)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "Dados já coletados (complete-os): %s\n", pending)
	}
	fmt.Fprintf(&b, "Mensagem: %s", req.Message)
	return b.String(), nil
}

func refsOrEmpty(refs []intent.EntityRef) []intent.EntityRef {
	if refs == nil {
		return []intent.EntityRef{}
	}
	return refs
}

// decodeStatement interpreta el extracto como UTF-8 y, si no lo es, como Latin-1.
// Trunca a maxStatementChars caracteres.
func decodeStatement(raw []byte) (string, error) {
	text := string(raw)
	if !utf8.Valid(raw) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("AI: decodificar extracto: %w", err)
		}
		text = string(decoded)
	}
	if utf8.RuneCountInString(text) > maxStatementChars {
		text = string([]rune(text)[:maxStatementChars])
	}
	return text, nil
}

// fenceRe captura el contenido de un bloque ```json … ```.
var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// extractJSON extrae el primer objeto o array JSON de un texto libre, aunque el
// modelo lo envuelva en markdown o agregue texto alrededor.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return ""
	}
	closer := byte('}')
	if text[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(text, closer)
	if end < start {
		return ""
	}
	return text[start : end+1]
}

// parseEnvelope interpreta la respuesta del modelo como sobre de intención.
func parseEnvelope(text string) (*intent.Envelope, error) {
	raw := extractJSON(text)
	if raw == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON en la respuesta del modelo (respuesta: %s)", text)
	}
	var env intent.Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("AI: parsear sobre de intención: %w (JSON extraído: %s)", err, raw)
	}
	env.Intent = strings.ToUpper(strings.TrimSpace(env.Intent))
	env.Status = strings.ToUpper(strings.TrimSpace(env.Status))
	return &env, nil
}

// parseRecords interpreta la respuesta del modelo como lista de registros.
func parseRecords(text string) ([]intent.Record, error) {
	raw := extractJSON(text)
	if raw == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON en la respuesta del modelo (respuesta: %s)", text)
	}
	var records []intent.Record
	if strings.HasPrefix(raw, "{") {
		var wrapper struct {
			Records []intent.Record `json:"records"`
		}
		if err := json.Unmarshal([]byte(raw), &wrapper); err != nil {
			return nil, fmt.Errorf("AI: parsear registros: %w", err)
		}
		records = wrapper.Records
	} else if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("AI: parsear registros: %w", err)
	}
	return records, nil
}
