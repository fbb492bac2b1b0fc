package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jhoicas/ledger-api/internal/domain/intent"
)

// ErrConversationNotFound la conversación no existe o expiró.
var ErrConversationNotFound = errors.New("conversación no encontrada")

// IntentResolver define el puerto de salida hacia el modelo de lenguaje que clasifica
// el texto libre. Cualquier adaptador (Gemini, Anthropic, mock) debe implementarlo.
// El contexto debe llevar un timeout: la latencia del proveedor no está acotada.
type IntentResolver interface {
	Resolve(ctx context.Context, req intent.ResolveRequest) (*intent.Envelope, error)
}

// StatementParser convierte un extracto bancario crudo en registros SAVE_TRANSACTION
// para revisión antes de aplicarlos por lotes.
type StatementParser interface {
	ParseStatement(ctx context.Context, raw []byte) ([]intent.Record, error)
}

// ConversationStore persiste el contexto de cada conversación entre peticiones.
// Get devuelve ErrConversationNotFound si no existe.
type ConversationStore interface {
	Get(ctx context.Context, id uuid.UUID) (*intent.Conversation, error)
	Save(ctx context.Context, conv *intent.Conversation) error
	Delete(ctx context.Context, id uuid.UUID) error
}
