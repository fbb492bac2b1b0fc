package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/intent"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// DefaultResolveTimeout tope de cada llamada al resolvedor.
const DefaultResolveTimeout = 10 * time.Second

// statusError etiqueta de métricas para fallos o timeouts del resolvedor.
const statusError = "ERROR"

// ChatResult respuesta de un turno de conversación.
type ChatResult struct {
	ConversationID string           `json:"conversation_id"`
	Envelope       *intent.Envelope `json:"envelope"`
}

// Config dependencias y ajustes del asistente.
type Config struct {
	Dispatcher *Dispatcher
	Resolver   ports.IntentResolver
	Parser     ports.StatementParser
	Store      ports.ConversationStore
	Products   repository.ProductRepository
	Partners   repository.PartnerRepository
	Metrics    ports.IntentMetrics
	Logger     zerolog.Logger
	Timeout    time.Duration // 0 = DefaultResolveTimeout
}

// Assistant flujo de conversación: cada turno resuelve el texto, guarda el sobre como
// pendiente y solo Confirm lo aplica. El estado vive en el ConversationStore, no en memoria.
type Assistant struct {
	cfg Config
	now func() time.Time
}

// New construye el asistente.
func New(cfg Config) *Assistant {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultResolveTimeout
	}
	if cfg.Metrics == nil {
		cfg.Metrics = ports.NopMetrics{}
	}
	return &Assistant{cfg: cfg, now: time.Now}
}

// Chat resuelve un mensaje en el contexto de la conversación. Sin conversationID se abre
// una nueva. Un fallo o timeout del resolvedor vuelve como sobre con Error; el pendiente
// anterior se conserva.
func (a *Assistant) Chat(ctx context.Context, conversationID, message, suggestedIntent string) (*ChatResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.NewValidationError("message", "obligatorio")
	}
	if suggestedIntent != "" && !intent.IsKnown(suggestedIntent) {
		return nil, domain.NewValidationError("suggested_intent", "intención desconocida")
	}
	conv, err := a.loadOrNew(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	req := intent.ResolveRequest{
		Message:         message,
		SuggestedIntent: suggestedIntent,
		Pending:         conv.Pending,
		Today:           a.now(),
	}
	if req.Products, req.Partners, err = a.entities(ctx); err != nil {
		return nil, err
	}

	env := a.resolve(ctx, req)
	if env.Error == "" {
		conv.Pending = env
	}
	conv.UpdatedAt = a.now()
	if err := a.cfg.Store.Save(ctx, conv); err != nil {
		return nil, domain.WrapStorage("guardar conversación", err)
	}
	return &ChatResult{ConversationID: conv.ID.String(), Envelope: env}, nil
}

// Confirm aplica el sobre pendiente como máximo una vez: primero lo retira del store
// y recién entonces escribe en el libro. Si el libro falla, el pendiente se restaura
// para que el usuario lo corrija; si falla el store, no se escribe nada.
func (a *Assistant) Confirm(ctx context.Context, conversationID string) (*Result, error) {
	conv, err := a.load(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	pending := conv.Pending
	if pending == nil {
		return nil, domain.NewValidationError("conversation_id", "sin intención pendiente")
	}
	if err := validateEnvelope(pending); err != nil {
		return nil, err
	}

	conv.Pending = nil
	conv.UpdatedAt = a.now()
	if err := a.cfg.Store.Save(ctx, conv); err != nil {
		return nil, domain.WrapStorage("guardar conversación", err)
	}

	res, err := a.cfg.Dispatcher.Apply(ctx, pending)
	if err != nil {
		conv.Pending = pending
		if saveErr := a.cfg.Store.Save(ctx, conv); saveErr != nil {
			a.cfg.Logger.Error().Err(saveErr).
				Str("conversation_id", conv.ID.String()).
				Msg("no se pudo restaurar la intención pendiente")
		}
		return nil, err
	}
	a.cfg.Logger.Info().
		Str("conversation_id", conv.ID.String()).
		Str("intent", res.Intent).
		Int64("id", res.ID).
		Msg("intención aplicada")
	return res, nil
}

// Cancel descarta la conversación y su pendiente.
func (a *Assistant) Cancel(ctx context.Context, conversationID string) error {
	id, err := parseConversationID(conversationID)
	if err != nil {
		return err
	}
	if err := a.cfg.Store.Delete(ctx, id); err != nil {
		return domain.WrapStorage("borrar conversación", err)
	}
	return nil
}

// resolve llama al resolvedor con timeout. Nunca devuelve error: el fallo viaja en el sobre.
func (a *Assistant) resolve(ctx context.Context, req intent.ResolveRequest) *intent.Envelope {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	start := time.Now()
	env, err := a.cfg.Resolver.Resolve(ctx, req)
	elapsed := time.Since(start)
	if err == nil && env == nil {
		err = errors.New("respuesta vacía del resolvedor")
	}
	if err != nil {
		a.cfg.Metrics.ObserveResolution(statusError, elapsed)
		a.cfg.Logger.Warn().Err(err).Dur("elapsed", elapsed).Msg("resolvedor de intenciones falló")
		return &intent.Envelope{Status: intent.StatusIncomplete, Error: err.Error()}
	}
	if env.Status != intent.StatusComplete {
		env.Status = intent.StatusIncomplete
	}
	if !intent.IsKnown(env.Intent) {
		env.Status = intent.StatusIncomplete
		env.MissingFields = appendMissing(env.MissingFields, "intent")
	}
	a.cfg.Metrics.ObserveResolution(env.Status, elapsed)
	return env
}

func (a *Assistant) entities(ctx context.Context) (products, partners []intent.EntityRef, err error) {
	ps, err := a.cfg.Products.List(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range ps {
		products = append(products, intent.EntityRef{ID: p.ID, Name: p.Name})
	}
	ss, err := a.cfg.Partners.List(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	for _, s := range ss {
		partners = append(partners, intent.EntityRef{ID: s.ID, Name: s.Name})
	}
	return products, partners, nil
}

func (a *Assistant) load(ctx context.Context, conversationID string) (*intent.Conversation, error) {
	id, err := parseConversationID(conversationID)
	if err != nil {
		return nil, err
	}
	conv, err := a.cfg.Store.Get(ctx, id)
	if errors.Is(err, ports.ErrConversationNotFound) {
		return nil, &domain.NotFoundError{Entity: "conversación " + id.String()}
	}
	if err != nil {
		return nil, domain.WrapStorage("leer conversación", err)
	}
	return conv, nil
}

// loadOrNew abre una conversación nueva si el id está vacío o expiró.
func (a *Assistant) loadOrNew(ctx context.Context, conversationID string) (*intent.Conversation, error) {
	if conversationID == "" {
		return &intent.Conversation{ID: uuid.New()}, nil
	}
	conv, err := a.load(ctx, conversationID)
	if errors.Is(err, domain.ErrNotFound) {
		id, _ := uuid.Parse(conversationID)
		return &intent.Conversation{ID: id}, nil
	}
	return conv, err
}

func parseConversationID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, domain.NewValidationError("conversation_id", "uuid inválido")
	}
	return id, nil
}

func appendMissing(fields []string, f string) []string {
	for _, x := range fields {
		if x == f {
			return fields
		}
	}
	return append(fields, f)
}
