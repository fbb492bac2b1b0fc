// Package intent define el sobre estructurado que devuelve el resolvedor de intenciones.
// El núcleo solo consume el sobre, nunca el texto libre del usuario.
package intent

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Intenciones reconocidas.
const (
	SaveTransaction     = "SAVE_TRANSACTION"
	RegisterSale        = "REGISTER_SALE"
	StockMovement       = "STOCK_MOVEMENT"
	PartnerContribution = "PARTNER_CONTRIBUTION"
	PartnerWithdrawal   = "PARTNER_WITHDRAWAL"
	CreateProduct       = "CREATE_PRODUCT"
)

// Estados del sobre. Solo COMPLETE se aplica.
const (
	StatusComplete   = "COMPLETE"
	StatusIncomplete = "INCOMPLETE"
)

// Known lista las intenciones en el orden en que se ofrecen al resolvedor.
var Known = []string{
	SaveTransaction, RegisterSale, StockMovement,
	PartnerContribution, PartnerWithdrawal, CreateProduct,
}

// IsKnown indica si name es una intención reconocida.
func IsKnown(name string) bool {
	for _, k := range Known {
		if k == name {
			return true
		}
	}
	return false
}

// Data mapa de campos extraídos. Los punteros distinguen "ausente" de cero.
type Data struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description string           `json:"description,omitempty"`
	Date        string           `json:"date,omitempty"` // YYYY-MM-DD
	Type        string           `json:"type,omitempty"`
	Category    string           `json:"category,omitempty"`
	ProductID   *int64           `json:"product_id,omitempty"`
	ProductName string           `json:"product_name,omitempty"`
	Quantity    *int64           `json:"quantity,omitempty"`
	PartnerID   *int64           `json:"partner_id,omitempty"`
	CompanyID   *int64           `json:"company_id,omitempty"`
	Source      string           `json:"source,omitempty"`
	IsPaid      *bool            `json:"is_paid,omitempty"`
}

// Envelope respuesta del resolvedor. Error no vacío indica fallo o timeout del resolvedor.
type Envelope struct {
	Intent        string   `json:"intent"`
	Status        string   `json:"status"`
	Data          Data     `json:"data"`
	MissingFields []string `json:"missing_fields,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// Complete indica si el sobre puede aplicarse.
func (e *Envelope) Complete() bool {
	return e != nil && e.Error == "" && e.Status == StatusComplete
}

// Record registro de importación por lotes: misma forma que el sobre, sin estado.
type Record struct {
	Intent string `json:"intent"`
	Data   Data   `json:"data"`
}

// EntityRef par id/nombre que se entrega al resolvedor para mapear nombres a ids.
type EntityRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ResolveRequest entrada del resolvedor. Pending lleva los datos ya recolectados
// en la conversación para que el modelo los complete.
type ResolveRequest struct {
	Message         string
	SuggestedIntent string
	Pending         *Envelope
	Products        []EntityRef
	Partners        []EntityRef
	Today           time.Time
}

// Conversation contexto explícito de una conversación: la intención pendiente de confirmar.
type Conversation struct {
	ID        uuid.UUID `json:"id"`
	Pending   *Envelope `json:"pending,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
