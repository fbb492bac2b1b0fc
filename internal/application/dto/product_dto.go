package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Con InitialQuantity > 0
// se registra una entrada "Saldo inicial" en la misma transacción.
type CreateProductRequest struct {
	CompanyID       int64           `json:"company_id" validate:"required,gt=0"`
	SKU             string          `json:"sku" validate:"omitempty,max=100"`
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	Price           decimal.Decimal `json:"price"`
	InitialQuantity int64           `json:"initial_quantity" validate:"min=0"`
	InitialCost     decimal.Decimal `json:"initial_cost"`
	Source          string          `json:"source" validate:"omitempty,oneof=próprio consignado"`
	IsPaid          bool            `json:"is_paid"`
}

// UpdatePriceRequest edición del precio de lista.
type UpdatePriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        int64           `json:"id"`
	CompanyID int64           `json:"company_id"`
	SKU       string          `json:"sku,omitempty"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}
