package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de lançamento financiero. El tipo define el signo; la categoría es solo una etiqueta.
const (
	TransactionRevenue = "Receita"
	TransactionExpense = "Despesa"
)

// Categorías y canales usados por las operaciones compuestas y los reportes.
const (
	CategorySale          = "Venda"
	CategoryStockPurchase = "Estoque/Compra"
	CategoryDefault       = "Geral"
	ChannelProduct        = "Venda"
	ChannelService        = "Serviço"
)

// Transaction asiento del libro financiero. Amount siempre > 0.
type Transaction struct {
	ID          int64
	Type        string
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
	ProductID   *int64
	PartnerID   *int64
	CompanyID   *int64
	CreatedAt   time.Time
}

// IsValidTransactionType indica si t es Receita o Despesa.
func IsValidTransactionType(t string) bool {
	return t == TransactionRevenue || t == TransactionExpense
}
