package dto

import "github.com/jhoicas/ledger-api/internal/domain/intent"

// ChatRequest entrada de POST /api/chat. Sin conversation_id se abre una conversación nueva.
type ChatRequest struct {
	ConversationID  string `json:"conversation_id" validate:"omitempty,uuid"`
	Message         string `json:"message" validate:"required,min=1,max=4000"`
	SuggestedIntent string `json:"suggested_intent" validate:"omitempty,oneof=SAVE_TRANSACTION REGISTER_SALE STOCK_MOVEMENT PARTNER_CONTRIBUTION PARTNER_WITHDRAWAL CREATE_PRODUCT"`
}

// ConversationRequest entrada de confirmar/cancelar.
type ConversationRequest struct {
	ConversationID string `json:"conversation_id" validate:"required,uuid"`
}

// BatchApplyRequest registros revisados de un extracto importado.
type BatchApplyRequest struct {
	Records []intent.Record `json:"records" validate:"required,min=1,max=500"`
}
