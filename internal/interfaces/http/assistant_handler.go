package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-api/internal/application/assistant"
	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain"
)

// maxStatementBytes tope del extracto subido; el parser trunca el texto de todos modos.
const maxStatementBytes = 2 << 20

// AssistantHandler front end conversacional y la importación de extractos.
type AssistantHandler struct {
	assistant *assistant.Assistant
}

// NewAssistantHandler construye el handler.
func NewAssistantHandler(a *assistant.Assistant) *AssistantHandler {
	return &AssistantHandler{assistant: a}
}

// Chat godoc
// @Summary      Enviar mensaje al asistente
// @Description  Resuelve el texto en una intención y la deja pendiente hasta /api/chat/confirm.
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "Mensaje"
// @Success      200   {object}  assistant.ChatResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/chat [post]
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.assistant.Chat(c.UserContext(), in.ConversationID, in.Message, in.SuggestedIntent)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar la intención pendiente
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConversationRequest  true  "Conversación"
// @Success      201   {object}  assistant.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/chat/confirm [post]
func (h *AssistantHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConversationRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.assistant.Confirm(c.UserContext(), in.ConversationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Cancel godoc
// @Summary      Descartar la conversación
// @Tags         assistant
// @Accept       json
// @Param        body  body  dto.ConversationRequest  true  "Conversación"
// @Success      204
// @Router       /api/chat/cancel [post]
func (h *AssistantHandler) Cancel(c *fiber.Ctx) error {
	var in dto.ConversationRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	if err := h.assistant.Cancel(c.UserContext(), in.ConversationID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ImportStatement godoc
// @Summary      Convertir extracto bancario en asientos para revisión
// @Description  No escribe nada; los registros aprobados se envían a /api/import/apply.
// @Tags         assistant
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Extracto (texto, CSV u OFX)"
// @Success      200   {array}   intent.Record
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/import/statement [post]
func (h *AssistantHandler) ImportStatement(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, &requestError{code: "INVALID_BODY", message: "falta el archivo 'file'"})
	}
	if fh.Size > maxStatementBytes {
		return writeError(c, domain.NewValidationError("file", "excede 2 MB"))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, &requestError{code: "INVALID_BODY", message: "archivo ilegible"})
	}
	defer f.Close()
	raw, err := io.ReadAll(io.LimitReader(f, maxStatementBytes))
	if err != nil {
		return writeError(c, &requestError{code: "INVALID_BODY", message: "archivo ilegible"})
	}

	records, err := h.assistant.ImportStatement(c.UserContext(), raw)
	if err != nil {
		if !domain.IsDomainError(err) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Code:    "PARSER_UNAVAILABLE",
				Message: "no se pudo interpretar el extracto",
			})
		}
		return writeError(c, err)
	}
	return c.JSON(records)
}

// ApplyBatch godoc
// @Summary      Aplicar registros revisados
// @Description  Cada registro se aplica por separado; los fallos no revierten los demás.
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchApplyRequest  true  "Registros"
// @Success      200   {object}  assistant.BatchResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/import/apply [post]
func (h *AssistantHandler) ApplyBatch(c *fiber.Ctx) error {
	var in dto.BatchApplyRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.assistant.ApplyBatch(c.UserContext(), in.Records))
}
