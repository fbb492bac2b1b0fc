package http

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain"
)

// validate instancia compartida; validator cachea la información de cada struct.
var validate = validator.New(validator.WithRequiredStructEnabled())

// writeError traduce la taxonomía de errores del dominio a HTTP. El núcleo nunca
// formatea mensajes para el usuario: aquí solo se exponen datos estructurados.
func writeError(c *fiber.Ctx, err error) error {
	var (
		ve  *domain.ValidationError
		nfe *domain.NotFoundError
		ce  *domain.ConstraintError
		ise *domain.InsufficientStockError
	)
	var re *requestError
	switch {
	case errors.As(err, &re):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: re.code, Message: re.message, Details: re.details})
	case errors.As(err, &ise):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: err.Error(),
			Details: fiber.Map{"product_id": ise.ProductID, "requested": ise.Requested, "available": ise.Available},
		})
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: err.Error(),
			Details: fiber.Map{"field": ve.Field, "reason": ve.Reason},
		})
	case errors.As(err, &nfe):
		details := fiber.Map{"entity": nfe.Entity}
		if nfe.ID != 0 {
			details["id"] = nfe.ID
		}
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: err.Error(),
			Details: details,
		})
	case errors.As(err, &ce):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "DUPLICATE",
			Message: err.Error(),
			Details: fiber.Map{"constraint": ce.Constraint},
		})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: err.Error()})
	}
}

// requestError petición mal formada (cuerpo, query o reglas validate:"...").
type requestError struct {
	code    string
	message string
	details any
}

func (e *requestError) Error() string { return e.message }

// parseBody parsea el cuerpo JSON y aplica las reglas validate:"...".
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return &requestError{code: "INVALID_BODY", message: "cuerpo inválido"}
	}
	return validateStruct(out)
}

// parseQuery parsea los query params y aplica las reglas validate:"...".
func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return &requestError{code: "INVALID_QUERY", message: "parámetros inválidos"}
	}
	return validateStruct(out)
}

func validateStruct(out any) error {
	err := validate.Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]fiber.Map, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fiber.Map{"field": fe.Field(), "rule": fe.Tag(), "param": fe.Param()})
		}
		return &requestError{code: "VALIDATION", message: "datos de entrada inválidos", details: fields}
	}
	return &requestError{code: "VALIDATION", message: err.Error()}
}

// paramID lee :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "debe ser un entero positivo")
	}
	return id, nil
}

// optionalID convierte 0 en nil (query params sin valor).
func optionalID(v int64) *int64 {
	if v <= 0 {
		return nil
	}
	return &v
}
