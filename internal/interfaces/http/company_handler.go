package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/usecase"
	"github.com/jhoicas/ledger-api/internal/domain"
)

// CompanyHandler maneja las peticiones HTTP para empresas, socios y gastos fijos.
type CompanyHandler struct {
	companies *usecase.CompanyUseCase
	partners  *usecase.PartnerUseCase
	fixed     *usecase.FixedExpenseUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(companies *usecase.CompanyUseCase, partners *usecase.PartnerUseCase, fixed *usecase.FixedExpenseUseCase) *CompanyHandler {
	return &CompanyHandler{companies: companies, partners: partners, fixed: fixed}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.companies.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener empresa por ID
// @Tags         companies
// @Produce      json
// @Param        id   path  int  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.companies.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return writeError(c, domain.NewNotFoundError("empresa", id))
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar empresas
// @Tags         companies
// @Produce      json
// @Success      200  {array}  dto.CompanyResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	out, err := h.companies.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Rename godoc
// @Summary      Renombrar empresa
// @Tags         companies
// @Accept       json
// @Param        id    path  int  true  "ID de la empresa"
// @Param        body  body  dto.RenameCompanyRequest  true  "Nuevo nombre"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [patch]
func (h *CompanyHandler) Rename(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.RenameCompanyRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	if err := h.companies.Rename(c.UserContext(), id, in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Borrar empresa (cascada sobre socios, productos y gastos fijos)
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la empresa"
// @Success      200  {object}  dto.DeletedResponse
// @Router       /api/companies/{id} [delete]
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	ok, err := h.companies.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeletedResponse{Deleted: ok})
}

// ── Sócios ────────────────────────────────────────────────────────────────────

// CreatePartner godoc
// @Summary      Crear socio
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartnerRequest  true  "Datos del socio"
// @Success      201   {object}  dto.PartnerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/partners [post]
func (h *CompanyHandler) CreatePartner(c *fiber.Ctx) error {
	var in dto.CreatePartnerRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.partners.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPartners godoc
// @Summary      Listar socios
// @Tags         partners
// @Produce      json
// @Param        company_id  query  int  false  "Filtrar por empresa"
// @Success      200  {array}  dto.PartnerResponse
// @Router       /api/partners [get]
func (h *CompanyHandler) ListPartners(c *fiber.Ctx) error {
	out, err := h.partners.List(c.UserContext(), companyScope(c, int64(c.QueryInt("company_id"))))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Gastos fixos ──────────────────────────────────────────────────────────────

// CreateFixedExpense godoc
// @Summary      Registrar gasto fijo
// @Tags         fixed-expenses
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFixedExpenseRequest  true  "Datos del gasto fijo"
// @Success      201   {object}  dto.FixedExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fixed-expenses [post]
func (h *CompanyHandler) CreateFixedExpense(c *fiber.Ctx) error {
	var in dto.CreateFixedExpenseRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.fixed.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListFixedExpenses godoc
// @Summary      Listar gastos fijos
// @Tags         fixed-expenses
// @Produce      json
// @Param        company_id  query  int  false  "Filtrar por empresa"
// @Success      200  {array}  dto.FixedExpenseResponse
// @Router       /api/fixed-expenses [get]
func (h *CompanyHandler) ListFixedExpenses(c *fiber.Ctx) error {
	out, err := h.fixed.List(c.UserContext(), companyScope(c, int64(c.QueryInt("company_id"))))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
