package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una nueva empresa. Un nombre repetido devuelve domain.ConstraintError.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	company := &entity.Company{Name: in.Name, CreatedAt: time.Now()}
	if err := company.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID. (nil, nil) si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id int64) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// List lista empresas por id.
func (uc *CompanyUseCase) List(ctx context.Context) ([]dto.CompanyResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return items, nil
}

// Rename cambia el nombre; es la única mutación permitida sobre una empresa.
func (uc *CompanyUseCase) Rename(ctx context.Context, id int64, in dto.RenameCompanyRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.NewValidationError("name", "obligatorio")
	}
	ok, err := uc.repo.Rename(ctx, id, name)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFoundError("empresa", id)
	}
	return nil
}

// Delete borra la empresa y, en cascada, sus socios, productos y gastos fijos.
func (uc *CompanyUseCase) Delete(ctx context.Context, id int64) (bool, error) {
	return uc.repo.Delete(ctx, id)
}

// FirstOrCreate devuelve la primera empresa registrada o crea una con el nombre dado.
func (uc *CompanyUseCase) FirstOrCreate(ctx context.Context, name string) (int64, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(list) > 0 {
		return list[0].ID, nil
	}
	created, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: name})
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}
