package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// PartnerUseCase alta y consulta de socios. La suma de share_pct entre socios no se valida.
type PartnerUseCase struct {
	repo        repository.PartnerRepository
	companyRepo repository.CompanyRepository
}

// NewPartnerUseCase construye el caso de uso.
func NewPartnerUseCase(repo repository.PartnerRepository, companyRepo repository.CompanyRepository) *PartnerUseCase {
	return &PartnerUseCase{repo: repo, companyRepo: companyRepo}
}

// Create crea un socio. La empresa debe existir.
func (uc *PartnerUseCase) Create(ctx context.Context, in dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	partner := &entity.Partner{
		CompanyID: in.CompanyID,
		Name:      in.Name,
		SharePct:  in.SharePct,
		CreatedAt: time.Now(),
	}
	if err := partner.Validate(); err != nil {
		return nil, err
	}
	if err := ensureCompany(ctx, uc.companyRepo, in.CompanyID); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, partner); err != nil {
		return nil, err
	}
	return toPartnerResponse(partner), nil
}

// List lista socios; companyID nil devuelve todos.
func (uc *PartnerUseCase) List(ctx context.Context, companyID *int64) ([]dto.PartnerResponse, error) {
	list, err := uc.repo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartnerResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartnerResponse(p))
	}
	return items, nil
}

func toPartnerResponse(p *entity.Partner) *dto.PartnerResponse {
	return &dto.PartnerResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Name:      p.Name,
		SharePct:  p.SharePct,
		CreatedAt: p.CreatedAt,
	}
}

func ensureCompany(ctx context.Context, repo repository.CompanyRepository, id int64) error {
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NewNotFoundError("empresa", id)
	}
	return nil
}
