package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/ledger"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// InitialStockReference referencia de la entrada que acompaña al alta de un producto.
const InitialStockReference = "Saldo inicial"

// ProductUseCase casos de uso CRUD para productos. El estoque se maneja vía movimientos.
type ProductUseCase struct {
	repo   repository.ProductRepository
	intake *ledger.IntakeUseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, intake *ledger.IntakeUseCase) *ProductUseCase {
	return &ProductUseCase{repo: repo, intake: intake}
}

// Create crea un producto. Con InitialQuantity > 0 registra la entrada "Saldo inicial"
// en la misma transacción (y la despesa si es pagada con costo).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product := &entity.Product{
		CompanyID: in.CompanyID,
		SKU:       in.SKU,
		Name:      in.Name,
		Price:     in.Price,
	}
	var initial *ledger.IntakeInput
	if in.InitialQuantity < 0 {
		return nil, domain.NewValidationError("initial_quantity", "no puede ser negativo")
	}
	if in.InitialQuantity > 0 {
		initial = &ledger.IntakeInput{
			Quantity:  in.InitialQuantity,
			Reference: InitialStockReference,
			Source:    in.Source,
			IsPaid:    in.IsPaid,
			UnitCost:  in.InitialCost,
		}
	}
	if _, err := uc.intake.RegisterNewProduct(ctx, product, initial); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos; companyID nil devuelve todos.
func (uc *ProductUseCase) List(ctx context.Context, companyID *int64) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// UpdatePrice edita el precio de lista. Las ventas ya registradas no cambian.
func (uc *ProductUseCase) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) error {
	if price.IsNegative() {
		return domain.NewValidationError("price", "no puede ser negativo")
	}
	ok, err := uc.repo.UpdatePrice(ctx, id, price)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFoundError("produto", id)
	}
	return nil
}

// Delete borra el producto y sus movimientos; las transacciones quedan sin vínculo.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) (bool, error) {
	return uc.repo.Delete(ctx, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		SKU:       p.SKU,
		Name:      p.Name,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
	}
}
