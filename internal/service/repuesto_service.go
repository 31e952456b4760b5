package service

import (
	"context"
	"fmt"

	"repuestos/internal/model"
	"repuestos/internal/repository"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateRepuestoRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity *int            `json:"stock_quantity" binding:"required,gte=0"`
}

// UpdateRepuestoRequest has the same shape as create: PUT replaces the
// whole record.
type UpdateRepuestoRequest = CreateRepuestoRequest

// --- Interface ---

type RepuestoService interface {
	GetAll(ctx context.Context) ([]model.Repuesto, error)
	GetPage(ctx context.Context, page, limit int) ([]model.Repuesto, int64, error)
	GetByID(ctx context.Context, id uint) (*model.Repuesto, error)
	Create(ctx context.Context, req CreateRepuestoRequest) (*model.Repuesto, error)
	Update(ctx context.Context, id uint, req UpdateRepuestoRequest) (*model.Repuesto, error)
	Delete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) (*model.Repuesto, error)
}

// --- Implementation ---

type repuestoService struct {
	*BaseService[model.Repuesto, *model.Repuesto]
	repo      repository.RepuestoRepository
	txManager repository.TransactionManager
}

func NewRepuestoService(repo repository.RepuestoRepository, txManager repository.TransactionManager) RepuestoService {
	return &repuestoService{
		BaseService: NewBaseService[model.Repuesto, *model.Repuesto](repo),
		repo:        repo,
		txManager:   txManager,
	}
}

// Create rejects names already held by an active repuesto. The check and
// the insert share a transaction, which narrows but does not close the
// check-then-act window under concurrent writers.
func (s *repuestoService) Create(ctx context.Context, req CreateRepuestoRequest) (*model.Repuesto, error) {
	repuesto := &model.Repuesto{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: *req.StockQuantity,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		taken, err := s.repo.ExistsByName(txCtx, req.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("repuesto %q: %w", req.Name, ErrAlreadyExists)
		}
		return s.repo.Create(txCtx, repuesto)
	})
	if err != nil {
		return nil, err
	}
	return repuesto, nil
}

// Update requires the target to exist as an active row and rejects a name
// held by a different active repuesto. Keeping the record's own name is
// always allowed.
func (s *repuestoService) Update(ctx context.Context, id uint, req UpdateRepuestoRequest) (*model.Repuesto, error) {
	var updated *model.Repuesto

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("id %d: %w", id, ErrNotFound)
		}

		taken, err := s.repo.ExistsByName(txCtx, req.Name, id)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("repuesto %q: %w", req.Name, ErrAlreadyExists)
		}

		existing.Name = req.Name
		existing.Description = req.Description
		existing.Price = req.Price
		existing.StockQuantity = *req.StockQuantity

		if err := s.repo.Update(txCtx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ValidatePayload enforces the field rules that gin's binding tags cannot
// express for decimal values. It runs at the HTTP boundary, before any
// service call.
func (req CreateRepuestoRequest) ValidatePayload() error {
	if !req.Price.IsPositive() {
		return fmt.Errorf("price must be greater than zero")
	}
	return nil
}
