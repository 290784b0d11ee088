package services

import (
	"DreyCare/models"
	"DreyCare/repositories"
	"context"
	"errors"
)

// DrugStore is the slice of drug persistence the stock ledger needs. The
// implementation must make DecrementStock atomic: multiple pharmacy operators
// dispense concurrently and stock must never go negative.
type DrugStore interface {
	GetByID(ctx context.Context, id string) (*models.Drug, error)
	DecrementStock(ctx context.Context, id string, qty int) (*models.Drug, error)
}

// StockService is the stock ledger: the only writer of stock_quantity outside
// inventory management.
type StockService struct {
	drugs DrugStore
}

func NewStockService(drugs DrugStore) *StockService {
	return &StockService{drugs: drugs}
}

// Dispense atomically decrements a drug's stock by qty and returns the fresh
// row. Refuses with a typed StockError on a non-positive quantity, an unknown
// drug, or insufficient stock; stock is unchanged in every refusal case.
// Low/out-of-stock classification is read off the returned row.
func (s *StockService) Dispense(ctx context.Context, drugID string, qty int) (*models.Drug, error) {
	if qty <= 0 {
		return nil, &StockError{Kind: StockInvalidQuantity, DrugID: drugID, Quantity: qty}
	}

	drug, err := s.drugs.DecrementStock(ctx, drugID, qty)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrDrugNotFound):
			return nil, &StockError{Kind: StockUnknownDrug, DrugID: drugID, Quantity: qty}
		case errors.Is(err, repositories.ErrInsufficientStock):
			return nil, &StockError{Kind: StockInsufficient, DrugID: drugID, Quantity: qty}
		default:
			return nil, &PersistenceError{Op: "decrement_stock", Key: drugID, Err: err}
		}
	}
	return drug, nil
}
