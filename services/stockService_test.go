package services

import (
	"DreyCare/models"
	"DreyCare/repositories"
	"context"
	"errors"
	"testing"
)

// fakeDrugStore applies the same guard the real store enforces with its
// conditional update: stock never goes below zero.
type fakeDrugStore struct {
	drugs map[string]*models.Drug
	err   error
}

func (s *fakeDrugStore) GetByID(ctx context.Context, id string) (*models.Drug, error) {
	drug, ok := s.drugs[id]
	if !ok {
		return nil, nil
	}
	copied := *drug
	return &copied, nil
}

func (s *fakeDrugStore) DecrementStock(ctx context.Context, id string, qty int) (*models.Drug, error) {
	if s.err != nil {
		return nil, s.err
	}
	drug, ok := s.drugs[id]
	if !ok {
		return nil, repositories.ErrDrugNotFound
	}
	if drug.StockQuantity < qty {
		return nil, repositories.ErrInsufficientStock
	}
	drug.StockQuantity -= qty
	copied := *drug
	return &copied, nil
}

func TestDispenseDecrementsStock(t *testing.T) {
	store := &fakeDrugStore{drugs: map[string]*models.Drug{
		"d1": {ID: "d1", Name: "Paracetamol", StockQuantity: 5, ReorderLevel: 4},
	}}
	stock := NewStockService(store)

	drug, err := stock.Dispense(context.Background(), "d1", 1)
	if err != nil {
		t.Fatalf("Dispense() error = %v", err)
	}
	if drug.StockQuantity != 4 {
		t.Errorf("StockQuantity = %d, want 4", drug.StockQuantity)
	}
	if drug.StockStatus() != models.StockLow {
		t.Errorf("StockStatus = %s, want %s", drug.StockStatus(), models.StockLow)
	}
}

func TestDispenseAtZeroStockFails(t *testing.T) {
	store := &fakeDrugStore{drugs: map[string]*models.Drug{
		"d1": {ID: "d1", Name: "Paracetamol", StockQuantity: 0},
	}}
	stock := NewStockService(store)

	_, err := stock.Dispense(context.Background(), "d1", 1)
	var stockErr *StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("Dispense() error = %v, want StockError", err)
	}
	if stockErr.Kind != StockInsufficient {
		t.Errorf("Kind = %s, want %s", stockErr.Kind, StockInsufficient)
	}
	if store.drugs["d1"].StockQuantity != 0 {
		t.Errorf("stock changed on refusal: %d", store.drugs["d1"].StockQuantity)
	}
}

func TestDispenseMoreThanAvailableFails(t *testing.T) {
	store := &fakeDrugStore{drugs: map[string]*models.Drug{
		"d1": {ID: "d1", Name: "Paracetamol", StockQuantity: 3},
	}}
	stock := NewStockService(store)

	_, err := stock.Dispense(context.Background(), "d1", 4)
	var stockErr *StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("Dispense() error = %v, want StockError", err)
	}
	if stockErr.Kind != StockInsufficient {
		t.Errorf("Kind = %s, want %s", stockErr.Kind, StockInsufficient)
	}
	if store.drugs["d1"].StockQuantity != 3 {
		t.Errorf("stock changed on refusal: %d", store.drugs["d1"].StockQuantity)
	}
}

func TestDispenseInvalidQuantity(t *testing.T) {
	store := &fakeDrugStore{drugs: map[string]*models.Drug{
		"d1": {ID: "d1", StockQuantity: 10},
	}}
	stock := NewStockService(store)

	for _, qty := range []int{0, -1} {
		_, err := stock.Dispense(context.Background(), "d1", qty)
		var stockErr *StockError
		if !errors.As(err, &stockErr) {
			t.Fatalf("Dispense(%d) error = %v, want StockError", qty, err)
		}
		if stockErr.Kind != StockInvalidQuantity {
			t.Errorf("Kind = %s, want %s", stockErr.Kind, StockInvalidQuantity)
		}
	}
	if store.drugs["d1"].StockQuantity != 10 {
		t.Errorf("stock changed on refusal: %d", store.drugs["d1"].StockQuantity)
	}
}

func TestDispenseUnknownDrug(t *testing.T) {
	stock := NewStockService(&fakeDrugStore{drugs: map[string]*models.Drug{}})

	_, err := stock.Dispense(context.Background(), "missing", 1)
	var stockErr *StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("Dispense() error = %v, want StockError", err)
	}
	if stockErr.Kind != StockUnknownDrug {
		t.Errorf("Kind = %s, want %s", stockErr.Kind, StockUnknownDrug)
	}
}

func TestDispenseStoreFailure(t *testing.T) {
	stock := NewStockService(&fakeDrugStore{err: errors.New("connection reset")})

	_, err := stock.Dispense(context.Background(), "d1", 1)
	var persistErr *PersistenceError
	if !errors.As(err, &persistErr) {
		t.Fatalf("Dispense() error = %v, want PersistenceError", err)
	}
	if persistErr.Op != "decrement_stock" {
		t.Errorf("Op = %q, want decrement_stock", persistErr.Op)
	}
}
