package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanyourpeach/tan-scheduler/internal/httperr"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

// memStore is an in-memory Store with the same conditional-deduct contract
// as the gorm repository.
type memStore struct {
	items  map[uint]*models.InventoryItem
	usages map[uint][]models.ServiceInventoryUsage
}

func newMemStore() *memStore {
	return &memStore{
		items:  map[uint]*models.InventoryItem{},
		usages: map[uint][]models.ServiceInventoryUsage{},
	}
}

func (s *memStore) ListUsages(_ context.Context, serviceID uint) ([]models.ServiceInventoryUsage, error) {
	return s.usages[serviceID], nil
}

func (s *memStore) GetItem(_ context.Context, itemID uint) (*models.InventoryItem, error) {
	item, ok := s.items[itemID]
	if !ok {
		return nil, httperr.ErrBusiness("item_not_found")
	}
	return item, nil
}

func (s *memStore) DeductItem(_ context.Context, itemID uint, qty int) error {
	item, ok := s.items[itemID]
	if !ok || item.Quantity < qty {
		return httperr.ErrBusiness("insufficient_inventory")
	}
	item.Quantity -= qty
	return nil
}

func TestLedgerCheckAvailability(t *testing.T) {
	store := newMemStore()
	store.items[1] = &models.InventoryItem{ID: 1, Name: "Gloves", Quantity: 5}
	store.usages[10] = []models.ServiceInventoryUsage{{ServiceID: 10, ItemID: 1, QuantityUsed: 2}}

	ledger := NewLedger(store)
	require.NoError(t, ledger.CheckAvailability(context.Background(), 10))

	store.items[1].Quantity = 1
	err := ledger.CheckAvailability(context.Background(), 10)
	require.Error(t, err)
	assert.Equal(t, "insufficient_inventory", httperr.BusinessCode(err))
}

func TestLedgerCheckAvailabilityNoUsages(t *testing.T) {
	ledger := NewLedger(newMemStore())
	assert.NoError(t, ledger.CheckAvailability(context.Background(), 99))
}

func TestLedgerDeduct(t *testing.T) {
	store := newMemStore()
	store.items[1] = &models.InventoryItem{ID: 1, Name: "Gloves", Quantity: 5}
	store.items[2] = &models.InventoryItem{ID: 2, Name: "Caps", Quantity: 3}
	store.usages[10] = []models.ServiceInventoryUsage{
		{ServiceID: 10, ItemID: 1, QuantityUsed: 2},
		{ServiceID: 10, ItemID: 2, QuantityUsed: 1},
	}

	ledger := NewLedger(store)
	require.NoError(t, ledger.Deduct(context.Background(), 10))

	assert.Equal(t, 3, store.items[1].Quantity)
	assert.Equal(t, 2, store.items[2].Quantity)
}

func TestLedgerDeductInsufficient(t *testing.T) {
	store := newMemStore()
	store.items[1] = &models.InventoryItem{ID: 1, Name: "Gloves", Quantity: 1}
	store.usages[10] = []models.ServiceInventoryUsage{{ServiceID: 10, ItemID: 1, QuantityUsed: 2}}

	ledger := NewLedger(store)
	err := ledger.Deduct(context.Background(), 10)
	require.Error(t, err)
	assert.Equal(t, "insufficient_inventory", httperr.BusinessCode(err))
	assert.Equal(t, 1, store.items[1].Quantity)
}
