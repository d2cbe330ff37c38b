package inventory

import (
	"context"

	"github.com/tanyourpeach/tan-scheduler/internal/httperr"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

// Store is the slice of persistence the ledger needs. DeductItem must be
// atomic: it subtracts the quantity only while the item stays non-negative
// and fails with insufficient_inventory otherwise.
type Store interface {
	ListUsages(ctx context.Context, serviceID uint) ([]models.ServiceInventoryUsage, error)
	GetItem(ctx context.Context, itemID uint) (*models.InventoryItem, error)
	DeductItem(ctx context.Context, itemID uint, qty int) error
}

// Ledger checks and consumes the inventory a service uses per appointment.
type Ledger struct {
	store Store
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// CheckAvailability returns nil iff every usage row for the service is
// covered by on-hand quantity.
func (l *Ledger) CheckAvailability(ctx context.Context, serviceID uint) error {
	usages, err := l.store.ListUsages(ctx, serviceID)
	if err != nil {
		return err
	}

	for _, u := range usages {
		item, err := l.store.GetItem(ctx, u.ItemID)
		if err != nil {
			return err
		}
		if item.Quantity < u.QuantityUsed {
			return httperr.ErrBusiness("insufficient_inventory")
		}
	}

	return nil
}

// Deduct consumes every usage row for the service. Each item is deducted
// with a conditional update that re-checks quantity, so a concurrent
// confirmation cannot drive stock negative; the caller runs Deduct inside a
// transaction so a late failure rolls back the earlier deductions.
func (l *Ledger) Deduct(ctx context.Context, serviceID uint) error {
	usages, err := l.store.ListUsages(ctx, serviceID)
	if err != nil {
		return err
	}

	for _, u := range usages {
		if err := l.store.DeductItem(ctx, u.ItemID, u.QuantityUsed); err != nil {
			return err
		}
	}

	return nil
}
