package stores

import (
	"context"
	"fmt"

	"github.com/medrelive/medfinder-backend/internal/catalog"
	pkgerrors "github.com/medrelive/medfinder-backend/pkg/errors"
)

type medicineLookup interface {
	Medicine(id string) (catalog.Medicine, bool)
	Stores() []catalog.Store
}

type storeInventory interface {
	Store(storeID string) (catalog.Store, bool)
}

// Service exposes the store directory.
type Service interface {
	List(ctx context.Context) []StoreSummaryDTO
	Detail(ctx context.Context, storeID, highlight string) (*StoreDetailDTO, error)
}

type service struct {
	catalog   medicineLookup
	inventory storeInventory
}

// NewService builds the store directory over the catalog and the live inventory.
func NewService(c medicineLookup, inv storeInventory) (Service, error) {
	if c == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if inv == nil {
		return nil, fmt.Errorf("inventory index required")
	}
	return &service{catalog: c, inventory: inv}, nil
}

func (s *service) List(ctx context.Context) []StoreSummaryDTO {
	stores := s.catalog.Stores()
	out := make([]StoreSummaryDTO, 0, len(stores))
	for _, st := range stores {
		out = append(out, FromStore(st))
	}
	return out
}

// Detail returns the store's current inventory joined to medicine data. Rows
// for medicines missing from the catalog are left out.
func (s *service) Detail(ctx context.Context, storeID, highlight string) (*StoreDetailDTO, error) {
	st, ok := s.inventory.Store(storeID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found").
			WithDetails(map[string]any{"store_id": storeID})
	}

	detail := &StoreDetailDTO{
		StoreSummaryDTO: FromStore(st),
		Inventory:       make([]InventoryRowDTO, 0, len(st.Inventory)),
	}
	for _, rec := range st.Inventory {
		med, ok := s.catalog.Medicine(rec.MedicineID)
		if !ok {
			continue
		}
		detail.Inventory = append(detail.Inventory, newInventoryRow(med, rec, highlight != "" && rec.MedicineID == highlight))
	}
	return detail, nil
}
