package catalog

import (
	"fmt"
	"strings"

	"github.com/medrelive/medfinder-backend/pkg/enums"
	"go.uber.org/multierr"
)

// Medicine is immutable reference data.
type Medicine struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// InventoryRecord ties one medicine to one store.
type InventoryRecord struct {
	MedicineID  string            `json:"medicine_id"`
	Status      enums.StockStatus `json:"status"`
	LastUpdated string            `json:"last_updated"`
}

// Store is a pharmacy with its embedded inventory. Distance and LastUpdated are
// pre-formatted display strings.
type Store struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Address    string            `json:"address"`
	Distance   string            `json:"distance"`
	Phone      string            `json:"phone"`
	Hours      string            `json:"hours"`
	Rating     float64           `json:"rating"`
	IsVerified bool              `json:"is_verified"`
	Inventory  []InventoryRecord `json:"inventory"`
}

// clone returns a copy that shares no inventory backing array with s.
func (s Store) clone() Store {
	out := s
	out.Inventory = append([]InventoryRecord(nil), s.Inventory...)
	return out
}

// Summary returns the store without its inventory.
func (s Store) Summary() Store {
	out := s
	out.Inventory = nil
	return out
}

// DanglingReference is an inventory record whose medicine is not in the catalog.
type DanglingReference struct {
	StoreID    string
	MedicineID string
}

// Catalog is the read-only set of medicines and stores, in their defined order.
// Accessors hand out copies, so callers cannot mutate the reference data.
type Catalog struct {
	medicines    []Medicine
	medicineByID map[string]int
	stores       []Store
	storeByID    map[string]int
	dangling     []DanglingReference
}

// New validates and freezes the given reference data. Every integrity defect
// is reported in the returned error. Records pointing at unknown medicines are
// accepted and surfaced through DanglingReferences.
func New(medicines []Medicine, stores []Store) (*Catalog, error) {
	c := &Catalog{
		medicines:    make([]Medicine, 0, len(medicines)),
		medicineByID: make(map[string]int, len(medicines)),
		stores:       make([]Store, 0, len(stores)),
		storeByID:    make(map[string]int, len(stores)),
	}

	var errs error
	for i, m := range medicines {
		id := strings.TrimSpace(m.ID)
		switch {
		case id == "":
			errs = multierr.Append(errs, fmt.Errorf("medicine[%d]: id is required", i))
			continue
		case strings.TrimSpace(m.Name) == "":
			errs = multierr.Append(errs, fmt.Errorf("medicine %q: name is required", id))
			continue
		}
		if _, dup := c.medicineByID[id]; dup {
			errs = multierr.Append(errs, fmt.Errorf("medicine %q: duplicate id", id))
			continue
		}
		m.ID = id
		c.medicineByID[id] = len(c.medicines)
		c.medicines = append(c.medicines, m)
	}

	for i, s := range stores {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			errs = multierr.Append(errs, fmt.Errorf("store[%d]: id is required", i))
			continue
		}
		if _, dup := c.storeByID[id]; dup {
			errs = multierr.Append(errs, fmt.Errorf("store %q: duplicate id", id))
			continue
		}
		s.ID = id

		held := make(map[string]struct{}, len(s.Inventory))
		for _, rec := range s.Inventory {
			if !rec.Status.IsValid() {
				errs = multierr.Append(errs, fmt.Errorf("store %q medicine %q: invalid status %q", id, rec.MedicineID, rec.Status))
			}
			if _, dup := held[rec.MedicineID]; dup {
				errs = multierr.Append(errs, fmt.Errorf("store %q: medicine %q listed more than once", id, rec.MedicineID))
			}
			held[rec.MedicineID] = struct{}{}
			if _, known := c.medicineByID[rec.MedicineID]; !known {
				c.dangling = append(c.dangling, DanglingReference{StoreID: id, MedicineID: rec.MedicineID})
			}
		}

		c.storeByID[id] = len(c.stores)
		c.stores = append(c.stores, s.clone())
	}

	if errs != nil {
		return nil, errs
	}
	return c, nil
}

// Medicines returns every medicine in catalog order.
func (c *Catalog) Medicines() []Medicine {
	return append([]Medicine(nil), c.medicines...)
}

// Medicine looks up a medicine by id.
func (c *Catalog) Medicine(id string) (Medicine, bool) {
	idx, ok := c.medicineByID[id]
	if !ok {
		return Medicine{}, false
	}
	return c.medicines[idx], true
}

// Stores returns every store, with inventory, in catalog order.
func (c *Catalog) Stores() []Store {
	out := make([]Store, len(c.stores))
	for i, s := range c.stores {
		out[i] = s.clone()
	}
	return out
}

// Store looks up a store by id.
func (c *Catalog) Store(id string) (Store, bool) {
	idx, ok := c.storeByID[id]
	if !ok {
		return Store{}, false
	}
	return c.stores[idx].clone(), true
}

func (c *Catalog) DanglingReferences() []DanglingReference {
	return append([]DanglingReference(nil), c.dangling...)
}
