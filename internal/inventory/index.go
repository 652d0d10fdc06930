package inventory

import (
	"sync"

	"github.com/medrelive/medfinder-backend/internal/catalog"
	"github.com/medrelive/medfinder-backend/pkg/enums"
	pkgerrors "github.com/medrelive/medfinder-backend/pkg/errors"
)

// Entry pairs a store (without its inventory) with one of its records.
type Entry struct {
	Store  catalog.Store
	Record catalog.InventoryRecord
}

type storeRecords struct {
	store   catalog.Store
	records []catalog.InventoryRecord
	// position of each medicine in records
	byMedicine map[string]int
}

// Index maps medicines to the stores that carry them. It owns the live copy
// of every inventory record, so status updates are visible to the next lookup.
type Index struct {
	mu         sync.RWMutex
	stores     []*storeRecords
	byStore    map[string]*storeRecords
	byMedicine map[string][]*storeRecords
}

// New builds an index over the catalog's stores.
func New(c *catalog.Catalog) *Index {
	return Build(c.Stores())
}

// Build indexes the given stores in order. A store listing the same medicine
// twice keeps the last record.
func Build(stores []catalog.Store) *Index {
	idx := &Index{
		stores:     make([]*storeRecords, 0, len(stores)),
		byStore:    make(map[string]*storeRecords, len(stores)),
		byMedicine: make(map[string][]*storeRecords),
	}
	for _, s := range stores {
		if _, dup := idx.byStore[s.ID]; dup {
			continue
		}
		sr := &storeRecords{
			store:      s.Summary(),
			records:    make([]catalog.InventoryRecord, 0, len(s.Inventory)),
			byMedicine: make(map[string]int, len(s.Inventory)),
		}
		for _, rec := range s.Inventory {
			if pos, seen := sr.byMedicine[rec.MedicineID]; seen {
				sr.records[pos] = rec
				continue
			}
			sr.byMedicine[rec.MedicineID] = len(sr.records)
			sr.records = append(sr.records, rec)
			idx.byMedicine[rec.MedicineID] = append(idx.byMedicine[rec.MedicineID], sr)
		}
		idx.stores = append(idx.stores, sr)
		idx.byStore[s.ID] = sr
	}
	return idx
}

// Lookup returns every store carrying the medicine, in catalog store order.
func (i *Index) Lookup(medicineID string) []Entry {
	i.mu.RLock()
	defer i.mu.RUnlock()

	holders := i.byMedicine[medicineID]
	entries := make([]Entry, 0, len(holders))
	for _, sr := range holders {
		entries = append(entries, Entry{
			Store:  sr.store,
			Record: sr.records[sr.byMedicine[medicineID]],
		})
	}
	return entries
}

// Store returns the store with a snapshot of its current inventory.
func (i *Index) Store(storeID string) (catalog.Store, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	sr, ok := i.byStore[storeID]
	if !ok {
		return catalog.Store{}, false
	}
	out := sr.store
	out.Inventory = append([]catalog.InventoryRecord(nil), sr.records...)
	return out, true
}

// Record returns the current record for one (store, medicine) pair.
func (i *Index) Record(storeID, medicineID string) (catalog.InventoryRecord, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	sr, ok := i.byStore[storeID]
	if !ok {
		return catalog.InventoryRecord{}, false
	}
	pos, ok := sr.byMedicine[medicineID]
	if !ok {
		return catalog.InventoryRecord{}, false
	}
	return sr.records[pos], true
}

// UpdateStatus changes the status and last-updated marker of exactly one record.
func (i *Index) UpdateStatus(storeID, medicineID string, status enums.StockStatus, lastUpdated string) (catalog.InventoryRecord, error) {
	if !status.IsValid() {
		return catalog.InventoryRecord{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid stock status").
			WithDetails(map[string]any{"status": status.String()})
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	sr, ok := i.byStore[storeID]
	if !ok {
		return catalog.InventoryRecord{}, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	pos, ok := sr.byMedicine[medicineID]
	if !ok {
		return catalog.InventoryRecord{}, pkgerrors.New(pkgerrors.CodeNotFound, "medicine not stocked by store")
	}
	sr.records[pos].Status = status
	sr.records[pos].LastUpdated = lastUpdated
	return sr.records[pos], nil
}
