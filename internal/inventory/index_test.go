package inventory

import (
	"sync"
	"testing"

	"github.com/medrelive/medfinder-backend/internal/catalog"
	"github.com/medrelive/medfinder-backend/pkg/enums"
	pkgerrors "github.com/medrelive/medfinder-backend/pkg/errors"
)

func TestLookupPreservesCatalogStoreOrder(t *testing.T) {
	idx := New(catalog.Default())

	entries := idx.Lookup("1")
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []struct {
		store  string
		status enums.StockStatus
	}{
		{"s1", enums.StockStatusInStock},
		{"s2", enums.StockStatusOutOfStock},
		{"s3", enums.StockStatusInStock},
	}
	for i, w := range want {
		if entries[i].Store.ID != w.store || entries[i].Record.Status != w.status {
			t.Fatalf("entry %d: expected %s/%s got %s/%s", i, w.store, w.status, entries[i].Store.ID, entries[i].Record.Status)
		}
		if entries[i].Record.MedicineID != "1" {
			t.Fatalf("entry %d carries wrong medicine %q", i, entries[i].Record.MedicineID)
		}
		if entries[i].Store.Inventory != nil {
			t.Fatalf("entry store should not carry the full inventory")
		}
	}
}

func TestLookupUnknownMedicine(t *testing.T) {
	idx := New(catalog.Default())
	if entries := idx.Lookup("404"); len(entries) != 0 {
		t.Fatalf("expected no entries, got %v", entries)
	}
}

func TestBuildDuplicateRecordLastSeenWins(t *testing.T) {
	idx := Build([]catalog.Store{{
		ID: "x",
		Inventory: []catalog.InventoryRecord{
			{MedicineID: "m", Status: enums.StockStatusInStock, LastUpdated: "first"},
			{MedicineID: "m", Status: enums.StockStatusOutOfStock, LastUpdated: "second"},
		},
	}})

	entries := idx.Lookup("m")
	if len(entries) != 1 {
		t.Fatalf("expected a single entry per store, got %d", len(entries))
	}
	if entries[0].Record.LastUpdated != "second" {
		t.Fatalf("expected last record to win, got %q", entries[0].Record.LastUpdated)
	}
}

func TestUpdateStatusIsVisibleAndIsolated(t *testing.T) {
	idx := New(catalog.Default())
	before, _ := idx.Store("s3")

	rec, err := idx.UpdateStatus("s3", "2", enums.StockStatusLowStock, "Just now")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Status != enums.StockStatusLowStock || rec.LastUpdated != "Just now" {
		t.Fatalf("unexpected updated record %+v", rec)
	}

	after, _ := idx.Store("s3")
	for i := range after.Inventory {
		if after.Inventory[i].MedicineID == "2" {
			continue
		}
		if after.Inventory[i] != before.Inventory[i] {
			t.Fatalf("record %s changed unexpectedly: %+v -> %+v", after.Inventory[i].MedicineID, before.Inventory[i], after.Inventory[i])
		}
	}

	for _, e := range idx.Lookup("2") {
		if e.Store.ID == "s3" && e.Record.Status != enums.StockStatusLowStock {
			t.Fatalf("lookup did not reflect the update")
		}
		if e.Store.ID == "s1" && e.Record.Status != enums.StockStatusLowStock {
			t.Fatalf("s1 record for medicine 2 should be untouched")
		}
	}
}

func TestUpdateStatusErrors(t *testing.T) {
	idx := New(catalog.Default())

	if _, err := idx.UpdateStatus("s9", "1", enums.StockStatusInStock, "now"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for unknown store, got %v", err)
	}
	if _, err := idx.UpdateStatus("s1", "6", enums.StockStatusInStock, "now"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for unstocked medicine, got %v", err)
	}
	if _, err := idx.UpdateStatus("s1", "1", enums.StockStatus("gone"), "now"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for bad status, got %v", err)
	}
}

func TestSnapshotsAreDetached(t *testing.T) {
	idx := New(catalog.Default())
	s, _ := idx.Store("s1")
	s.Inventory[0].Status = enums.StockStatusOutOfStock

	rec, ok := idx.Record("s1", "1")
	if !ok || rec.Status != enums.StockStatusInStock {
		t.Fatalf("mutating a snapshot must not leak into the index")
	}
}

func TestConcurrentReadsAndUpdates(t *testing.T) {
	idx := New(catalog.Default())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = idx.Lookup("1")
			}
		}()
		go func(n int) {
			defer wg.Done()
			status := enums.StockStatusInStock
			if n%2 == 0 {
				status = enums.StockStatusLowStock
			}
			for j := 0; j < 100; j++ {
				if _, err := idx.UpdateStatus("s1", "1", status, "Just now"); err != nil {
					t.Errorf("update: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
