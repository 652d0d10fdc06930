package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/medrelive/medfinder-backend/pkg/enums"
)

// Seed is the on-disk shape of a catalog.
type Seed struct {
	Medicines []Medicine `json:"medicines"`
	Stores    []Store    `json:"stores"`
}

// Decode reads a JSON seed. Statuses may be codes ("in_stock") or labels ("In Stock").
func Decode(r io.Reader) (*Catalog, error) {
	var seed Seed
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(seed.Medicines, seed.Stores)
}

// LoadFile reads a JSON seed from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Load returns the catalog at path, or the built-in seed when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Default returns the built-in demo catalog.
func Default() *Catalog {
	c, err := New(defaultMedicines(), defaultStores())
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

func defaultMedicines() []Medicine {
	return []Medicine{
		{ID: "1", Name: "Paracetamol 500mg", Category: "Pain Relief", Description: "Used to treat fever and mild to moderate pain."},
		{ID: "2", Name: "Amoxicillin 250mg", Category: "Antibiotic", Description: "Penicillin-type antibiotic used to treat bacterial infections."},
		{ID: "3", Name: "Metformin 500mg", Category: "Diabetes", Description: "First-line medication for the treatment of type 2 diabetes."},
		{ID: "4", Name: "Amlodipine 5mg", Category: "Blood Pressure", Description: "Used to treat high blood pressure and chest pain."},
		{ID: "5", Name: "Atorvastatin 10mg", Category: "Cholesterol", Description: `Used with diet to lower "bad" cholesterol and fats.`},
		{ID: "6", Name: "Cetirizine 10mg", Category: "Allergy", Description: "Antihistamine used to relieve allergy symptoms."},
	}
}

func defaultStores() []Store {
	return []Store{
		{
			ID:         "s1",
			Name:       "City Central Pharmacy",
			Address:    "123 Main St, Downtown",
			Distance:   "0.5 km",
			Phone:      "+1 (555) 123-4567",
			Hours:      "24 Hours Open",
			Rating:     4.8,
			IsVerified: true,
			Inventory: []InventoryRecord{
				{MedicineID: "1", Status: enums.StockStatusInStock, LastUpdated: "2 hours ago"},
				{MedicineID: "2", Status: enums.StockStatusLowStock, LastUpdated: "5 hours ago"},
				{MedicineID: "3", Status: enums.StockStatusInStock, LastUpdated: "1 hour ago"},
			},
		},
		{
			ID:         "s2",
			Name:       "Wellness Plus Medicos",
			Address:    "45 Oak Avenue, East Side",
			Distance:   "1.2 km",
			Phone:      "+1 (555) 987-6543",
			Hours:      "8:00 AM - 10:00 PM",
			Rating:     4.5,
			IsVerified: true,
			Inventory: []InventoryRecord{
				{MedicineID: "1", Status: enums.StockStatusOutOfStock, LastUpdated: "10 mins ago"},
				{MedicineID: "4", Status: enums.StockStatusInStock, LastUpdated: "3 hours ago"},
				{MedicineID: "5", Status: enums.StockStatusInStock, LastUpdated: "4 hours ago"},
			},
		},
		{
			ID:         "s3",
			Name:       "Quick Cure Druggists",
			Address:    "78 Pine Road, North View",
			Distance:   "2.1 km",
			Phone:      "+1 (555) 456-7890",
			Hours:      "9:00 AM - 11:00 PM",
			Rating:     4.2,
			IsVerified: false,
			Inventory: []InventoryRecord{
				{MedicineID: "1", Status: enums.StockStatusInStock, LastUpdated: "1 hour ago"},
				{MedicineID: "2", Status: enums.StockStatusInStock, LastUpdated: "2 hours ago"},
				{MedicineID: "6", Status: enums.StockStatusLowStock, LastUpdated: "1 day ago"},
			},
		},
	}
}
