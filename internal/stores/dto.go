package stores

import (
	"github.com/medrelive/medfinder-backend/internal/catalog"
	"github.com/medrelive/medfinder-backend/pkg/enums"
)

// StoreSummaryDTO exposes store contact data without inventory.
type StoreSummaryDTO struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Distance   string  `json:"distance"`
	Phone      string  `json:"phone"`
	Hours      string  `json:"hours"`
	Rating     float64 `json:"rating"`
	IsVerified bool    `json:"is_verified"`
	Items      int     `json:"items"`
}

// InventoryRowDTO is one inventory record joined to its medicine.
type InventoryRowDTO struct {
	MedicineID   string            `json:"medicine_id"`
	MedicineName string            `json:"medicine_name"`
	Category     string            `json:"category"`
	Status       enums.StockStatus `json:"status"`
	StatusLabel  string            `json:"status_label"`
	LastUpdated  string            `json:"last_updated"`
	Highlighted  bool              `json:"highlighted"`
}

// StoreDetailDTO is the store detail view.
type StoreDetailDTO struct {
	StoreSummaryDTO
	Inventory []InventoryRowDTO `json:"inventory"`
}

// FromStore maps a catalog store into its summary.
func FromStore(s catalog.Store) StoreSummaryDTO {
	return StoreSummaryDTO{
		ID:         s.ID,
		Name:       s.Name,
		Address:    s.Address,
		Distance:   s.Distance,
		Phone:      s.Phone,
		Hours:      s.Hours,
		Rating:     s.Rating,
		IsVerified: s.IsVerified,
		Items:      len(s.Inventory),
	}
}

func newInventoryRow(m catalog.Medicine, r catalog.InventoryRecord, highlighted bool) InventoryRowDTO {
	return InventoryRowDTO{
		MedicineID:   m.ID,
		MedicineName: m.Name,
		Category:     m.Category,
		Status:       r.Status,
		StatusLabel:  r.Status.Label(),
		LastUpdated:  r.LastUpdated,
		Highlighted:  highlighted,
	}
}
