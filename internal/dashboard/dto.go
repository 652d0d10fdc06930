package dashboard

import (
	"github.com/medrelive/medfinder-backend/internal/catalog"
	"github.com/medrelive/medfinder-backend/internal/stores"
)

// LoginInput is the simulated sign-in form.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SessionDTO struct {
	SessionID string `json:"session_id"`
	StoreID   string `json:"store_id"`
}

type SyncDTO struct {
	Message string `json:"message"`
}

type StatsDTO struct {
	StoreID    string `json:"store_id"`
	Total      int    `json:"total"`
	InStock    int    `json:"in_stock"`
	LowStock   int    `json:"low_stock"`
	OutOfStock int    `json:"out_of_stock"`
}

func newRow(m catalog.Medicine, r catalog.InventoryRecord) stores.InventoryRowDTO {
	return stores.InventoryRowDTO{
		MedicineID:   r.MedicineID,
		MedicineName: m.Name,
		Category:     m.Category,
		Status:       r.Status,
		StatusLabel:  r.Status.Label(),
		LastUpdated:  r.LastUpdated,
	}
}
