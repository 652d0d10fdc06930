package search

import (
	"fmt"
	"net/url"

	"github.com/medrelive/medfinder-backend/internal/catalog"
	"github.com/medrelive/medfinder-backend/internal/inventory"
	"github.com/medrelive/medfinder-backend/pkg/enums"
)

// MedicineDTO is the API view of a medicine.
type MedicineDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// StoreSummaryDTO is a store without inventory.
type StoreSummaryDTO struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Distance   string  `json:"distance"`
	Phone      string  `json:"phone"`
	Hours      string  `json:"hours"`
	Rating     float64 `json:"rating"`
	IsVerified bool    `json:"is_verified"`
}

// RecordDTO is one inventory record with its display label.
type RecordDTO struct {
	MedicineID  string            `json:"medicine_id"`
	Status      enums.StockStatus `json:"status"`
	StatusLabel string            `json:"status_label"`
	LastUpdated string            `json:"last_updated"`
}

// ResultEntryDTO is one store carrying the resolved medicine.
type ResultEntryDTO struct {
	Store         StoreSummaryDTO `json:"store"`
	MatchedRecord RecordDTO       `json:"matched_record"`
	DetailPath    string          `json:"detail_path"`
}

// ResultDTO is the search response body.
type ResultDTO struct {
	Query     string           `json:"query"`
	Medicine  *MedicineDTO     `json:"medicine"`
	Results   []ResultEntryDTO `json:"results"`
	NoResults bool             `json:"no_results"`
	HealthTip *string          `json:"health_tip,omitempty"`
}

func NewMedicineDTO(m catalog.Medicine) MedicineDTO {
	return MedicineDTO{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Description: m.Description,
	}
}

func NewStoreSummaryDTO(s catalog.Store) StoreSummaryDTO {
	return StoreSummaryDTO{
		ID:         s.ID,
		Name:       s.Name,
		Address:    s.Address,
		Distance:   s.Distance,
		Phone:      s.Phone,
		Hours:      s.Hours,
		Rating:     s.Rating,
		IsVerified: s.IsVerified,
	}
}

func NewRecordDTO(r catalog.InventoryRecord) RecordDTO {
	return RecordDTO{
		MedicineID:  r.MedicineID,
		Status:      r.Status,
		StatusLabel: r.Status.Label(),
		LastUpdated: r.LastUpdated,
	}
}

// StoreDetailPath links to a store's detail view with the medicine row highlighted.
func StoreDetailPath(storeID, medicineID string) string {
	path := fmt.Sprintf("/stores/%s", url.PathEscape(storeID))
	if medicineID == "" {
		return path
	}
	return path + "?highlight=" + url.QueryEscape(medicineID)
}

// FromResult maps a search result into its response shape.
func FromResult(r *Result) ResultDTO {
	out := ResultDTO{
		Query:     r.Query,
		Results:   make([]ResultEntryDTO, 0, len(r.Entries)),
		NoResults: r.NoResults(),
	}
	if r.Medicine != nil {
		med := NewMedicineDTO(*r.Medicine)
		out.Medicine = &med
	}
	for _, e := range r.Entries {
		out.Results = append(out.Results, fromEntry(e))
	}
	return out
}

func fromEntry(e inventory.Entry) ResultEntryDTO {
	return ResultEntryDTO{
		Store:         NewStoreSummaryDTO(e.Store),
		MatchedRecord: NewRecordDTO(e.Record),
		DetailPath:    StoreDetailPath(e.Store.ID, e.Record.MedicineID),
	}
}
