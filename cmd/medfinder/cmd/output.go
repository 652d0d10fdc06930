package cmd

import (
	"fmt"
	"strings"

	"github.com/medrelive/medfinder-backend/internal/search"
	"github.com/medrelive/medfinder-backend/internal/stores"
)

func formatResult(r *search.Result) string {
	var b strings.Builder
	if r.Medicine == nil {
		fmt.Fprintf(&b, "no medicine matches %q\n", r.Query)
		return b.String()
	}

	fmt.Fprintf(&b, "%s (%s)\n", r.Medicine.Name, r.Medicine.Category)
	if r.NoResults() {
		b.WriteString("  not stocked by any store\n")
		return b.String()
	}
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "  %-28s %-13s %-8s updated %s\n", e.Store.Name, e.Record.Status.Label(), e.Store.Distance, e.Record.LastUpdated)
	}
	return b.String()
}

func formatStoreDetail(d *stores.StoreDetailDTO) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n%s | %s | %s\n", d.Name, d.Distance, d.Address, d.Phone, d.Hours)
	for _, row := range d.Inventory {
		marker := " "
		if row.Highlighted {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %-22s %-13s %s\n", marker, row.MedicineName, row.StatusLabel, row.LastUpdated)
	}
	return b.String()
}
