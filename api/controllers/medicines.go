package controllers

import (
	"net/http"

	"github.com/medrelive/medfinder-backend/api/responses"
	"github.com/medrelive/medfinder-backend/internal/catalog"
	"github.com/medrelive/medfinder-backend/internal/search"
	pkgerrors "github.com/medrelive/medfinder-backend/pkg/errors"
	"github.com/medrelive/medfinder-backend/pkg/logger"
)

// QuickTags are the landing page's one-tap searches.
var QuickTags = []string{"Insulin", "Asthalin", "Pan-D", "Telma-H"}

type medicineLister interface {
	Medicines() []catalog.Medicine
}

// MedicineList returns the catalog in order.
func MedicineList(c medicineLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		meds := c.Medicines()
		out := make([]search.MedicineDTO, 0, len(meds))
		for _, m := range meds {
			out = append(out, search.NewMedicineDTO(m))
		}
		responses.WriteSuccess(w, out)
	}
}

func MedicineQuickTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, append([]string(nil), QuickTags...))
	}
}
