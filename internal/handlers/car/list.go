package car

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"rentacar/internal/store"
	"rentacar/internal/utils"
)

type ListHandler struct {
	Listings store.ListingStore
}

// ServeHTTP handles GET /api/car-data
func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	listings, err := h.Listings.ListAll(r.Context())
	if err != nil {
		logrus.WithError(err).Error("list listings failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to fetch listings",
		})
		return
	}

	utils.JSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Listings fetched",
		Data:    listings,
	})
}
