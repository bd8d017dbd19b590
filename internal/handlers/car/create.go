package car

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"rentacar/internal/models"
	"rentacar/internal/storage"
	"rentacar/internal/store"
	"rentacar/internal/utils"
)

// 32 MB, same ceiling the multipart reader would apply anyway.
const maxUploadMemory = 32 << 20

type CreateListingHandler struct {
	Users    store.UserStore
	Listings store.ListingStore
	Uploader storage.Uploader
}

// ServeHTTP handles POST /owner-data (multipart form: carName, price,
// rent, username, images[]). Uploads run in input order and the first
// failure aborts the whole request; no partial listing is ever written.
func (h *CreateListingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid multipart form",
		})
		return
	}

	carName := r.FormValue("carName")
	username := r.FormValue("username")
	if carName == "" || username == "" {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "carName and username are required",
		})
		return
	}
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "price must be a number",
		})
		return
	}
	rent, err := strconv.ParseBool(r.FormValue("rent"))
	if err != nil {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "rent must be true or false",
		})
		return
	}

	if _, err := h.Users.FindByUsername(r.Context(), username); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.JSON(w, http.StatusNotFound, utils.APIResponse{
				Success: false,
				Message: "Owner not found",
			})
			return
		}
		logrus.WithError(err).Error("create listing: owner lookup failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "An error occurred",
		})
		return
	}

	var imageURLs []string
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["images"] {
			file, err := header.Open()
			if err != nil {
				logrus.WithError(err).Error("create listing: open upload failed")
				utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
					Success: false,
					Message: "Image upload failed",
				})
				return
			}
			url, err := h.Uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
			file.Close()
			if err != nil {
				logrus.WithError(err).WithField("file", header.Filename).Error("create listing: upload failed")
				utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
					Success: false,
					Message: "Image upload failed",
				})
				return
			}
			imageURLs = append(imageURLs, url)
		}
	}

	listing := &models.CarListing{
		CarName:       carName,
		Price:         price,
		Rent:          rent,
		ImageURLs:     imageURLs,
		OwnerUsername: username,
	}
	if err := h.Listings.CreateListing(r.Context(), listing); err != nil {
		logrus.WithError(err).Error("create listing: insert failed")
		utils.JSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to save listing",
		})
		return
	}

	utils.JSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Listing saved",
		Data:    listing,
	})
}
