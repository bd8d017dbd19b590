package mysqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"rentacar/internal/models"
)

type ListingStore struct {
	DB *sql.DB
}

func NewListingStore(db *sql.DB) *ListingStore {
	return &ListingStore{DB: db}
}

// Image URLs are stored as a JSON array so the column round-trips the
// upload order exactly.
func (s *ListingStore) CreateListing(ctx context.Context, listing *models.CarListing) error {
	urls, err := json.Marshal(listing.ImageURLs)
	if err != nil {
		return fmt.Errorf("encode image urls: %w", err)
	}
	_, err = s.DB.ExecContext(ctx,
		"INSERT INTO listings (car_name, price, rent, image_urls, owner_username) VALUES (?, ?, ?, ?, ?)",
		listing.CarName, listing.Price, listing.Rent, urls, listing.OwnerUsername,
	)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

func (s *ListingStore) ListAll(ctx context.Context) ([]models.CarListing, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT car_name, price, rent, image_urls, owner_username FROM listings")
	if err != nil {
		return nil, fmt.Errorf("select listings: %w", err)
	}
	defer rows.Close()

	listings := []models.CarListing{}
	for rows.Next() {
		var l models.CarListing
		var urls []byte
		if err := rows.Scan(&l.CarName, &l.Price, &l.Rent, &urls, &l.OwnerUsername); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		if len(urls) > 0 {
			if err := json.Unmarshal(urls, &l.ImageURLs); err != nil {
				return nil, fmt.Errorf("decode image urls: %w", err)
			}
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return listings, nil
}
