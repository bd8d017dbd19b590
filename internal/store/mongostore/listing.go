package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"rentacar/internal/models"
)

type ListingStore struct {
	listings *mongo.Collection
}

func NewListingStore(db *mongo.Database) *ListingStore {
	return &ListingStore{listings: db.Collection("listings")}
}

func (s *ListingStore) CreateListing(ctx context.Context, listing *models.CarListing) error {
	if _, err := s.listings.InsertOne(ctx, listing); err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

func (s *ListingStore) ListAll(ctx context.Context) ([]models.CarListing, error) {
	cursor, err := s.listings.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find listings: %w", err)
	}
	defer cursor.Close(ctx)

	listings := []models.CarListing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	return listings, nil
}
