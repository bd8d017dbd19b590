package mysqlstore

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentacar/internal/models"
)

func newListingStoreWithMock(t *testing.T) (*ListingStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewListingStore(db), mock
}

func TestCreateListing_PreservesImageOrder(t *testing.T) {
	s, mock := newListingStoreWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO listings (car_name, price, rent, image_urls, owner_username) VALUES (?, ?, ?, ?, ?)",
	)).WithArgs("Civic", 120.0, true, []byte(`["https://cdn/a.jpg","https://cdn/b.jpg"]`), "alice").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := s.CreateListing(context.Background(), &models.CarListing{
		CarName:       "Civic",
		Price:         120,
		Rent:          true,
		ImageURLs:     []string{"https://cdn/a.jpg", "https://cdn/b.jpg"},
		OwnerUsername: "alice",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAll_Empty(t *testing.T) {
	s, mock := newListingStoreWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT car_name, price, rent, image_urls, owner_username FROM listings",
	)).WillReturnRows(sqlmock.NewRows([]string{"car_name", "price", "rent", "image_urls", "owner_username"}))

	listings, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, listings)
	assert.Empty(t, listings)
}

func TestListAll_DecodesImageOrder(t *testing.T) {
	s, mock := newListingStoreWithMock(t)

	rows := sqlmock.NewRows([]string{"car_name", "price", "rent", "image_urls", "owner_username"}).
		AddRow("Civic", 120.0, true, []byte(`["https://cdn/a.jpg","https://cdn/b.jpg"]`), "alice").
		AddRow("Model 3", 300.0, false, []byte(`[]`), "bob")
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT car_name, price, rent, image_urls, owner_username FROM listings",
	)).WillReturnRows(rows)

	listings, err := s.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, []string{"https://cdn/a.jpg", "https://cdn/b.jpg"}, listings[0].ImageURLs)
	assert.Equal(t, "bob", listings[1].OwnerUsername)
}
