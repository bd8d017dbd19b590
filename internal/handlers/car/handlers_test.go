package car

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentacar/internal/models"
	"rentacar/internal/store"
)

type fakeUserStore struct {
	usernames map[string]bool
}

func (f *fakeUserStore) Register(ctx context.Context, user *models.User) error { return nil }
func (f *fakeUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.usernames[username] {
		return &models.User{Username: username}, nil
	}
	return nil, store.ErrNotFound
}
func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, store.ErrNotFound
}
func (f *fakeUserStore) FindByUsernameAndEmail(ctx context.Context, username, email string) (*models.User, error) {
	return nil, store.ErrNotFound
}
func (f *fakeUserStore) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	return nil
}
func (f *fakeUserStore) RecordLogin(ctx context.Context, username, email string) error { return nil }

type fakeListingStore struct {
	created []models.CarListing
}

func (f *fakeListingStore) CreateListing(ctx context.Context, listing *models.CarListing) error {
	f.created = append(f.created, *listing)
	return nil
}

func (f *fakeListingStore) ListAll(ctx context.Context) ([]models.CarListing, error) {
	out := []models.CarListing{}
	return append(out, f.created...), nil
}

type fakeUploader struct {
	uploaded []string
	failOn   string
}

func (f *fakeUploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	if filename == f.failOn {
		return "", errors.New("upload failed")
	}
	f.uploaded = append(f.uploaded, filename)
	return "https://cdn/" + filename, nil
}

func multipartRequest(t *testing.T, fields map[string]string, files []string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for i, name := range files {
		part, err := w.CreateFormFile("images", name)
		require.NoError(t, err)
		fmt.Fprintf(part, "fake image bytes %d", i)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/owner-data", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestCreateListing_PreservesUploadOrder(t *testing.T) {
	users := &fakeUserStore{usernames: map[string]bool{"alice": true}}
	listings := &fakeListingStore{}
	uploader := &fakeUploader{}
	h := &CreateListingHandler{Users: users, Listings: listings, Uploader: uploader}

	req := multipartRequest(t,
		map[string]string{"carName": "Civic", "price": "120", "rent": "true", "username": "alice"},
		[]string{"a.jpg", "b.jpg"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, listings.created, 1)
	assert.Equal(t, []string{"https://cdn/a.jpg", "https://cdn/b.jpg"}, listings.created[0].ImageURLs)
	assert.Equal(t, "Civic", listings.created[0].CarName)
	assert.Equal(t, 120.0, listings.created[0].Price)
	assert.True(t, listings.created[0].Rent)
	assert.Equal(t, "alice", listings.created[0].OwnerUsername)
}

func TestCreateListing_OwnerNotFound(t *testing.T) {
	users := &fakeUserStore{usernames: map[string]bool{}}
	listings := &fakeListingStore{}
	uploader := &fakeUploader{}
	h := &CreateListingHandler{Users: users, Listings: listings, Uploader: uploader}

	req := multipartRequest(t,
		map[string]string{"carName": "Civic", "price": "120", "rent": "true", "username": "ghost"},
		[]string{"a.jpg"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	// nothing persisted, nothing uploaded
	assert.Empty(t, listings.created)
	assert.Empty(t, uploader.uploaded)
}

func TestCreateListing_UploadFailureAbortsWholeRequest(t *testing.T) {
	users := &fakeUserStore{usernames: map[string]bool{"alice": true}}
	listings := &fakeListingStore{}
	uploader := &fakeUploader{failOn: "b.jpg"}
	h := &CreateListingHandler{Users: users, Listings: listings, Uploader: uploader}

	req := multipartRequest(t,
		map[string]string{"carName": "Civic", "price": "120", "rent": "true", "username": "alice"},
		[]string{"a.jpg", "b.jpg", "c.jpg"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// fail-fast: no partial listing, c.jpg never attempted
	assert.Empty(t, listings.created)
	assert.Equal(t, []string{"a.jpg"}, uploader.uploaded)
}

func TestCreateListing_BadPrice(t *testing.T) {
	h := &CreateListingHandler{
		Users:    &fakeUserStore{usernames: map[string]bool{"alice": true}},
		Listings: &fakeListingStore{},
		Uploader: &fakeUploader{},
	}

	req := multipartRequest(t,
		map[string]string{"carName": "Civic", "price": "cheap", "rent": "true", "username": "alice"},
		nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateListing_BadRent(t *testing.T) {
	h := &CreateListingHandler{
		Users:    &fakeUserStore{usernames: map[string]bool{"alice": true}},
		Listings: &fakeListingStore{},
		Uploader: &fakeUploader{},
	}

	req := multipartRequest(t,
		map[string]string{"carName": "Civic", "price": "120", "rent": "maybe", "username": "alice"},
		nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestList_EmptyStoreReturnsEmptyArray(t *testing.T) {
	h := &ListHandler{Listings: &fakeListingStore{}}

	req := httptest.NewRequest(http.MethodGet, "/api/car-data", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}
