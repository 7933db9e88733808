package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beauty-assistant/internal/models"
)

const catalogJSON = `{"products":[
	{"id":1,"name":"Revitalift Serum","brand":"L'Oréal Paris","category":"skincare","description":"Hyaluronic acid serum","image":"a.jpg"},
	{"id":2,"name":"Sky High Mascara","brand":"Maybelline New York","category":"makeup","description":"Lengthening mascara","image":"b.jpg"},
	{"id":3,"name":"Hydrating Cleanser","brand":"CeraVe","category":"cleanser","description":"Gentle face wash","image":"c.jpg"}
]}`

func testProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Revitalift Serum", Brand: "L'Oréal Paris", Category: "skincare", Description: "Hyaluronic acid serum"},
		{ID: 2, Name: "Sky High Mascara", Brand: "Maybelline New York", Category: "makeup", Description: "Lengthening mascara"},
		{ID: 3, Name: "Hydrating Cleanser", Brand: "CeraVe", Category: "cleanser", Description: "Gentle face wash"},
	}
}

func TestFilterProducts(t *testing.T) {
	tests := []struct {
		name     string
		category string
		query    string
		wantIDs  []int
	}{
		{"no filters keeps all", "", "", []int{1, 2, 3}},
		{"category only", "makeup", "", []int{2}},
		{"query matches name", "", "serum", []int{1}},
		{"query matches brand case-insensitively", "", "  MAYBELLINE ", []int{2}},
		{"query matches description", "", "face wash", []int{3}},
		{"category and query combine", "skincare", "mascara", nil},
		{"unknown category", "fragrance", "", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got []int
			for _, p := range FilterProducts(testProducts(), tc.category, tc.query) {
				got = append(got, p.ID)
			}
			assert.Equal(t, tc.wantIDs, got)
		})
	}
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"cleanser", "makeup", "skincare"}, Categories(testProducts()))
}

func TestFileCatalog_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0600))

	products, err := NewFileCatalog(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Sky High Mascara", products[1].Name)
	assert.Equal(t, "b.jpg", products[1].Image)
}

func TestFileCatalog_Errors(t *testing.T) {
	_, err := NewFileCatalog(filepath.Join(t.TempDir(), "missing.json")).Load(context.Background())
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0600))
	_, err = NewFileCatalog(path).Load(context.Background())
	assert.Error(t, err)
}

func TestHTTPCatalog_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(catalogJSON))
	}))
	defer srv.Close()

	products, err := NewHTTPCatalog(srv.URL).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestHTTPCatalog_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPCatalog(srv.URL).Load(context.Background())
	assert.Error(t, err)
}
