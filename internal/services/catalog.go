package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"beauty-assistant/internal/models"
)

// CatalogSource loads the product catalog once at startup.
type CatalogSource interface {
	Load(ctx context.Context) ([]models.Product, error)
}

// FileCatalog reads a products.json file.
type FileCatalog struct {
	path string
}

func NewFileCatalog(path string) *FileCatalog {
	return &FileCatalog{path: path}
}

func (c *FileCatalog) Load(ctx context.Context) ([]models.Product, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", c.path, err)
	}
	var catalog models.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", c.path, err)
	}
	return catalog.Products, nil
}

// HTTPCatalog fetches the catalog from a URL, such as the gateway's /products.
type HTTPCatalog struct {
	url    string
	client *http.Client
}

func NewHTTPCatalog(url string) *HTTPCatalog {
	return &HTTPCatalog{url: url, client: http.DefaultClient}
}

func (c *HTTPCatalog) Load(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog request returned status %d", resp.StatusCode)
	}

	var catalog models.Catalog
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog response: %w", err)
	}
	return catalog.Products, nil
}

// FilterProducts keeps products in category (any when empty) whose name,
// brand or description contains query, ignoring case.
func FilterProducts(products []models.Product, category, query string) []models.Product {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []models.Product
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Brand), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories lists the distinct categories, sorted.
func Categories(products []models.Product) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}
