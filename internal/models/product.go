package models

type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Catalog is the shape of products.json and of GET /products.
type Catalog struct {
	Products []Product `json:"products"`
}

// ProductSummary is what a routine request tells the model about a product.
type ProductSummary struct {
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Description string `json:"description"`
}
