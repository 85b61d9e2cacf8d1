package models

import "time"

type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURI string  `json:"image"`
}

type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURI string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// OrderItem is one entry of the order log. ID is unique per entry, ProductID is not.
type OrderItem struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ImageURI  string    `json:"image"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCartItem(p Product) CartItem {
	return CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURI: p.ImageURI,
		Quantity: 1,
	}
}

func (c CartItem) Product() Product {
	return Product{ID: c.ID, Name: c.Name, Price: c.Price, ImageURI: c.ImageURI}
}
