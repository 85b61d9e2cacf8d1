package transport

import "github.com/Skotchmaster/shope/internal/models"

type CartResponse struct {
	Items []models.CartItem `json:"items"`
	Count int               `json:"count"`
	Total string            `json:"total"`
}

type OrdersResponse struct {
	Items []models.OrderItem `json:"items"`
	Count int                `json:"count"`
}

type CheckoutResponse struct {
	Orders []models.OrderItem `json:"orders"`
	Total  string             `json:"total"`
}

type ProductsResponse struct {
	Data []models.Product `json:"data"`
	Meta PageMeta         `json:"meta"`
}

type PageMeta struct {
	Page       int    `json:"page"`
	Size       int    `json:"size"`
	Total      int64  `json:"total"`
	TotalPages int64  `json:"total_pages"`
	HasPrev    bool   `json:"has_prev"`
	HasNext    bool   `json:"has_next"`
	Source     string `json:"source"`
}

type CarouselResponse struct {
	Index   int      `json:"index"`
	Banner  string   `json:"banner"`
	Banners []string `json:"banners"`
}
