package products

import (
	"encoding/json"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/api"
)

// Product is a catalog entry as returned by the backend. Prices are integer
// cents.
type Product struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Price              int64  `json:"price"`
	Image              string `json:"image"`
	Stock              int    `json:"stock"`
	Category           string `json:"category"`
	Rating             int    `json:"rating"`
	Description        string `json:"description"`
	Featured           bool   `json:"featured"`
	IsOnSale           bool   `json:"isOnSale"`
	DiscountPercentage int    `json:"discountPercentage"`
	OriginalPrice      int64  `json:"originalPrice"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type ListResult struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// DecodeList accepts either the wrapped {products, pagination} shape or a
// bare product array.
func DecodeList(env *api.Envelope) (ListResult, error) {
	var out ListResult
	if len(env.Data) == 0 {
		return out, nil
	}
	var bare []Product
	if err := json.Unmarshal(env.Data, &bare); err == nil {
		out.Products = bare
		return out, nil
	}
	err := json.Unmarshal(env.Data, &out)
	return out, err
}

// DecodeOne decodes a single product payload, tolerating a {product: ...}
// wrapper.
func DecodeOne(env *api.Envelope) (Product, error) {
	var wrapped struct {
		Product *Product `json:"product"`
	}
	if err := json.Unmarshal(env.Data, &wrapped); err == nil && wrapped.Product != nil {
		return *wrapped.Product, nil
	}
	var p Product
	err := json.Unmarshal(env.Data, &p)
	return p, err
}

// DecodeCategories accepts a bare string array or {categories: [...]}.
func DecodeCategories(env *api.Envelope) ([]string, error) {
	var bare []string
	if err := json.Unmarshal(env.Data, &bare); err == nil {
		return bare, nil
	}
	var wrapped struct {
		Categories []string `json:"categories"`
	}
	err := json.Unmarshal(env.Data, &wrapped)
	return wrapped.Categories, err
}
