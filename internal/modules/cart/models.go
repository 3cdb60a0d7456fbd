package cart

import "encoding/json"

// Product is the catalog view of a product as the UI layer knows it when the
// shopper hits "add to cart". Prices are integer cents.
type Product struct {
	ID                 string
	Name               string
	Price              int64
	Image              string
	Stock              int
	Category           string
	Rating             int
	Description        string
	IsOnSale           bool
	DiscountPercentage int
	OriginalPrice      int64
}

// Item is one line of the local cart view. Subtotal is always recomputed as
// UnitPrice*Quantity on every quantity or price change; at most one Item per
// ProductID exists at any time.
type Item struct {
	ProductID          string
	Name               string
	UnitPrice          int64
	Image              string
	Stock              int
	Quantity           int
	Category           string
	Rating             int
	Description        string
	Subtotal           int64
	IsOnSale           bool
	DiscountPercentage int
	OriginalPrice      int64
}

// Defaults for fields the backend may omit.
const (
	placeholderImage = "/placeholder-product.svg"
	defaultStock     = 999
	defaultRating    = 5
	defaultCategory  = "General"
)

type wireItem struct {
	ProductID          string `json:"productId"`
	ProductName        string `json:"productName"`
	Name               string `json:"name"`
	Price              int64  `json:"price"`
	Image              string `json:"image"`
	Stock              *int   `json:"stock"`
	Quantity           int    `json:"quantity"`
	Category           string `json:"category"`
	Description        string `json:"description"`
	Subtotal           int64  `json:"subtotal"`
	IsOnSale           bool   `json:"isOnSale"`
	DiscountPercentage int    `json:"discountPercentage"`
	OriginalPrice      int64  `json:"originalPrice"`
}

type removedProducts struct {
	Count int `json:"count"`
}

type wireCart struct {
	Items           []wireItem       `json:"items"`
	CartItems       []wireItem       `json:"cartItems"`
	RemovedProducts *removedProducts `json:"removedProducts"`
}

// normalizeCartData is the single mapping rule for every cart payload the
// backend produces: a wrapped items list, a cartItems list, or a bare array.
// ok is false when data carries none of those shapes, which signals the
// caller to try the summary endpoint instead.
func normalizeCartData(data json.RawMessage) (items []Item, removed int, ok bool) {
	if len(data) == 0 {
		return nil, 0, false
	}

	var bare []wireItem
	if err := json.Unmarshal(data, &bare); err == nil {
		return mapWireItems(bare), 0, true
	}

	var wrapped wireCart
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, 0, false
	}
	if wrapped.RemovedProducts != nil {
		removed = wrapped.RemovedProducts.Count
	}
	switch {
	case wrapped.Items != nil:
		return mapWireItems(wrapped.Items), removed, true
	case wrapped.CartItems != nil:
		return mapWireItems(wrapped.CartItems), removed, true
	}
	return nil, removed, false
}

func mapWireItems(in []wireItem) []Item {
	out := make([]Item, 0, len(in))
	for _, w := range in {
		if w.ProductID == "" {
			continue
		}
		name := w.ProductName
		if name == "" {
			name = w.Name
		}
		if name == "" {
			name = "Product " + w.ProductID
		}
		stock := defaultStock
		if w.Stock != nil {
			stock = *w.Stock
		}
		category := w.Category
		if category == "" {
			category = defaultCategory
		}
		image := w.Image
		if image == "" {
			image = placeholderImage
		}
		subtotal := w.Subtotal
		if subtotal == 0 {
			subtotal = w.Price * int64(w.Quantity)
		}
		original := w.OriginalPrice
		if original == 0 {
			original = w.Price
		}
		out = append(out, Item{
			ProductID:          w.ProductID,
			Name:               name,
			UnitPrice:          w.Price,
			Image:              image,
			Stock:              stock,
			Quantity:           w.Quantity,
			Category:           category,
			Rating:             defaultRating,
			Description:        w.Description,
			Subtotal:           subtotal,
			IsOnSale:           w.IsOnSale,
			DiscountPercentage: w.DiscountPercentage,
			OriginalPrice:      original,
		})
	}
	return out
}

func newOptimisticItem(p Product, qty int) Item {
	image := p.Image
	if image == "" {
		image = placeholderImage
	}
	stock := p.Stock
	if stock == 0 {
		stock = defaultStock
	}
	category := p.Category
	if category == "" {
		category = defaultCategory
	}
	rating := p.Rating
	if rating == 0 {
		rating = defaultRating
	}
	original := p.OriginalPrice
	if original == 0 {
		original = p.Price
	}
	return Item{
		ProductID:          p.ID,
		Name:               p.Name,
		UnitPrice:          p.Price,
		Image:              image,
		Stock:              stock,
		Quantity:           qty,
		Category:           category,
		Rating:             rating,
		Description:        p.Description,
		Subtotal:           p.Price * int64(qty),
		IsOnSale:           p.IsOnSale,
		DiscountPercentage: p.DiscountPercentage,
		OriginalPrice:      original,
	}
}
