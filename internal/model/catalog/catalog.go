// Package catalog mirrors the entity shapes exposed by the e-commerce backend API.
package catalog

// Product is a store item as returned by the backend products endpoints.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Emoji       string  `json:"emoji"`
}

// Review is a customer review for a product.
type Review struct {
	UserName string `json:"user_name"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// CartItem is one line of the shopping cart.
type CartItem struct {
	ID        int     `json:"id"`
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
	Emoji     string  `json:"emoji"`
	Category  string  `json:"category"`
}

// CartSummary is the computed view of the cart. An empty cart yields the
// explicit zeroed shape with Empty set rather than a nil summary.
type CartSummary struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalCost  float64    `json:"total_cost"`
	Empty      bool       `json:"empty"`
}
