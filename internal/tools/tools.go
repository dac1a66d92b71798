// Package tools exposes the shopping operations as callable agent tools.
// Every tool performs one semantic backend operation and renders a
// human-readable string for the agent to relay; failures degrade to apology
// messages so no error ever reaches the agent runtime.
package tools

import (
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"

	"github.com/nimbleshop/assistant/internal/backend"
)

// Toolset binds the tool functions to a backend client.
type Toolset struct {
	client *backend.Client
}

// New creates a Toolset over the given backend client.
func New(client *backend.Client) *Toolset {
	return &Toolset{client: client}
}

// All builds the complete tool list for agent registration.
func (t *Toolset) All() ([]tool.BaseTool, error) {
	builders := []func() (tool.InvokableTool, error){
		func() (tool.InvokableTool, error) {
			return utils.InferTool("search_products",
				"Search for products by name, description, or category. Optionally filter by a specific category.",
				t.searchProducts)
		},
		func() (tool.InvokableTool, error) {
			return utils.InferTool("get_all_products",
				"Get all available products in the store, organized by category.",
				t.allProducts)
		},
		func() (tool.InvokableTool, error) {
			return utils.InferTool("get_products_by_category",
				"Get all products in a specific category such as Electronics, Clothing, Home, or Books.",
				t.productsByCategory)
		},
		func() (tool.InvokableTool, error) {
			return utils.InferTool("get_product_details",
				"Get detailed information about a specific product including customer reviews and ratings.",
				t.productDetails)
		},
		func() (tool.InvokableTool, error) {
			return utils.InferTool("compare_products",
				"Compare two products side by side on price, category, and customer ratings.",
				t.compareProducts)
		},
		func() (tool.InvokableTool, error) {
			return utils.InferTool("add_to_cart",
				"Add a product to the shopping cart by product ID and quantity.",
				t.addToCart)
		},
		func() (tool.InvokableTool, error) {
			return utils.InferTool("remove_from_cart",
				"Remove an item from the shopping cart by cart item ID.",
				t.removeFromCart)
		},
		func() (tool.InvokableTool, error) {
			return utils.InferTool("update_cart_quantity",
				"Update the quantity of an item in the shopping cart by cart item ID.",
				t.updateCartQuantity)
		},
		func() (tool.InvokableTool, error) {
			return utils.InferTool("clear_cart",
				"Remove all items from the shopping cart.",
				t.clearCart)
		},
		func() (tool.InvokableTool, error) {
			return utils.InferTool("get_cart_summary",
				"Get a summary of the current shopping cart including all items and the total cost.",
				t.cartSummary)
		},
		func() (tool.InvokableTool, error) {
			return utils.InferTool("get_cart_total",
				"Get just the total cost of the items in the cart.",
				t.cartTotal)
		},
		func() (tool.InvokableTool, error) {
			return utils.InferTool("count_cart_items",
				"Get the number of items currently in the cart.",
				t.countCartItems)
		},
	}

	all := make([]tool.BaseTool, 0, len(builders))
	for _, build := range builders {
		built, err := build()
		if err != nil {
			return nil, err
		}
		all = append(all, built)
	}
	return all, nil
}
