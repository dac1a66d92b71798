package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/nimbleshop/assistant/internal/model/catalog"
)

const searchResultCap = 10

type searchProductsArgs struct {
	Query    string `json:"query" jsonschema:"description=Search term to find products, e.g. smartphone or coffee"`
	Category string `json:"category,omitempty" jsonschema:"description=Optional category to filter by, e.g. Electronics"`
}

func (t *Toolset) searchProducts(ctx context.Context, args *searchProductsArgs) (string, error) {
	products := t.client.SearchProducts(ctx, args.Query, args.Category)

	if len(products) == 0 {
		if args.Category != "" {
			return fmt.Sprintf("No products found matching '%s' in category '%s'. Try a different search term or browse other categories.", args.Query, args.Category), nil
		}
		return fmt.Sprintf("No products found matching '%s'. Try a different search term or check the spelling.", args.Query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d product(s) matching '%s':\n\n", len(products), args.Query)

	shown := products
	if len(shown) > searchResultCap {
		shown = shown[:searchResultCap]
	}
	for _, product := range shown {
		fmt.Fprintf(&b, "%s **%s** - $%.2f\n", product.Emoji, product.Name, product.Price)
		fmt.Fprintf(&b, "   Category: %s\n", product.Category)
		fmt.Fprintf(&b, "   Description: %s\n", product.Description)
		fmt.Fprintf(&b, "   Product ID: %d\n\n", product.ID)
	}

	if len(products) > searchResultCap {
		fmt.Fprintf(&b, "... and %d more products. Try a more specific search to narrow results.\n", len(products)-searchResultCap)
	}

	return b.String(), nil
}

type allProductsArgs struct{}

func (t *Toolset) allProducts(ctx context.Context, _ *allProductsArgs) (string, error) {
	products := t.client.GetAllProducts(ctx)
	if len(products) == 0 {
		return "No products are currently available in the store.", nil
	}

	// Group by category, preserving first-seen order.
	var order []string
	grouped := make(map[string][]catalog.Product)
	for _, product := range products {
		category := product.Category
		if category == "" {
			category = "Other"
		}
		if _, seen := grouped[category]; !seen {
			order = append(order, category)
		}
		grouped[category] = append(grouped[category], product)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are all %d products in our store:\n\n", len(products))
	for _, category := range order {
		items := grouped[category]
		fmt.Fprintf(&b, "**%s** (%d items):\n", category, len(items))
		for _, product := range items {
			fmt.Fprintf(&b, "  %s %s - $%.2f\n", product.Emoji, product.Name, product.Price)
		}
		b.WriteString("\n")
	}
	b.WriteString("Use the product search tool or ask for specific product details to learn more!")

	return b.String(), nil
}

type productsByCategoryArgs struct {
	Category string `json:"category" jsonschema:"description=Category name, e.g. Electronics, Clothing, Home, Books"`
}

func (t *Toolset) productsByCategory(ctx context.Context, args *productsByCategoryArgs) (string, error) {
	products := t.client.GetAllProducts(ctx)
	if len(products) == 0 {
		return "No products are currently available in the store.", nil
	}

	var matched []catalog.Product
	for _, product := range products {
		if strings.EqualFold(product.Category, args.Category) {
			matched = append(matched, product)
		}
	}

	if len(matched) == 0 {
		return fmt.Sprintf("No products found in category '%s'. Available categories: %s",
			args.Category, strings.Join(distinctCategories(products), ", ")), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Products in **%s** category (%d items):\n\n", args.Category, len(matched))
	for _, product := range matched {
		fmt.Fprintf(&b, "%s **%s** - $%.2f\n", product.Emoji, product.Name, product.Price)
		fmt.Fprintf(&b, "   %s\n", product.Description)
		fmt.Fprintf(&b, "   Product ID: %d\n\n", product.ID)
	}

	return b.String(), nil
}

func distinctCategories(products []catalog.Product) []string {
	var categories []string
	seen := make(map[string]bool)
	for _, product := range products {
		category := product.Category
		if category == "" {
			category = "Other"
		}
		if !seen[category] {
			seen[category] = true
			categories = append(categories, category)
		}
	}
	return categories
}
