package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/nimbleshop/assistant/internal/model/catalog"
)

type productDetailsArgs struct {
	ProductID int `json:"product_id" jsonschema:"description=The unique ID of the product to get details for"`
}

func (t *Toolset) productDetails(ctx context.Context, args *productDetailsArgs) (string, error) {
	product := t.client.GetProductByID(ctx, args.ProductID)
	if product == nil {
		return fmt.Sprintf("Product with ID %d not found. Please check the product ID and try again.", args.ProductID), nil
	}

	reviews := t.client.GetProductReviews(ctx, args.ProductID)

	var b strings.Builder
	fmt.Fprintf(&b, "%s **%s**\n\n", product.Emoji, product.Name)
	fmt.Fprintf(&b, "💰 **Price:** $%.2f\n", product.Price)
	fmt.Fprintf(&b, "📂 **Category:** %s\n", product.Category)
	fmt.Fprintf(&b, "📝 **Description:** %s\n", product.Description)
	fmt.Fprintf(&b, "🆔 **Product ID:** %d\n\n", product.ID)

	if len(reviews) > 0 {
		fmt.Fprintf(&b, "⭐ **Customer Reviews** (Average: %.1f/5 stars, %d reviews):\n\n",
			averageRating(reviews), len(reviews))
		for _, review := range reviews {
			fmt.Fprintf(&b, "**%s** %s\n", review.UserName, ratingStars(review.Rating))
			fmt.Fprintf(&b, "   \"%s\"\n\n", review.Comment)
		}
	} else {
		b.WriteString("📝 **Customer Reviews:** No reviews yet. Be the first to review this product!\n\n")
	}

	fmt.Fprintf(&b, "To add this item to your cart, just ask me to add product %d to your cart!", args.ProductID)
	return b.String(), nil
}

type compareProductsArgs struct {
	ProductID1 int `json:"product_id_1" jsonschema:"description=ID of the first product to compare"`
	ProductID2 int `json:"product_id_2" jsonschema:"description=ID of the second product to compare"`
}

func (t *Toolset) compareProducts(ctx context.Context, args *compareProductsArgs) (string, error) {
	product1 := t.client.GetProductByID(ctx, args.ProductID1)
	if product1 == nil {
		return fmt.Sprintf("Product with ID %d not found.", args.ProductID1), nil
	}
	product2 := t.client.GetProductByID(ctx, args.ProductID2)
	if product2 == nil {
		return fmt.Sprintf("Product with ID %d not found.", args.ProductID2), nil
	}

	reviews1 := t.client.GetProductReviews(ctx, args.ProductID1)
	reviews2 := t.client.GetProductReviews(ctx, args.ProductID2)
	rating1 := averageRating(reviews1)
	rating2 := averageRating(reviews2)

	var b strings.Builder
	b.WriteString("🔍 **Product Comparison**\n\n")
	fmt.Fprintf(&b, "**%s %s** vs **%s %s**\n\n", product1.Emoji, product1.Name, product2.Emoji, product2.Name)

	b.WriteString("| Feature | Product 1 | Product 2 |\n")
	b.WriteString("|---------|-----------|----------|\n")
	fmt.Fprintf(&b, "| **Price** | $%.2f | $%.2f |\n", product1.Price, product2.Price)
	fmt.Fprintf(&b, "| **Category** | %s | %s |\n", product1.Category, product2.Category)
	fmt.Fprintf(&b, "| **Rating** | %.1f/5 (%d reviews) | %.1f/5 (%d reviews) |\n\n",
		rating1, len(reviews1), rating2, len(reviews2))

	fmt.Fprintf(&b, "**%s Description:**\n%s\n\n", product1.Name, product1.Description)
	fmt.Fprintf(&b, "**%s Description:**\n%s\n\n", product2.Name, product2.Description)

	switch {
	case product1.Price < product2.Price:
		fmt.Fprintf(&b, "💰 **Price Advantage:** %s is $%.2f cheaper!\n\n", product1.Name, product2.Price-product1.Price)
	case product2.Price < product1.Price:
		fmt.Fprintf(&b, "💰 **Price Advantage:** %s is $%.2f cheaper!\n\n", product2.Name, product1.Price-product2.Price)
	default:
		b.WriteString("💰 **Price:** Both products have the same price.\n\n")
	}

	// A rating advantage needs at least one review behind it.
	if rating1 > rating2 && len(reviews1) > 0 {
		fmt.Fprintf(&b, "⭐ **Rating Advantage:** %s has a higher customer rating!\n\n", product1.Name)
	} else if rating2 > rating1 && len(reviews2) > 0 {
		fmt.Fprintf(&b, "⭐ **Rating Advantage:** %s has a higher customer rating!\n\n", product2.Name)
	}

	b.WriteString("Would you like to add either of these products to your cart?")
	return b.String(), nil
}

func averageRating(reviews []catalog.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, review := range reviews {
		total += review.Rating
	}
	return float64(total) / float64(len(reviews))
}

func ratingStars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("⭐", rating) + strings.Repeat("☆", 5-rating)
}
