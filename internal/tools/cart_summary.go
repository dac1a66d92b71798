package tools

import (
	"context"
	"fmt"
	"strings"
)

type cartSummaryArgs struct{}

func (t *Toolset) cartSummary(ctx context.Context, _ *cartSummaryArgs) (string, error) {
	summary := t.client.GetCartSummary(ctx)
	if summary.Empty {
		return "🛒 **Your cart is empty!**\n\nReady to start shopping? I can help you find products or browse categories. What are you looking for today?", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🛒 **Your Shopping Cart** (%d items)\n\n", summary.TotalItems)

	for _, item := range summary.Items {
		fmt.Fprintf(&b, "%s **%s**\n", item.Emoji, item.Name)
		fmt.Fprintf(&b, "   💰 $%.2f each × %d = $%.2f\n", item.Price, item.Quantity, item.Price*float64(item.Quantity))
		fmt.Fprintf(&b, "   🆔 Cart Item ID: %d\n\n", item.ID)
	}

	b.WriteString(strings.Repeat("─", 40) + "\n")
	fmt.Fprintf(&b, "📦 **Total Items:** %d\n", summary.TotalItems)
	fmt.Fprintf(&b, "💵 **Total Cost:** $%.2f\n\n", summary.TotalCost)

	b.WriteString("**What would you like to do?**\n")
	b.WriteString("• Continue shopping for more items\n")
	b.WriteString("• Update quantities (just tell me the cart item ID and new quantity)\n")
	b.WriteString("• Remove items (just tell me the cart item ID to remove)\n")
	b.WriteString("• Proceed to checkout\n")
	b.WriteString("• Clear the entire cart\n\n")
	b.WriteString("Just let me know how I can help with your cart!")

	return b.String(), nil
}

type cartTotalArgs struct{}

func (t *Toolset) cartTotal(ctx context.Context, _ *cartTotalArgs) (string, error) {
	summary := t.client.GetCartSummary(ctx)
	if summary.Empty {
		return "Your cart is empty, so the total is $0.00.", nil
	}
	return fmt.Sprintf("💵 Your cart total is **$%.2f** for %d items.", summary.TotalCost, summary.TotalItems), nil
}

type countCartItemsArgs struct{}

func (t *Toolset) countCartItems(ctx context.Context, _ *countCartItemsArgs) (string, error) {
	summary := t.client.GetCartSummary(ctx)
	if summary.Empty {
		return "Your cart is currently empty (0 items).", nil
	}

	if len(summary.Items) == 1 {
		return fmt.Sprintf("📦 You have %d items of 1 product in your cart.", summary.TotalItems), nil
	}
	return fmt.Sprintf("📦 You have %d items across %d different products in your cart.", summary.TotalItems, len(summary.Items)), nil
}
