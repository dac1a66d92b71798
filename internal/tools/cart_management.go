package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/nimbleshop/assistant/internal/model/catalog"
)

type addToCartArgs struct {
	ProductID int `json:"product_id" jsonschema:"description=The ID of the product to add to the cart"`
	Quantity  int `json:"quantity" jsonschema:"description=Number of items to add"`
}

func (t *Toolset) addToCart(ctx context.Context, args *addToCartArgs) (string, error) {
	quantity := args.Quantity
	// Validated before any backend call.
	if quantity <= 0 {
		return "Quantity must be a positive number. Please specify how many items you'd like to add.", nil
	}

	product := t.client.GetProductByID(ctx, args.ProductID)
	if product == nil {
		return fmt.Sprintf("Product with ID %d not found. Please check the product ID and try again.", args.ProductID), nil
	}

	if !t.client.AddToCart(ctx, args.ProductID, quantity) {
		return fmt.Sprintf("Sorry, I couldn't add %s to your cart. Please try again later.", product.Name), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Added %dx **%s** to your cart!\n\n", quantity, product.Name)
	fmt.Fprintf(&b, "%s %s\n", product.Emoji, product.Name)
	fmt.Fprintf(&b, "💰 $%.2f each\n", product.Price)
	fmt.Fprintf(&b, "📦 Quantity: %d\n", quantity)
	fmt.Fprintf(&b, "💵 Total: $%.2f\n\n", product.Price*float64(quantity))
	b.WriteString("Would you like to continue shopping or view your cart?")
	return b.String(), nil
}

type removeFromCartArgs struct {
	CartItemID int `json:"cart_item_id" jsonschema:"description=The ID of the cart item to remove"`
}

func (t *Toolset) removeFromCart(ctx context.Context, args *removeFromCartArgs) (string, error) {
	item := t.findCartItem(ctx, args.CartItemID)
	if item == nil {
		return fmt.Sprintf("Cart item with ID %d not found. Please check your cart and try again.", args.CartItemID), nil
	}

	if !t.client.RemoveFromCart(ctx, args.CartItemID) {
		return fmt.Sprintf("Sorry, I couldn't remove %s from your cart. Please try again later.", item.Name), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🗑️ Removed **%s** from your cart.\n\n", item.Name)
	fmt.Fprintf(&b, "Removed: %dx %s\n", item.Quantity, item.Name)
	fmt.Fprintf(&b, "Saved: $%.2f\n\n", item.Price*float64(item.Quantity))
	b.WriteString("Would you like to continue shopping or view your updated cart?")
	return b.String(), nil
}

type updateCartQuantityArgs struct {
	CartItemID  int `json:"cart_item_id" jsonschema:"description=The ID of the cart item to update"`
	NewQuantity int `json:"new_quantity" jsonschema:"description=The new quantity for the item"`
}

func (t *Toolset) updateCartQuantity(ctx context.Context, args *updateCartQuantityArgs) (string, error) {
	if args.NewQuantity <= 0 {
		return "Quantity must be a positive number. To remove an item completely, use the remove_from_cart tool.", nil
	}

	item := t.findCartItem(ctx, args.CartItemID)
	if item == nil {
		return fmt.Sprintf("Cart item with ID %d not found. Please check your cart and try again.", args.CartItemID), nil
	}

	if !t.client.UpdateCartItem(ctx, args.CartItemID, args.NewQuantity) {
		return fmt.Sprintf("Sorry, I couldn't update the quantity for %s. Please try again later.", item.Name), nil
	}

	oldTotal := item.Price * float64(item.Quantity)
	newTotal := item.Price * float64(args.NewQuantity)

	var b strings.Builder
	fmt.Fprintf(&b, "📦 Updated **%s** quantity in your cart.\n\n", item.Name)
	fmt.Fprintf(&b, "%s %s\n", item.Emoji, item.Name)
	fmt.Fprintf(&b, "Old quantity: %d → New quantity: %d\n", item.Quantity, args.NewQuantity)
	fmt.Fprintf(&b, "Price change: $%+.2f\n", newTotal-oldTotal)
	fmt.Fprintf(&b, "New item total: $%.2f\n\n", newTotal)

	if args.NewQuantity > item.Quantity {
		b.WriteString("Great choice! Added more items to your cart.")
	} else {
		b.WriteString("Updated! Reduced the quantity in your cart.")
	}
	return b.String(), nil
}

type clearCartArgs struct{}

func (t *Toolset) clearCart(ctx context.Context, _ *clearCartArgs) (string, error) {
	items := t.client.GetCartItems(ctx)
	if len(items) == 0 {
		return "Your cart is already empty! Ready to start shopping?", nil
	}

	removed := 0
	cleared := 0.0
	for _, item := range items {
		if t.client.RemoveFromCart(ctx, item.ID) {
			removed++
			cleared += item.Price * float64(item.Quantity)
		}
	}

	switch {
	case removed == len(items):
		var b strings.Builder
		fmt.Fprintf(&b, "🗑️ **Cart cleared!** Removed all %d items.\n\n", removed)
		fmt.Fprintf(&b, "Items removed: %d\n", removed)
		fmt.Fprintf(&b, "Total value cleared: $%.2f\n\n", cleared)
		b.WriteString("Your cart is now empty and ready for new items. What would you like to shop for?")
		return b.String(), nil
	case removed > 0:
		return fmt.Sprintf("⚠️ **Partially cleared:** Removed %d out of %d items.\n\nSome items couldn't be removed. Please try again or contact support.", removed, len(items)), nil
	default:
		return "Sorry, I couldn't clear your cart. Please try again later.", nil
	}
}

// findCartItem locates a cart line by id within the current cart listing;
// the backend exposes no direct single-item endpoint.
func (t *Toolset) findCartItem(ctx context.Context, cartItemID int) *catalog.CartItem {
	for _, item := range t.client.GetCartItems(ctx) {
		if item.ID == cartItemID {
			return &item
		}
	}
	return nil
}
