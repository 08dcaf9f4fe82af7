package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cartapp "github.com/adhithya-electronics/storefront-client/internal/cart/app"
	cartdomain "github.com/adhithya-electronics/storefront-client/internal/cart/domain"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage your shopping cart",
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the cart contents and totals",
	RunE:  runCartList,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-slug>",
	Short: "Add a quantity of a product to the cart",
	Long: `Add a quantity of a product to the cart.

The quantity is a delta: a negative value decrements. An item whose quantity
drops to zero or below is removed.`,
	Args: cobra.ExactArgs(1),
	RunE: runCartAdd,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove an item from the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the local cart",
	RunE:  runCartClear,
}

var cartSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replace the local cart with the server's copy",
	RunE:  runCartSync,
}

func init() {
	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(cartListCmd, cartAddCmd, cartRemoveCmd, cartClearCmd, cartSyncCmd)

	cartAddCmd.Flags().Int("quantity", 1, "quantity delta to add")
	cartAddCmd.Flags().String("variant", "", "variant id (default: first variant)")
}

func runCartList(cmd *cobra.Command, args []string) error {
	items := app.Cart.Items()
	if len(items) == 0 {
		app.Printer.Info("cart is empty")
		return nil
	}

	table := NewTable([]string{"ID", "Name", "Qty", "Price", "Subtotal"})
	for _, it := range items {
		table.AddRow([]string{
			it.ID,
			it.Name,
			strconv.Itoa(it.Quantity),
			formatPrice(it.Price),
			formatPrice(it.Price * float64(it.Quantity)),
		})
	}
	table.Render()

	app.Printer.Info("\n%d items, total %s", app.Cart.TotalItems(), formatPrice(app.Cart.TotalPrice()))
	if !app.Session.IsAuthenticated() {
		app.Printer.Warning("guest cart: log in to keep it on your account")
	}
	return nil
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	quantity, _ := cmd.Flags().GetInt("quantity")
	variantID, _ := cmd.Flags().GetString("variant")

	product, err := app.Catalog.GetProduct(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("look up product: %w", err)
	}

	item := cartdomain.LineItem{
		ID:             product.DefaultVariantID(),
		Quantity:       quantity,
		Name:           product.Name,
		Price:          product.BasePrice,
		Image:          product.FirstImage(),
		StockAvailable: product.TotalStock(),
	}
	if variantID != "" {
		found := false
		for _, v := range product.Variants {
			if v.ID != variantID {
				continue
			}
			item.ID = v.ID
			if v.Price > 0 {
				item.Price = v.Price
			}
			item.StockAvailable = 0
			if v.Inventory != nil {
				item.StockAvailable = v.Inventory.Quantity
			}
			found = true
			break
		}
		if !found {
			return fmt.Errorf("product %s has no variant %s", product.Slug, variantID)
		}
	}

	app.Cart.AddItem(cmd.Context(), item)

	// The store applies raw deltas; dropping to zero or below means removal,
	// and that policy lives here at the call site.
	for _, it := range app.Cart.Items() {
		if it.ID == item.ID && it.Quantity <= 0 {
			app.Cart.RemoveItem(cmd.Context(), item.ID)
			app.Printer.Success("removed %s from the cart", product.Name)
			return nil
		}
	}

	app.Printer.Success("added %s to the cart", product.Name)
	app.Printer.Info("%d items, total %s", app.Cart.TotalItems(), formatPrice(app.Cart.TotalPrice()))
	return nil
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	app.Cart.RemoveItem(cmd.Context(), args[0])
	app.Printer.Success("removed %s", args[0])
	return nil
}

func runCartClear(cmd *cobra.Command, args []string) error {
	app.Cart.ClearCart()
	app.Printer.Success("cart cleared")
	return nil
}

func runCartSync(cmd *cobra.Command, args []string) error {
	if err := app.Cart.Refresh(cmd.Context()); err != nil {
		if errors.Is(err, cartapp.ErrNoSession) {
			return errors.New("please login to sync the cart")
		}
		return fmt.Errorf("sync cart: %w", err)
	}

	app.Printer.Success("cart synced: %d items, total %s", app.Cart.TotalItems(), formatPrice(app.Cart.TotalPrice()))
	return nil
}
