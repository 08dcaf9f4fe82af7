package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	catalogapp "github.com/adhithya-electronics/storefront-client/internal/catalog/app"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the product catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE:  runProductsList,
}

var productsShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a product with its variants",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsShow,
}

var productsFiltersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Show available categories and brands",
	RunE:  runProductsFilters,
}

func init() {
	rootCmd.AddCommand(productsCmd)
	productsCmd.AddCommand(productsListCmd, productsShowCmd, productsFiltersCmd)

	productsListCmd.Flags().String("query", "", "search term")
	productsListCmd.Flags().StringSlice("category", nil, "filter by category (repeatable)")
	productsListCmd.Flags().StringSlice("brand", nil, "filter by brand (repeatable)")
	productsListCmd.Flags().String("sort", "", "sort order")
	productsListCmd.Flags().Int("limit", 0, "maximum results")
}

func runProductsList(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	categories, _ := cmd.Flags().GetStringSlice("category")
	brands, _ := cmd.Flags().GetStringSlice("brand")
	sort, _ := cmd.Flags().GetString("sort")
	limit, _ := cmd.Flags().GetInt("limit")

	products, err := app.Catalog.ListProducts(cmd.Context(), catalogapp.ListParams{
		Query:      query,
		Categories: categories,
		Brands:     brands,
		Sort:       sort,
		Limit:      limit,
	})
	if err != nil {
		return err
	}

	if len(products) == 0 {
		app.Printer.Info("no products found")
		return nil
	}

	table := NewTable([]string{"Name", "Brand", "Price", "Rating", "Stock", "Slug"})
	for _, p := range products {
		table.AddRow([]string{
			p.Name,
			p.Brand,
			formatPrice(p.BasePrice),
			fmt.Sprintf("%.1f (%d)", p.AvgRating, p.ReviewCount),
			strconv.Itoa(p.TotalStock()),
			p.Slug,
		})
	}
	table.Render()
	return nil
}

func runProductsShow(cmd *cobra.Command, args []string) error {
	product, err := app.Catalog.GetProduct(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	app.Printer.Header(product.Name)
	app.Printer.Info("brand: %s", product.Brand)
	if product.Category != nil {
		app.Printer.Info("category: %s", product.Category.Name)
	}
	app.Printer.Info("price: %s", formatPrice(product.BasePrice))
	if product.CompareAtPrice > product.BasePrice {
		app.Printer.Info("was: %s", formatPrice(product.CompareAtPrice))
	}
	app.Printer.Info("rating: %.1f from %d reviews", product.AvgRating, product.ReviewCount)
	if desc := strings.TrimSpace(product.Description); desc != "" {
		app.Printer.Info("\n%s", desc)
	}

	if len(product.Variants) > 0 {
		app.Printer.Header("Variants")
		table := NewTable([]string{"ID", "Title", "Price", "Stock"})
		for _, v := range product.Variants {
			stock := "-"
			if v.Inventory != nil {
				stock = strconv.Itoa(v.Inventory.Quantity)
			}
			table.AddRow([]string{v.ID, v.Title, formatPrice(v.Price), stock})
		}
		table.Render()
	}
	return nil
}

func runProductsFilters(cmd *cobra.Command, args []string) error {
	filters, err := app.Catalog.Filters(cmd.Context())
	if err != nil {
		return err
	}

	app.Printer.Header("Categories")
	for _, c := range filters.Categories {
		app.Printer.Info("  %s", c)
	}
	app.Printer.Header("Brands")
	for _, b := range filters.Brands {
		app.Printer.Info("  %s", b)
	}
	return nil
}

func formatPrice(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}
