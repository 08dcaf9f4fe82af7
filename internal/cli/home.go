package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show featured products and branches",
	RunE:  runHome,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the client version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("storefront " + version)
	},
}

func init() {
	rootCmd.AddCommand(homeCmd, versionCmd)
}

func runHome(cmd *cobra.Command, args []string) error {
	snap, err := app.Catalog.Home(cmd.Context())
	if err != nil {
		return err
	}

	app.Printer.Header("Featured products")
	for _, p := range snap.Featured {
		app.Printer.Info("  %-30s %s (%s)", p.Name, formatPrice(p.BasePrice), p.Slug)
	}

	app.Printer.Header("Branches")
	for _, b := range snap.Branches {
		app.Printer.Info("  %-30s %s (%s)", b.Name, b.Area, b.Slug)
	}
	return nil
}
