// Package cli contains the storefront CLI commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	cartapp "github.com/adhithya-electronics/storefront-client/internal/cart/app"
	cartrest "github.com/adhithya-electronics/storefront-client/internal/cart/infra/rest"
	catalogapp "github.com/adhithya-electronics/storefront-client/internal/catalog/app"
	catalogrest "github.com/adhithya-electronics/storefront-client/internal/catalog/infra/rest"
	sessionapp "github.com/adhithya-electronics/storefront-client/internal/session/app"
	sessionrest "github.com/adhithya-electronics/storefront-client/internal/session/infra/rest"
	"github.com/adhithya-electronics/storefront-client/pkg/config"
	"github.com/adhithya-electronics/storefront-client/pkg/httpclient"
	"github.com/adhithya-electronics/storefront-client/pkg/localstore"
	"github.com/adhithya-electronics/storefront-client/pkg/logger"
)

// App bundles the constructed services. Commands reach them through the
// package-level instance built in initApp; nothing else holds mutable state.
type App struct {
	Cfg     config.Config
	Log     *slog.Logger
	Store   *localstore.Store
	Session *sessionapp.Service
	Cart    *cartapp.Service
	Catalog *catalogapp.Service
	Printer *Printer
}

var (
	app     *App
	verbose bool
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Adhithya Electronics storefront client",
	Long: `storefront is the command-line client for the Adhithya Electronics shop.

It talks to the commerce API for browsing, keeps a guest cart locally while
logged out, and merges it into your account cart when you log in.

Example usage:
  storefront products list --query laptop
  storefront cart add thinkpad-x1 --quantity 2
  storefront login --email me@example.com --password secret
  storefront cart list`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		// Flush mirrored cart requests before the process exits.
		if app != nil {
			app.Cart.Wait()
		}
	},
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initApp builds the object graph: config, logger, local store, HTTP gateway,
// then the session, cart, and catalog services. The cart observes session
// token changes, so restoring a live session here triggers its reconciliation
// before any command runs.
func initApp(ctx context.Context) error {
	cfg := config.Load()

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log := logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.AppEnv,
		Level:   level,
		Format:  "text",
	})

	store, err := localstore.Open(cfg.StateDir)
	if err != nil {
		return fmt.Errorf("open state dir: %w", err)
	}

	// The gateway reads the token straight from the persisted store so it is
	// correct even before the session store has restored anything.
	client, err := httpclient.New(
		httpclient.Config{
			BaseURL: cfg.APIBaseURL,
			Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
		},
		httpclient.TokenSourceFunc(func() (string, bool) {
			return store.Get(sessionapp.TokenKey)
		}),
		log,
	)
	if err != nil {
		return fmt.Errorf("build api client: %w", err)
	}

	session := sessionapp.NewService(sessionrest.NewAuthAPI(client), store, log)
	cart := cartapp.NewService(cartrest.NewCartAPI(client), store, log)
	catalog := catalogapp.NewService(catalogrest.NewCatalogAPI(client))

	cart.LoadGuestCart()
	session.OnTokenChange(cart.HandleTokenChange)
	session.Initialize(ctx)

	app = &App{
		Cfg:     cfg,
		Log:     log,
		Store:   store,
		Session: session,
		Cart:    cart,
		Catalog: catalog,
		Printer: NewPrinter(),
	}
	return nil
}
