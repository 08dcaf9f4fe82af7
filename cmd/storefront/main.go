package main

import (
	"context"
	"os"

	"github.com/adhithya-electronics/storefront-client/internal/cli"
	"github.com/adhithya-electronics/storefront-client/pkg/shutdown"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	cli.SetVersion(version)
	if err := cli.Execute(ctx); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
