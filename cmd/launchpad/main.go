// Command launchpad is the storefront CLI: serve the API, inspect routes.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	appevents "github.com/shashiranjanraj/launchpad/app/events"
	"github.com/shashiranjanraj/launchpad/app/routes"
	"github.com/shashiranjanraj/launchpad/config"
	"github.com/shashiranjanraj/launchpad/internal/server"
	"github.com/shashiranjanraj/launchpad/internal/store"
	"github.com/shashiranjanraj/launchpad/pkg/storage"
	"github.com/shashiranjanraj/launchpad/pkg/ws"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "launchpad",
	Short: "Launchpad — demo storefront API",
	Long:  "Launchpad is a demonstration storefront: catalogue, cart, favorites, and profile over an in-memory store.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}

// launchpad seed — write the demo images to the storage disk. The in-memory
// records are re-seeded on every boot; the disk assets are the only part
// that persists.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the demo storage assets (product and avatar images)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		storage.Connect()
		if err := server.SeedAssets(); err != nil {
			return err
		}
		fmt.Println("Storage assets seeded.")
		return nil
	},
}

// launchpad serve — start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// launchpad run — alias kept for muscle memory.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the HTTP server (alias: serve)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// launchpad route:list — print every registered route.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := routes.Register(routes.Deps{
			Store:  store.New(),
			Hub:    ws.NewHub(),
			Broker: appevents.NewBroker(),
		})
		if err != nil {
			return err
		}

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No routes registered.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the launchpad version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("launchpad", version)
	},
}
