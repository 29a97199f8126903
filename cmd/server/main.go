// Package main is the entry point for the gRPC server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/coc-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "coc-api",
	Short: "Call of Cthulhu sheet API gRPC Server",
	Long: `coc-api provides a gRPC interface for managing Call of Cthulhu character sheets:
versioned sheets, skill ledgers, images, ability rolls, and snapshot and VTT exports.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
