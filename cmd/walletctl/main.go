// walletctl connects external wallets and manages the persisted wallet session.
// Usage: go run ./cmd/walletctl --help
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "walletctl",
	Short:         "Connect EVM, Cosmos and Solana wallets and derive the local wallet",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
