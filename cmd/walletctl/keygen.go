package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlexZinkM/wallet-connect/internal/config"
	"github.com/AlexZinkM/wallet-connect/keystore"

	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen <solana|cosmos|evm> <name>",
	Short: "Generate a keystore wallet in the keystore directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			return err
		}
		if err := config.PromptForPassword(); err != nil {
			return err
		}
		password, err := config.GetPasswordBytes()
		if err != nil {
			return err
		}
		defer clear(password)

		if err := os.MkdirAll(config.GetKeystoreDir(), 0o700); err != nil {
			return fmt.Errorf("failed to create keystore dir: %w", err)
		}
		path := filepath.Join(config.GetKeystoreDir(), args[1]+keystore.Extension)

		address, err := keystore.GenerateWallet(path, args[0], config.Get().CosmosBech32Prefix, password)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s wallet %s saved to %s\n", args[0], address, path)
		if qr, err := keystore.TerminalQR(address); err == nil {
			fmt.Fprint(cmd.OutOrStdout(), qr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}
