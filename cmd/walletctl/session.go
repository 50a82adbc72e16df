package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/AlexZinkM/wallet-connect/internal/model"
	"github.com/AlexZinkM/wallet-connect/internal/orchestrator"
	"github.com/AlexZinkM/wallet-connect/internal/picker"

	"github.com/spf13/cobra"
)

var walletsCmd = &cobra.Command{
	Use:   "wallets",
	Short: "List the wallets that can be connected",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.close()

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tCONNECTOR\tRDNS\tDOWNLOAD")
		for _, w := range a.orch.Wallets() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", w.Name, w.ConnectorType, w.RDNS, w.DownloadLink)
		}
		return tw.Flush()
	},
}

var connectCmd = &cobra.Command{
	Use:   "connect <rdns|name>",
	Short: "Connect a wallet by rdns or name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.close()

		detail, ok := findWallet(a.orch.Wallets(), args[0])
		if !ok {
			return fmt.Errorf("wallet %q is not listed, run walletctl wallets", args[0])
		}
		return connect(cmd, a, detail)
	},
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose a wallet to connect from an interactive list",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.close()

		detail, err := picker.Run(a.orch.Wallets())
		if errors.Is(err, picker.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		return connect(cmd, a, detail)
	},
}

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Sign the derivation message and create the local wallet",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.close()

		return printOutcome(cmd.OutOrStdout(), a, a.orch.Derive(cmd.Context()))
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the persisted wallet session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.close()

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(model.SessionResponse{
			OnboardingStatus: a.orch.OnboardingStatus(),
			Session:          a.orch.Session(),
		})
	},
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Forget the connected wallet and the local wallet",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.orch.Disconnect(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "disconnected")
		return nil
	},
}

var skipDerive bool

func init() {
	connectCmd.Flags().BoolVar(&skipDerive, "no-derive", false, "stop after connecting, before signing the derivation message")
	pickCmd.Flags().BoolVar(&skipDerive, "no-derive", false, "stop after connecting, before signing the derivation message")

	rootCmd.AddCommand(walletsCmd, connectCmd, pickCmd, deriveCmd, statusCmd, disconnectCmd)
}

// findWallet matches rdns exactly, or the tile name case-insensitively.
func findWallet(wallets []model.WalletDetail, query string) (model.WalletDetail, bool) {
	for _, w := range wallets {
		if w.RDNS != "" && w.RDNS == query {
			return w, true
		}
	}
	for _, w := range wallets {
		if strings.EqualFold(w.Name, query) {
			return w, true
		}
	}
	return model.WalletDetail{}, false
}

func connect(cmd *cobra.Command, a *app, detail model.WalletDetail) error {
	out := a.orch.Select(cmd.Context(), detail)
	if err := printOutcome(cmd.OutOrStdout(), a, out); err != nil {
		return err
	}
	if out.State != orchestrator.StateAwaitingDerivation || skipDerive {
		return nil
	}
	return printOutcome(cmd.OutOrStdout(), a, a.orch.Derive(cmd.Context()))
}

func printOutcome(w io.Writer, a *app, out orchestrator.Outcome) error {
	fmt.Fprintf(w, "state: %s\n", out.State)
	fmt.Fprintf(w, "onboarding: %s\n", a.orch.OnboardingStatus())

	s := a.orch.Session()
	if addr := model.Deref(s.SourceAccount.Address); addr != "" {
		fmt.Fprintf(w, "address: %s\n", addr)
	}
	if local := model.Deref(s.LocalWallet.Address); local != "" {
		fmt.Fprintf(w, "local wallet: %s\n", local)
	}
	if out.DownloadLink != "" {
		fmt.Fprintf(w, "download: %s\n", out.DownloadLink)
	}
	if out.Error != "" {
		return errors.New(out.Error)
	}
	return nil
}
