package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/wallet-connect/internal/api"
	"github.com/AlexZinkM/wallet-connect/internal/client"
	"github.com/AlexZinkM/wallet-connect/internal/config"
	"github.com/AlexZinkM/wallet-connect/internal/handler"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title           Wallet Connect API
// @version         1.0
// @description     Connects EVM, Cosmos and Solana wallets and keeps the wallet session.
// @host            localhost:8080
// @BasePath        /
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the wallet API over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		a, err := newApp(ctx, true)
		if err != nil {
			return err
		}
		defer a.close()

		evm, err := client.DialEVM(ctx, a.cfg.EVMRPCURL)
		if err != nil {
			a.log.Warn("evm balances disabled", zap.Error(err))
		} else {
			defer evm.Close()
		}
		balances := client.NewBalances(evm, client.NewSolanaClient(a.cfg.SolanaRPCURL))

		router := api.SetupRouter(
			handler.NewWalletHandler(a.orch, balances, a.log),
			handler.NewKeystoreHandler(config.GetKeystoreDir(), a.cfg.CosmosBech32Prefix, nil),
			a.log,
		)
		srv := &http.Server{
			Addr:              ":" + config.GetPort(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			a.log.Info("server listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			a.log.Info("shutting down")
		}

		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
