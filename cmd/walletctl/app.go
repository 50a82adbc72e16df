package main

import (
	"context"
	"fmt"
	"os"

	"github.com/AlexZinkM/wallet-connect/internal/config"
	"github.com/AlexZinkM/wallet-connect/internal/connector"
	"github.com/AlexZinkM/wallet-connect/internal/logger"
	"github.com/AlexZinkM/wallet-connect/internal/model"
	"github.com/AlexZinkM/wallet-connect/internal/orchestrator"
	"github.com/AlexZinkM/wallet-connect/internal/provider"
	"github.com/AlexZinkM/wallet-connect/internal/provider/jsonrpc"
	"github.com/AlexZinkM/wallet-connect/internal/provider/local"
	"github.com/AlexZinkM/wallet-connect/internal/session"
	"github.com/AlexZinkM/wallet-connect/internal/storage"
	"github.com/AlexZinkM/wallet-connect/keystore"

	"go.uber.org/zap"
)

// app holds everything a command needs to drive the connect flow.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *session.Store
	registry *provider.Registry
	orch     *orchestrator.Orchestrator

	keplr   provider.KeplrProvider
	phantom provider.PhantomProvider
	named   map[model.ConnectorType]provider.EVMProvider

	closers []func()
}

// newApp loads config and the persisted session, and wires the connectors.
// withKeys unlocks the keystore wallets so they can act as providers; it prompts for the password.
func newApp(ctx context.Context, withKeys bool) (*app, error) {
	if err := config.Init(); err != nil {
		return nil, err
	}
	cfg := config.Get()

	log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return nil, err
	}

	kv, err := storage.NewFileKV(config.GetSessionFilePath())
	if err != nil {
		return nil, err
	}
	store := session.NewStore(kv, config.GetSessionStorageKey(), log.Named("session"))
	if err := store.Load(); err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		store:    store,
		registry: provider.NewRegistry(),
		named:    make(map[model.ConnectorType]provider.EVMProvider),
	}

	if withKeys {
		if err := config.PromptForPassword(); err != nil {
			log.Warn("keystore password unavailable, local wallets are disabled", zap.Error(err))
		} else if err := a.loadKeystores(); err != nil {
			a.close()
			return nil, err
		}
	}

	if cfg.EVMRemoteSignerURL != "" {
		signer, err := jsonrpc.Dial(ctx, cfg.EVMRemoteSignerURL)
		if err != nil {
			log.Warn("remote signer unavailable", zap.String("url", cfg.EVMRemoteSignerURL), zap.Error(err))
		} else {
			a.named[model.ConnectorWalletConnect] = signer
			a.closers = append(a.closers, signer.Close)
		}
	}

	conn := orchestrator.Connectors{
		Wagmi:   connector.NewWagmiConnector(store, a.registry, a.named, log),
		Phantom: connector.NewPhantomConnector(store, a.phantom, log),
		Keplr: connector.NewKeplrConnector(store, a.keplr, connector.CosmosOptions{
			ChainID:             cfg.CosmosChainID,
			Bech32Prefix:        cfg.CosmosBech32Prefix,
			EnforceVerification: cfg.CosmosEnforceVerification,
		}, log),
	}

	opts := orchestrator.Options{
		ConnectTimeout: cfg.ConnectTimeout,
		Bech32Prefix:   cfg.CosmosBech32Prefix,
	}
	if config.HasPassword() {
		opts.Password = config.GetPasswordBytes
	}

	a.orch = orchestrator.New(store, a.registry, conn, orchestrator.LinkOpenerFunc(printLink), opts, log)

	if err := a.orch.Reconnect(ctx); err != nil {
		log.Warn("failed to restore wallet connection", zap.Error(err))
	}
	return a, nil
}

// loadKeystores opens every .cwt file in the keystore dir. The first wallet of each network wins.
func (a *app) loadKeystores() error {
	entries, err := keystore.List(config.GetKeystoreDir())
	if err != nil {
		return err
	}

	password, err := config.GetPasswordBytes()
	if err != nil {
		return err
	}
	defer clear(password)

	var evm *local.EVM
	for _, e := range entries {
		log := a.log.With(zap.String("path", e.Path), zap.String("network", e.Network))

		w, err := keystore.Open(e.Path, password)
		if err != nil {
			log.Warn("skipping keystore", zap.Error(err))
			continue
		}

		used := false
		switch e.Network {
		case model.NetworkEVM:
			if evm == nil {
				if evm, err = local.NewEVM(w, a.cfg.EVMChainID); err == nil {
					evm.Announce(a.registry)
					// the user unlocked the keystore, which counts as approving the site
					evm.Authorise()
					used = true
				}
			}
		case model.NetworkCosmos:
			if a.keplr == nil {
				var k *local.Keplr
				if k, err = local.NewKeplr(w, a.cfg.CosmosBech32Prefix, a.cfg.CosmosChainID); err == nil {
					a.keplr = k
					used = true
				}
			}
		case model.NetworkSolana:
			if a.phantom == nil {
				var p *local.Phantom
				if p, err = local.NewPhantom(w); err == nil {
					a.phantom = p
					used = true
				}
			}
		}

		if err != nil {
			log.Warn("skipping keystore", zap.Error(err))
		}
		if !used {
			w.Close()
			continue
		}
		a.closers = append(a.closers, w.Close)
		log.Info("keystore wallet loaded", zap.String("address", e.Address))
	}
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	_ = a.log.Sync()
}

func printLink(_ context.Context, url string) error {
	fmt.Fprintf(os.Stderr, "Install the wallet from %s\n", url)
	qr, err := keystore.TerminalQR(url)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stderr, qr)
	return nil
}
