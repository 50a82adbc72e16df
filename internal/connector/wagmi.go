package connector

import (
	"context"
	"sync"

	"github.com/AlexZinkM/wallet-connect/internal/model"
	"github.com/AlexZinkM/wallet-connect/internal/provider"
	"github.com/AlexZinkM/wallet-connect/internal/session"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// WagmiConnector serves INJECTED, COINBASE and WALLET_CONNECT wallets.
// EVM identity is the working address, so there is no arbitrary-sign step.
type WagmiConnector struct {
	store    *session.Store
	registry *provider.Registry
	named    map[model.ConnectorType]provider.EVMProvider
	log      *zap.Logger

	mu      sync.RWMutex
	detail  *model.WalletDetail
	active  provider.EVMProvider
	address string
}

// NewWagmiConnector creates the EVM connector. named holds the COINBASE / WALLET_CONNECT
// connectors; a missing entry means that connector is unavailable.
func NewWagmiConnector(store *session.Store, registry *provider.Registry, named map[model.ConnectorType]provider.EVMProvider, log *zap.Logger) *WagmiConnector {
	if log == nil {
		log = zap.NewNop()
	}
	if named == nil {
		named = make(map[model.ConnectorType]provider.EVMProvider)
	}
	return &WagmiConnector{
		store:    store,
		registry: registry,
		named:    named,
		log:      log.Named("wagmi"),
	}
}

// HasInjected reports whether an EIP-6963 provider with rdns was announced.
func (w *WagmiConnector) HasInjected(rdns string) bool {
	_, ok := w.registry.ByRDNS(rdns)
	return ok
}

// HasNamed reports whether the named connector for t is configured.
func (w *WagmiConnector) HasNamed(t model.ConnectorType) bool {
	p, ok := w.named[t]
	return ok && p != nil
}

// Resolve picks the provider for detail: injected wallets by rdns, the others by connector name.
func (w *WagmiConnector) Resolve(detail model.WalletDetail) (provider.EVMProvider, error) {
	switch detail.ConnectorType {
	case model.ConnectorInjected:
		p, ok := w.registry.ByRDNS(detail.RDNS)
		if !ok || p.Provider == nil {
			return nil, newError(ErrProviderNotFound, msgEVMNotFound, nil)
		}
		return p.Provider, nil
	case model.ConnectorCoinbase, model.ConnectorWalletConnect:
		p, ok := w.named[detail.ConnectorType]
		if !ok || p == nil {
			return nil, newError(ErrProviderNotFound, msgEVMNotFound, nil)
		}
		return p, nil
	default:
		return nil, ErrUnknownConnector
	}
}

// ConnectWallet prompts the wallet for accounts and records the first one as the EVM source account.
// with is applied in the same transition, ahead of that write, and only when the wallet succeeded.
func (w *WagmiConnector) ConnectWallet(ctx context.Context, detail model.WalletDetail, with ...session.Mutation) error {
	p, err := w.Resolve(detail)
	if err != nil {
		return err
	}

	accounts, err := p.RequestAccounts(ctx)
	if err != nil {
		return newError(ErrConnectFailed, err.Error(), err)
	}
	address, err := firstAccount(accounts)
	if err != nil {
		return err
	}

	w.use(detail, p, address)
	w.store.Apply(then(with, session.ReplaceSourceAddress(address, model.ChainEVM))...)
	w.log.Info("evm wallet connected", zap.String("rdns", detail.RDNS), zap.String("address", address))
	return nil
}

// ReconnectToEvmNetwork restores the last EVM connection without prompting.
// No authorised account means the wallet revoked access; the session is left as is.
// A different authorised account replaces the source account and drops the local wallet.
func (w *WagmiConnector) ReconnectToEvmNetwork(ctx context.Context, detail model.WalletDetail) error {
	p, err := w.Resolve(detail)
	if err != nil {
		return err
	}

	accounts, err := p.Accounts(ctx)
	if err != nil {
		return newError(ErrConnectFailed, err.Error(), err)
	}
	if len(accounts) == 0 {
		w.log.Info("evm wallet has no authorised accounts", zap.String("rdns", detail.RDNS))
		return nil
	}
	address, err := firstAccount(accounts)
	if err != nil {
		return err
	}

	w.use(detail, p, address)
	w.store.Apply(session.ReplaceSourceAddress(address, model.ChainEVM))
	return nil
}

// Connect repeats ConnectWallet for the wallet chosen last.
func (w *WagmiConnector) Connect(ctx context.Context) error {
	w.mu.RLock()
	detail := w.detail
	w.mu.RUnlock()
	if detail == nil {
		return newError(ErrNotConnected, msgEVMNotFound, nil)
	}
	return w.ConnectWallet(ctx, *detail)
}

// Address is the checksummed account of the active wallet.
func (w *WagmiConnector) Address() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.address
}

// SignArbitrary is not part of the EVM flow.
func (w *WagmiConnector) SignArbitrary(context.Context) (*model.SignResult, error) {
	return nil, nil
}

// SignPersonal asks the active wallet for an EIP-191 signature of message.
func (w *WagmiConnector) SignPersonal(ctx context.Context, message []byte) ([]byte, error) {
	w.mu.RLock()
	p, address := w.active, w.address
	w.mu.RUnlock()
	if p == nil {
		return nil, newError(ErrNotConnected, "Connect a wallet first.", nil)
	}

	sig, err := p.PersonalSign(ctx, message, address)
	if err != nil {
		return nil, newError(ErrConnectFailed, err.Error(), err)
	}
	return sig, nil
}

// Reset forgets the active provider.
func (w *WagmiConnector) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.detail, w.active, w.address = nil, nil, ""
}

func (w *WagmiConnector) use(detail model.WalletDetail, p provider.EVMProvider, address string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.detail = &detail
	w.active = p
	w.address = address
}

// firstAccount validates and checksums the first returned account.
func firstAccount(accounts []string) (string, error) {
	if len(accounts) == 0 {
		return "", newError(ErrConnectFailed, msgNoAccounts, nil)
	}
	if !common.IsHexAddress(accounts[0]) {
		return "", newError(ErrConnectFailed, "Wallet returned an invalid address.", nil)
	}
	return common.HexToAddress(accounts[0]).Hex(), nil
}

var _ Connector = (*WagmiConnector)(nil)
