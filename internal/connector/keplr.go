package connector

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/AlexZinkM/wallet-connect/internal/model"
	"github.com/AlexZinkM/wallet-connect/internal/provider"
	"github.com/AlexZinkM/wallet-connect/internal/session"

	"go.uber.org/zap"
)

// KeplrConnector connects Keplr-compatible Cosmos wallets. Connecting also signs the ownership
// document, so a successful Connect leaves both the source account and the local wallet set.
type KeplrConnector struct {
	cosmosBase
	keplr provider.KeplrProvider

	mu  sync.RWMutex
	key *provider.Key
}

// NewKeplrConnector creates the connector. A nil keplr means the extension is not installed.
func NewKeplrConnector(store *session.Store, keplr provider.KeplrProvider, opts CosmosOptions, log *zap.Logger) *KeplrConnector {
	if log == nil {
		log = zap.NewNop()
	}
	return &KeplrConnector{
		cosmosBase: cosmosBase{opts: opts, store: store, log: log.Named("keplr")},
		keplr:      keplr,
	}
}

// HasKeplrWallet reports whether the provider is available.
func (k *KeplrConnector) HasKeplrWallet() bool {
	return k.keplr != nil
}

// Connect is ConnectKeplr with no extra writes.
func (k *KeplrConnector) Connect(ctx context.Context) error {
	return k.ConnectKeplr(ctx)
}

// ConnectKeplr enables the chain, signs the ownership document and records the result.
// with is applied in the same transition, ahead of the connector's own writes.
func (k *KeplrConnector) ConnectKeplr(ctx context.Context, with ...session.Mutation) error {
	if !k.HasKeplrWallet() {
		return newError(ErrProviderNotFound, msgKeplrNotFound, nil)
	}

	if err := k.keplr.Enable(ctx, k.opts.ChainID); err != nil {
		return newError(ErrConnectFailed, msgKeplrConnectFailed, err)
	}
	key, err := k.keplr.GetKey(ctx, k.opts.ChainID)
	if err != nil {
		return newError(ErrConnectFailed, msgKeplrConnectFailed, err)
	}

	nonce := k.nonce()
	res, err := k.sign(ctx, key, nonce)
	if err != nil {
		return err
	}

	if !res.Valid {
		k.log.Warn("keplr signature did not verify", zap.String("address", key.Bech32Address))
		if k.opts.EnforceVerification {
			return newError(ErrVerificationFailed, msgVerificationFailed, nil)
		}
	} else {
		k.log.Debug("keplr signature verified", zap.String("address", key.Bech32Address))
	}

	local, err := k.deriveAddress(key.PubKey)
	if err != nil {
		return newError(ErrConnectFailed, msgKeplrConnectFailed, err)
	}

	k.mu.Lock()
	k.key = &key
	k.mu.Unlock()

	k.record(key.Bech32Address, local, res, nonce, with)
	k.log.Info("keplr wallet connected", zap.String("address", key.Bech32Address), zap.Int("nonce", nonce))
	return nil
}

// Address is the bech32 address of the connected key.
func (k *KeplrConnector) Address() string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.key == nil {
		return ""
	}
	return k.key.Bech32Address
}

// SignArbitrary signs a fresh ownership document for the connected key with the session nonce.
func (k *KeplrConnector) SignArbitrary(ctx context.Context) (*model.SignResult, error) {
	k.mu.RLock()
	key := k.key
	k.mu.RUnlock()
	if key == nil {
		return nil, newError(ErrNotConnected, msgKeplrConnectFailed, nil)
	}
	return k.sign(ctx, *key, k.nonce())
}

func (k *KeplrConnector) sign(ctx context.Context, key provider.Key, nonce int) (*model.SignResult, error) {
	data, err := k.envelope(key.Bech32Address, nonce)
	if err != nil {
		return nil, newError(ErrConnectFailed, msgKeplrConnectFailed, err)
	}

	stdSig, err := k.keplr.SignArbitrary(ctx, k.opts.ChainID, key.Bech32Address, data)
	if err != nil {
		return nil, newError(ErrConnectFailed, msgKeplrConnectFailed, err)
	}

	sig, err := base64.StdEncoding.DecodeString(stdSig.Signature)
	if err != nil {
		return nil, newError(ErrConnectFailed, msgKeplrConnectFailed, fmt.Errorf("failed to decode signature: %w", err))
	}

	valid, err := k.verify(key.Bech32Address, data, key.PubKey, sig)
	if err != nil {
		k.log.Warn("keplr signature check failed", zap.Error(err))
		valid = false
	}

	return &model.SignResult{
		SignDoc:       base64.StdEncoding.EncodeToString(data),
		Signature:     stdSig.Signature,
		PublicKey:     base64.StdEncoding.EncodeToString(key.PubKey),
		Address:       key.Bech32Address,
		SignatureType: model.SignatureTypeCosmos,
		Valid:         valid,
	}, nil
}

// Reset forgets the connected key.
func (k *KeplrConnector) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.key = nil
}

var _ Connector = (*KeplrConnector)(nil)
