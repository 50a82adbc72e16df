// Package local implements the wallet provider ports with keys from .cwt keystore files,
// so wallets can be connected without a browser extension.
package local

import (
	"context"
	"crypto/ecdsa"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/AlexZinkM/wallet-connect/internal/provider"
	"github.com/AlexZinkM/wallet-connect/keystore"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
)

// RDNS is the EIP-6963 name the local EVM wallet is announced under.
const RDNS = "io.localwallet"

// ErrUnknownAccount is returned when asked to sign for an address this wallet doesn't hold.
var ErrUnknownAccount = errors.New("unknown account")

// EVM serves an evm keystore as an EIP-1193 provider.
type EVM struct {
	key     *ecdsa.PrivateKey
	address common.Address
	chainID uint64

	mu         sync.Mutex
	authorised bool
}

// NewEVM wraps an opened evm keystore.
func NewEVM(w *keystore.Wallet, chainID uint64) (*EVM, error) {
	key, err := w.ECDSAKey()
	if err != nil {
		return nil, err
	}
	return &EVM{key: key, address: ethcrypto.PubkeyToAddress(key.PublicKey), chainID: chainID}, nil
}

// Announce registers the wallet in the EIP-6963 registry.
func (e *EVM) Announce(reg *provider.Registry) {
	reg.Announce(provider.InjectedProvider{
		Info:     provider.Info{Name: "Local Wallet", Icon: "localwallet.svg", RDNS: RDNS},
		Provider: e,
	})
}

// RequestAccounts authorises the site and returns the keystore address.
func (e *EVM) RequestAccounts(context.Context) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.authorised = true
	return []string{e.address.Hex()}, nil
}

// Accounts returns the address once RequestAccounts was called, like a wallet that remembers the site.
func (e *EVM) Accounts(context.Context) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.authorised {
		return []string{}, nil
	}
	return []string{e.address.Hex()}, nil
}

// Authorise marks the wallet as already connected, as after a restart.
func (e *EVM) Authorise() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.authorised = true
}

// PersonalSign signs message with the EIP-191 prefix.
func (e *EVM) PersonalSign(_ context.Context, message []byte, address string) ([]byte, error) {
	if !common.IsHexAddress(address) || common.HexToAddress(address) != e.address {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, address)
	}
	sig, err := ethcrypto.Sign(accounts.TextHash(message), e.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}
	sig[ethcrypto.RecoveryIDOffset] += 27
	return sig, nil
}

// ChainID is the chain the wallet was opened for.
func (e *EVM) ChainID(context.Context) (uint64, error) {
	return e.chainID, nil
}

// Keplr serves a cosmos keystore as a Keplr-compatible provider.
type Keplr struct {
	key    *secp256k1.PrivKey
	prefix string
	chains map[string]bool

	mu      sync.Mutex
	enabled map[string]bool
}

// NewKeplr wraps an opened cosmos keystore, which must stay open while the provider is used.
// chainIDs lists the chains the wallet knows about.
func NewKeplr(w *keystore.Wallet, prefix string, chainIDs ...string) (*Keplr, error) {
	key, err := w.CosmosKey()
	if err != nil {
		return nil, err
	}
	chains := make(map[string]bool, len(chainIDs))
	for _, id := range chainIDs {
		chains[id] = true
	}
	return &Keplr{key: key, prefix: prefix, chains: chains, enabled: make(map[string]bool)}, nil
}

// Enable accepts only the configured chain.
func (k *Keplr) Enable(_ context.Context, chainID string) error {
	if !k.chains[chainID] {
		return fmt.Errorf("there is no chain info for %s", chainID)
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.enabled[chainID] = true
	return nil
}

// GetKey returns the keystore key for chainID.
func (k *Keplr) GetKey(_ context.Context, chainID string) (provider.Key, error) {
	if err := k.requireEnabled(chainID); err != nil {
		return provider.Key{}, err
	}
	pub := k.key.PubKey()
	addr, err := bech32.ConvertAndEncode(k.prefix, pub.Address().Bytes())
	if err != nil {
		return provider.Key{}, fmt.Errorf("failed to encode address: %w", err)
	}
	return provider.Key{
		Name:          "local",
		Algo:          "secp256k1",
		PubKey:        pub.Bytes(),
		Address:       pub.Address().Bytes(),
		Bech32Address: addr,
	}, nil
}

// SignArbitrary signs data as an ADR-036 sign doc.
func (k *Keplr) SignArbitrary(ctx context.Context, chainID, signer string, data []byte) (provider.StdSignature, error) {
	key, err := k.GetKey(ctx, chainID)
	if err != nil {
		return provider.StdSignature{}, err
	}
	if !strings.EqualFold(signer, key.Bech32Address) {
		return provider.StdSignature{}, fmt.Errorf("%w: %s", ErrUnknownAccount, signer)
	}

	doc, err := provider.ArbitrarySignDoc(signer, data)
	if err != nil {
		return provider.StdSignature{}, err
	}
	sig, err := k.key.Sign(doc)
	if err != nil {
		return provider.StdSignature{}, fmt.Errorf("failed to sign document: %w", err)
	}

	var out provider.StdSignature
	out.PubKey.Type = "tendermint/PubKeySecp256k1"
	out.PubKey.Value = base64.StdEncoding.EncodeToString(key.PubKey)
	out.Signature = base64.StdEncoding.EncodeToString(sig)
	return out, nil
}

func (k *Keplr) requireEnabled(chainID string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.enabled[chainID] {
		return fmt.Errorf("chain %s is not enabled", chainID)
	}
	return nil
}

// Phantom serves a solana keystore as a Phantom-compatible provider.
type Phantom struct {
	key solana.PrivateKey
}

// NewPhantom wraps an opened solana keystore, which must stay open while the provider is used.
func NewPhantom(w *keystore.Wallet) (*Phantom, error) {
	key, err := w.SolanaKey()
	if err != nil {
		return nil, err
	}
	return &Phantom{key: key}, nil
}

// Connect returns the keystore public key.
func (p *Phantom) Connect(context.Context) (solana.PublicKey, error) {
	return p.key.PublicKey(), nil
}

// SignMessage signs message with ed25519.
func (p *Phantom) SignMessage(_ context.Context, message []byte) (solana.Signature, error) {
	return p.key.Sign(message)
}

var (
	_ provider.EVMProvider     = (*EVM)(nil)
	_ provider.KeplrProvider   = (*Keplr)(nil)
	_ provider.PhantomProvider = (*Phantom)(nil)
)
