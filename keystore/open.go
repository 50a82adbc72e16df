// Package keystore manages password-encrypted .cwt key files for solana, cosmos and evm networks.
package keystore

import (
	"crypto/ecdsa"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AlexZinkM/wallet-connect/internal/crypto"
	"github.com/AlexZinkM/wallet-connect/internal/model"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
)

// Wallet is a decrypted keystore file. Call Close to wipe the key.
type Wallet struct {
	Path    string
	Network string
	Address string

	privateKey []byte
}

// Open decrypts the keystore at filePath.
// password must be []byte for security (caller should zero it after use)
func Open(filePath string, password []byte) (*Wallet, error) {
	header, data, err := crypto.DecryptWallet(filePath, password)
	if err != nil {
		return nil, err
	}

	w := &Wallet{
		Path:       filePath,
		Network:    header.Network,
		Address:    header.Address,
		privateKey: data.PrivateKey,
	}
	if err := w.check(); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// check makes sure the key matches the network before it's handed out.
func (w *Wallet) check() error {
	switch w.Network {
	case model.NetworkSolana:
		if len(w.privateKey) != 64 {
			return fmt.Errorf("invalid solana key length %d", len(w.privateKey))
		}
	case model.NetworkCosmos:
		if len(w.privateKey) != secp256k1.PrivKeySize {
			return fmt.Errorf("invalid cosmos key length %d", len(w.privateKey))
		}
	case model.NetworkEVM:
		if _, err := ethcrypto.ToECDSA(w.privateKey); err != nil {
			return fmt.Errorf("invalid evm key: %w", err)
		}
	default:
		return &UnsupportedNetworkError{Network: w.Network}
	}
	return nil
}

// SolanaKey returns the ed25519 key of a solana keystore.
func (w *Wallet) SolanaKey() (solana.PrivateKey, error) {
	if w.Network != model.NetworkSolana {
		return nil, fmt.Errorf("%s keystore has no solana key", w.Network)
	}
	return solana.PrivateKey(w.privateKey), nil
}

// CosmosKey returns the secp256k1 key of a cosmos keystore.
func (w *Wallet) CosmosKey() (*secp256k1.PrivKey, error) {
	if w.Network != model.NetworkCosmos {
		return nil, fmt.Errorf("%s keystore has no cosmos key", w.Network)
	}
	return &secp256k1.PrivKey{Key: w.privateKey}, nil
}

// ECDSAKey returns the secp256k1 key of an evm keystore.
func (w *Wallet) ECDSAKey() (*ecdsa.PrivateKey, error) {
	if w.Network != model.NetworkEVM {
		return nil, fmt.Errorf("%s keystore has no evm key", w.Network)
	}
	return ethcrypto.ToECDSA(w.privateKey)
}

// Close wipes the private key from memory.
func (w *Wallet) Close() {
	clear(w.privateKey)
	w.privateKey = nil
}

// Entry is the public part of a keystore file in a directory listing.
type Entry struct {
	Path    string `json:"path"`
	Network string `json:"network"`
	Address string `json:"address"`
}

// List reads the headers of all .cwt files in dir, sorted by file name.
// A missing directory yields an empty list.
func List(dir string) ([]Entry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read keystore dir: %w", err)
	}

	var entries []Entry
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), Extension) {
			continue
		}
		path := filepath.Join(dir, f.Name())
		header, err := crypto.ReadWalletFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name(), err)
		}
		entries = append(entries, Entry{Path: path, Network: header.Network, Address: header.Address})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}
