// Package provider declares the wallet SDK surfaces the connectors talk to: EIP-1193 style EVM
// providers discovered through EIP-6963, a Keplr-compatible Cosmos provider and a Phantom-compatible
// Solana provider. Implementations live in sub-packages; tests use fakes.
package provider

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// EVMProvider is the subset of EIP-1193 the EVM connector needs.
type EVMProvider interface {
	// RequestAccounts prompts the user (eth_requestAccounts).
	RequestAccounts(ctx context.Context) ([]string, error)
	// Accounts returns already authorised accounts without prompting (eth_accounts).
	Accounts(ctx context.Context) ([]string, error)
	// PersonalSign signs message with the EIP-191 prefix and returns the 65-byte signature.
	PersonalSign(ctx context.Context, message []byte, address string) ([]byte, error)
	ChainID(ctx context.Context) (uint64, error)
}

// Info is the EIP-6963 provider metadata.
type Info struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	RDNS string `json:"rdns"`
}

// InjectedProvider is one announced EIP-6963 provider.
type InjectedProvider struct {
	Info     Info
	Provider EVMProvider
}

// Key is what Keplr returns from getKey.
type Key struct {
	Name          string
	Algo          string
	PubKey        []byte // 33-byte compressed secp256k1
	Address       []byte
	Bech32Address string
}

// StdSignature is the amino JSON signature returned by Keplr signArbitrary.
type StdSignature struct {
	PubKey struct {
		Type  string `json:"type"`
		Value string `json:"value"` // base64
	} `json:"pub_key"`
	Signature string `json:"signature"` // base64 r||s
}

// KeplrProvider is the window.keplr surface.
type KeplrProvider interface {
	Enable(ctx context.Context, chainID string) error
	GetKey(ctx context.Context, chainID string) (Key, error)
	// SignArbitrary signs data as an ADR-036 MsgSignData document.
	SignArbitrary(ctx context.Context, chainID, signer string, data []byte) (StdSignature, error)
}

// PhantomProvider is the injected Phantom Solana surface.
type PhantomProvider interface {
	Connect(ctx context.Context) (solana.PublicKey, error)
	SignMessage(ctx context.Context, message []byte) (solana.Signature, error)
}
