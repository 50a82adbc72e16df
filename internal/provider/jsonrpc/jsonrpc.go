// Package jsonrpc is an EIP-1193 provider backed by a remote wallet's JSON-RPC endpoint,
// such as a desktop wallet or a remote signer.
package jsonrpc

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/wallet-connect/internal/provider"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// Provider forwards EIP-1193 requests to a JSON-RPC endpoint.
type Provider struct {
	client *rpc.Client
}

// Dial connects to url (http, ws or ipc).
func Dial(ctx context.Context, url string) (*Provider, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial wallet rpc: %w", err)
	}
	return New(c), nil
}

// New wraps an existing client.
func New(c *rpc.Client) *Provider {
	return &Provider{client: c}
}

// RequestAccounts calls eth_requestAccounts, which may prompt the user.
func (p *Provider) RequestAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := p.client.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, fmt.Errorf("eth_requestAccounts: %w", err)
	}
	return accounts, nil
}

// Accounts calls eth_accounts. It never prompts.
func (p *Provider) Accounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := p.client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("eth_accounts: %w", err)
	}
	return accounts, nil
}

// PersonalSign calls personal_sign with the message hex encoded, as wallets expect.
func (p *Provider) PersonalSign(ctx context.Context, message []byte, address string) ([]byte, error) {
	var sig hexutil.Bytes
	if err := p.client.CallContext(ctx, &sig, "personal_sign", hexutil.Bytes(message), address); err != nil {
		return nil, fmt.Errorf("personal_sign: %w", err)
	}
	return sig, nil
}

// ChainID calls eth_chainId.
func (p *Provider) ChainID(ctx context.Context) (uint64, error) {
	var id hexutil.Uint64
	if err := p.client.CallContext(ctx, &id, "eth_chainId"); err != nil {
		return 0, fmt.Errorf("eth_chainId: %w", err)
	}
	return uint64(id), nil
}

// Close closes the RPC connection.
func (p *Provider) Close() {
	p.client.Close()
}

var _ provider.EVMProvider = (*Provider)(nil)
