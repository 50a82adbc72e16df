package client

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// EVMClient reads account state over Ethereum JSON-RPC
type EVMClient struct {
	eth *ethclient.Client
}

// DialEVM connects to rpcURL.
func DialEVM(ctx context.Context, rpcURL string) (*EVMClient, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial evm rpc: %w", err)
	}
	return &EVMClient{eth: eth}, nil
}

// NativeBalance gets the latest balance in wei
func (c *EVMClient) NativeBalance(ctx context.Context, address string) (*big.Int, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid EVM address %q", address)
	}
	wei, err := c.eth.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get ETH balance: %w", err)
	}
	return wei, nil
}

// Close closes the RPC client.
func (c *EVMClient) Close() {
	c.eth.Close()
}
