// Package client reads native balances of connected source accounts from chain RPC endpoints.
package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/AlexZinkM/wallet-connect/internal/common"
	"github.com/AlexZinkM/wallet-connect/internal/model"
)

// ErrUnsupportedChain is returned for chains without a balance backend.
var ErrUnsupportedChain = errors.New("balance is not supported for this chain")

// ErrNoAccount is returned when no source account is connected.
var ErrNoAccount = errors.New("no wallet connected")

type evmBalancer interface {
	NativeBalance(ctx context.Context, address string) (*big.Int, error)
}

type solanaBalancer interface {
	NativeBalance(ctx context.Context, address string) (uint64, error)
}

// Balances looks up the native balance of a source account on its chain.
type Balances struct {
	evm    evmBalancer
	solana solanaBalancer
}

// NewBalances creates the service. A nil client disables that chain.
func NewBalances(evm *EVMClient, sol *SolanaClient) *Balances {
	b := &Balances{}
	if evm != nil {
		b.evm = evm
	}
	if sol != nil {
		b.solana = sol
	}
	return b
}

// Balance returns the native balance of the connected source account.
func (b *Balances) Balance(ctx context.Context, account model.SourceAccount) (*model.BalanceResponse, error) {
	if account.Address == nil || account.Chain == nil {
		return nil, ErrNoAccount
	}
	address, chain := *account.Address, *account.Chain

	resp := &model.BalanceResponse{Address: address, Chain: chain}
	switch {
	case chain == model.ChainEVM && b.evm != nil:
		wei, err := b.evm.NativeBalance(ctx, address)
		if err != nil {
			return nil, err
		}
		resp.Amount, resp.Symbol = common.WeiToETH(wei), "ETH"

	case chain == model.ChainSolana && b.solana != nil:
		lamports, err := b.solana.NativeBalance(ctx, address)
		if err != nil {
			return nil, err
		}
		resp.Amount, resp.Symbol = common.LamportsToSOL(lamports), "SOL"

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedChain, chain)
	}
	return resp, nil
}
