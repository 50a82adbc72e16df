package orchestrator

import (
	"context"
	"crypto/ecdsa"
	"encoding/base64"

	"github.com/AlexZinkM/wallet-connect/internal/provider"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/ethereum/go-ethereum/accounts"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
)

type fakeEVM struct {
	key        *ecdsa.PrivateKey
	signKey    *ecdsa.PrivateKey
	authorised bool
	err        error
	panicWith  any
	block      bool
}

func newFakeEVM() *fakeEVM {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return &fakeEVM{key: key, signKey: key}
}

func (f *fakeEVM) address() string {
	return ethcrypto.PubkeyToAddress(f.key.PublicKey).Hex()
}

func (f *fakeEVM) RequestAccounts(ctx context.Context) ([]string, error) {
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	f.authorised = true
	return []string{f.address()}, nil
}

func (f *fakeEVM) Accounts(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !f.authorised {
		return nil, nil
	}
	return []string{f.address()}, nil
}

func (f *fakeEVM) PersonalSign(_ context.Context, message []byte, _ string) ([]byte, error) {
	sig, err := ethcrypto.Sign(accounts.TextHash(message), f.signKey)
	if err != nil {
		return nil, err
	}
	sig[ethcrypto.RecoveryIDOffset] += 27
	return sig, nil
}

func (f *fakeEVM) ChainID(context.Context) (uint64, error) {
	return 1, nil
}

type fakeKeplr struct {
	priv  *secp256k1.PrivKey
	calls int
}

func newFakeKeplr() *fakeKeplr {
	return &fakeKeplr{priv: secp256k1.GenPrivKey()}
}

func (f *fakeKeplr) bech32() string {
	addr, err := bech32.ConvertAndEncode("dydx", f.priv.PubKey().Address().Bytes())
	if err != nil {
		panic(err)
	}
	return addr
}

func (f *fakeKeplr) Enable(context.Context, string) error {
	f.calls++
	return nil
}

func (f *fakeKeplr) GetKey(context.Context, string) (provider.Key, error) {
	return provider.Key{
		Algo:          "secp256k1",
		PubKey:        f.priv.PubKey().Bytes(),
		Address:       f.priv.PubKey().Address().Bytes(),
		Bech32Address: f.bech32(),
	}, nil
}

func (f *fakeKeplr) SignArbitrary(_ context.Context, _, signer string, data []byte) (provider.StdSignature, error) {
	doc, err := provider.ArbitrarySignDoc(signer, data)
	if err != nil {
		return provider.StdSignature{}, err
	}
	sig, err := f.priv.Sign(doc)
	if err != nil {
		return provider.StdSignature{}, err
	}
	var out provider.StdSignature
	out.Signature = base64.StdEncoding.EncodeToString(sig)
	return out, nil
}

type fakePhantom struct {
	priv solana.PrivateKey
	err  error
}

func newFakePhantom() *fakePhantom {
	priv, err := solana.NewRandomPrivateKey()
	if err != nil {
		panic(err)
	}
	return &fakePhantom{priv: priv}
}

func (f *fakePhantom) Connect(context.Context) (solana.PublicKey, error) {
	if f.err != nil {
		return solana.PublicKey{}, f.err
	}
	return f.priv.PublicKey(), nil
}

func (f *fakePhantom) SignMessage(_ context.Context, message []byte) (solana.Signature, error) {
	return f.priv.Sign(message)
}
