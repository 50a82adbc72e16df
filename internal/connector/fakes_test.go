package connector

import (
	"context"
	"crypto/ecdsa"
	"encoding/base64"
	"errors"

	"github.com/AlexZinkM/wallet-connect/internal/provider"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
)

var errRejected = errors.New("user rejected the request")

type fakeEVM struct {
	key        *ecdsa.PrivateKey
	authorised bool
	rejectErr  error
}

func newFakeEVM() *fakeEVM {
	key, err := crypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return &fakeEVM{key: key}
}

func (f *fakeEVM) address() string {
	return crypto.PubkeyToAddress(f.key.PublicKey).Hex()
}

func (f *fakeEVM) RequestAccounts(context.Context) ([]string, error) {
	if f.rejectErr != nil {
		return nil, f.rejectErr
	}
	f.authorised = true
	return []string{f.address()}, nil
}

func (f *fakeEVM) Accounts(context.Context) ([]string, error) {
	if !f.authorised {
		return []string{}, nil
	}
	return []string{f.address()}, nil
}

func (f *fakeEVM) PersonalSign(_ context.Context, message []byte, _ string) ([]byte, error) {
	if f.rejectErr != nil {
		return nil, f.rejectErr
	}
	sig, err := crypto.Sign(accounts.TextHash(message), f.key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

func (f *fakeEVM) ChainID(context.Context) (uint64, error) {
	return 1, nil
}

type fakeKeplr struct {
	priv      *secp256k1.PrivKey
	prefix    string
	enableErr error
	// tamper flips the signature so it no longer verifies.
	tamper bool
	signed [][]byte
}

func newFakeKeplr(prefix string) *fakeKeplr {
	return &fakeKeplr{priv: secp256k1.GenPrivKey(), prefix: prefix}
}

func (f *fakeKeplr) bech32() string {
	addr, err := bech32.ConvertAndEncode(f.prefix, f.priv.PubKey().Address().Bytes())
	if err != nil {
		panic(err)
	}
	return addr
}

func (f *fakeKeplr) Enable(context.Context, string) error {
	return f.enableErr
}

func (f *fakeKeplr) GetKey(context.Context, string) (provider.Key, error) {
	return provider.Key{
		Name:          "test",
		Algo:          "secp256k1",
		PubKey:        f.priv.PubKey().Bytes(),
		Address:       f.priv.PubKey().Address().Bytes(),
		Bech32Address: f.bech32(),
	}, nil
}

func (f *fakeKeplr) SignArbitrary(_ context.Context, _, signer string, data []byte) (provider.StdSignature, error) {
	f.signed = append(f.signed, data)
	doc, err := provider.ArbitrarySignDoc(signer, data)
	if err != nil {
		return provider.StdSignature{}, err
	}
	sig, err := f.priv.Sign(doc)
	if err != nil {
		return provider.StdSignature{}, err
	}
	if f.tamper {
		sig[0] ^= 0xff
	}

	var out provider.StdSignature
	out.PubKey.Type = "tendermint/PubKeySecp256k1"
	out.PubKey.Value = base64.StdEncoding.EncodeToString(f.priv.PubKey().Bytes())
	out.Signature = base64.StdEncoding.EncodeToString(sig)
	return out, nil
}

type fakePhantom struct {
	priv       solana.PrivateKey
	connectErr error
}

func newFakePhantom() *fakePhantom {
	priv, err := solana.NewRandomPrivateKey()
	if err != nil {
		panic(err)
	}
	return &fakePhantom{priv: priv}
}

func (f *fakePhantom) Connect(context.Context) (solana.PublicKey, error) {
	if f.connectErr != nil {
		return solana.PublicKey{}, f.connectErr
	}
	return f.priv.PublicKey(), nil
}

func (f *fakePhantom) SignMessage(_ context.Context, message []byte) (solana.Signature, error) {
	return f.priv.Sign(message)
}
