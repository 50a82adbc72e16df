package connector

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/AlexZinkM/wallet-connect/internal/model"
	"github.com/AlexZinkM/wallet-connect/internal/provider"
	"github.com/AlexZinkM/wallet-connect/internal/session"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	"go.uber.org/zap"
)

// CosmosOptions configures Cosmos connectors.
type CosmosOptions struct {
	ChainID      string
	Bech32Prefix string
	// EnforceVerification aborts the connection when the returned signature doesn't verify.
	// Off by default: the outcome is only logged.
	EnforceVerification bool
}

// cosmosBase holds what every Cosmos wallet connector shares: building the ownership document,
// checking the signature and recording the result.
type cosmosBase struct {
	opts  CosmosOptions
	store *session.Store
	log   *zap.Logger
}

// envelope is the payload the wallet signs: an unsigned, non-broadcastable transaction with zero
// account number, sequence and fee whose memo carries the nonce.
func (b *cosmosBase) envelope(address string, nonce int) ([]byte, error) {
	return provider.EncodeSignDoc(provider.StdSignDoc{
		AccountNumber: "0",
		ChainID:       b.opts.ChainID,
		Fee:           provider.StdFee{Amount: []provider.StdCoin{}, Gas: "0"},
		Memo:          fmt.Sprintf("%s:%d", address, nonce),
		Msgs:          []json.RawMessage{},
		Sequence:      "0",
	})
}

// verify checks sig over the ADR-036 document for data and that pubKey owns signer.
func (b *cosmosBase) verify(signer string, data, pubKey, sig []byte) (bool, error) {
	if len(pubKey) != secp256k1.PubKeySize {
		return false, fmt.Errorf("invalid public key length %d", len(pubKey))
	}
	pk := &secp256k1.PubKey{Key: pubKey}

	_, signerBytes, err := bech32.DecodeAndConvert(signer)
	if err != nil {
		return false, fmt.Errorf("invalid signer address: %w", err)
	}
	if !bytes.Equal(signerBytes, pk.Address().Bytes()) {
		return false, nil
	}

	doc, err := provider.ArbitrarySignDoc(signer, data)
	if err != nil {
		return false, err
	}
	return pk.VerifySignature(doc, sig), nil
}

// deriveAddress is the local wallet address for pubKey under the configured prefix.
func (b *cosmosBase) deriveAddress(pubKey []byte) (string, error) {
	pk := &secp256k1.PubKey{Key: pubKey}
	addr, err := bech32.ConvertAndEncode(b.opts.Bech32Prefix, pk.Address().Bytes())
	if err != nil {
		return "", fmt.Errorf("failed to encode address: %w", err)
	}
	return addr, nil
}

func (b *cosmosBase) nonce() int {
	return model.Deref(b.store.State().LocalWalletNonce)
}

// record writes the connection result as one transition, after with.
func (b *cosmosBase) record(source, local string, res *model.SignResult, nonce int, with []session.Mutation) {
	b.store.Apply(then(with,
		session.SetSourceAddress(source, model.ChainCosmos),
		session.SetLocalWallet(model.LocalWallet{Address: model.Ptr(local), SubaccountNumber: model.Ptr(0)}),
		session.SetCredential(model.Credential{
			SignDoc:       model.Ptr(res.SignDoc),
			Signature:     model.Ptr(res.Signature),
			PublicKey:     model.Ptr(res.PublicKey),
			Address:       model.Ptr(res.Address),
			SignatureType: model.Ptr(res.SignatureType),
		}),
		session.SetLocalWalletNonce(nonce),
	)...)
}
