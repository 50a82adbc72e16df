package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlexZinkM/wallet-connect/internal/crypto"
	"github.com/AlexZinkM/wallet-connect/internal/model"
	"github.com/AlexZinkM/wallet-connect/internal/session"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

var (
	errNothingToDerive = errors.New("No wallet is waiting for account creation.")
	errSignerMismatch  = errors.New("Signature does not match the connected wallet.")
)

// DerivationMessage is the text EVM wallets sign to create the local wallet.
func DerivationMessage(nonce int) string {
	return fmt.Sprintf("Sign this message to create your trading account.\n\nThis request will not trigger a blockchain transaction or cost any gas fees.\n\nNonce: %d", nonce)
}

// Derive completes onboarding after Select returned AwaitingDerivation.
// EVM wallets sign DerivationMessage and the local wallet is derived from that signature.
// Solana wallets skip derivation and have no local wallet, but onboarding still ends at ACCOUNT_CONNECTED.
func (o *Orchestrator) Derive(ctx context.Context) (out Outcome) {
	if o.State() != StateAwaitingDerivation {
		return Outcome{State: o.State(), Error: errNothingToDerive.Error()}
	}

	st := o.store.State()
	chain := model.Deref(st.SourceAccount.Chain)
	log := o.log.With(zap.String("chain", string(chain)))

	defer func() {
		if r := recover(); r != nil {
			log.Error("derivation panicked", zap.Any("panic", r))
			out = o.failDerive(log, panicError(r))
		}
	}()

	switch chain {
	case model.ChainSolana:
		log.Info("solana wallet, skipping derivation")
	case model.ChainEVM:
		ctx, cancel := o.withTimeout(ctx)
		defer cancel()
		if err := o.deriveEVM(ctx, model.Deref(st.SourceAccount.Address), model.Deref(st.LocalWalletNonce)); err != nil {
			return o.failDerive(log, err)
		}
	default:
		return o.failDerive(log, errNothingToDerive)
	}

	o.setOnboarding(model.OnboardingAccountConnected)
	o.save()

	o.setState(StateDone, "")
	if st.SourceAccount.WalletDetail != nil {
		o.emit(Event{Kind: EventDismiss, Detail: *st.SourceAccount.WalletDetail})
	}
	return Outcome{State: StateDone}
}

// failDerive keeps the flow in AwaitingDerivation so the user can retry signing.
func (o *Orchestrator) failDerive(log *zap.Logger, err error) Outcome {
	msg := UserMessage(err)
	log.Warn("derivation failed", zap.Error(err))
	o.setState(StateAwaitingDerivation, msg)
	return Outcome{State: StateAwaitingDerivation, Error: msg}
}

func (o *Orchestrator) deriveEVM(ctx context.Context, address string, nonce int) error {
	msg := []byte(DerivationMessage(nonce))
	sig, err := o.conn.Wagmi.SignPersonal(ctx, msg)
	if err != nil {
		return err
	}

	signer, err := recoverSigner(msg, sig)
	if err != nil {
		return err
	}
	if signer != common.HexToAddress(address) {
		return errSignerMismatch
	}

	local, err := localAddress(sig, o.opts.Bech32Prefix)
	if err != nil {
		return err
	}

	muts := []session.Mutation{
		session.SetLocalWallet(model.LocalWallet{Address: model.Ptr(local), SubaccountNumber: model.Ptr(0)}),
		session.SetLocalWalletNonce(nonce),
	}
	if o.opts.Password != nil {
		password, err := o.opts.Password()
		if err != nil {
			return fmt.Errorf("failed to get session password: %w", err)
		}
		defer clear(password)

		sealed, err := crypto.Seal(sig, password)
		if err != nil {
			return fmt.Errorf("failed to encrypt signature: %w", err)
		}
		muts = append(muts, session.SetEncryptedSignature(sealed))
	}
	o.store.Apply(muts...)

	o.log.Info("local wallet derived", zap.String("address", address), zap.String("localWallet", local), zap.Int("nonce", nonce))
	return nil
}

// recoverSigner returns the address that produced an EIP-191 signature over msg.
func recoverSigner(msg, sig []byte) (common.Address, error) {
	if len(sig) != ethcrypto.SignatureLength {
		return common.Address{}, fmt.Errorf("invalid signature length %d", len(sig))
	}
	s := make([]byte, len(sig))
	copy(s, sig)
	if s[ethcrypto.RecoveryIDOffset] >= 27 {
		s[ethcrypto.RecoveryIDOffset] -= 27
	}

	pub, err := ethcrypto.SigToPub(accounts.TextHash(msg), s)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover signer: %w", err)
	}
	return ethcrypto.PubkeyToAddress(*pub), nil
}

// localAddress derives the local wallet key from the wallet signature and encodes its address.
func localAddress(sig []byte, prefix string) (string, error) {
	priv := secp256k1.GenPrivKeyFromSecret(sig)
	addr, err := bech32.ConvertAndEncode(prefix, priv.PubKey().Address().Bytes())
	if err != nil {
		return "", fmt.Errorf("failed to encode local wallet address: %w", err)
	}
	return addr, nil
}
