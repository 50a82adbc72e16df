package connector

import (
	"context"
	"sync"

	"github.com/AlexZinkM/wallet-connect/internal/model"
	"github.com/AlexZinkM/wallet-connect/internal/provider"
	"github.com/AlexZinkM/wallet-connect/internal/session"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// PhantomSignMessage is signed to prove ownership of a Solana account.
const PhantomSignMessage = "Sign in to confirm ownership of this Solana account."

// PhantomConnector connects the Phantom Solana wallet.
type PhantomConnector struct {
	store   *session.Store
	phantom provider.PhantomProvider
	log     *zap.Logger

	mu     sync.RWMutex
	pubKey *solana.PublicKey
}

// NewPhantomConnector creates the connector. A nil phantom means the extension is not installed.
func NewPhantomConnector(store *session.Store, phantom provider.PhantomProvider, log *zap.Logger) *PhantomConnector {
	if log == nil {
		log = zap.NewNop()
	}
	return &PhantomConnector{store: store, phantom: phantom, log: log.Named("phantom")}
}

// HasPhantomWallet reports whether the provider is available.
func (p *PhantomConnector) HasPhantomWallet() bool {
	return p.phantom != nil
}

// ConnectPhantom connects and records the Solana source account. It's also the reconnect path.
// with is applied in the same transition, ahead of that write.
func (p *PhantomConnector) ConnectPhantom(ctx context.Context, with ...session.Mutation) error {
	if !p.HasPhantomWallet() {
		return newError(ErrProviderNotFound, msgPhantomNotFound, nil)
	}

	pub, err := p.phantom.Connect(ctx)
	if err != nil {
		return newError(ErrConnectFailed, msgPhantomFailed, err)
	}
	if pub.IsZero() {
		return newError(ErrConnectFailed, msgPhantomFailed, nil)
	}

	p.mu.Lock()
	p.pubKey = &pub
	p.mu.Unlock()

	p.store.Apply(then(with, session.ReplaceSourceAddress(pub.String(), model.ChainSolana))...)
	p.log.Info("phantom wallet connected", zap.String("address", pub.String()))
	return nil
}

// Connect is ConnectPhantom.
func (p *PhantomConnector) Connect(ctx context.Context) error {
	return p.ConnectPhantom(ctx)
}

// Address is the base58 public key, "" before Connect.
func (p *PhantomConnector) Address() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.pubKey == nil {
		return ""
	}
	return p.pubKey.String()
}

// SignArbitrary signs PhantomSignMessage and checks the ed25519 signature against the connected key.
func (p *PhantomConnector) SignArbitrary(ctx context.Context) (*model.SignResult, error) {
	p.mu.RLock()
	pub := p.pubKey
	p.mu.RUnlock()
	if pub == nil {
		return nil, newError(ErrNotConnected, msgPhantomFailed, nil)
	}

	msg := []byte(PhantomSignMessage)
	sig, err := p.phantom.SignMessage(ctx, msg)
	if err != nil {
		return nil, newError(ErrConnectFailed, msgPhantomFailed, err)
	}

	return &model.SignResult{
		SignDoc:       string(msg),
		Signature:     sig.String(),
		PublicKey:     pub.String(),
		Address:       pub.String(),
		SignatureType: model.SignatureTypeSolana,
		Valid:         sig.Verify(*pub, msg),
	}, nil
}

// Reset forgets the connected key.
func (p *PhantomConnector) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pubKey = nil
}

var _ Connector = (*PhantomConnector)(nil)
