// Package orchestrator drives wallet selection, startup reconnection and local wallet derivation
// over the connectors and the session store.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/AlexZinkM/wallet-connect/internal/connector"
	"github.com/AlexZinkM/wallet-connect/internal/model"
	"github.com/AlexZinkM/wallet-connect/internal/provider"
	"github.com/AlexZinkM/wallet-connect/internal/session"

	"go.uber.org/zap"
)

// State of the selection flow.
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateAwaitingDerivation
	StateDone
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateAwaitingDerivation:
		return "AWAITING_DERIVATION"
	case StateDone:
		return "DONE"
	default:
		return "IDLE"
	}
}

// EventKind labels events sent on the Events channel.
type EventKind string

const (
	// EventNextStep asks the surrounding UI to drive the derivation step.
	EventNextStep EventKind = "NEXT_STEP"
	// EventDismiss closes the wallet dialog.
	EventDismiss EventKind = "DISMISS"
)

// eventBuffer is how many unread events Events keeps.
const eventBuffer = 16

// Event is one notification for the wallet dialog.
type Event struct {
	Kind   EventKind
	Detail model.WalletDetail
}

// Outcome is the result of one selection or derivation attempt.
type Outcome struct {
	State State
	// Error is the user facing message of a failed attempt.
	Error        string
	DownloadLink string
}

// LinkOpener opens a wallet download link, e.g. in a browser tab.
type LinkOpener interface {
	OpenLink(ctx context.Context, url string) error
}

// LinkOpenerFunc adapts a function to LinkOpener.
type LinkOpenerFunc func(ctx context.Context, url string) error

// OpenLink calls f.
func (f LinkOpenerFunc) OpenLink(ctx context.Context, url string) error {
	return f(ctx, url)
}

// Options configures the orchestrator.
type Options struct {
	// ConnectTimeout bounds each wallet interaction. Zero waits as long as the wallet does.
	ConnectTimeout time.Duration
	// Bech32Prefix is used for the local wallet derived from an EVM signature.
	Bech32Prefix string
	// Password returns the secret encryptedSignature is sealed with. Nil skips sealing.
	Password func() ([]byte, error)
}

// Connectors bundles the adapters the orchestrator dispatches to.
type Connectors struct {
	Wagmi   *connector.WagmiConnector
	Phantom *connector.PhantomConnector
	Keplr   *connector.KeplrConnector
}

const genericErrorMessage = "Something went wrong. Please try again."

// Orchestrator runs the connect flow over one session store.
type Orchestrator struct {
	store    *session.Store
	registry *provider.Registry
	conn     Connectors
	links    LinkOpener
	opts     Options
	log      *zap.Logger

	mu         sync.RWMutex
	state      State
	lastError  string
	onboarding model.OnboardingStatus

	events chan Event
}

// New creates an orchestrator in the Idle state.
func New(store *session.Store, registry *provider.Registry, conn Connectors, links LinkOpener, opts Options, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	if links == nil {
		links = LinkOpenerFunc(func(context.Context, string) error { return nil })
	}
	return &Orchestrator{
		store:      store,
		registry:   registry,
		conn:       conn,
		links:      links,
		opts:       opts,
		log:        log.Named("orchestrator"),
		onboarding: model.OnboardingDisconnected,
		events:     make(chan Event, eventBuffer),
	}
}

// Events delivers NextStep / Dismiss notifications. It holds the latest eventBuffer events;
// when nobody reads them the oldest is dropped to make room.
func (o *Orchestrator) Events() <-chan Event {
	return o.events
}

// State is the current step of the connect flow.
func (o *Orchestrator) State() State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Error returns the message of the last failed attempt, "" when it succeeded.
func (o *Orchestrator) Error() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.lastError
}

// OnboardingStatus reports how far onboarding got in this process.
func (o *Orchestrator) OnboardingStatus() model.OnboardingStatus {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.onboarding
}

// Session returns a copy of the current wallet session.
func (o *Orchestrator) Session() model.WalletSession {
	return o.store.State()
}

func (o *Orchestrator) setState(s State, errMsg string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = s
	o.lastError = errMsg
}

func (o *Orchestrator) setOnboarding(s model.OnboardingStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onboarding = s
}

func (o *Orchestrator) emit(e Event) {
	for {
		select {
		case o.events <- e:
			return
		default:
		}
		select {
		case old := <-o.events:
			o.log.Debug("dropping oldest event, no reader", zap.String("kind", string(old.Kind)))
		default:
		}
	}
}

func (o *Orchestrator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.opts.ConnectTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.opts.ConnectTimeout)
}

func (o *Orchestrator) save() {
	if err := o.store.Save(); err != nil {
		o.log.Error("failed to save session", zap.Error(err))
	}
}

// resetConnectors drops in-memory provider state on disconnect.
func (o *Orchestrator) resetConnectors() {
	o.resetConnectorsExcept(connector.FamilyNone)
}

// resetConnectorsExcept drops the provider state of every family but keep, after a wallet switch.
func (o *Orchestrator) resetConnectorsExcept(keep connector.Family) {
	if o.conn.Wagmi != nil && keep != connector.FamilyWagmi {
		o.conn.Wagmi.Reset()
	}
	if o.conn.Phantom != nil && keep != connector.FamilyPhantom {
		o.conn.Phantom.Reset()
	}
	if o.conn.Keplr != nil && keep != connector.FamilyKeplr {
		o.conn.Keplr.Reset()
	}
}
