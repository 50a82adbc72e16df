package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlexZinkM/wallet-connect/internal/connector"
	"github.com/AlexZinkM/wallet-connect/internal/model"
	"github.com/AlexZinkM/wallet-connect/internal/session"

	"go.uber.org/zap"
)

// Select runs one connection attempt for the picked wallet.
//
// DOWNLOAD_WALLET tiles only open their link. Any other tile goes through Connecting and ends in
// AwaitingDerivation (EVM, Solana), Done (Cosmos) or back in Idle with Outcome.Error set.
// Concurrent calls are not serialised; each store write is atomic on its own.
func (o *Orchestrator) Select(ctx context.Context, detail model.WalletDetail) (out Outcome) {
	if detail.ConnectorType == model.ConnectorDownload {
		if err := o.links.OpenLink(ctx, detail.DownloadLink); err != nil {
			o.log.Warn("failed to open download link", zap.String("link", detail.DownloadLink), zap.Error(err))
		}
		o.setState(StateIdle, "")
		return Outcome{State: StateIdle, DownloadLink: detail.DownloadLink}
	}

	log := o.log.With(zap.String("connector", string(detail.ConnectorType)), zap.String("rdns", detail.RDNS))

	family, err := connector.FamilyOf(detail.ConnectorType)
	if err != nil {
		return o.fail(log, err)
	}

	o.setState(StateConnecting, "")
	defer func() {
		if r := recover(); r != nil {
			log.Error("connector panicked", zap.Any("panic", r))
			out = o.fail(log, panicError(r))
		}
	}()

	// Written in the connector's own transition; a failed attempt writes nothing.
	switching := o.isSwitch(detail)
	var with []session.Mutation
	if switching {
		with = append(with, session.ClearSourceAccount(), session.ClearLocalWallet())
	}
	with = append(with, session.SetWalletDetail(detail))

	ctx, cancel := o.withTimeout(ctx)
	defer cancel()

	switch family {
	case connector.FamilyWagmi:
		err = o.conn.Wagmi.ConnectWallet(ctx, detail, with...)
	case connector.FamilyPhantom:
		err = o.conn.Phantom.ConnectPhantom(ctx, with...)
	case connector.FamilyKeplr:
		err = o.conn.Keplr.ConnectKeplr(ctx, with...)
	case connector.FamilyNone:
		err = connector.ErrUnknownConnector
	}
	if err != nil {
		return o.fail(log, err)
	}

	if switching {
		o.resetConnectorsExcept(family)
	}
	o.setOnboarding(model.OnboardingWalletConnected)
	o.save()

	if family == connector.FamilyKeplr {
		o.setState(StateDone, "")
		o.emit(Event{Kind: EventDismiss, Detail: detail})
		log.Info("wallet connected")
		return Outcome{State: StateDone}
	}

	o.setState(StateAwaitingDerivation, "")
	o.emit(Event{Kind: EventNextStep, Detail: detail})
	log.Info("wallet connected, awaiting derivation")
	return Outcome{State: StateAwaitingDerivation}
}

// isSwitch reports whether detail is a different wallet from the one in the session.
func (o *Orchestrator) isSwitch(detail model.WalletDetail) bool {
	prev := o.store.State().SourceAccount.WalletDetail
	if prev == nil || (prev.ConnectorType == detail.ConnectorType && prev.RDNS == detail.RDNS) {
		return false
	}
	o.log.Info("switching wallet",
		zap.String("from", string(prev.ConnectorType)),
		zap.String("to", string(detail.ConnectorType)))
	return true
}

func (o *Orchestrator) fail(log *zap.Logger, err error) Outcome {
	msg := UserMessage(err)
	log.Warn("wallet connection failed", zap.Error(err))
	o.setState(StateIdle, msg)
	return Outcome{State: StateIdle, Error: msg}
}

// UserMessage is the text shown for err: connector errors carry their own message, anything
// without one falls back to a generic message.
func UserMessage(err error) string {
	if err == nil {
		return genericErrorMessage
	}
	var cerr *connector.Error
	if errors.As(err, &cerr) && cerr.Message != "" {
		return cerr.Message
	}
	if err.Error() == "" {
		return genericErrorMessage
	}
	return err.Error()
}

type panicMessage string

func (p panicMessage) Error() string { return string(p) }

// panicError keeps the message of error and string panics. Other values have no message to show.
func panicError(r any) error {
	switch v := r.(type) {
	case error:
		return v
	case string:
		return panicMessage(v)
	default:
		return panicMessage("")
	}
}

// Reconnect restores the persisted wallet connection at startup without prompting.
// Sessions that never connected a wallet are left alone. COSMOS sessions have no reconnect path:
// the stored credential stays, the Keplr provider is not contacted.
func (o *Orchestrator) Reconnect(ctx context.Context) error {
	st := o.store.State()
	detail := st.SourceAccount.WalletDetail
	if detail == nil {
		return nil
	}
	log := o.log.With(zap.String("connector", string(detail.ConnectorType)))

	family, err := connector.FamilyOf(detail.ConnectorType)
	if err != nil {
		return fmt.Errorf("failed to reconnect: %w", err)
	}

	ctx, cancel := o.withTimeout(ctx)
	defer cancel()

	switch family {
	case connector.FamilyWagmi:
		err = o.conn.Wagmi.ReconnectToEvmNetwork(ctx, *detail)
	case connector.FamilyPhantom:
		err = o.conn.Phantom.ConnectPhantom(ctx)
	case connector.FamilyKeplr:
		log.Info("no reconnect handler for cosmos wallets, keeping stored session")
	case connector.FamilyNone:
		log.Debug("nothing to reconnect")
	}
	if err != nil {
		return fmt.Errorf("failed to reconnect %s wallet: %w", family, err)
	}

	// Set even when the provider call was a no-op.
	o.setOnboarding(model.OnboardingWalletConnected)

	// Resume where onboarding stopped.
	if o.store.State().LocalWallet.Address != nil {
		o.setState(StateDone, "")
	} else if family == connector.FamilyWagmi || family == connector.FamilyPhantom {
		o.setState(StateAwaitingDerivation, "")
	}
	log.Info("wallet reconnected")
	return nil
}

// Disconnect clears the source account and local wallet and persists the result.
func (o *Orchestrator) Disconnect() error {
	o.store.Apply(session.ClearSourceAccount(), session.ClearLocalWallet())
	o.resetConnectors()
	o.setOnboarding(model.OnboardingDisconnected)
	o.setState(StateIdle, "")

	if err := o.store.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	o.log.Info("wallet disconnected")
	return nil
}
