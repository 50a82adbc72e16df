package connector

import (
	errorsmod "cosmossdk.io/errors"
)

const codespace = "connector"

// Error kinds. Match with errors.Is.
var (
	ErrProviderNotFound   = errorsmod.Register(codespace, 2, "wallet provider not found")
	ErrConnectFailed      = errorsmod.Register(codespace, 3, "wallet connection failed")
	ErrVerificationFailed = errorsmod.Register(codespace, 4, "wallet signature verification failed")
	ErrUnknownConnector   = errorsmod.Register(codespace, 5, "Unknown Connector.")
	ErrNotConnected       = errorsmod.Register(codespace, 6, "wallet is not connected")
)

// User facing messages
const (
	msgKeplrNotFound      = "Keplr wallet not found."
	msgKeplrConnectFailed = "Failed to connect to Keplr wallet."
	msgVerificationFailed = "Unable to verify wallet eligibility. Please try again."
	msgPhantomNotFound    = "Phantom wallet not found."
	msgPhantomFailed      = "Failed to connect to Phantom wallet."
	msgEVMNotFound        = "Wallet provider not found."
	msgNoAccounts         = "No accounts returned by the wallet."
)

// Error carries a message meant for the user; Kind and the underlying cause stay reachable
// through errors.Is / errors.As.
type Error struct {
	Kind    *errorsmod.Error
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind *errorsmod.Error, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}
