// Package connector adapts heterogeneous wallet providers to one connect / address / sign contract.
// Connectors write results into the session store only after the provider call they depend on
// has returned.
package connector

import (
	"context"

	"github.com/AlexZinkM/wallet-connect/internal/model"
	"github.com/AlexZinkM/wallet-connect/internal/session"
)

// Connector is the contract shared by every provider adapter.
type Connector interface {
	// Connect performs the provider handshake. Calling it again while connected is harmless.
	Connect(ctx context.Context) error
	// Address is the connected address, "" before Connect.
	Address() string
	// SignArbitrary proves address ownership. It returns nil, nil when the provider can't sign
	// arbitrary data.
	SignArbitrary(ctx context.Context) (*model.SignResult, error)
}

// Family groups connector types by the adapter that serves them.
type Family int

const (
	FamilyNone Family = iota
	FamilyWagmi
	FamilyPhantom
	FamilyKeplr
)

// FamilyOf maps a connector type to exactly one adapter family.
// DOWNLOAD_WALLET maps to FamilyNone; unknown types return ErrUnknownConnector.
func FamilyOf(t model.ConnectorType) (Family, error) {
	switch t {
	case model.ConnectorInjected, model.ConnectorCoinbase, model.ConnectorWalletConnect:
		return FamilyWagmi, nil
	case model.ConnectorPhantomSolana:
		return FamilyPhantom, nil
	case model.ConnectorCosmos:
		return FamilyKeplr, nil
	case model.ConnectorDownload:
		return FamilyNone, nil
	default:
		return FamilyNone, ErrUnknownConnector
	}
}

func (f Family) String() string {
	switch f {
	case FamilyWagmi:
		return "wagmi"
	case FamilyPhantom:
		return "phantom"
	case FamilyKeplr:
		return "keplr"
	default:
		return "none"
	}
}

// then returns with followed by muts in a new slice.
func then(with []session.Mutation, muts ...session.Mutation) []session.Mutation {
	out := make([]session.Mutation, 0, len(with)+len(muts))
	out = append(out, with...)
	return append(out, muts...)
}
