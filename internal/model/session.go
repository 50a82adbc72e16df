package model

// Chain identifies the network family of a source account.
type Chain string

const (
	ChainEVM    Chain = "EVM"
	ChainCosmos Chain = "COSMOS"
	ChainSolana Chain = "SOLANA"
)

// ConnectorType selects the provider adapter that handles a wallet.
type ConnectorType string

const (
	ConnectorInjected      ConnectorType = "INJECTED"
	ConnectorCoinbase      ConnectorType = "COINBASE"
	ConnectorWalletConnect ConnectorType = "WALLET_CONNECT"
	ConnectorCosmos        ConnectorType = "COSMOS"
	ConnectorPhantomSolana ConnectorType = "PHANTOM_SOLANA"
	ConnectorDownload      ConnectorType = "DOWNLOAD_WALLET"
)

// SignatureType tells the backend how to verify a credential.
type SignatureType string

const (
	SignatureTypeCosmos SignatureType = "COSMOS"
	SignatureTypeEVM    SignatureType = "EVM"
	SignatureTypeSolana SignatureType = "SOLANA"
)

// WalletDetail describes the provider that produced the current source account.
type WalletDetail struct {
	ConnectorType ConnectorType `json:"connectorType"`
	Name          string        `json:"name"`
	Icon          string        `json:"icon"`
	RDNS          string        `json:"rdns"`
	DownloadLink  string        `json:"downloadLink,omitempty"`
}

// SourceAccount is the externally connected wallet as reported by its provider.
type SourceAccount struct {
	Address            *string       `json:"address"`
	Chain              *Chain        `json:"chain"`
	WalletDetail       *WalletDetail `json:"walletDetail"`
	EncryptedSignature *string       `json:"encryptedSignature"`
}

// LocalWallet is the working identity derived from the source account.
type LocalWallet struct {
	Address          *string `json:"address"`
	SubaccountNumber *int    `json:"subaccountNumber"`
}

// Credential is the proof produced by the arbitrary-message signing step.
type Credential struct {
	SignDoc       *string        `json:"signDoc"`
	Signature     *string        `json:"signature"`
	PublicKey     *string        `json:"publicKey"`
	Address       *string        `json:"address"`
	SignatureType *SignatureType `json:"signatureType"`
}

// WalletSession is the persisted wallet state of one profile.
type WalletSession struct {
	SourceAccount    SourceAccount `json:"sourceAccount"`
	LocalWallet      LocalWallet   `json:"localWallet"`
	Credential       Credential    `json:"credential"`
	LocalWalletNonce *int          `json:"localWalletNonce"`
}

// DefaultWalletSession returns the empty session. Note the initial subaccount is 0, not null.
func DefaultWalletSession() WalletSession {
	return WalletSession{
		LocalWallet: LocalWallet{SubaccountNumber: Ptr(0)},
	}
}

// Clone returns a deep copy so callers can't mutate shared state through pointers.
func (s WalletSession) Clone() WalletSession {
	out := WalletSession{
		SourceAccount: SourceAccount{
			Address:            clonePtr(s.SourceAccount.Address),
			Chain:              clonePtr(s.SourceAccount.Chain),
			WalletDetail:       clonePtr(s.SourceAccount.WalletDetail),
			EncryptedSignature: clonePtr(s.SourceAccount.EncryptedSignature),
		},
		LocalWallet: LocalWallet{
			Address:          clonePtr(s.LocalWallet.Address),
			SubaccountNumber: clonePtr(s.LocalWallet.SubaccountNumber),
		},
		Credential: Credential{
			SignDoc:       clonePtr(s.Credential.SignDoc),
			Signature:     clonePtr(s.Credential.Signature),
			PublicKey:     clonePtr(s.Credential.PublicKey),
			Address:       clonePtr(s.Credential.Address),
			SignatureType: clonePtr(s.Credential.SignatureType),
		},
		LocalWalletNonce: clonePtr(s.LocalWalletNonce),
	}
	return out
}

// ConnectorType returns the persisted connector type, or "" when no wallet was ever connected.
func (s WalletSession) ConnectorType() ConnectorType {
	if s.SourceAccount.WalletDetail == nil {
		return ""
	}
	return s.SourceAccount.WalletDetail.ConnectorType
}

// SignatureInput is the credential shape consumed by backend mutations.
type SignatureInput struct {
	SignDoc       string        `json:"signDoc"`
	Signature     string        `json:"signature"`
	PublicKey     string        `json:"publicKey"`
	Address       string        `json:"address"`
	SignatureType SignatureType `json:"signatureType"`
}

// SignatureInput builds the hand-off payload. ok is false unless a complete COSMOS credential exists.
func (s WalletSession) SignatureInput() (in SignatureInput, ok bool) {
	c := s.Credential
	if s.SourceAccount.Chain == nil || *s.SourceAccount.Chain != ChainCosmos {
		return SignatureInput{}, false
	}
	if c.SignDoc == nil || c.Signature == nil || c.PublicKey == nil || c.Address == nil || c.SignatureType == nil {
		return SignatureInput{}, false
	}
	return SignatureInput{
		SignDoc:       *c.SignDoc,
		Signature:     *c.Signature,
		PublicKey:     *c.PublicKey,
		Address:       *c.Address,
		SignatureType: *c.SignatureType,
	}, true
}

// SignResult is returned by adapters that support arbitrary signing.
type SignResult struct {
	SignDoc       string        `json:"signDoc"`
	Signature     string        `json:"signature"`
	PublicKey     string        `json:"publicKey"`
	Address       string        `json:"address"`
	SignatureType SignatureType `json:"signatureType"`
	Valid         bool          `json:"valid"`
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the pointed value or the zero value for nil.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
