package session

import "github.com/AlexZinkM/wallet-connect/internal/model"

// SetSourceAddress writes address and chain. A different address drops the encrypted signature
// in the same transition.
func SetSourceAddress(address string, chain model.Chain) Mutation {
	return func(s *model.WalletSession) {
		if s.SourceAccount.Address == nil || *s.SourceAccount.Address != address {
			s.SourceAccount.EncryptedSignature = nil
		}
		s.SourceAccount.Address = model.Ptr(address)
		s.SourceAccount.Chain = model.Ptr(chain)
	}
}

// ReplaceSourceAddress is SetSourceAddress for an account reported by the wallet itself.
// A different address also clears the local wallet, which was derived from the old one.
func ReplaceSourceAddress(address string, chain model.Chain) Mutation {
	return func(s *model.WalletSession) {
		if s.SourceAccount.Address != nil && *s.SourceAccount.Address != address {
			s.LocalWallet = model.LocalWallet{}
		}
		SetSourceAddress(address, chain)(s)
	}
}

// SetWalletDetail records the provider behind the source account.
func SetWalletDetail(detail model.WalletDetail) Mutation {
	return func(s *model.WalletSession) {
		s.SourceAccount.WalletDetail = model.Ptr(detail)
	}
}

// SetLocalWallet replaces the local wallet. Nil fields become null; nothing is merged.
func SetLocalWallet(w model.LocalWallet) Mutation {
	return func(s *model.WalletSession) {
		s.LocalWallet = model.LocalWallet{
			Address:          copyPtr(w.Address),
			SubaccountNumber: copyPtr(w.SubaccountNumber),
		}
	}
}

// SetCredential overwrites only the non-nil fields of c.
func SetCredential(c model.Credential) Mutation {
	return func(s *model.WalletSession) {
		if c.SignDoc != nil {
			s.Credential.SignDoc = copyPtr(c.SignDoc)
		}
		if c.Signature != nil {
			s.Credential.Signature = copyPtr(c.Signature)
		}
		if c.PublicKey != nil {
			s.Credential.PublicKey = copyPtr(c.PublicKey)
		}
		if c.Address != nil {
			s.Credential.Address = copyPtr(c.Address)
		}
		if c.SignatureType != nil {
			s.Credential.SignatureType = copyPtr(c.SignatureType)
		}
	}
}

// SetLocalWalletNonce stores the nonce used for the next signature.
func SetLocalWalletNonce(nonce int) Mutation {
	return func(s *model.WalletSession) {
		s.LocalWalletNonce = model.Ptr(nonce)
	}
}

// SetEncryptedSignature stores the sealed derivation signature.
func SetEncryptedSignature(sig string) Mutation {
	return func(s *model.WalletSession) {
		s.SourceAccount.EncryptedSignature = model.Ptr(sig)
	}
}

// ClearLocalWallet resets the local wallet. Unlike the initial default, subaccountNumber becomes null.
func ClearLocalWallet() Mutation {
	return func(s *model.WalletSession) {
		s.LocalWallet = model.LocalWallet{}
	}
}

// ClearSourceAccount forgets the source account, wallet detail included.
func ClearSourceAccount() Mutation {
	return func(s *model.WalletSession) {
		s.SourceAccount = model.SourceAccount{}
	}
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
