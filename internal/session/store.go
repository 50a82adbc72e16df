// Package session holds the wallet session: the single source of truth for the connected source
// account, the derived local wallet and the signing credential.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/wallet-connect/internal/model"
	"github.com/AlexZinkM/wallet-connect/internal/storage"

	"go.uber.org/zap"
)

// Mutation is one atomic state transition over the session.
type Mutation func(s *model.WalletSession)

// Store is safe for concurrent use. Every Apply runs under one lock and notifies subscribers once.
type Store struct {
	mu    sync.RWMutex
	state model.WalletSession

	kv  storage.KV
	key string
	log *zap.Logger

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(model.WalletSession)
}

// NewStore creates a store with the default session. Call Load to rehydrate persisted state.
func NewStore(kv storage.KV, key string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		state: model.DefaultWalletSession(),
		kv:    kv,
		key:   key,
		log:   log,
		subs:  make(map[int]func(model.WalletSession)),
	}
}

// Load replaces the in-memory state with the persisted one.
// Persisted sub-objects are decoded over the defaults, so keys missing from older data keep their default.
// A malformed blob or a corrupt storage file is logged and ignored; the store then holds defaults
// and the next Save overwrites it.
func (s *Store) Load() error {
	raw, err := s.kv.Get(s.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.replace(model.DefaultWalletSession())
		return nil
	case errors.Is(err, storage.ErrCorrupt):
		s.log.Warn("discarding corrupt session storage", zap.String("key", s.key), zap.Error(err))
		s.replace(model.DefaultWalletSession())
		return nil
	case err != nil:
		return fmt.Errorf("failed to read session: %w", err)
	}

	loaded, err := decode(raw)
	if err != nil {
		s.log.Warn("discarding malformed persisted session", zap.String("key", s.key), zap.Error(err))
		loaded = model.DefaultWalletSession()
	}
	s.replace(loaded)
	return nil
}

func decode(raw []byte) (model.WalletSession, error) {
	var persisted struct {
		SourceAccount    json.RawMessage `json:"sourceAccount"`
		LocalWallet      json.RawMessage `json:"localWallet"`
		Credential       json.RawMessage `json:"credential"`
		LocalWalletNonce *int            `json:"localWalletNonce"`
	}
	if err := json.Unmarshal(raw, &persisted); err != nil {
		return model.WalletSession{}, err
	}

	out := model.DefaultWalletSession()
	parts := []struct {
		raw json.RawMessage
		dst any
	}{
		{persisted.SourceAccount, &out.SourceAccount},
		{persisted.LocalWallet, &out.LocalWallet},
		{persisted.Credential, &out.Credential},
	}
	for _, p := range parts {
		// absent or null sub-object: keep defaults
		if len(p.raw) == 0 || string(p.raw) == "null" {
			continue
		}
		if err := json.Unmarshal(p.raw, p.dst); err != nil {
			return model.WalletSession{}, err
		}
	}
	out.LocalWalletNonce = persisted.LocalWalletNonce
	return out, nil
}

// Save persists the current state under the store key.
func (s *Store) Save() error {
	s.mu.RLock()
	data, err := json.Marshal(s.state)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.kv.Set(s.key, data); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// State returns a deep copy of the current session.
func (s *Store) State() model.WalletSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subscribe registers fn to receive a snapshot after every change. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(model.WalletSession)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Apply runs muts in order as one transition. Readers never observe an intermediate state.
func (s *Store) Apply(muts ...Mutation) {
	if len(muts) == 0 {
		return
	}
	s.mu.Lock()
	for _, m := range muts {
		m(&s.state)
	}
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
}

func (s *Store) replace(state model.WalletSession) {
	s.Apply(func(cur *model.WalletSession) { *cur = state })
}

func (s *Store) notify(snapshot model.WalletSession) {
	s.subMu.Lock()
	fns := make([]func(model.WalletSession), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot.Clone())
	}
}

// SetSourceAddress applies SetSourceAddress.
func (s *Store) SetSourceAddress(address string, chain model.Chain) {
	s.Apply(SetSourceAddress(address, chain))
}

// SetWalletDetail records the provider behind the source account.
func (s *Store) SetWalletDetail(detail model.WalletDetail) {
	s.Apply(SetWalletDetail(detail))
}

// SetLocalWallet replaces the local wallet.
func (s *Store) SetLocalWallet(w model.LocalWallet) {
	s.Apply(SetLocalWallet(w))
}

// SetCredential merges the non-nil fields of c into the credential.
func (s *Store) SetCredential(c model.Credential) {
	s.Apply(SetCredential(c))
}

// SetLocalWalletNonce stores the nonce used for the next signature.
func (s *Store) SetLocalWalletNonce(nonce int) {
	s.Apply(SetLocalWalletNonce(nonce))
}

// SetEncryptedSignature stores the sealed derivation signature.
func (s *Store) SetEncryptedSignature(sig string) {
	s.Apply(SetEncryptedSignature(sig))
}

// ClearLocalWallet resets the local wallet to null fields.
func (s *Store) ClearLocalWallet() {
	s.Apply(ClearLocalWallet())
}

// ClearSourceAccount forgets the source account and its wallet detail.
func (s *Store) ClearSourceAccount() {
	s.Apply(ClearSourceAccount())
}
