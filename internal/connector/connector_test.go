package connector

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/AlexZinkM/wallet-connect/internal/model"
	"github.com/AlexZinkM/wallet-connect/internal/provider"
	"github.com/AlexZinkM/wallet-connect/internal/session"
	"github.com/AlexZinkM/wallet-connect/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testChainID = "dydx-mainnet-1"
	testPrefix  = "dydx"
)

func newStore(t *testing.T) *session.Store {
	t.Helper()
	s := session.NewStore(storage.NewMemoryKV(), "wallet", nil)
	require.NoError(t, s.Load())
	return s
}

func countTransitions(s *session.Store) *int {
	n := 0
	s.Subscribe(func(model.WalletSession) { n++ })
	return &n
}

func TestFamilyOfIsExclusive(t *testing.T) {
	cases := map[model.ConnectorType]Family{
		model.ConnectorInjected:      FamilyWagmi,
		model.ConnectorCoinbase:      FamilyWagmi,
		model.ConnectorWalletConnect: FamilyWagmi,
		model.ConnectorPhantomSolana: FamilyPhantom,
		model.ConnectorCosmos:        FamilyKeplr,
		model.ConnectorDownload:      FamilyNone,
	}
	for ct, want := range cases {
		got, err := FamilyOf(ct)
		require.NoError(t, err, ct)
		assert.Equal(t, want, got, ct)
	}

	_, err := FamilyOf("LEDGER")
	require.ErrorIs(t, err, ErrUnknownConnector)
	assert.Equal(t, "Unknown Connector.", err.Error())
}

func TestErrorMatchesKindAndCause(t *testing.T) {
	err := newError(ErrConnectFailed, msgKeplrConnectFailed, errRejected)

	assert.Equal(t, "Failed to connect to Keplr wallet.", err.Error())
	assert.ErrorIs(t, err, ErrConnectFailed)
	assert.ErrorIs(t, err, errRejected)
	assert.NotErrorIs(t, err, ErrProviderNotFound)

	var target *Error
	require.True(t, errors.As(error(err), &target))
	assert.Equal(t, msgKeplrConnectFailed, target.Message)
}

func newWagmi(t *testing.T, evm *fakeEVM) (*WagmiConnector, *session.Store) {
	t.Helper()
	store := newStore(t)
	reg := provider.NewRegistry()
	reg.Announce(provider.InjectedProvider{
		Info:     provider.Info{Name: "MetaMask", RDNS: "io.metamask"},
		Provider: evm,
	})
	named := map[model.ConnectorType]provider.EVMProvider{model.ConnectorCoinbase: evm}
	return NewWagmiConnector(store, reg, named, nil), store
}

func TestWagmiConnectRecordsFirstAccount(t *testing.T) {
	evm := newFakeEVM()
	w, store := newWagmi(t, evm)
	n := countTransitions(store)

	detail := model.WalletDetail{ConnectorType: model.ConnectorInjected, Name: "MetaMask", RDNS: "io.metamask"}
	require.NoError(t, w.ConnectWallet(context.Background(), detail))

	st := store.State()
	require.NotNil(t, st.SourceAccount.Address)
	assert.Equal(t, evm.address(), *st.SourceAccount.Address)
	assert.Equal(t, model.ChainEVM, *st.SourceAccount.Chain)
	assert.Nil(t, st.SourceAccount.WalletDetail)
	assert.Equal(t, 1, *n)
	assert.Equal(t, evm.address(), w.Address())

	res, err := w.SignArbitrary(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestWagmiNamedConnector(t *testing.T) {
	evm := newFakeEVM()
	w, store := newWagmi(t, evm)

	assert.True(t, w.HasNamed(model.ConnectorCoinbase))
	assert.False(t, w.HasNamed(model.ConnectorWalletConnect))

	require.NoError(t, w.ConnectWallet(context.Background(), model.WalletDetail{ConnectorType: model.ConnectorCoinbase}))
	assert.Equal(t, evm.address(), *store.State().SourceAccount.Address)

	err := w.ConnectWallet(context.Background(), model.WalletDetail{ConnectorType: model.ConnectorWalletConnect})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestWagmiUnknownProvider(t *testing.T) {
	w, store := newWagmi(t, newFakeEVM())

	assert.False(t, w.HasInjected("com.example"))
	err := w.ConnectWallet(context.Background(), model.WalletDetail{ConnectorType: model.ConnectorInjected, RDNS: "com.example"})
	require.ErrorIs(t, err, ErrProviderNotFound)
	assert.Nil(t, store.State().SourceAccount.Address)
}

func TestWagmiRejectionLeavesStoreUntouched(t *testing.T) {
	evm := newFakeEVM()
	evm.rejectErr = errRejected
	w, store := newWagmi(t, evm)
	n := countTransitions(store)

	err := w.ConnectWallet(context.Background(), model.WalletDetail{ConnectorType: model.ConnectorInjected, RDNS: "io.metamask"})
	require.ErrorIs(t, err, ErrConnectFailed)
	assert.Equal(t, errRejected.Error(), err.Error())
	assert.Equal(t, 0, *n)
}

func TestWagmiReconnectWithoutAuthorisation(t *testing.T) {
	w, store := newWagmi(t, newFakeEVM())
	n := countTransitions(store)

	detail := model.WalletDetail{ConnectorType: model.ConnectorInjected, RDNS: "io.metamask"}
	require.NoError(t, w.ReconnectToEvmNetwork(context.Background(), detail))
	assert.Equal(t, 0, *n)
	assert.Empty(t, w.Address())
}

func TestWagmiReconnectRestoresAddress(t *testing.T) {
	evm := newFakeEVM()
	evm.authorised = true
	w, store := newWagmi(t, evm)

	detail := model.WalletDetail{ConnectorType: model.ConnectorInjected, RDNS: "io.metamask"}
	require.NoError(t, w.ReconnectToEvmNetwork(context.Background(), detail))
	assert.Equal(t, evm.address(), *store.State().SourceAccount.Address)

	sig, err := w.SignPersonal(context.Background(), []byte("hi"))
	require.NoError(t, err)
	assert.Len(t, sig, 65)
}

func TestWagmiReconnectToOtherAccountDropsLocalWallet(t *testing.T) {
	evm := newFakeEVM()
	evm.authorised = true
	w, store := newWagmi(t, evm)
	store.Apply(
		session.SetSourceAddress("0x00000000000000000000000000000000000000aa", model.ChainEVM),
		session.SetLocalWallet(model.LocalWallet{Address: model.Ptr("dydx1old"), SubaccountNumber: model.Ptr(0)}),
	)

	detail := model.WalletDetail{ConnectorType: model.ConnectorInjected, RDNS: "io.metamask"}
	require.NoError(t, w.ReconnectToEvmNetwork(context.Background(), detail))

	st := store.State()
	assert.Equal(t, evm.address(), model.Deref(st.SourceAccount.Address))
	assert.Nil(t, st.LocalWallet.Address)
}

func TestWagmiConnectAppliesExtraWritesTogether(t *testing.T) {
	evm := newFakeEVM()
	w, store := newWagmi(t, evm)
	store.Apply(session.SetLocalWallet(model.LocalWallet{Address: model.Ptr("dydx1old")}))
	n := countTransitions(store)

	detail := model.WalletDetail{ConnectorType: model.ConnectorInjected, Name: "MetaMask", RDNS: "io.metamask"}
	require.NoError(t, w.ConnectWallet(context.Background(), detail, session.ClearLocalWallet(), session.SetWalletDetail(detail)))

	st := store.State()
	assert.Equal(t, 1, *n)
	assert.Nil(t, st.LocalWallet.Address)
	assert.Equal(t, &detail, st.SourceAccount.WalletDetail)

	// a rejected prompt writes nothing, extra writes included
	evm.rejectErr = errRejected
	store.Apply(session.SetLocalWallet(model.LocalWallet{Address: model.Ptr("dydx1kept")}))
	require.Error(t, w.ConnectWallet(context.Background(), detail, session.ClearLocalWallet()))
	assert.Equal(t, "dydx1kept", model.Deref(store.State().LocalWallet.Address))
}

func TestWagmiSignPersonalRequiresConnection(t *testing.T) {
	w, _ := newWagmi(t, newFakeEVM())
	_, err := w.SignPersonal(context.Background(), []byte("hi"))
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestFirstAccountValidates(t *testing.T) {
	_, err := firstAccount(nil)
	assert.ErrorIs(t, err, ErrConnectFailed)

	_, err = firstAccount([]string{"not-an-address"})
	assert.ErrorIs(t, err, ErrConnectFailed)

	addr, err := firstAccount([]string{"0x52908400098527886e0f7030069857d2e4169ee7"})
	require.NoError(t, err)
	assert.Equal(t, "0x52908400098527886E0F7030069857D2E4169EE7", addr)
}

func cosmosOpts(enforce bool) CosmosOptions {
	return CosmosOptions{ChainID: testChainID, Bech32Prefix: testPrefix, EnforceVerification: enforce}
}

func TestKeplrNotInstalled(t *testing.T) {
	store := newStore(t)
	k := NewKeplrConnector(store, nil, cosmosOpts(false), nil)

	assert.False(t, k.HasKeplrWallet())
	err := k.Connect(context.Background())
	require.ErrorIs(t, err, ErrProviderNotFound)
	assert.Equal(t, "Keplr wallet not found.", err.Error())
	assert.Equal(t, model.DefaultWalletSession(), store.State())
}

func TestKeplrEnableFails(t *testing.T) {
	store := newStore(t)
	keplr := newFakeKeplr(testPrefix)
	keplr.enableErr = errRejected
	k := NewKeplrConnector(store, keplr, cosmosOpts(false), nil)

	err := k.Connect(context.Background())
	require.ErrorIs(t, err, ErrConnectFailed)
	assert.Equal(t, "Failed to connect to Keplr wallet.", err.Error())
	assert.Equal(t, model.DefaultWalletSession(), store.State())
}

func TestKeplrConnectWritesOneTransition(t *testing.T) {
	store := newStore(t)
	keplr := newFakeKeplr(testPrefix)
	k := NewKeplrConnector(store, keplr, cosmosOpts(true), nil)
	n := countTransitions(store)

	require.NoError(t, k.Connect(context.Background()))
	assert.Equal(t, 1, *n)

	st := store.State()
	assert.Equal(t, keplr.bech32(), *st.SourceAccount.Address)
	assert.Equal(t, model.ChainCosmos, *st.SourceAccount.Chain)
	assert.True(t, strings.HasPrefix(*st.LocalWallet.Address, testPrefix+"1"))
	assert.Equal(t, 0, *st.LocalWallet.SubaccountNumber)
	assert.Equal(t, 0, *st.LocalWalletNonce)

	in, ok := st.SignatureInput()
	require.True(t, ok)
	assert.Equal(t, model.SignatureTypeCosmos, in.SignatureType)
	assert.Equal(t, keplr.bech32(), in.Address)
	assert.Equal(t, base64.StdEncoding.EncodeToString(keplr.priv.PubKey().Bytes()), in.PublicKey)

	raw, err := base64.StdEncoding.DecodeString(in.SignDoc)
	require.NoError(t, err)
	var doc provider.StdSignDoc
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, testChainID, doc.ChainID)
	assert.Equal(t, "0", doc.AccountNumber)
	assert.Equal(t, "0", doc.Sequence)
	assert.Equal(t, keplr.bech32()+":0", doc.Memo)
	assert.Equal(t, keplr.bech32(), k.Address())
}

func TestKeplrUsesStoredNonce(t *testing.T) {
	store := newStore(t)
	store.SetLocalWalletNonce(4)
	keplr := newFakeKeplr(testPrefix)
	k := NewKeplrConnector(store, keplr, cosmosOpts(false), nil)

	require.NoError(t, k.Connect(context.Background()))
	assert.Equal(t, 4, *store.State().LocalWalletNonce)
	require.Len(t, keplr.signed, 1)
	assert.Contains(t, string(keplr.signed[0]), `"memo":"`+keplr.bech32()+`:4"`)
}

func TestKeplrVerificationEnforced(t *testing.T) {
	store := newStore(t)
	keplr := newFakeKeplr(testPrefix)
	keplr.tamper = true
	k := NewKeplrConnector(store, keplr, cosmosOpts(true), nil)

	err := k.Connect(context.Background())
	require.ErrorIs(t, err, ErrVerificationFailed)
	assert.Equal(t, "Unable to verify wallet eligibility. Please try again.", err.Error())
	assert.Equal(t, model.DefaultWalletSession(), store.State())
}

func TestKeplrVerificationLoggedOnly(t *testing.T) {
	store := newStore(t)
	keplr := newFakeKeplr(testPrefix)
	keplr.tamper = true
	k := NewKeplrConnector(store, keplr, cosmosOpts(false), nil)

	require.NoError(t, k.Connect(context.Background()))
	assert.Equal(t, keplr.bech32(), *store.State().SourceAccount.Address)
}

func TestKeplrSignArbitrary(t *testing.T) {
	store := newStore(t)
	keplr := newFakeKeplr(testPrefix)
	k := NewKeplrConnector(store, keplr, cosmosOpts(false), nil)

	_, err := k.SignArbitrary(context.Background())
	require.ErrorIs(t, err, ErrNotConnected)

	require.NoError(t, k.Connect(context.Background()))
	res, err := k.SignArbitrary(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, model.SignatureTypeCosmos, res.SignatureType)
}

func TestCosmosVerifyRejectsForeignSigner(t *testing.T) {
	b := cosmosBase{opts: cosmosOpts(false)}
	signer := newFakeKeplr(testPrefix)
	other := newFakeKeplr(testPrefix)

	data := []byte("payload")
	sig, err := signer.SignArbitrary(context.Background(), testChainID, signer.bech32(), data)
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(sig.Signature)
	require.NoError(t, err)

	ok, err := b.verify(signer.bech32(), data, signer.priv.PubKey().Bytes(), raw)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.verify(signer.bech32(), data, other.priv.PubKey().Bytes(), raw)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = b.verify(signer.bech32(), data, []byte{1, 2, 3}, raw)
	assert.Error(t, err)
}

func TestPhantomNotInstalled(t *testing.T) {
	store := newStore(t)
	p := NewPhantomConnector(store, nil, nil)

	assert.False(t, p.HasPhantomWallet())
	err := p.ConnectPhantom(context.Background())
	require.ErrorIs(t, err, ErrProviderNotFound)
	assert.Equal(t, "Phantom wallet not found.", err.Error())
}

func TestPhantomConnect(t *testing.T) {
	store := newStore(t)
	phantom := newFakePhantom()
	p := NewPhantomConnector(store, phantom, nil)

	require.NoError(t, p.Connect(context.Background()))
	st := store.State()
	assert.Equal(t, phantom.priv.PublicKey().String(), *st.SourceAccount.Address)
	assert.Equal(t, model.ChainSolana, *st.SourceAccount.Chain)
	assert.Nil(t, st.LocalWallet.Address)

	res, err := p.SignArbitrary(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, model.SignatureTypeSolana, res.SignatureType)
}

func TestPhantomRejected(t *testing.T) {
	store := newStore(t)
	phantom := newFakePhantom()
	phantom.connectErr = errRejected
	p := NewPhantomConnector(store, phantom, nil)

	err := p.ConnectPhantom(context.Background())
	require.ErrorIs(t, err, ErrConnectFailed)
	assert.ErrorIs(t, err, errRejected)
	assert.Equal(t, "Failed to connect to Phantom wallet.", err.Error())
	assert.Nil(t, store.State().SourceAccount.Address)
}
