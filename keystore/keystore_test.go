package keystore

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/wallet-connect/internal/crypto"
	"github.com/AlexZinkM/wallet-connect/internal/model"

	"github.com/cosmos/cosmos-sdk/types/bech32"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var password = []byte("secret")

func TestMain(m *testing.M) {
	crypto.UseTestParams()
	os.Exit(m.Run())
}

func TestGenerateAndOpenSolana(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sol.cwt")
	address, err := GenerateWallet(path, model.NetworkSolana, "", password)
	require.NoError(t, err)

	w, err := Open(path, password)
	require.NoError(t, err)
	defer w.Close()

	key, err := w.SolanaKey()
	require.NoError(t, err)
	assert.Equal(t, address, key.PublicKey().String())
	assert.Equal(t, address, w.Address)

	_, err = w.CosmosKey()
	assert.Error(t, err)
}

func TestGenerateAndOpenCosmos(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cosmos.cwt")
	address, err := GenerateWallet(path, model.NetworkCosmos, "dydx", password)
	require.NoError(t, err)

	w, err := Open(path, password)
	require.NoError(t, err)
	defer w.Close()

	key, err := w.CosmosKey()
	require.NoError(t, err)
	want, err := bech32.ConvertAndEncode("dydx", key.PubKey().Address().Bytes())
	require.NoError(t, err)
	assert.Equal(t, want, address)

	header, err := crypto.ReadWalletFile(path)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(key.PubKey().Bytes()), header.PublicKey)
	assert.NotEmpty(t, header.QR)
}

func TestGenerateAndOpenEVM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evm.cwt")
	address, err := GenerateWallet(path, model.NetworkEVM, "", password)
	require.NoError(t, err)

	w, err := Open(path, password)
	require.NoError(t, err)
	defer w.Close()

	key, err := w.ECDSAKey()
	require.NoError(t, err)
	assert.Equal(t, address, ethcrypto.PubkeyToAddress(key.PublicKey).Hex())
}

func TestGenerateRejects(t *testing.T) {
	dir := t.TempDir()

	_, err := GenerateWallet(filepath.Join(dir, "w.txt"), model.NetworkEVM, "", password)
	assert.Error(t, err)

	_, err = GenerateWallet(filepath.Join(dir, "w.cwt"), "bitcoin", "", password)
	assert.True(t, IsUnsupportedNetworkError(err))

	path := filepath.Join(dir, "taken.cwt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	_, err = GenerateWallet(path, model.NetworkEVM, "", password)
	assert.True(t, IsFileExistsError(err))
}

func TestOpenWrongPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evm.cwt")
	_, err := GenerateWallet(path, model.NetworkEVM, "", password)
	require.NoError(t, err)

	_, err = Open(path, []byte("wrong"))
	assert.ErrorIs(t, err, crypto.ErrInvalidPassword)
}

func TestCloseWipesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evm.cwt")
	_, err := GenerateWallet(path, model.NetworkEVM, "", password)
	require.NoError(t, err)

	w, err := Open(path, password)
	require.NoError(t, err)
	w.Close()
	assert.Nil(t, w.privateKey)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	solAddr, err := GenerateWallet(filepath.Join(dir, "b.cwt"), model.NetworkSolana, "", password)
	require.NoError(t, err)
	evmAddr, err := GenerateWallet(filepath.Join(dir, "a.cwt"), model.NetworkEVM, "", password)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0600))

	entries, err := List(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, evmAddr, entries[0].Address)
	assert.Equal(t, model.NetworkEVM, entries[0].Network)
	assert.Equal(t, solAddr, entries[1].Address)

	entries, err = List(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTerminalQR(t *testing.T) {
	qr, err := TerminalQR("https://phantom.app/download")
	require.NoError(t, err)
	assert.NotEmpty(t, qr)
}
