package keystore

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AlexZinkM/wallet-connect/internal/crypto"
	"github.com/AlexZinkM/wallet-connect/internal/model"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/skip2/go-qrcode"
)

// Extension of keystore files
const Extension = ".cwt"

// FileExistsError is an error when file already exists and is not empty
type FileExistsError struct {
	Message string
}

func (e *FileExistsError) Error() string {
	return e.Message
}

// IsFileExistsError checks if error is FileExistsError
func IsFileExistsError(err error) bool {
	_, ok := err.(*FileExistsError)
	return ok
}

// UnsupportedNetworkError is returned for networks other than solana, cosmos and evm
type UnsupportedNetworkError struct {
	Network string
}

func (e *UnsupportedNetworkError) Error() string {
	return fmt.Sprintf("unsupported network %q", e.Network)
}

// IsUnsupportedNetworkError checks if error is UnsupportedNetworkError
func IsUnsupportedNetworkError(err error) bool {
	_, ok := err.(*UnsupportedNetworkError)
	return ok
}

// GenerateWallet generates a new keypair for network and saves it to a .cwt file.
// bech32Prefix is only used for cosmos keys.
// Returns the generated public address on success.
// password must be []byte for security (caller should zero it after use)
func GenerateWallet(filePath, network, bech32Prefix string, password []byte) (address string, err error) {
	// Check file extension (.cwt)
	if filepath.Ext(filePath) != Extension {
		return "", fmt.Errorf("file must have %s extension", Extension)
	}

	// Check file existence
	if fileInfo, err := os.Stat(filePath); err == nil && fileInfo.Size() > 0 {
		return "", &FileExistsError{Message: "file is not empty"}
	}

	var (
		privateKey []byte
		publicKey  string
	)
	switch network {
	case model.NetworkSolana:
		wallet := solana.NewWallet()
		privateKey = wallet.PrivateKey
		address = wallet.PublicKey().String()
		publicKey = address

	case model.NetworkCosmos:
		priv := secp256k1.GenPrivKey()
		privateKey = priv.Key
		address, err = bech32.ConvertAndEncode(bech32Prefix, priv.PubKey().Address().Bytes())
		if err != nil {
			return "", fmt.Errorf("failed to encode address: %w", err)
		}
		publicKey = base64.StdEncoding.EncodeToString(priv.PubKey().Bytes())

	case model.NetworkEVM:
		key, err := ethcrypto.GenerateKey()
		if err != nil {
			return "", fmt.Errorf("failed to generate key: %w", err)
		}
		privateKey = ethcrypto.FromECDSA(key)
		address = ethcrypto.PubkeyToAddress(key.PublicKey).Hex()
		publicKey = base64.StdEncoding.EncodeToString(ethcrypto.CompressPubkey(&key.PublicKey))

	default:
		return "", &UnsupportedNetworkError{Network: network}
	}
	defer clear(privateKey)

	// Generate QR code
	qrCode, err := generateQRCode(address)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Prepare wallet data - PrivateKey stored as []byte (will be base64 encoded in JSON)
	walletData := &model.WalletData{
		PrivateKey: privateKey,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	header := model.CWTFile{
		Network:   network,
		Address:   address,
		PublicKey: publicKey,
		QR:        qrCode,
	}

	// Encrypt and write to file
	if err := crypto.EncryptWallet(filePath, header, walletData, password); err != nil {
		return "", fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	return address, nil
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	// Get PNG image
	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	// Encode to base64
	return base64.StdEncoding.EncodeToString(png), nil
}

// TerminalQR renders content as a QR code made of block characters, for printing in a terminal.
func TerminalQR(content string) (string, error) {
	qr, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}
	return qr.ToSmallString(false), nil
}
