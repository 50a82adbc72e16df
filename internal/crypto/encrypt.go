package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlexZinkM/wallet-connect/internal/model"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters for keystore files and sealed signatures
// Security is prioritized over performance
//
// N=2^18 (~256MB RAM, 0.5-2s) - optimal balance:
//   - Maximum security while remaining compatible with mobile devices
//   - Brute-force attacks remain extremely expensive
//
// Vars rather than consts so tests can run with a cheap N.
var (
	scryptN = 1 << 18
	scryptR = 8
	scryptP = 1
)

const (
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12
)

// EncryptWallet encrypts wallet data and writes it to .cwt
// header carries the public part (network, address, publicKey, QR); salt, nonce and cipherText are filled here.
// password must be []byte for security (caller should zero it after use)
func EncryptWallet(filePath string, header model.CWTFile, walletData *model.WalletData, password []byte) error {
	// Check file extension (should be .cwt)
	if !strings.HasSuffix(filePath, ".cwt") {
		return errors.New("file must have .cwt extension")
	}

	// Check if file exists
	if fileInfo, err := os.Stat(filePath); err == nil && fileInfo.Size() > 0 {
		return fmt.Errorf("file is not empty: %w", os.ErrExist)
	}

	salt, nonce, err := randomSaltNonce()
	if err != nil {
		return err
	}

	aesGCM, err := newGCM(password, salt)
	if err != nil {
		return err
	}

	// Serialize wallet data
	plaintext, err := json.Marshal(walletData)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	cwtFile := header
	cwtFile.Salt = base64.StdEncoding.EncodeToString(salt)
	cwtFile.Nonce = base64.StdEncoding.EncodeToString(nonce)
	cwtFile.CipherText = base64.StdEncoding.EncodeToString(ciphertext)

	fileData, err := json.MarshalIndent(cwtFile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cwt file: %w", err)
	}

	// Add UTF-8 BOM for proper display in Windows
	utf8BOM := []byte{0xEF, 0xBB, 0xBF}
	fileDataWithBOM := append(utf8BOM, fileData...)

	if err := os.WriteFile(filePath, fileDataWithBOM, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func randomSaltNonce() (salt, nonce []byte, err error) {
	salt = make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce = make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return salt, nonce, nil
}

// newGCM derives the AES-256 key from password with scrypt and wraps it in GCM.
func newGCM(password, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
