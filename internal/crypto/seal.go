package crypto

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// Seal encrypts a short secret (a wallet signature) for storage in the session.
// Output is base64(salt || nonce || ciphertext).
func Seal(plaintext, password []byte) (string, error) {
	if len(password) == 0 {
		return "", errors.New("password cannot be empty")
	}

	salt, nonce, err := randomSaltNonce()
	if err != nil {
		return "", err
	}

	aesGCM, err := newGCM(password, salt)
	if err != nil {
		return "", err
	}

	out := make([]byte, 0, saltLen+nonceLen+len(plaintext)+aesGCM.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = aesGCM.Seal(out, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal.
func Open(sealed string, password []byte) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sealed value: %w", err)
	}
	if len(raw) < saltLen+nonceLen {
		return nil, errors.New("sealed value is too short")
	}

	salt := raw[:saltLen]
	nonce := raw[saltLen : saltLen+nonceLen]

	aesGCM, err := newGCM(password, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, raw[saltLen+nonceLen:], nil)
	if err != nil {
		return nil, ErrInvalidPassword
	}
	return plaintext, nil
}
