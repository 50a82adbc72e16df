package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"github.com/AlexZinkM/wallet-connect/internal/config"
	"github.com/AlexZinkM/wallet-connect/internal/model"
	"github.com/AlexZinkM/wallet-connect/keystore"
)

var keystoreName = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// KeystoreHandler creates local keystore wallets
type KeystoreHandler struct {
	dir          string
	bech32Prefix string
	password     func() ([]byte, error)
}

// NewKeystoreHandler creates a new KeystoreHandler. password returns a copy of the keystore password.
func NewKeystoreHandler(dir, bech32Prefix string, password func() ([]byte, error)) *KeystoreHandler {
	if password == nil {
		password = config.GetPasswordBytes
	}
	return &KeystoreHandler{dir: dir, bech32Prefix: bech32Prefix, password: password}
}

// Generate handles POST /keystore/generate
// @Summary      Generate new wallet
// @Description  Generates a new solana, cosmos or evm keypair and saves it to <name>.cwt in the keystore directory
// @Tags         keystore
// @Accept       json
// @Produce      json
// @Param        request  body      model.GenerateRequest  true  "Network and file name"
// @Success      200      {object}  model.GenerateResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /keystore/generate [post]
func (h *KeystoreHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req model.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !keystoreName.MatchString(req.Name) {
		writeError(w, http.StatusBadRequest, errors.New("name must be 1-64 letters, digits, '-' or '_'"))
		return
	}

	// Get password as []byte, use it, then zero it immediately
	passwordBytes, err := h.password()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	if err := os.MkdirAll(h.dir, 0700); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	path := filepath.Join(h.dir, req.Name+keystore.Extension)
	address, err := keystore.GenerateWallet(path, req.Network, h.bech32Prefix, passwordBytes)
	if err != nil {
		switch {
		case keystore.IsFileExistsError(err):
			writeError(w, http.StatusConflict, err)
		case keystore.IsUnsupportedNetworkError(err):
			writeError(w, http.StatusBadRequest, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success: true,
		Message: "Wallet generated successfully",
		Network: req.Network,
		Address: address,
	})
}

// List handles GET /keystore/list
// @Summary      List keystore wallets
// @Description  Lists the public part of every .cwt file in the keystore directory
// @Tags         keystore
// @Produce      json
// @Success      200  {array}   keystore.Entry
// @Router       /keystore/list [get]
func (h *KeystoreHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	entries, err := keystore.List(h.dir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if entries == nil {
		entries = []keystore.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
