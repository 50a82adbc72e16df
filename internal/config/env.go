package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: Password is prompted at runtime and stored in memory - use GetPasswordBytes()
type Config struct {
	Port              string        `envconfig:"PORT" default:"8080"`
	SessionFilePath   string        `envconfig:"SESSION_FILE_PATH"`
	SessionStorageKey string        `envconfig:"SESSION_STORAGE_KEY" default:"wallet"`
	KeystoreDir       string        `envconfig:"KEYSTORE_DIR"`
	ConnectTimeout    time.Duration `envconfig:"CONNECT_TIMEOUT" default:"0s"` // 0 waits for the wallet forever

	CosmosChainID             string `envconfig:"COSMOS_CHAIN_ID" default:"dydx-mainnet-1"`
	CosmosBech32Prefix        string `envconfig:"COSMOS_BECH32_PREFIX" default:"dydx"`
	CosmosEnforceVerification bool   `envconfig:"COSMOS_ENFORCE_VERIFICATION" default:"false"`

	EVMRPCURL          string `envconfig:"EVM_RPC_URL" default:"https://cloudflare-eth.com"`
	EVMChainID         uint64 `envconfig:"EVM_CHAIN_ID" default:"1"`
	EVMRemoteSignerURL string `envconfig:"EVM_REMOTE_SIGNER_URL"`
	SolanaRPCURL       string `envconfig:"SOLANA_RPC_URL" default:"https://api.mainnet-beta.solana.com"`

	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogDevelopment bool   `envconfig:"LOG_DEVELOPMENT" default:"false"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if c.SessionFilePath == "" {
		c.SessionFilePath = filepath.Join(DefaultDataDir(), "session.json")
	}
	if c.KeystoreDir == "" {
		c.KeystoreDir = filepath.Join(DefaultDataDir(), "keystore")
	}
	if c.ConnectTimeout < 0 {
		return errors.New("CONNECT_TIMEOUT must not be negative")
	}
	cfg = c
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// DefaultDataDir returns ~/.wallet-connect, or a relative directory when home is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wallet-connect"
	}
	return filepath.Join(home, ".wallet-connect")
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetSessionFilePath returns path to the persisted session file
func GetSessionFilePath() string {
	return Get().SessionFilePath
}

// GetSessionStorageKey returns the fixed key the session blob is stored under
func GetSessionStorageKey() string {
	return Get().SessionStorageKey
}

// GetKeystoreDir returns directory holding .cwt keystore files
func GetKeystoreDir() string {
	return Get().KeystoreDir
}

var passwordBytes []byte

// PromptForPassword prompts the user for the keystore password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, "Enter keystore password: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}

	SetPassword(raw)
	clear(raw)
	return nil
}

// SetPassword stores a copy of password in memory.
func SetPassword(password []byte) {
	clear(passwordBytes)
	passwordBytes = make([]byte, len(password))
	copy(passwordBytes, password)
}

// HasPassword reports whether a password was entered.
func HasPassword() bool {
	return len(passwordBytes) > 0
}

// GetPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
