package model

// Keystore networks
const (
	NetworkSolana = "solana"
	NetworkCosmos = "cosmos"
	NetworkEVM    = "evm"
)

// CWTFile represents .cwt file structure
type CWTFile struct {
	Network    string `json:"network"`
	Address    string `json:"address"`
	PublicKey  string `json:"publicKey,omitempty"` // base64 compressed secp256k1 key for cosmos
	QR         string `json:"QR"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// WalletData represents decrypted wallet data
type WalletData struct {
	PrivateKey []byte `json:"privateKey"` // raw key bytes (stored as base64 in JSON)
	CreatedAt  string `json:"createdAt"`
}
