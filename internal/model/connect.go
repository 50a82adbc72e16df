package model

// OnboardingStatus tracks how far the user got in the connect flow.
type OnboardingStatus string

const (
	OnboardingDisconnected     OnboardingStatus = "DISCONNECTED"
	OnboardingWalletConnected  OnboardingStatus = "WALLET_CONNECTED"
	OnboardingAccountConnected OnboardingStatus = "ACCOUNT_CONNECTED"
)

// ConnectRequest represents request for POST /wallet/connect
type ConnectRequest struct {
	ConnectorType ConnectorType `json:"connectorType"`
	RDNS          string        `json:"rdns"`
	Name          string        `json:"name"`
}

// ConnectResponse represents response for POST /wallet/connect and /wallet/derive
type ConnectResponse struct {
	State            string           `json:"state"`
	OnboardingStatus OnboardingStatus `json:"onboardingStatus"`
	Address          string           `json:"address,omitempty"`
	Error            string           `json:"error,omitempty"`
	DownloadLink     string           `json:"downloadLink,omitempty"`
}

// SessionResponse represents response for GET /wallet/session
type SessionResponse struct {
	OnboardingStatus OnboardingStatus `json:"onboardingStatus"`
	Session          WalletSession    `json:"session"`
}
