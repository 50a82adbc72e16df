package model

// GenerateResponse represents response for keystore generation
type GenerateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Network string `json:"network,omitempty"`
	Address string `json:"address,omitempty"`
}

// GenerateRequest represents request for POST /keystore/generate
type GenerateRequest struct {
	Network string `json:"network" example:"evm"`
	Name    string `json:"name" example:"main"`
}
