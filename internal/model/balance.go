package model

// BalanceResponse represents response for GET /wallet/balance
type BalanceResponse struct {
	Address string `json:"address"`
	Chain   Chain  `json:"chain"`
	Amount  string `json:"amount"`
	Symbol  string `json:"symbol"`
}
