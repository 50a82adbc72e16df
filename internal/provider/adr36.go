package provider

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// StdCoin is an amino coin.
type StdCoin struct {
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

// StdFee is the empty fee of an ADR-036 sign doc.
type StdFee struct {
	Amount []StdCoin `json:"amount"`
	Gas    string    `json:"gas"`
}

// StdSignDoc is the amino JSON sign doc. Fields are declared in key order so EncodeSignDoc output
// is canonical.
type StdSignDoc struct {
	AccountNumber string            `json:"account_number"`
	ChainID       string            `json:"chain_id"`
	Fee           StdFee            `json:"fee"`
	Memo          string            `json:"memo"`
	Msgs          []json.RawMessage `json:"msgs"`
	Sequence      string            `json:"sequence"`
}

type msgSignData struct {
	Type  string          `json:"type"`
	Value msgSignDataBody `json:"value"`
}

type msgSignDataBody struct {
	Data   string `json:"data"`
	Signer string `json:"signer"`
}

// EncodeSignDoc encodes doc without HTML escaping or a trailing newline.
func EncodeSignDoc(doc any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode sign doc: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ArbitrarySignDoc is the ADR-036 document a Keplr-compatible wallet signs for signArbitrary.
func ArbitrarySignDoc(signer string, data []byte) ([]byte, error) {
	msg, err := EncodeSignDoc(msgSignData{
		Type: "sign/MsgSignData",
		Value: msgSignDataBody{
			Data:   base64.StdEncoding.EncodeToString(data),
			Signer: signer,
		},
	})
	if err != nil {
		return nil, err
	}
	return EncodeSignDoc(StdSignDoc{
		AccountNumber: "0",
		Fee:           StdFee{Amount: []StdCoin{}, Gas: "0"},
		Msgs:          []json.RawMessage{msg},
		Sequence:      "0",
	})
}
