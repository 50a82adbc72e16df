package common

import (
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	SOLDecimals = 9  // SOL has 9 decimals (lamports)
	ETHDecimals = 18 // ETH has 18 decimals (wei)
)

// LamportsToSOL converts lamports to SOL string without float precision loss
func LamportsToSOL(lamports uint64) string {
	return FormatUnits(new(big.Int).SetUint64(lamports), SOLDecimals)
}

// WeiToETH converts wei to ETH string without float precision loss
func WeiToETH(wei *big.Int) string {
	return FormatUnits(wei, ETHDecimals)
}

// FormatUnits renders value scaled down by 10^decimals with exactly decimals fraction digits.
// Example: FormatUnits(24981836, 9) = "0.024981836"
func FormatUnits(value *big.Int, decimals int32) string {
	if value == nil {
		value = new(big.Int)
	}
	return decimal.NewFromBigInt(value, -decimals).StringFixed(decimals)
}
