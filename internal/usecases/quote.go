package usecases

import (
	"github.com/shopspring/decimal"
)

// convertFiatToCrypto returns the crypto amount a USD value buys at the given
// rate. The result is rounded half up to the asset's native precision so the
// locked amount is always payable in whole base units, capped at
// CryptoAmountPrecision digits for 18-decimal coins.
func convertFiatToCrypto(fiat, rate decimal.Decimal, decimals int32) decimal.Decimal {
	precision := decimals
	if precision > CryptoAmountPrecision {
		precision = CryptoAmountPrecision
	}
	return fiat.DivRound(rate, precision)
}

// convertCryptoToFiat returns the USD value of a crypto amount at the given
// rate, rounded half up to cents.
func convertCryptoToFiat(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(FiatPrecision)
}
