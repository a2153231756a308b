package usecases

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestConvertFiatToCrypto(t *testing.T) {
	// $100 at $2000/ETH buys exactly 0.05 ETH
	assert.Equal(t, "0.05", convertFiatToCrypto(d("100"), d("2000"), 18).String())

	// repeating quotient rounds half up at the 8th digit
	assert.Equal(t, "0.33333333", convertFiatToCrypto(d("1"), d("3"), 18).String())
	assert.Equal(t, "0.66666667", convertFiatToCrypto(d("2"), d("3"), 18).String())
}

func TestConvertFiatToCrypto_NativePrecision(t *testing.T) {
	// a 6-decimal token never locks an amount with unpayable digits
	assert.Equal(t, "0.333333", convertFiatToCrypto(d("1"), d("3"), 6).String())
	assert.Equal(t, "0.666667", convertFiatToCrypto(d("2"), d("3"), 6).String())

	// 18-decimal assets stay capped at the quoting ceiling
	assert.Equal(t, "0.33333333", convertFiatToCrypto(d("1"), d("3"), 18).String())
}

func TestConvertCryptoToFiat(t *testing.T) {
	assert.Equal(t, "100", convertCryptoToFiat(d("0.05"), d("2000")).String())
	assert.Equal(t, "98.4", convertCryptoToFiat(d("0.0492"), d("2000")).String())

	// sub-cent values round half up
	assert.Equal(t, "0.01", convertCryptoToFiat(d("0.0000025"), d("2000")).String())
}
