package usecases

const (
	// CryptoAmountPrecision is the number of fractional digits locked crypto
	// amounts are quoted with.
	CryptoAmountPrecision = 8

	// FiatPrecision is the number of fractional digits of ledger USD amounts.
	FiatPrecision = 2

	// MinFiatAmountUSD is the smallest deposit that can be quoted.
	MinFiatAmountUSD = 1.0

	// SweepGasLimit is the gas for a plain value transfer.
	SweepGasLimit = 21000

	// TokenSweepGasLimit bounds an ERC-20 transfer. USDT and USDC stay well
	// under this on every supported network.
	TokenSweepGasLimit = 65000

	// sweepBatchSize bounds how many orders one sweep pass touches per network.
	sweepBatchSize = 50

	// webhookSource tags audit log rows written by the chain webhook.
	webhookSource = "chain-monitor"
)
