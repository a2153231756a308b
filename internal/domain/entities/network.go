package entities

// Network identifies a supported blockchain. The set is closed: every network
// the subsystem accepts deposits on is enumerated here together with its
// chain parameters, so callers can be checked exhaustively instead of probing
// configuration objects at runtime.
type Network string

const (
	NetworkEthereum Network = "ETH_MAINNET"
	NetworkPolygon  Network = "POLYGON_MAINNET"
	NetworkBSC      Network = "BSC_MAINNET"
)

// NetworkConfig carries the static chain parameters of a network.
type NetworkConfig struct {
	Name                  string
	ChainID               int64
	CoinType              uint32 // BIP44 coin_type (60 for all EVM chains)
	NativeCurrency        string
	RequiredConfirmations int
	ExplorerURL           string
}

var networkConfigs = map[Network]NetworkConfig{
	NetworkEthereum: {
		Name:                  "Ethereum Mainnet",
		ChainID:               1,
		CoinType:              60,
		NativeCurrency:        "ETH",
		RequiredConfirmations: 12,
		ExplorerURL:           "https://etherscan.io",
	},
	NetworkPolygon: {
		Name:                  "Polygon Mainnet",
		ChainID:               137,
		CoinType:              60,
		NativeCurrency:        "MATIC",
		RequiredConfirmations: 30,
		ExplorerURL:           "https://polygonscan.com",
	},
	NetworkBSC: {
		Name:                  "BNB Smart Chain",
		ChainID:               56,
		CoinType:              60,
		NativeCurrency:        "BNB",
		RequiredConfirmations: 10,
		ExplorerURL:           "https://bscscan.com",
	},
}

// AllNetworks returns the supported networks in a stable order.
func AllNetworks() []Network {
	return []Network{NetworkEthereum, NetworkPolygon, NetworkBSC}
}

// Config returns the chain parameters for the network.
// The second return value is false for unknown networks.
func (n Network) Config() (NetworkConfig, bool) {
	cfg, ok := networkConfigs[n]
	return cfg, ok
}

// IsSupported reports whether the network is in the closed set.
func (n Network) IsSupported() bool {
	_, ok := networkConfigs[n]
	return ok
}

// Currency is a depositable asset. Token currencies carry the network suffix
// (e.g. USDT_BSC) the same way the upstream price feed distinguishes them.
type Currency string

const (
	CurrencyETH         Currency = "ETH"
	CurrencyBNB         Currency = "BNB"
	CurrencyMATIC       Currency = "MATIC"
	CurrencyUSDTBSC     Currency = "USDT_BSC"
	CurrencyUSDCBSC     Currency = "USDC_BSC"
	CurrencyUSDTPolygon Currency = "USDT_POLYGON"
	CurrencyUSDCPolygon Currency = "USDC_POLYGON"
)

// CurrencyConfig describes one depositable asset on one network.
type CurrencyConfig struct {
	Network Network
	// Symbol is the price-feed symbol without the network suffix.
	Symbol string
	// ContractAddress is empty for the chain's native coin.
	ContractAddress string
	// Decimals is the token's native precision; locked crypto amounts are
	// rounded to this many fractional digits.
	Decimals int32
}

var currencyConfigs = map[Currency]CurrencyConfig{
	CurrencyETH:   {Network: NetworkEthereum, Symbol: "ETH", Decimals: 18},
	CurrencyBNB:   {Network: NetworkBSC, Symbol: "BNB", Decimals: 18},
	CurrencyMATIC: {Network: NetworkPolygon, Symbol: "MATIC", Decimals: 18},
	CurrencyUSDTBSC: {
		Network:         NetworkBSC,
		Symbol:          "USDT",
		ContractAddress: "0x55d398326f99059fF775485246999027B3197955",
		Decimals:        18,
	},
	CurrencyUSDCBSC: {
		Network:         NetworkBSC,
		Symbol:          "USDC",
		ContractAddress: "0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d",
		Decimals:        18,
	},
	CurrencyUSDTPolygon: {
		Network:         NetworkPolygon,
		Symbol:          "USDT",
		ContractAddress: "0xc2132D05D31c914a87C6611C10748AEb04B58e8F",
		Decimals:        6,
	},
	CurrencyUSDCPolygon: {
		Network:         NetworkPolygon,
		Symbol:          "USDC",
		ContractAddress: "0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359",
		Decimals:        6,
	},
}

// AllCurrencies returns the depositable currencies in a stable order.
func AllCurrencies() []Currency {
	return []Currency{
		CurrencyETH, CurrencyBNB, CurrencyMATIC,
		CurrencyUSDTBSC, CurrencyUSDCBSC,
		CurrencyUSDTPolygon, CurrencyUSDCPolygon,
	}
}

// Config returns the asset parameters for the currency.
func (c Currency) Config() (CurrencyConfig, bool) {
	cfg, ok := currencyConfigs[c]
	return cfg, ok
}

// IsSupported reports whether the currency is depositable.
func (c Currency) IsSupported() bool {
	_, ok := currencyConfigs[c]
	return ok
}

// IsToken reports whether the currency is an ERC-20 token rather than the
// chain's native coin.
func (c Currency) IsToken() bool {
	cfg, ok := currencyConfigs[c]
	return ok && cfg.ContractAddress != ""
}
