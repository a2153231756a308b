package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coin-custody.backend/internal/domain/entities"
	"coin-custody.backend/internal/interfaces/http/response"
)

// NetworkHandler serves the static catalog of supported networks and
// depositable currencies.
type NetworkHandler struct{}

// NewNetworkHandler creates a new network handler
func NewNetworkHandler() *NetworkHandler {
	return &NetworkHandler{}
}

type networkView struct {
	ID                    entities.Network `json:"id"`
	Name                  string           `json:"name"`
	ChainID               int64            `json:"chainId"`
	NativeCurrency        string           `json:"nativeCurrency"`
	RequiredConfirmations int              `json:"requiredConfirmations"`
	ExplorerURL           string           `json:"explorerUrl"`
}

type currencyView struct {
	ID              entities.Currency `json:"id"`
	Network         entities.Network  `json:"network"`
	Symbol          string            `json:"symbol"`
	ContractAddress string            `json:"contractAddress,omitempty"`
	Decimals        int32             `json:"decimals"`
}

// ListNetworks lists supported networks and currencies
// GET /api/v1/networks
func (h *NetworkHandler) ListNetworks(c *gin.Context) {
	networks := make([]networkView, 0, len(entities.AllNetworks()))
	for _, n := range entities.AllNetworks() {
		cfg, _ := n.Config()
		networks = append(networks, networkView{
			ID:                    n,
			Name:                  cfg.Name,
			ChainID:               cfg.ChainID,
			NativeCurrency:        cfg.NativeCurrency,
			RequiredConfirmations: cfg.RequiredConfirmations,
			ExplorerURL:           cfg.ExplorerURL,
		})
	}

	currencies := make([]currencyView, 0, len(entities.AllCurrencies()))
	for _, cur := range entities.AllCurrencies() {
		cfg, _ := cur.Config()
		currencies = append(currencies, currencyView{
			ID:              cur,
			Network:         cfg.Network,
			Symbol:          cfg.Symbol,
			ContractAddress: cfg.ContractAddress,
			Decimals:        cfg.Decimals,
		})
	}

	response.Success(c, http.StatusOK, gin.H{
		"networks":   networks,
		"currencies": currencies,
	})
}
