package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListNetworks_Handler(t *testing.T) {
	r := newRouter()
	h := NewNetworkHandler()
	r.GET("/api/v1/networks", h.ListNetworks)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/networks", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Networks []struct {
			ID                    string `json:"id"`
			ChainID               int64  `json:"chainId"`
			RequiredConfirmations int    `json:"requiredConfirmations"`
		} `json:"networks"`
		Currencies []struct {
			ID      string `json:"id"`
			Network string `json:"network"`
		} `json:"currencies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	require.Len(t, body.Networks, 3)
	assert.Equal(t, "ETH_MAINNET", body.Networks[0].ID)
	assert.Equal(t, int64(1), body.Networks[0].ChainID)
	assert.Equal(t, 12, body.Networks[0].RequiredConfirmations)

	assert.Len(t, body.Currencies, 7)
	assert.Equal(t, "ETH", body.Currencies[0].ID)
	assert.Equal(t, "ETH_MAINNET", body.Currencies[0].Network)
}
