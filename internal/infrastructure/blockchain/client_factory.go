package blockchain

import (
	"fmt"
	"sync"

	"coin-custody.backend/internal/config"
	"coin-custody.backend/internal/domain/entities"
)

// ClientFactory hands out one shared EVM client per network, dialing lazily
// on first use.
type ClientFactory struct {
	networks map[string]config.NetworkConfig
	clients  map[entities.Network]*EVMClient
	mu       sync.RWMutex
}

// NewClientFactory creates a new client factory
func NewClientFactory(networks map[string]config.NetworkConfig) *ClientFactory {
	return &ClientFactory{
		networks: networks,
		clients:  make(map[entities.Network]*EVMClient),
	}
}

// GetClient returns the client for a network, dialing it on first use
func (f *ClientFactory) GetClient(network entities.Network) (*EVMClient, error) {
	f.mu.RLock()
	client, ok := f.clients[network]
	f.mu.RUnlock()
	if ok {
		return client, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double check
	if client, ok := f.clients[network]; ok {
		return client, nil
	}

	cfg, ok := f.networks[string(network)]
	if !ok || cfg.RPCURL == "" {
		return nil, fmt.Errorf("no RPC endpoint configured for network %s", network)
	}

	newClient, err := NewEVMClient(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", network, err)
	}

	f.clients[network] = newClient
	return newClient, nil
}

// RegisterClient injects/overrides the cached client for a network.
// Useful for deterministic unit tests.
func (f *ClientFactory) RegisterClient(network entities.Network, client *EVMClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[network] = client
}

// Close closes every dialed client
func (f *ClientFactory) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clients {
		c.Close()
	}
	f.clients = make(map[entities.Network]*EVMClient)
}
