package repositories

import (
	"context"

	"coin-custody.backend/internal/domain/entities"
)

// DerivationCounterRepository allocates HD derivation indexes.
type DerivationCounterRepository interface {
	// NextIndex atomically claims and returns the next unused derivation
	// index for the network. Must be called inside a transaction; the
	// counter row is locked until the transaction ends so two orders can
	// never share an index.
	NextIndex(ctx context.Context, network entities.Network) (int64, error)
}
