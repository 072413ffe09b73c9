package generator

import "github.com/sotiny/sotiny/internal/models"

// GenerateInput requests one pool per player slot
type GenerateInput struct {
	// PlayerIDs are the player slots to generate pools for, in order
	PlayerIDs []string

	// Config is the pool configuration, including the seed
	Config models.PoolConfig
}

// GenerateOutput holds the generated pools, one per requested player,
// in the same order as the input
type GenerateOutput struct {
	Pools []*models.Pool
}
