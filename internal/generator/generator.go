package generator

//go:generate mockgen -package=mocks -destination=mocks/mock_generator.go github.com/sotiny/sotiny/internal/generator PoolGenerator

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/sotiny/sotiny/internal/catalog"
	"github.com/sotiny/sotiny/internal/models"
)

// ErrInvalidConfig is returned when a pool configuration is inconsistent
var ErrInvalidConfig = errors.New("invalid pool configuration")

// ErrInsufficientCatalog is returned when a rarity tier cannot supply
// its requested count
var ErrInsufficientCatalog = errors.New("catalog cannot satisfy rarity distribution")

// PoolGenerator builds card pools from the catalog
type PoolGenerator interface {
	// Generate produces one pool per player
	Generate(input *GenerateInput) (*GenerateOutput, error)
}

// Config holds the generator's dependencies
type Config struct {
	// Catalog is the card reference data to draw from
	Catalog *catalog.Catalog
}

// Generator implements PoolGenerator against a static catalog. It is
// purely functional given its inputs: the same seed always produces
// the same pools, which makes draft results reproducible.
type Generator struct {
	catalog *catalog.Catalog
}

// New creates a pool generator
func New(cfg *Config) (*Generator, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Catalog == nil {
		return nil, errors.New("catalog cannot be nil")
	}

	return &Generator{
		catalog: cfg.Catalog,
	}, nil
}

// Generate produces one pool per player. For each rarity tier, ranked
// highest to lowest, it draws the configured count without replacement
// from the catalog's tier subset using a rand source seeded from the
// config; tiers are concatenated in rank order. Pools for different
// players draw independently, so two players may open the same card.
func (g *Generator) Generate(input *GenerateInput) (*GenerateOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if len(input.PlayerIDs) == 0 {
		return nil, fmt.Errorf("%w: no player slots requested", ErrInvalidConfig)
	}

	cfg := input.Config
	if err := g.validateConfig(cfg); err != nil {
		return nil, err
	}

	random := rand.New(rand.NewSource(cfg.Seed))

	pools := make([]*models.Pool, 0, len(input.PlayerIDs))
	for _, playerID := range input.PlayerIDs {
		cardIDs := make([]string, 0, cfg.PoolSize)
		for _, rarity := range models.RarityRank {
			count := cfg.RarityCounts[rarity]
			if count == 0 {
				continue
			}

			tier := g.catalog.CardsByRarity(rarity)
			for _, idx := range random.Perm(len(tier))[:count] {
				cardIDs = append(cardIDs, tier[idx].ID)
			}
		}

		pools = append(pools, &models.Pool{
			PlayerID: playerID,
			CardIDs:  cardIDs,
		})
	}

	return &GenerateOutput{
		Pools: pools,
	}, nil
}

// validateConfig checks the distribution against both the config's own
// arithmetic and the catalog's tier sizes
func (g *Generator) validateConfig(cfg models.PoolConfig) error {
	if cfg.PoolSize <= 0 {
		return fmt.Errorf("%w: pool size must be positive, got %d", ErrInvalidConfig, cfg.PoolSize)
	}

	total := 0
	for rarity, count := range cfg.RarityCounts {
		if !knownRarity(rarity) {
			return fmt.Errorf("%w: unknown rarity tier %q", ErrInvalidConfig, rarity)
		}
		if count < 0 {
			return fmt.Errorf("%w: negative count for %s", ErrInvalidConfig, rarity)
		}
		total += count
	}

	if total != cfg.PoolSize {
		return fmt.Errorf("%w: rarity counts sum to %d, pool size is %d", ErrInvalidConfig, total, cfg.PoolSize)
	}

	for _, rarity := range models.RarityRank {
		count := cfg.RarityCounts[rarity]
		if available := len(g.catalog.CardsByRarity(rarity)); available < count {
			return fmt.Errorf("%w: %s has %d cards, need %d", ErrInsufficientCatalog, rarity, available, count)
		}
	}

	return nil
}

func knownRarity(rarity models.Rarity) bool {
	for _, r := range models.RarityRank {
		if r == rarity {
			return true
		}
	}
	return false
}
