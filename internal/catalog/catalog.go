package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sotiny/sotiny/internal/models"
)

// ErrCardNotFound is returned when a card ID is not in the catalog
var ErrCardNotFound = errors.New("card not found in catalog")

// ErrAssetNotFound is returned when a card's image asset cannot be resolved
var ErrAssetNotFound = errors.New("image asset not found")

// Config holds the data for an in-memory catalog
type Config struct {
	// Cards is the full card list
	Cards []*models.Card

	// Assets maps each card's ImageRef to its image bytes
	Assets map[string][]byte
}

// Catalog is the static card reference data for the process. It is
// built once at startup and is safe for unsynchronized concurrent
// reads; nothing mutates it afterwards.
type Catalog struct {
	cards    []*models.Card
	byID     map[string]*models.Card
	byRarity map[models.Rarity][]*models.Card
	assets   map[string][]byte
}

// New creates a catalog from an in-memory card list and asset map
func New(cfg *Config) (*Catalog, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if len(cfg.Cards) == 0 {
		return nil, errors.New("catalog cannot be empty")
	}

	c := &Catalog{
		cards:    cfg.Cards,
		byID:     make(map[string]*models.Card, len(cfg.Cards)),
		byRarity: make(map[models.Rarity][]*models.Card),
		assets:   cfg.Assets,
	}

	for _, card := range cfg.Cards {
		if card.ID == "" {
			return nil, errors.New("catalog card missing ID")
		}
		if _, exists := c.byID[card.ID]; exists {
			return nil, fmt.Errorf("duplicate card ID in catalog: %s", card.ID)
		}
		c.byID[card.ID] = card
		c.byRarity[card.Rarity] = append(c.byRarity[card.Rarity], card)
	}

	return c, nil
}

// Card retrieves a card by ID
func (c *Catalog) Card(cardID string) (*models.Card, error) {
	card, ok := c.byID[cardID]
	if !ok {
		return nil, ErrCardNotFound
	}
	return card, nil
}

// CardsByRarity returns all cards of the given rarity tier. The
// returned slice is shared; callers must not modify it.
func (c *Catalog) CardsByRarity(rarity models.Rarity) []*models.Card {
	return c.byRarity[rarity]
}

// Size returns the total number of cards in the catalog
func (c *Catalog) Size() int {
	return len(c.cards)
}

// Image resolves a card's image asset to its raw bytes
func (c *Catalog) Image(cardID string) ([]byte, error) {
	card, err := c.Card(cardID)
	if err != nil {
		return nil, err
	}

	data, ok := c.assets[card.ImageRef]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, card.ImageRef)
	}

	return data, nil
}

// LoadConfig holds the file locations for a catalog loaded from disk
type LoadConfig struct {
	// CardFile is a JSON file containing the card list
	CardFile string

	// AssetDir is the directory holding card images, one file per
	// ImageRef
	AssetDir string
}

// Load reads a catalog from a JSON card file and an image directory.
// Cards whose image file is missing still load; rendering them fails
// at render time instead.
func Load(cfg *LoadConfig) (*Catalog, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.CardFile == "" {
		return nil, errors.New("card file cannot be empty")
	}

	data, err := os.ReadFile(cfg.CardFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read card file: %w", err)
	}

	var cards []*models.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("failed to parse card file: %w", err)
	}

	assets := make(map[string][]byte)
	if cfg.AssetDir != "" {
		for _, card := range cards {
			if card.ImageRef == "" {
				continue
			}
			imgData, err := os.ReadFile(filepath.Join(cfg.AssetDir, card.ImageRef))
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return nil, fmt.Errorf("failed to read asset %s: %w", card.ImageRef, err)
			}
			assets[card.ImageRef] = imgData
		}
	}

	return New(&Config{
		Cards:  cards,
		Assets: assets,
	})
}
