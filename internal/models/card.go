package models

// Rarity classifies how scarce a card is within a set
type Rarity string

const (
	// RarityMythic is the scarcest tier
	RarityMythic Rarity = "mythic"

	// RarityRare is the second scarcest tier
	RarityRare Rarity = "rare"

	// RarityUncommon is the middle tier
	RarityUncommon Rarity = "uncommon"

	// RarityCommon is the most plentiful tier
	RarityCommon Rarity = "common"
)

// RarityRank lists all rarity tiers ranked highest to lowest.
// Pool generation draws and concatenates tiers in this order.
var RarityRank = []Rarity{
	RarityMythic,
	RarityRare,
	RarityUncommon,
	RarityCommon,
}

// Card represents one card in the catalog. Cards are immutable
// reference data shared freely across goroutines.
type Card struct {
	// ID is the unique identifier for the card
	ID string `json:"id"`

	// Name is the display name of the card
	Name string `json:"name"`

	// SetCode identifies the set the card was printed in
	SetCode string `json:"set_code"`

	// Rarity is the card's rarity tier
	Rarity Rarity `json:"rarity"`

	// ImageRef names the image asset for the card
	ImageRef string `json:"image_ref"`
}
