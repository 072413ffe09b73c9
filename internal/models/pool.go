package models

// Pool is the ordered set of cards held by one player within one
// draft session. It is mutated only through the draft service's swap
// operation; the generator and renderer never modify it.
type Pool struct {
	// PlayerID is the platform user ID of the pool's owner
	PlayerID string `json:"player_id"`

	// CardIDs are the cards in the pool, in generation order
	CardIDs []string `json:"card_ids"`
}

// Contains reports whether the pool holds the given card
func (p *Pool) Contains(cardID string) bool {
	for _, id := range p.CardIDs {
		if id == cardID {
			return true
		}
	}
	return false
}

// Replace swaps cardOut for cardIn in place, preserving the slot
// position. It reports whether cardOut was found.
func (p *Pool) Replace(cardOut, cardIn string) bool {
	for i, id := range p.CardIDs {
		if id == cardOut {
			p.CardIDs[i] = cardIn
			return true
		}
	}
	return false
}
