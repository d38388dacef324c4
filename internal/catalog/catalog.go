package catalog

import "sort"

// Category classifies what a card definition does when played or banked.
type Category string

const (
	// CategoryTerritory cards yield coins and link capacity when played.
	CategoryTerritory Category = "territory"
	// CategorySuccession cards yield succession points once banked into a domain.
	CategorySuccession Category = "succession"
	// CategoryCalamity cards clog decks and yield nothing.
	CategoryCalamity Category = "calamity"
	// CategoryPrincess cards anchor a player's domain.
	CategoryPrincess Category = "princess"
)

// Well-known definition keys the engine resolves once at load time.
const (
	KeyFarmingVillage = "farming_village"
	KeyApprenticeMaid = "apprentice_maid"
	KeyCurse          = "curse"
)

// Definition is one immutable entry of the card reference catalog.
// Coin and Link are meaningful for territory cards only; SuccessionPoint for
// succession and princess cards only.
type Definition struct {
	ID              int      `yaml:"id"`
	Key             string   `yaml:"key"`
	Name            string   `yaml:"name"`
	Category        Category `yaml:"category"`
	Cost            int      `yaml:"cost"`
	Coin            int      `yaml:"coin,omitempty"`
	Link            int      `yaml:"link,omitempty"`
	SuccessionPoint int      `yaml:"succession_point,omitempty"`
	Subtype         string   `yaml:"subtype,omitempty"`
	Rarity          string   `yaml:"rarity"`
	MarketCount     int      `yaml:"market_count,omitempty"`
}

// Catalog is the fixed card reference table. It is loaded once at process
// start and never mutated afterwards.
type Catalog struct {
	defs  []Definition
	byID  map[int]Definition
	byKey map[string]Definition
}

// Lookup returns the definition for the given id.
func (c *Catalog) Lookup(id int) (Definition, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// ByKey returns the definition for a well-known key. Required keys are
// validated to exist at load time, so a zero Definition is only possible for
// keys the catalog never declared.
func (c *Catalog) ByKey(key string) Definition {
	return c.byKey[key]
}

// ListByCategory returns all definitions of the given category in id order.
func (c *Catalog) ListByCategory(category Category) []Definition {
	var out []Definition
	for _, d := range c.defs {
		if d.Category == category {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// BasicMarket returns the definitions seeded into the shared basic market,
// in id order, each carrying its fixed copy count.
func (c *Catalog) BasicMarket() []Definition {
	var out []Definition
	for _, d := range c.defs {
		if d.MarketCount > 0 {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Size returns the number of definitions in the catalog.
func (c *Catalog) Size() int {
	return len(c.defs)
}
