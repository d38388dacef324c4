package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed cards.yaml
var defaultCards []byte

// rawFile mirrors the YAML catalog schema.
type rawFile struct {
	Version string       `yaml:"version"`
	Cards   []Definition `yaml:"cards"`
}

// Load reads a catalog from a YAML file at the given path.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parse(b)
}

// Default returns the catalog embedded in the binary. The embedded file is
// validated by tests, so a failure here means a broken build.
func Default() *Catalog {
	c, err := parse(defaultCards)
	if err != nil {
		panic("embedded catalog invalid: " + err.Error())
	}
	return c
}

// parse decodes and validates a catalog document.
func parse(b []byte) (*Catalog, error) {
	var raw rawFile
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	if err := validate(raw.Cards); err != nil {
		return nil, err
	}

	c := &Catalog{
		defs:  raw.Cards,
		byID:  make(map[int]Definition, len(raw.Cards)),
		byKey: make(map[string]Definition, len(raw.Cards)),
	}
	for _, d := range raw.Cards {
		c.byID[d.ID] = d
		c.byKey[d.Key] = d
	}
	return c, nil
}

// validate checks semantic constraints of the card definitions.
func validate(defs []Definition) error {
	var errs []string

	if len(defs) == 0 {
		errs = append(errs, "catalog must declare at least one card")
	}

	ids := make(map[int]bool, len(defs))
	keys := make(map[string]bool, len(defs))
	categories := map[Category]bool{
		CategoryTerritory:  true,
		CategorySuccession: true,
		CategoryCalamity:   true,
		CategoryPrincess:   true,
	}
	princessCount := 0

	for i, d := range defs {
		if d.ID <= 0 {
			errs = append(errs, fmt.Sprintf("cards[%d].id must be >= 1", i))
		}
		if ids[d.ID] {
			errs = append(errs, fmt.Sprintf("cards[%d].id %d is duplicated", i, d.ID))
		}
		ids[d.ID] = true
		if d.Key == "" {
			errs = append(errs, fmt.Sprintf("cards[%d].key is required", i))
		}
		if keys[d.Key] {
			errs = append(errs, fmt.Sprintf("cards[%d].key %q is duplicated", i, d.Key))
		}
		keys[d.Key] = true
		if d.Name == "" {
			errs = append(errs, fmt.Sprintf("cards[%d].name is required", i))
		}
		if !categories[d.Category] {
			errs = append(errs, fmt.Sprintf("cards[%d].category %q must be one of: territory, succession, calamity, princess", i, d.Category))
		}
		if d.Cost < 0 {
			errs = append(errs, fmt.Sprintf("cards[%d].cost must be >= 0", i))
		}
		if d.MarketCount < 0 {
			errs = append(errs, fmt.Sprintf("cards[%d].market_count must be >= 0", i))
		}
		if d.Category == CategoryTerritory && d.Link < 1 {
			errs = append(errs, fmt.Sprintf("cards[%d]: territory cards need link >= 1", i))
		}
		if d.Category == CategoryPrincess {
			princessCount++
		}
	}

	// The engine seeds every game from these entries.
	required := []struct {
		key      string
		category Category
	}{
		{KeyFarmingVillage, CategoryTerritory},
		{KeyApprenticeMaid, CategorySuccession},
		{KeyCurse, CategoryCalamity},
	}
	for _, req := range required {
		found := false
		for _, d := range defs {
			if d.Key == req.key {
				found = true
				if d.Category != req.category {
					errs = append(errs, fmt.Sprintf("card %q must have category %q", req.key, req.category))
				}
				break
			}
		}
		if !found {
			errs = append(errs, fmt.Sprintf("card %q is required", req.key))
		}
	}
	if princessCount == 0 {
		errs = append(errs, "catalog needs at least one princess card")
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
