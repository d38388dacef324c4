package catalog

import (
	"strings"
	"testing"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c := Default()
	if c.Size() == 0 {
		t.Fatalf("default catalog is empty")
	}

	for _, key := range []string{KeyFarmingVillage, KeyApprenticeMaid, KeyCurse} {
		if c.ByKey(key).Key != key {
			t.Fatalf("required card %q missing", key)
		}
	}
	if got := c.ByKey(KeyFarmingVillage).Category; got != CategoryTerritory {
		t.Fatalf("%s category = %s, want territory", KeyFarmingVillage, got)
	}
	if len(c.ListByCategory(CategoryPrincess)) == 0 {
		t.Fatalf("no princess card in default catalog")
	}
}

func TestLookup(t *testing.T) {
	c := Default()

	d, ok := c.Lookup(1)
	if !ok {
		t.Fatalf("Lookup(1) not found")
	}
	if d.Key != KeyFarmingVillage {
		t.Fatalf("Lookup(1).Key = %q, want %q", d.Key, KeyFarmingVillage)
	}
	if _, ok := c.Lookup(9999); ok {
		t.Fatalf("Lookup(9999) should not be found")
	}
}

func TestListByCategoryIsIDOrdered(t *testing.T) {
	c := Default()
	for _, category := range []Category{CategoryTerritory, CategorySuccession} {
		defs := c.ListByCategory(category)
		if len(defs) == 0 {
			t.Fatalf("no %s cards", category)
		}
		for i := 1; i < len(defs); i++ {
			if defs[i-1].ID >= defs[i].ID {
				t.Fatalf("%s not id-ordered: %d before %d", category, defs[i-1].ID, defs[i].ID)
			}
		}
		for _, d := range defs {
			if d.Category != category {
				t.Fatalf("card %q has category %s, want %s", d.Key, d.Category, category)
			}
		}
	}
}

func TestBasicMarketOnlyListsStockedCards(t *testing.T) {
	c := Default()
	defs := c.BasicMarket()
	if len(defs) == 0 {
		t.Fatalf("basic market is empty")
	}
	for _, d := range defs {
		if d.MarketCount <= 0 {
			t.Fatalf("card %q in market with count %d", d.Key, d.MarketCount)
		}
	}
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "NotYAML",
			yaml:    "{{",
			wantErr: "unmarshal catalog",
		},
		{
			name:    "Empty",
			yaml:    "cards: []",
			wantErr: "at least one card",
		},
		{
			name: "DuplicateID",
			yaml: `
cards:
  - {id: 1, key: farming_village, name: A, category: territory, link: 1, rarity: basic}
  - {id: 1, key: other, name: B, category: territory, link: 1, rarity: basic}
`,
			wantErr: "duplicated",
		},
		{
			name: "BadCategory",
			yaml: `
cards:
  - {id: 1, key: farming_village, name: A, category: mystery, rarity: basic}
`,
			wantErr: "category",
		},
		{
			name: "TerritoryWithoutLink",
			yaml: `
cards:
  - {id: 1, key: farming_village, name: A, category: territory, rarity: basic}
`,
			wantErr: "link >= 1",
		},
		{
			name: "MissingRequiredCards",
			yaml: `
cards:
  - {id: 1, key: something, name: A, category: territory, link: 1, rarity: basic}
`,
			wantErr: "is required",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			_, err := parse([]byte(test.yaml))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Fatalf("err = %v, want substring %q", err, test.wantErr)
			}
		})
	}
}
