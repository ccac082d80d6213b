package finance

import (
	"strings"

	"farmbook/internal/core"
)

// SearchResults holds per-entity matches for one query. A nil result means
// search is inactive (blank query); an empty slice means no matches.
type SearchResults struct {
	Transactions   []core.Transaction   `json:"transactions"`
	Categories     []core.Category      `json:"categories"`
	Accounts       []core.Account       `json:"accounts"`
	Liabilities    []core.Liability     `json:"liabilities"`
	Assets         []core.Asset         `json:"assets"`
	InventoryItems []core.InventoryItem `json:"inventoryItems"`
	AnimalSpecies  []core.AnimalSpecies `json:"animalSpecies"`
	AnimalLogs     []core.AnimalLog     `json:"animalLogs"`
}

// Total returns the match count across all entity kinds.
func (r *SearchResults) Total() int {
	if r == nil {
		return 0
	}
	return len(r.Transactions) + len(r.Categories) + len(r.Accounts) +
		len(r.Liabilities) + len(r.Assets) + len(r.InventoryItems) +
		len(r.AnimalSpecies) + len(r.AnimalLogs)
}

// Search runs a case-insensitive substring match over every entity kind.
// Transactions also match their resolved category name, animal logs their
// species name. A blank query returns nil.
func Search(query string, data *core.FarmData) *SearchResults {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	categories := core.CategoryIndex(data.Categories)
	species := core.SpeciesIndex(data.AnimalSpecies)

	out := &SearchResults{}
	for _, tx := range data.Transactions {
		catName := ""
		if c, ok := categories[tx.CategoryID]; ok {
			catName = c.Name
		}
		if matches(q, tx.Description, catName) {
			out.Transactions = append(out.Transactions, tx)
		}
	}
	for _, c := range data.Categories {
		if matches(q, c.Name) {
			out.Categories = append(out.Categories, c)
		}
	}
	for _, a := range data.Accounts {
		if matches(q, a.Name) {
			out.Accounts = append(out.Accounts, a)
		}
	}
	for _, l := range data.Liabilities {
		if matches(q, l.Name, l.Category, l.Description) {
			out.Liabilities = append(out.Liabilities, l)
		}
	}
	for _, a := range data.Assets {
		if matches(q, a.Name, a.Category, a.Description) {
			out.Assets = append(out.Assets, a)
		}
	}
	for _, item := range data.InventoryItems {
		if matches(q, item.Name, item.SKU, item.Description) {
			out.InventoryItems = append(out.InventoryItems, item)
		}
	}
	for _, s := range data.AnimalSpecies {
		if matches(q, s.Name, s.Breed, s.Tag) {
			out.AnimalSpecies = append(out.AnimalSpecies, s)
		}
	}
	for _, log := range data.AnimalLogs {
		speciesName := ""
		if s, ok := species[log.SpeciesID]; ok {
			speciesName = s.Name
		}
		if matches(q, log.Type, log.Note, speciesName) {
			out.AnimalLogs = append(out.AnimalLogs, log)
		}
	}
	return out
}

func matches(q string, fields ...string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
