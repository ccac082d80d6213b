package core

// FarmData is the full application state: one farm's books. It is the
// unit of persistence and travels as a single JSON document.
type FarmData struct {
	FarmName       string          `json:"farmName"`
	Transactions   []Transaction   `json:"transactions"`
	Categories     []Category      `json:"categories"`
	Accounts       []Account       `json:"accounts"`
	AnimalSpecies  []AnimalSpecies `json:"animalSpecies"`
	AnimalLogs     []AnimalLog     `json:"animalLogs"`
	InventoryItems []InventoryItem `json:"inventoryItems"`
	Assets         []Asset         `json:"assets"`
	Liabilities    []Liability     `json:"liabilities"`
}

// Clone returns a deep copy. All entity types are value types, so
// copying the slices is enough.
func (d *FarmData) Clone() *FarmData {
	if d == nil {
		return nil
	}
	out := &FarmData{FarmName: d.FarmName}
	out.Transactions = append([]Transaction(nil), d.Transactions...)
	out.Categories = append([]Category(nil), d.Categories...)
	out.Accounts = append([]Account(nil), d.Accounts...)
	out.AnimalSpecies = append([]AnimalSpecies(nil), d.AnimalSpecies...)
	out.AnimalLogs = append([]AnimalLog(nil), d.AnimalLogs...)
	out.InventoryItems = append([]InventoryItem(nil), d.InventoryItems...)
	out.Assets = append([]Asset(nil), d.Assets...)
	out.Liabilities = append([]Liability(nil), d.Liabilities...)
	return out
}

// AccountIndex builds an ID lookup for accounts. Aggregations resolve
// accounts through this map instead of scanning the slice per transaction.
func AccountIndex(accounts []Account) map[string]Account {
	idx := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		idx[a.ID] = a
	}
	return idx
}

// CategoryIndex builds an ID lookup for categories.
func CategoryIndex(categories []Category) map[string]Category {
	idx := make(map[string]Category, len(categories))
	for _, c := range categories {
		idx[c.ID] = c
	}
	return idx
}

// SpeciesIndex builds an ID lookup for animal species.
func SpeciesIndex(species []AnimalSpecies) map[string]AnimalSpecies {
	idx := make(map[string]AnimalSpecies, len(species))
	for _, s := range species {
		idx[s.ID] = s
	}
	return idx
}
