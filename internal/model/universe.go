package model

// Category is a named basket of symbols scanned together.
type Category struct {
	Key     string   `yaml:"key" json:"key"`
	Label   string   `yaml:"label" json:"label"`
	Symbols []string `yaml:"symbols" json:"symbols"`
}

// Universe is the ordered set of configured categories. It is read-only once loaded.
type Universe []Category

// Lookup finds a category by key.
func (u Universe) Lookup(key string) (Category, bool) {
	for _, c := range u {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// Keys lists category keys in configured order.
func (u Universe) Keys() []string {
	keys := make([]string, len(u))
	for i, c := range u {
		keys[i] = c.Key
	}
	return keys
}

// SymbolCount counts symbols across all categories, duplicates included.
func (u Universe) SymbolCount() int {
	n := 0
	for _, c := range u {
		n += len(c.Symbols)
	}
	return n
}
