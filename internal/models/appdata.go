package models

// AppData represents the full editable menu definition: ordered categories
// plus ordered percentage modifiers. It is the single unit of serialization,
// caching and sharing; category and item order is display-significant.
type AppData struct {
	Categories []Category `json:"categories"`
	Modifiers  []Modifier `json:"modifiers"`
}

// FindCategory looks up a category by id
func (a *AppData) FindCategory(catID string) (*Category, bool) {
	for i := range a.Categories {
		if a.Categories[i].ID == catID {
			return &a.Categories[i], true
		}
	}
	return nil, false
}

// FindModifier looks up a modifier by id
func (a *AppData) FindModifier(modID string) (*Modifier, bool) {
	for i := range a.Modifiers {
		if a.Modifiers[i].ID == modID {
			return &a.Modifiers[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy sharing no slices with the receiver
func (a *AppData) Clone() *AppData {
	out := &AppData{
		Categories: make([]Category, len(a.Categories)),
		Modifiers:  make([]Modifier, len(a.Modifiers)),
	}
	copy(out.Modifiers, a.Modifiers)
	for i, cat := range a.Categories {
		items := make([]MenuItem, len(cat.Items))
		copy(items, cat.Items)
		out.Categories[i] = Category{ID: cat.ID, Title: cat.Title, Items: items}
	}
	return out
}

// DefaultAppData returns the built-in starter menu used when neither a share
// token nor a cached configuration is available.
func DefaultAppData() *AppData {
	return &AppData{
		Categories: []Category{
			{
				ID:    "cat-basic",
				Title: "Basic",
				Items: []MenuItem{
					{ID: "item-base", Name: "Base service", Price: 500, Kind: ItemKindToggle},
					{ID: "item-extra", Name: "Extra unit", Price: 300, Kind: ItemKindCounter},
				},
			},
		},
		Modifiers: []Modifier{
			{ID: "mod-rush", Name: "Rush fee", Percent: 20},
		},
	}
}
