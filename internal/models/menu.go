package models

// ItemKind represents how a menu item is counted in a selection
type ItemKind string

const (
	// Item kinds
	ItemKindToggle  ItemKind = "toggle"  // quantity is 0 or 1
	ItemKindCounter ItemKind = "counter" // quantity is any non-negative integer
)

// MenuItem represents a single priced entry on the menu
type MenuItem struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Price int      `json:"price"`
	Kind  ItemKind `json:"kind"`
}

// Category represents an ordered group of menu items
type Category struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Items []MenuItem `json:"items"`
}

// Modifier represents a signed percentage adjustment on the subtotal
type Modifier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Percent int    `json:"percent"`
}

// IsToggle reports whether the item flips between 0 and 1
func (mi *MenuItem) IsToggle() bool {
	return mi.Kind == ItemKindToggle
}

// FindItem looks up an item in the category by id
func (c *Category) FindItem(itemID string) (*MenuItem, bool) {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i], true
		}
	}
	return nil, false
}
