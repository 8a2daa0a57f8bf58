// Package item defines the marketplace listing record shared by the
// terminal client and the items API.
package item

import "fmt"

// Item is a marketplace listing.
type Item struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	ImageName string `json:"image_name"`
}

// List is the wire shape of GET /items.
type List struct {
	Items []Item `json:"items"`
}

// Key returns the reconciliation key for a rendered block.
func (i Item) Key() string {
	return fmt.Sprintf("item-%d", i.ID)
}

// Validate reports whether the fields required to list an item are present.
func (i Item) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("item: name is required")
	}
	if i.Category == "" {
		return fmt.Errorf("item: category is required")
	}
	return nil
}
