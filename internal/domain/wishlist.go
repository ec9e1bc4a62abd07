package domain

import (
	"encoding/json"
	"slices"
)

// WishlistKey is the persistence slot holding the wishlist.
const WishlistKey = "wishlist"

// WishlistAction describes the effect of a toggle.
type WishlistAction string

const (
	WishlistAdded   WishlistAction = "added"
	WishlistRemoved WishlistAction = "removed"
)

// Message is the confirmation shown after a toggle.
func (a WishlistAction) Message() string {
	if a == WishlistAdded {
		return "Added to wishlist"
	}
	return "Removed from wishlist"
}

// Wishlist is an insertion-ordered set of product ids. The zero value is an
// empty wishlist. Values are immutable: Toggle returns a new Wishlist.
//
// Ids are not checked against the catalog, so a wishlist may hold ids of
// products that no longer exist.
type Wishlist struct {
	ids []string
}

// NewWishlist builds a wishlist from ids, keeping the first occurrence of
// any duplicate.
func NewWishlist(ids []string) Wishlist {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return Wishlist{ids: out}
}

// Contains reports membership.
func (w Wishlist) Contains(id string) bool {
	return slices.Contains(w.ids, id)
}

// IDs returns the ids in insertion order.
func (w Wishlist) IDs() []string {
	if w.ids == nil {
		return []string{}
	}
	return slices.Clone(w.ids)
}

// Len returns the number of ids.
func (w Wishlist) Len() int {
	return len(w.ids)
}

// Toggle removes id if present, otherwise appends it.
func (w Wishlist) Toggle(id string) (Wishlist, WishlistAction) {
	if i := slices.Index(w.ids, id); i >= 0 {
		return Wishlist{ids: slices.Delete(slices.Clone(w.ids), i, i+1)}, WishlistRemoved
	}
	return Wishlist{ids: append(slices.Clone(w.ids), id)}, WishlistAdded
}

// MarshalJSON encodes the wishlist as a JSON array of ids.
func (w Wishlist) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.IDs())
}

// UnmarshalJSON decodes a JSON array of ids. null yields an empty wishlist.
func (w *Wishlist) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*w = NewWishlist(ids)
	return nil
}
