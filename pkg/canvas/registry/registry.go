// Package registry is the static catalog of placeable object types.
// The catalog is loaded once at init and never mutated, so lookups are
// safe from any goroutine.
package registry

// TypeMeta describes one placeable object type.
type TypeMeta struct {
	ID int
	// OffsetX and OffsetY shift the rendered sprite relative to the
	// stored position, in world units at scale 1.
	OffsetX float64
	OffsetY float64
	// Solid types snap to the grid and may only be rotated in right
	// angles.
	Solid bool
	// Tintable types accept arbitrary colors; non-tintable types must
	// keep the neutral tint.
	Tintable bool
	Category string
}

var byID map[int]TypeMeta

func init() {
	byID = make(map[int]TypeMeta, len(objectTypes))
	for _, meta := range objectTypes {
		byID[meta.ID] = meta
	}
}

// Lookup returns the metadata for a type id. Callers must treat a false
// return as an invalid type.
func Lookup(id int) (TypeMeta, bool) {
	meta, ok := byID[id]
	return meta, ok
}

// Count returns the number of registered object types.
func Count() int {
	return len(byID)
}

// Categories returns the distinct category names in catalog order.
func Categories() []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, meta := range objectTypes {
		if _, ok := seen[meta.Category]; ok {
			continue
		}
		seen[meta.Category] = struct{}{}
		categories = append(categories, meta.Category)
	}
	return categories
}

// CategoryTypes returns the type ids in one category, in catalog order.
func CategoryTypes(category string) []int {
	var ids []int
	for _, meta := range objectTypes {
		if meta.Category == category {
			ids = append(ids, meta.ID)
		}
	}
	return ids
}
