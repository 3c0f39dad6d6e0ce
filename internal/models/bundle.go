// ABOUTME: Bundle model: a user-owned meal template of quantified items.
// ABOUTME: Items are food keys with a weight or nested bundle keys with zero.
package models

import "sort"

// Bundle maps item names to quantities. A food item maps its key to a weight
// in grams; a nested bundle maps its key to 0.
type Bundle struct {
	Key  string             `json:"key" yaml:"key"`
	Data map[string]float64 `json:"data" yaml:"data"`
}

// ItemKeys returns the bundle item names in sorted order.
func (b *Bundle) ItemKeys() []string {
	keys := make([]string, 0, len(b.Data))
	for k := range b.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
