// ABOUTME: Food catalog model with per-100g macro nutrients.
// ABOUTME: Foods are global and identified by a unique key.
package models

// Food is a catalog entry. Macros are per 100 grams.
type Food struct {
	Key     string  `json:"key" yaml:"key"`
	Name    string  `json:"name" yaml:"name"`
	Brand   string  `json:"brand" yaml:"brand"`
	Cal100  float64 `json:"cal100" yaml:"cal100"`
	Prot100 float64 `json:"prot100" yaml:"prot100"`
	Fat100  float64 `json:"fat100" yaml:"fat100"`
	Carb100 float64 `json:"carb100" yaml:"carb100"`
	Comment string  `json:"comment" yaml:"comment"`
}
