// ABOUTME: Tests for Bundle and Backup helpers.
package models

import (
	"reflect"
	"testing"
)

func TestBundleItemKeys(t *testing.T) {
	b := &Bundle{Key: "breakfast", Data: map[string]float64{"oats": 60, "milk": 200, "banana": 120}}

	got := b.ItemKeys()
	want := []string{"banana", "milk", "oats"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ItemKeys() = %v, want %v", got, want)
	}
}

func TestBackupLenAndFoodConversion(t *testing.T) {
	b := &Backup{
		Weight:       []WeightBackup{{UserID: 1, Timestamp: 1, Value: 80}},
		Food:         []FoodBackup{{Key: "apple", Name: "Apple", Cal100: 52, Comment: "green"}},
		UserSettings: []UserSettingsBackup{{UserID: 1, CalLimit: 2000}, {UserID: 2, CalLimit: 1800}},
	}

	if got := b.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4", got)
	}

	f := b.Food[0].Food()
	want := Food{Key: "apple", Name: "Apple", Cal100: 52, Comment: "green"}
	if f != want {
		t.Errorf("Food() = %+v, want %+v", f, want)
	}
}
