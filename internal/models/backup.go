// ABOUTME: Backup envelope aggregating weight, food, and user settings records.
// ABOUTME: Timestamps are epoch milliseconds to keep the wire format stable.
package models

// Backup is a point-in-time export of all users' records.
type Backup struct {
	Timestamp    int64                `json:"timestamp" yaml:"timestamp"`
	Weight       []WeightBackup       `json:"weight" yaml:"weight"`
	Food         []FoodBackup         `json:"food" yaml:"food"`
	UserSettings []UserSettingsBackup `json:"user_settings" yaml:"user_settings"`
}

// WeightBackup is one weight row of a backup.
type WeightBackup struct {
	UserID    int64   `json:"user_id" yaml:"user_id"`
	Timestamp int64   `json:"timestamp" yaml:"timestamp"`
	Value     float64 `json:"value" yaml:"value"`
}

// FoodBackup is one food row of a backup.
type FoodBackup struct {
	Key     string  `json:"key" yaml:"key"`
	Name    string  `json:"name" yaml:"name"`
	Brand   string  `json:"brand" yaml:"brand"`
	Cal100  float64 `json:"cal100" yaml:"cal100"`
	Prot100 float64 `json:"prot100" yaml:"prot100"`
	Fat100  float64 `json:"fat100" yaml:"fat100"`
	Carb100 float64 `json:"carb100" yaml:"carb100"`
	Comment string  `json:"comment" yaml:"comment"`
}

// Food converts the backup row to a catalog entry.
func (f FoodBackup) Food() Food {
	return Food{
		Key:     f.Key,
		Name:    f.Name,
		Brand:   f.Brand,
		Cal100:  f.Cal100,
		Prot100: f.Prot100,
		Fat100:  f.Fat100,
		Carb100: f.Carb100,
		Comment: f.Comment,
	}
}

// UserSettingsBackup is one user settings row of a backup.
type UserSettingsBackup struct {
	UserID   int64   `json:"user_id" yaml:"user_id"`
	CalLimit float64 `json:"cal_limit" yaml:"cal_limit"`
}

// Len returns the total number of records in the backup.
func (b *Backup) Len() int {
	return len(b.Weight) + len(b.Food) + len(b.UserSettings)
}
