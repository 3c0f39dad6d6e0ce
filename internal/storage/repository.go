// ABOUTME: Storage interface for health data and the validation contract it consults.
// ABOUTME: Defines get/set/delete/list per entity plus backup and restore.
package storage

import (
	"context"
	"time"

	"github.com/harperreed/myhealth/internal/models"
)

// Storage defines the persistence contract for health data.
// This interface allows swapping implementations (e.g., for testing).
//
// Single lookups that find nothing fail with KindNotFound; listings and
// searches that find nothing fail with KindEmptyList. Deletes of missing
// records succeed.
type Storage interface {
	// Food catalog
	GetFood(ctx context.Context, key string) (*models.Food, error)
	GetFoodList(ctx context.Context) ([]models.Food, error)
	FindFood(ctx context.Context, pattern string) ([]models.Food, error)
	SetFood(ctx context.Context, food *models.Food) error
	DeleteFood(ctx context.Context, key string) error

	// Bundles
	GetBundle(ctx context.Context, userID int64, key string) (*models.Bundle, error)
	GetBundleList(ctx context.Context, userID int64) ([]models.Bundle, error)
	SetBundle(ctx context.Context, userID int64, bundle *models.Bundle) error
	DeleteBundle(ctx context.Context, userID int64, key string) error

	// Weight
	GetWeight(ctx context.Context, userID int64, timestamp time.Time) (*models.Weight, error)
	GetWeightList(ctx context.Context, userID int64, from, to time.Time) ([]models.Weight, error)
	SetWeight(ctx context.Context, userID int64, weight *models.Weight) error
	DeleteWeight(ctx context.Context, userID int64, timestamp time.Time) error

	// User settings
	GetUserSettings(ctx context.Context, userID int64) (*models.UserSettings, error)
	SetUserSettings(ctx context.Context, userID int64, settings *models.UserSettings) error

	// Sport catalog
	GetSport(ctx context.Context, key string) (*models.Sport, error)
	GetSportList(ctx context.Context) ([]models.Sport, error)
	SetSport(ctx context.Context, sport *models.Sport) error
	DeleteSport(ctx context.Context, key string) error

	// Sport activity
	SetSportActivity(ctx context.Context, userID int64, activity *models.SportActivity) error
	DeleteSportActivity(ctx context.Context, userID int64, timestamp time.Time, sportKey string) error
	GetSportActivityReport(ctx context.Context, userID int64, from, to time.Time) ([]models.SportActivityReport, error)

	// Meal journal
	SetJournal(ctx context.Context, userID int64, journal *models.Journal) error
	SetJournalBundle(ctx context.Context, userID int64, timestamp time.Time, meal models.Meal, bundleKey string) error
	DeleteJournal(ctx context.Context, userID int64, timestamp time.Time, meal models.Meal, foodKey string) error
	DeleteJournalMeal(ctx context.Context, userID int64, timestamp time.Time, meal models.Meal) error
	DeleteJournalBundle(ctx context.Context, userID int64, timestamp time.Time, meal models.Meal, bundleKey string) error
	GetJournalReport(ctx context.Context, userID int64, from, to time.Time) ([]models.JournalReport, error)
	CopyJournal(ctx context.Context, userID int64, from time.Time, mealFrom models.Meal, to time.Time, mealTo models.Meal) (int, error)
	GetJournalFoodStat(ctx context.Context, userID int64, foodKey string) (*models.JournalFoodStat, error)

	// Day calories, eaten and burned
	GetDayTotalCal(ctx context.Context, userID int64, day time.Time) (float64, error)
	SetDayTotalCal(ctx context.Context, userID int64, day time.Time, cal float64) error
	DeleteDayTotalCal(ctx context.Context, userID int64, day time.Time) error
	GetTotalBurnedCal(ctx context.Context, userID int64, day time.Time) (float64, error)
	SetTotalBurnedCal(ctx context.Context, userID int64, day time.Time, cal float64) error
	DeleteTotalBurnedCal(ctx context.Context, userID int64, day time.Time) error

	// Backup/restore
	Backup(ctx context.Context) (*models.Backup, error)
	Restore(ctx context.Context, backup *models.Backup) error

	// IsStorageError classifies an error returned by this storage.
	IsStorageError(kind ErrorKind, err error) bool

	// Lifecycle
	Close() error
}

// Validator decides whether a value may be persisted. A non-nil error
// rejects the value and explains why.
type Validator interface {
	Food(f *models.Food) error
	Weight(w *models.Weight) error
	Sport(s *models.Sport) error
	SportActivity(a *models.SportActivity) error
	UserSettings(us *models.UserSettings) error
	Bundle(b *models.Bundle) error
	Journal(j *models.Journal) error
	Calories(cal float64) error
}

var defaultValidator Validator = models.Validator{}

// IsStorageError classifies an error returned by this storage.
func (d *DB) IsStorageError(kind ErrorKind, err error) bool {
	return IsStorageError(kind, err)
}
