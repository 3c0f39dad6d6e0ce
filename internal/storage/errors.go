// ABOUTME: Domain error kinds returned by the storage engine.
// ABOUTME: Callers classify failures with IsStorageError instead of inspecting driver errors.
package storage

import (
	"errors"
	"fmt"
)

// ErrorKind is a closed set of storage failure categories.
type ErrorKind uint8

const (
	// KindInternal covers infrastructure failures: I/O, schema, connection.
	KindInternal ErrorKind = iota
	KindNotFound
	KindEmptyList
	KindInvalidFood
	KindInvalidWeight
	KindInvalidSport
	KindInvalidUserSettings
	KindInvalidSportActivity
	KindInvalidBundle
	// KindInvalidSportReference means a write referenced a sport that does not exist.
	KindInvalidSportReference
	// KindSportIsUsed means a sport delete was blocked by existing activities.
	KindSportIsUsed
	// KindMalformedData means a stored JSON column could not be decoded.
	KindMalformedData
	KindInvalidJournal
	// KindInvalidFoodReference means a journal write referenced a food that does not exist.
	KindInvalidFoodReference
	// KindFoodIsUsed means a food delete was blocked by journal entries.
	KindFoodIsUsed
	KindInvalidCalories
)

var kindNames = map[ErrorKind]string{
	KindInternal:              "internal error",
	KindNotFound:              "not found",
	KindEmptyList:             "empty list",
	KindInvalidFood:           "invalid food",
	KindInvalidWeight:         "invalid weight",
	KindInvalidSport:          "invalid sport",
	KindInvalidUserSettings:   "invalid user settings",
	KindInvalidSportActivity:  "invalid sport activity",
	KindInvalidBundle:         "invalid bundle",
	KindInvalidSportReference: "invalid sport reference",
	KindSportIsUsed:           "sport is used",
	KindMalformedData:         "malformed data",
	KindInvalidJournal:        "invalid journal",
	KindInvalidFoodReference:  "invalid food reference",
	KindFoodIsUsed:            "food is used",
	KindInvalidCalories:       "invalid calories",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Error is the only error type that leaves an entity operation.
type Error struct {
	Kind ErrorKind
	// Op names what was being attempted, e.g. "get food".
	Op  string
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "storage: " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Err == nil
}

// Sentinels for errors.Is.
var (
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrEmptyList             = &Error{Kind: KindEmptyList}
	ErrInvalidFood           = &Error{Kind: KindInvalidFood}
	ErrInvalidWeight         = &Error{Kind: KindInvalidWeight}
	ErrInvalidSport          = &Error{Kind: KindInvalidSport}
	ErrInvalidUserSettings   = &Error{Kind: KindInvalidUserSettings}
	ErrInvalidSportActivity  = &Error{Kind: KindInvalidSportActivity}
	ErrInvalidBundle         = &Error{Kind: KindInvalidBundle}
	ErrInvalidSportReference = &Error{Kind: KindInvalidSportReference}
	ErrSportIsUsed           = &Error{Kind: KindSportIsUsed}
	ErrMalformedData         = &Error{Kind: KindMalformedData}
	ErrInvalidJournal        = &Error{Kind: KindInvalidJournal}
	ErrInvalidFoodReference  = &Error{Kind: KindInvalidFoodReference}
	ErrFoodIsUsed            = &Error{Kind: KindFoodIsUsed}
	ErrInvalidCalories       = &Error{Kind: KindInvalidCalories}
)

// IsStorageError reports whether err carries a storage failure of the given
// kind. Errors that did not come from the storage engine report false.
func IsStorageError(kind ErrorKind, err error) bool {
	var se *Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Kind == kind
}

// IsNothingFound reports whether err means a lookup or listing found nothing.
func IsNothingFound(err error) bool {
	return IsStorageError(KindNotFound, err) || IsStorageError(KindEmptyList, err)
}

// IsRejectedInput reports whether err means a value was rejected before or by a write.
func IsRejectedInput(err error) bool {
	var se *Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Kind {
	case KindInvalidFood, KindInvalidWeight, KindInvalidSport, KindInvalidUserSettings,
		KindInvalidSportActivity, KindInvalidBundle, KindInvalidSportReference,
		KindInvalidJournal, KindInvalidFoodReference, KindInvalidCalories:
		return true
	}
	return false
}

func newError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// internalError wraps an infrastructure failure. Errors that are already
// classified keep their kind and only gain the operation label.
func internalError(op string, err error) error {
	var se *Error
	if errors.As(err, &se) {
		if se.Op == "" {
			return &Error{Kind: se.Kind, Op: op, Err: se.Err}
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return &Error{Kind: KindInternal, Op: op, Err: err}
}
