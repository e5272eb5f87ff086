package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString represents a wall-clock time of day in "HH:MM" format.
// It is stored as a plain string so it can be compared lexicographically
// and written to a TIME column without timezone conversions.
type TimeString string

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")
)

const timeLayout = "15:04"

// NewTimeString создает TimeString из time.Time (отбрасывает секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	t := TimeString(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// IsZero returns true if the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks the strict zero-padded "HH:MM" format. time.Parse alone
// accepts "9:00", which would break lexicographic comparison ("9:00" sorts
// after "14:45"), so the length is enforced too.
func (t TimeString) Validate() error {
	if len(t) != 5 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes returns the number of minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes returns a new TimeString shifted forward by the given number
// of minutes. The result is clamped to the same day (23:59 max is not
// enforced; 24:00 and beyond wrap via modulo is NOT applied - values past
// midnight are capped at "23:59" to keep same-day comparisons meaningful).
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total += minutes
	if total > 23*60+59 {
		total = 23*60 + 59
	}
	if total < 0 {
		total = 0
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore reports whether t is strictly earlier than other.
// Lexicographic comparison is correct for zero-padded "HH:MM".
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Value implements driver.Valuer for writing to TIME columns.
func (t TimeString) Value() (driver.Value, error) {
	if t == "" {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner. Accepts TIME columns returned either as
// strings ("10:00:00") or as time.Time.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// TIME колонки приходят как "10:00:00", отрезаем секунды
	if len(s) >= 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
