package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrEmptyDescription  = errors.New("empty description")
	ErrEmptyCategory     = errors.New("empty category name")
	ErrDuplicateCategory = errors.New("duplicate category")
	ErrNotFound          = errors.New("not found")
)

type (
	// CategoryName references a category by name. The reference is not
	// enforced: an entry may keep the name of a category that has been
	// removed from the registry, and such orphan names still aggregate.
	CategoryName string

	Date struct {
		time.Time
	}

	// Entry is a single recorded expense. ID is assigned at creation and
	// never changes; all other fields are editable.
	Entry struct {
		ID       string
		Date     Date
		Amount   decimal.Decimal
		Category CategoryName
		Location string
		What     string
	}
)

// Key returns the case-insensitive identity of a category name.
func (c CategoryName) Key() string {
	return strings.ToLower(strings.TrimSpace(string(c)))
}

func (c CategoryName) IsEmpty() bool {
	return strings.TrimSpace(string(c)) == ""
}

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a string in the YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Month returns the month the date belongs to. Month membership of an
// entry is always derived through here, never recomputed ad hoc.
func (d Date) Month() Month {
	return MonthOf(d.Time)
}

func (e Entry) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.What)) == 0 {
		return ErrEmptyDescription
	}
	return nil
}

// Month returns the month the entry belongs to, derived from its date.
func (e Entry) Month() Month {
	return e.Date.Month()
}
