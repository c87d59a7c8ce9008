// Package core holds the ledger domain types and their validation rules.
//
// This file contains amount parsing and normalization. Entry amounts are
// strict (must parse to a finite decimal greater than zero); budget
// values are lenient (anything unparseable or negative normalizes to 0).
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a raw amount string to a decimal value.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Empty strings, non-numeric input, and values that are not strictly
// positive are rejected.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("0")     -> error
//	ParseAmount("abc")   -> error
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ValidateAmount reports whether d is a legal entry amount.
func ValidateAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// NormalizeBudget converts a raw budget value to a non-negative decimal.
// It never rejects: parse failures and negative values normalize to 0.
func NormalizeBudget(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
