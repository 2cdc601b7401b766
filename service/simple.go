package service

import (
	"math"
	"strconv"
	"strings"

	"interest-calc/domain"
)

// parseNumber parses a user-entered decimal. NaN and infinities are not
// accepted as amounts.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParsePrincipal parses a principal amount, which must not be negative.
func ParsePrincipal(s string) (float64, error) {
	p, ok := parseNumber(s)
	if !ok {
		return 0, typeError(FieldPrincipal, "Invalid input. Please enter a numeric value for the principal.")
	}
	return p, checkPrincipal(p)
}

// ParseRate parses an annual rate given as a decimal fraction in [0, 1].
func ParseRate(s string) (float64, error) {
	r, ok := parseNumber(s)
	if !ok {
		return 0, typeError(FieldRate, "Invalid input. Please enter a numeric value for the interest rate.")
	}
	return r, checkRate(r)
}

// ParseTime parses a period in years, which must be positive.
func ParseTime(s string) (float64, error) {
	t, ok := parseNumber(s)
	if !ok {
		return 0, typeError(FieldTime, "Invalid input. Please enter a numeric value for the time period.")
	}
	return t, checkTime(t)
}

func checkPrincipal(p float64) error {
	if p < 0 {
		return valueError(FieldPrincipal, "Principal amount cannot be negative.")
	}
	return nil
}

func checkRate(r float64) error {
	if r < MinRate || r > MaxRate {
		return valueError(FieldRate, "Invalid interest rate. Please enter a decimal between 0 and 1.")
	}
	return nil
}

func checkTime(t float64) error {
	if t <= 0 {
		return valueError(FieldTime, "Time period must be a positive number.")
	}
	return nil
}

// ValidateSimple applies the interactive field rules to an already typed input.
func ValidateSimple(input domain.SimpleInput) error {
	for _, f := range []struct {
		v     float64
		field string
		check func(float64) error
	}{
		{input.Principal, FieldPrincipal, checkPrincipal},
		{input.Rate, FieldRate, checkRate},
		{input.Time, FieldTime, checkTime},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return valueError(f.field, "Value must be a finite number.")
		}
		if err := f.check(f.v); err != nil {
			return err
		}
	}
	return nil
}

// SimpleInterest computes I = P * R * T and A = P + I.
func SimpleInterest(input domain.SimpleInput) domain.SimpleResult {
	interest := input.Principal * input.Rate * input.Time
	return domain.SimpleResult{
		Interest:    interest,
		TotalAmount: input.Principal + interest,
	}
}
