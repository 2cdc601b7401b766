package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"interest-calc/domain"
)

// CompoundInterest returns the future value of principal after time years
// at the annual rate, compounded frequency times per year:
//
//	A = P * (1 + r/n)^(n*t)
//
// A negative time is accepted and discounts the principal. A future value
// that overflows float64 is reported as a KindValue error.
func CompoundInterest(principal, rate, time float64, frequency int) (float64, error) {
	if rate <= 0 {
		return 0, valueError(FieldRate, "Interest rate must be a positive value.")
	}
	if frequency <= 0 {
		return 0, valueError(FieldFrequency, "Compounding frequency must be a positive integer.")
	}

	n := float64(frequency)
	fv := principal * math.Pow(1+rate/n, n*time)
	if math.IsInf(fv, 0) || math.IsNaN(fv) {
		return 0, valueError(FieldFutureValue, msgNotRepresentable)
	}
	return fv, nil
}

// CompoundInterestValues is CompoundInterest for untyped inputs such as
// decoded JSON. It reports a KindType error when principal, rate or time
// is not a number, or when frequency is not an integer.
func CompoundInterestValues(principal, rate, time, frequency any) (float64, error) {
	input, err := compoundInput(principal, rate, time, frequency)
	if err != nil {
		return 0, err
	}
	return CompoundInterest(input.Principal, input.Rate, input.Time, input.CompoundingFrequency)
}

func compoundInput(principal, rate, time, frequency any) (domain.CompoundInput, error) {
	p, ok := toNumber(principal)
	if !ok {
		return domain.CompoundInput{}, typeError(FieldPrincipal, "Principal must be a numeric value.")
	}
	r, ok := toNumber(rate)
	if !ok {
		return domain.CompoundInput{}, typeError(FieldRate, "Interest rate must be a numeric value.")
	}
	t, ok := toNumber(time)
	if !ok {
		return domain.CompoundInput{}, typeError(FieldTime, "Time must be a numeric value.")
	}
	n, ok := toInteger(frequency)
	if !ok {
		return domain.CompoundInput{}, typeError(FieldFrequency, "Compounding frequency must be an integer.")
	}
	return domain.CompoundInput{Principal: p, Rate: r, Time: t, CompoundingFrequency: n}, nil
}

// Frequency is a named compounding schedule.
type Frequency struct {
	Name    string
	PerYear int
}

// Frequencies lists the named schedules from least to most frequent.
var Frequencies = []Frequency{
	{"annually", Annually},
	{"semiannually", Semiannually},
	{"quarterly", Quarterly},
	{"monthly", Monthly},
	{"weekly", Weekly},
	{"daily", Daily},
}

// ParseFrequency accepts a schedule name ("monthly") or a positive integer.
func ParseFrequency(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range Frequencies {
		if f.Name == s {
			return f.PerYear, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, typeError(FieldFrequency, "Compounding frequency must be an integer.")
	}
	if n <= 0 {
		return 0, valueError(FieldFrequency, "Compounding frequency must be a positive integer.")
	}
	return n, nil
}

// FrequencyName returns the schedule name for n, or "n times per year".
func FrequencyName(n int) string {
	for _, f := range Frequencies {
		if f.PerYear == n {
			return f.Name
		}
	}
	return fmt.Sprintf("%d times per year", n)
}
