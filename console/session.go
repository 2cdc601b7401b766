package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"

	"interest-calc/domain"
	"interest-calc/service"
)

var (
	// ErrInputClosed is returned when input ends before a field is valid.
	ErrInputClosed = errors.New("input closed before a valid value was entered")
	// ErrTooManyAttempts is returned when a field exhausts its attempt budget.
	ErrTooManyAttempts = errors.New("too many invalid attempts")
)

// Field describes one value collected from the user.
type Field struct {
	Name   string
	Prompt string
	Parse  func(string) (float64, error)
}

var (
	PrincipalField = Field{
		Name:   service.FieldPrincipal,
		Prompt: "Enter the principal amount: ",
		Parse:  service.ParsePrincipal,
	}
	RateField = Field{
		Name:   service.FieldRate,
		Prompt: "Enter the annual interest rate (as a decimal, e.g., 0.05 for 5%): ",
		Parse:  service.ParseRate,
	}
	TimeField = Field{
		Name:   service.FieldTime,
		Prompt: "Enter the time period in years: ",
		Parse:  service.ParseTime,
	}
)

// Acquire prompts for f until the input parses, printing the reason for
// every rejection. maxAttempts <= 0 retries without limit; the loop still
// ends on ctx cancellation or end of input.
func Acquire(ctx context.Context, r LineReader, out io.Writer, f Field, maxAttempts int) (float64, error) {
	for attempt := 1; maxAttempts <= 0 || attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		line, err := r.ReadLine(ctx, f.Prompt)
		switch {
		case errors.Is(err, io.EOF):
			return 0, fmt.Errorf("%s: %w", f.Name, ErrInputClosed)
		case errors.Is(err, ErrLineTooLong):
			err = &service.CalcError{
				Kind:    service.KindType,
				Field:   f.Name,
				Message: "Input is too long. Please enter a numeric value.",
			}
		case err != nil:
			return 0, fmt.Errorf("reading %s: %w", f.Name, err)
		default:
			var v float64
			if v, err = f.Parse(line); err == nil {
				return v, nil
			}
		}
		if _, werr := fmt.Fprintf(out, "Error: %s\n", rejection(err)); werr != nil {
			return 0, werr
		}
	}
	return 0, fmt.Errorf("%s: %w (%d)", f.Name, ErrTooManyAttempts, maxAttempts)
}

func rejection(err error) string {
	var ce *service.CalcError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}

// Session runs the interactive simple interest calculator.
type Session struct {
	Reader      LineReader
	Out         io.Writer
	MaxAttempts int
	Logger      *slog.Logger
}

// Run collects principal, rate and time, then prints the calculation.
func (s *Session) Run(ctx context.Context) (domain.SimpleResult, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var input domain.SimpleInput
	for _, step := range []struct {
		field Field
		dst   *float64
	}{
		{PrincipalField, &input.Principal},
		{RateField, &input.Rate},
		{TimeField, &input.Time},
	} {
		v, err := Acquire(ctx, s.Reader, s.Out, step.field, s.MaxAttempts)
		if err != nil {
			logger.Debug("simple interest session aborted", "field", step.field.Name, "error", err)
			return domain.SimpleResult{}, err
		}
		*step.dst = v
	}

	result := service.SimpleInterest(input)
	logger.Debug("simple interest calculated",
		"principal", input.Principal, "rate", input.Rate, "time", input.Time,
		"interest", result.Interest)

	if err := WriteSimpleSummary(s.Out, input, result); err != nil {
		return domain.SimpleResult{}, err
	}
	return result, nil
}

// Money renders an amount with two decimal places. Rounding works on the
// exact binary value of v and breaks ties to even, so 2.675 renders as 2.67.
func Money(v float64) string {
	return fixed2(v)
}

// Percent renders a decimal fraction as a percentage with two decimal places.
func Percent(rate float64) string {
	return fixed2(rate * 100)
}

func fixed2(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	// 1100 fractional digits hold any float64 without loss.
	d, err := decimal.NewFromString(new(big.Float).SetFloat64(v).Text('f', 1100))
	if err != nil {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return d.RoundBank(2).StringFixed(2)
}

// WriteSimpleSummary prints the result block shown after a calculation.
func WriteSimpleSummary(w io.Writer, input domain.SimpleInput, result domain.SimpleResult) error {
	_, err := fmt.Fprintf(w, "\nSimple Interest Calculation:\n"+
		"--------------------------\n"+
		"Principal Amount: $%s\n"+
		"Annual Interest Rate: %s%%\n"+
		"Time Period: %s years\n"+
		"Simple Interest: $%s\n"+
		"Total Amount (Principal + Interest): $%s\n",
		Money(input.Principal),
		Percent(input.Rate),
		fixed2(input.Time),
		Money(result.Interest),
		Money(result.TotalAmount),
	)
	return err
}
