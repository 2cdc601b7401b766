package service

const (
	FieldPrincipal = "principal"
	FieldRate      = "rate"
	FieldTime      = "time"
	FieldFrequency = "compounding_frequency"

	FieldFutureValue = "future_value"
	FieldTotalAmount = "total_amount"
)

// Named compounding frequencies, in events per year.
const (
	Annually     = 1
	Semiannually = 2
	Quarterly    = 4
	Monthly      = 12
	Weekly       = 52
	Daily        = 365
)

const (
	MinRate = 0.0 // simple interest rate lower bound, inclusive
	MaxRate = 1.0 // simple interest rate upper bound, inclusive
)
