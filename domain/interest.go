package domain

// CompoundInput holds the arguments of a compound interest calculation.
type CompoundInput struct {
	Principal            float64 `json:"principal"`
	Rate                 float64 `json:"rate"`
	Time                 float64 `json:"time"`
	CompoundingFrequency int     `json:"compounding_frequency"`
}

// CompoundResult is the future value of a CompoundInput and the interest
// earned on top of the principal.
type CompoundResult struct {
	FutureValue float64 `json:"future_value"`
	Interest    float64 `json:"interest"`
}

// SimpleInput holds the arguments of a simple interest calculation.
type SimpleInput struct {
	Principal float64 `json:"principal"`
	Rate      float64 `json:"rate"`
	Time      float64 `json:"time"`
}

// SimpleResult holds the interest earned and the principal plus interest.
type SimpleResult struct {
	Interest    float64 `json:"interest"`
	TotalAmount float64 `json:"total_amount"`
}
