package console

import "interest-calc/domain"

func domainInput(p, r, t float64) domain.SimpleInput {
	return domain.SimpleInput{Principal: p, Rate: r, Time: t}
}

func domainResult(interest, total float64) domain.SimpleResult {
	return domain.SimpleResult{Interest: interest, TotalAmount: total}
}
