package services

import (
	"math"

	"redfin-finder/config"
)

// NetMonthlyCost estimates the owner's monthly outlay after the rental
// offset: mortgage payment, fee, property tax, insurance, utilities and
// internet, minus offset. The result is rounded half up to cents.
func NetMonthlyCost(price, hoa, offset int, a config.Assumptions) float64 {
	p := float64(price)
	loan := p * (1 - a.DownPaymentPct)
	n := float64(a.LoanTermYears * 12)
	r := a.InterestRate / 12

	var payment float64
	if r > 0 {
		growth := math.Pow(1+r, n)
		payment = loan * r * growth / (growth - 1)
	} else {
		payment = loan / n
	}

	total := payment + float64(hoa) + p*a.PropertyTaxRate/12 +
		a.InsuranceMonthly + a.UtilitiesMonthly + a.InternetMonthly
	return round2(total - float64(offset))
}

// round2 rounds half up to two decimals.
func round2(f float64) float64 {
	return math.Floor(f*100+0.5) / 100
}
