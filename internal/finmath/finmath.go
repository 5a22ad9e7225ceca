// Package finmath provides the compounding and yield calculations
package finmath

import (
	"math"

	"github.com/kay207/money-life/internal/models"
)

// WeightedAverageReturn computes the portfolio-wide annual yield over the
// given items, weighted by each item's current market value. Items without a
// rate contribute at 0%. Returns 0 when the total weighted amount is 0.
func WeightedAverageReturn(items []models.AssetItem) float64 {
	var totalAmount, weightedSum float64
	for _, item := range items {
		weightedSum += item.Amount * item.InterestRate
		totalAmount += item.Amount
	}
	if totalAmount == 0 {
		return 0
	}
	return weightedSum / totalAmount
}

// CompoundForward grows a principal with monthly compounding plus a recurring
// end-of-month contribution (ordinary annuity) over the given number of
// months. annualRatePercent is the annual rate in percent; a zero rate
// degenerates to simple accumulation.
func CompoundForward(principal, monthlyContribution, annualRatePercent float64, months int) float64 {
	r := annualRatePercent / 100 / 12
	if r == 0 {
		return principal + monthlyContribution*float64(months)
	}
	growth := math.Pow(1+r, float64(months))
	return principal*growth + monthlyContribution*((growth-1)/r)
}

// ProjectNetWorth applies simple annual compounding to a net worth figure.
// Used for the dashboard's 5/10-year outlook.
func ProjectNetWorth(netWorth, annualRatePercent float64, years int) float64 {
	return netWorth * math.Pow(1+annualRatePercent/100, float64(years))
}
