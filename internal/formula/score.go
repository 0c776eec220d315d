package formula

import (
	"math"
	"strings"
)

// EconomicScore computes the economic points an offer earns. It is total:
// whatever the formula text contains, the result is a number in
// [0, maxScore].
//
// Policy, in order:
//   - price, tenderBudget or maxScore not positive: 0 points.
//   - empty formula: proportional default, min(maxScore,
//     maxScore*lowestPrice/price), or 0 when no lowest price is known.
//   - the formula is normalized and evaluated; an evaluation failure or a
//     negative result (a negative score means the offer fails the formula's
//     admission condition) falls back to the proportional default, but only
//     when a lowest price is known and the offer does not exceed the budget.
//   - the result is clamped to [0, maxScore].
func EconomicScore(price, tenderBudget, maxScore, lowestPrice float64, formulaText string) float64 {
	if price <= 0 || tenderBudget <= 0 || maxScore <= 0 {
		return 0
	}
	if strings.TrimSpace(formulaText) == "" {
		return proportional(price, maxScore, lowestPrice)
	}

	normalized := Normalize(formulaText)
	score, err := Evaluate(normalized, Vars{
		Price:        price,
		TenderBudget: tenderBudget,
		MaxScore:     maxScore,
		LowestPrice:  lowestPrice,
	})
	if err != nil || score < 0 {
		if lowestPrice > 0 && price <= tenderBudget {
			return proportional(price, maxScore, lowestPrice)
		}
		return 0
	}
	return math.Min(score, maxScore)
}

func proportional(price, maxScore, lowestPrice float64) float64 {
	if lowestPrice <= 0 {
		return 0
	}
	return math.Min(maxScore, maxScore*lowestPrice/price)
}
