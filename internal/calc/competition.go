package calc

import (
	"github.com/licitaIA/tender-analysis-service/internal/formula"
	"github.com/licitaIA/tender-analysis-service/internal/models"
)

// Winner values for a simulation.
const (
	WinnerOurs       = "ours"
	WinnerCompetitor = "competitor"
	WinnerNone       = "none"
)

// SimulationInput is everything the competitive simulation needs. Numeric
// fields arrive as the same editable strings the cost sheet uses.
type SimulationInput struct {
	Offer    models.Offer               `json:"offer"`
	Settings models.CompetitionSettings `json:"settings"`

	// Economic formula text as extracted from the PCAP; empty selects the
	// default proportional formula.
	EconomicFormula string `json:"economicFormula,omitempty"`

	CompetitorDiscountPercent string `json:"competitorDiscountPercent"`
	CompetitorTechnicalScore  string `json:"competitorTechnicalScore"`
}

// PartyResult is one side of the comparison.
type PartyResult struct {
	TaxableBase     float64 `json:"taxableBase"`
	DiscountAmount  float64 `json:"discountAmount"`
	DiscountPercent float64 `json:"discountPercent"`
	Profit          float64 `json:"profit"`
	MarginPercent   float64 `json:"marginPercent"`
	EconomicScore   float64 `json:"economicScore"`
	TechnicalScore  float64 `json:"technicalScore"`
	TotalScore      float64 `json:"totalScore"`
}

// SimulationResult is the full outcome: our cost chain, both parties side
// by side, the shared reference price and the winner.
type SimulationResult struct {
	Costs       CostBreakdown `json:"costs"`
	Ours        PartyResult   `json:"ours"`
	Competitor  PartyResult   `json:"competitor"`
	LowestPrice float64       `json:"lowestPrice"`
	Winner      string        `json:"winner"`
}

// Simulate compares our cost-built offer against a hypothetical competitor
// who bids the tender budget minus a flat discount. The competitor's cost
// structure is unknown, so their profit is estimated against our subtotal:
// competitorProfit = competitorTaxableBase - ourSubtotal.
func Simulate(in SimulationInput) SimulationResult {
	budget := ParseNumber(in.Settings.TenderBudget)
	maxScore := ParseNumber(in.Settings.MaxEconomicScore)
	vat := ParseNumber(in.Settings.VatPercent)
	discount := ParseNumber(in.CompetitorDiscountPercent)

	costs := ComputeCosts(in.Offer, vat)
	ourPrice := costs.TaxableBase

	var competitorPrice float64
	if budget > 0 {
		competitorPrice = budget * (1 - discount/100)
	}

	lowest := lowestValidPrice(budget, ourPrice, competitorPrice)

	ours := PartyResult{
		TaxableBase:    ourPrice,
		Profit:         costs.Profit,
		MarginPercent:  costs.ProfitMarginPercent,
		EconomicScore:  formula.EconomicScore(ourPrice, budget, maxScore, lowest, in.EconomicFormula),
		TechnicalScore: ParseNumber(in.Offer.TechnicalScore),
	}
	if budget > 0 && ourPrice > 0 {
		ours.DiscountAmount = budget - ourPrice
		ours.DiscountPercent = (budget - ourPrice) / budget * 100
	}
	ours.TotalScore = ours.TechnicalScore + ours.EconomicScore

	competitor := PartyResult{
		TaxableBase:     competitorPrice,
		DiscountPercent: discount,
		Profit:          competitorPrice - costs.Subtotal,
		EconomicScore:   formula.EconomicScore(competitorPrice, budget, maxScore, lowest, in.EconomicFormula),
		TechnicalScore:  ParseNumber(in.CompetitorTechnicalScore),
	}
	if budget > 0 {
		competitor.DiscountAmount = budget * discount / 100
	}
	if competitorPrice > 0 {
		competitor.MarginPercent = competitor.Profit / competitorPrice * 100
	}
	competitor.TotalScore = competitor.TechnicalScore + competitor.EconomicScore

	return SimulationResult{
		Costs:       costs,
		Ours:        ours,
		Competitor:  competitor,
		LowestPrice: lowest,
		Winner:      decideWinner(ours.TotalScore, competitor.TotalScore),
	}
}

// lowestValidPrice picks the reference price for proportional scoring: the
// minimum of the candidate prices that are positive and within budget. Zero
// when no candidate qualifies.
func lowestValidPrice(budget float64, prices ...float64) float64 {
	lowest := 0.0
	for _, p := range prices {
		if p <= 0 || (budget > 0 && p > budget) {
			continue
		}
		if lowest == 0 || p < lowest {
			lowest = p
		}
	}
	return lowest
}

// decideWinner applies the tie rule: equal totals favour our offer; two
// zero totals mean nothing to compare.
func decideWinner(ours, competitor float64) string {
	if ours == 0 && competitor == 0 {
		return WinnerNone
	}
	if ours >= competitor {
		return WinnerOurs
	}
	return WinnerCompetitor
}
