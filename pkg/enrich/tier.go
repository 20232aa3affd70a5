package enrich

import "github.com/baderkha/snowflake-enrich/pkg/warehouse/frame"

// Tier : order bucket derived from the order amount
type Tier string

const (
	Platinum Tier = "PLATINUM"
	Gold     Tier = "GOLD"
	Silver   Tier = "SILVER"
)

type tierRule struct {
	min  float64
	tier Tier
}

// highest threshold first , thresholds are inclusive
var tierRules = []tierRule{
	{min: 200, tier: Platinum},
	{min: 100, tier: Gold},
}

const fallbackTier = Silver

// TierFor : local evaluation of the tier rules
func TierFor(amount float64) Tier {
	for _, r := range tierRules {
		if amount >= r.min {
			return r.tier
		}
	}
	return fallbackTier
}

// TierExpr : the same rules as a warehouse CASE expression over amountCol
func TierExpr(amountCol string) *frame.CaseExpr {
	amount := frame.Col(amountCol)
	var expr *frame.CaseExpr
	for _, r := range tierRules {
		if expr == nil {
			expr = frame.When(amount.Ge(r.min), string(r.tier))
			continue
		}
		expr = expr.When(amount.Ge(r.min), string(r.tier))
	}
	return expr.Otherwise(string(fallbackTier))
}
