package ltv

import (
	"github.com/young626-jang/LTV-Calculator/pkg/amount"
	"github.com/young626-jang/LTV-Calculator/pkg/constants"
)

// Tier identifies the priority ranking a limit is computed for.
type Tier int

const (
	// TierSenior is the payoff path: every existing lien is refinanced or
	// cancelled, so only the deduction reduces the cap.
	TierSenior Tier = iota

	// TierSubordinate is the maintained path: surviving claim ceilings
	// reduce the cap ahead of the new loan.
	TierSubordinate
)

// String returns the report label for the tier.
func (t Tier) String() string {
	if t == TierSubordinate {
		return "후순위"
	}
	return "선순위"
}

// Result holds the lending limit and remaining headroom for one ratio cap
// and tier. Negative values mean the property is over-leveraged and are
// reported as-is, never clamped.
type Result struct {
	Ratio     int
	Limit     int
	Available int
}

// Calculate computes the lending limit and available headroom for one LTV
// ratio cap. Both figures are truncated toward negative infinity to
// multiples of 10, i.e. reported in whole units of 100,000 KRW. The caller
// decides which tiers apply; the arithmetic here is total over integers.
func Calculate(valuation, deduction, seniorPrincipalSum, maintainedClaimSum, ratio int, tier Tier) Result {
	limit := valuation*ratio/100 - deduction
	if tier == TierSubordinate {
		limit -= maintainedClaimSum
	}
	available := limit - seniorPrincipalSum
	return Result{
		Ratio:     ratio,
		Limit:     amount.FloorToUnit(limit, constants.TruncationUnit),
		Available: amount.FloorToUnit(available, constants.TruncationUnit),
	}
}

// floorResult floors both figures of a result to the reporting unit.
func floorResult(res Result, unit int) Result {
	res.Limit = amount.FloorToUnit(res.Limit, unit)
	res.Available = amount.FloorToUnit(res.Available, unit)
	return res
}
