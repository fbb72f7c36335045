package config

import (
	"github.com/young626-jang/LTV-Calculator/internal/ltv"
	"github.com/young626-jang/LTV-Calculator/pkg/constants"
)

// ToRequest converts a profile into an engine request: the deduction is
// resolved against the region table, lien rows become parsed items (capped
// at the form's row limit), and an empty ratio selection falls back to the
// default ratio.
func (c *Configuration) ToRequest(profile Profile) ltv.Request {
	liens := profile.Liens
	if len(liens) > constants.MaxLienItems {
		liens = liens[:constants.MaxLienItems]
	}

	items := make([]ltv.LienItem, 0, len(liens))
	for _, entry := range liens {
		items = append(items, ltv.NewLienItem(entry.Holder, entry.ClaimAmount, entry.SetRatio, entry.Principal, entry.Status))
	}

	ratios := profile.Ratios
	if len(ltv.SelectRatios(ratios)) == 0 {
		ratios = []int{constants.DefaultLtvRatio}
	}

	label := profile.Name
	if label == "" {
		label = profile.CustomerName
	}

	return ltv.Request{
		Label:         label,
		CustomerName:  profile.CustomerName,
		Address:       profile.Address,
		ValuationText: profile.Valuation,
		AreaText:      profile.Area,
		Deduction:     c.ResolveDeduction(profile.Region, profile.Deduction),
		Items:         items,
		Ratios:        ratios,
		RoundingUnit:  c.RoundingUnit(),
	}
}
