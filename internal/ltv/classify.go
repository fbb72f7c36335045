package ltv

// Aggregates summarizes a sequence of lien items by disposition. Sums cover
// active items only; placeholder rows contribute nothing, including to the
// HasMaintained and HasSenior flags that drive tier selection.
type Aggregates struct {
	SeniorPrincipalSum int
	RefinanceSum       int
	PreCancelSum       int
	MaintainedClaimSum int
	HasMaintained      bool
	HasSenior          bool
	ActiveItems        []LienItem
}

// Classify filters out placeholder rows and aggregates the remaining items
// by disposition. Input order is preserved in ActiveItems; all sums are
// order-independent.
func Classify(items []LienItem) Aggregates {
	var agg Aggregates
	for _, item := range items {
		if !item.Active() {
			continue
		}
		agg.ActiveItems = append(agg.ActiveItems, item)
		switch item.Status {
		case StatusRefinance:
			agg.RefinanceSum += item.Principal
			agg.SeniorPrincipalSum += item.Principal
			agg.HasSenior = true
		case StatusPreCancel:
			agg.PreCancelSum += item.Principal
			agg.SeniorPrincipalSum += item.Principal
			agg.HasSenior = true
		case StatusMaintain:
			agg.MaintainedClaimSum += item.ClaimAmount
			agg.HasMaintained = true
		}
	}
	return agg
}
