// Package ltv implements the loan-to-value estimation engine: lien
// classification and aggregation, the tiered limit calculation, and the
// result report composer. The engine is stateless; every estimate is a pure
// function of its request.
package ltv

import (
	"encoding/json"
	"strings"

	"github.com/young626-jang/LTV-Calculator/pkg/amount"
	"github.com/young626-jang/LTV-Calculator/pkg/constants"
)

// Status indicates how an existing lien is handled alongside the new loan.
type Status int

const (
	// StatusMaintain keeps the lien in place; its registered claim ceiling
	// reduces subordinate-tier headroom.
	StatusMaintain Status = iota

	// StatusRefinance replaces the lien with the new loan, so its drawn
	// principal counts as senior-priority payoff.
	StatusRefinance

	// StatusPreCancel removes the lien before the new loan is drawn; its
	// principal also counts as senior-priority payoff.
	StatusPreCancel
)

// String returns the registry label for the status.
func (s Status) String() string {
	switch s {
	case StatusRefinance:
		return "대환"
	case StatusPreCancel:
		return "선말소"
	default:
		return "유지"
	}
}

// MarshalJSON emits the registry label so API responses stay readable.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the registry label emitted by MarshalJSON.
func (s *Status) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	*s = ParseStatus(label)
	return nil
}

// ParseStatus maps a registry label to a Status. Unknown labels default to
// StatusMaintain, the form's first option.
func ParseStatus(label string) Status {
	switch strings.TrimSpace(label) {
	case "대환":
		return StatusRefinance
	case "선말소":
		return StatusPreCancel
	default:
		return StatusMaintain
	}
}

// Senior reports whether the status makes the lien senior-priority principal.
func (s Status) Senior() bool {
	return s == StatusRefinance || s == StatusPreCancel
}

// LienItem is one encumbrance record on the property.
type LienItem struct {
	Holder      string
	ClaimAmount int
	SetRatio    int
	Principal   int
	Status      Status
}

// NewLienItem builds a LienItem from free-form field text. Malformed numbers
// are treated as zero, a zero registration ratio falls back to 100, and a
// missing principal is derived from the claim ceiling and the ratio.
func NewLienItem(holder, claimText, ratioText, principalText, statusLabel string) LienItem {
	item := LienItem{
		Holder:      strings.TrimSpace(holder),
		ClaimAmount: amount.ParseDigits(claimText),
		SetRatio:    amount.ParseDigits(ratioText),
		Principal:   amount.ParseDigits(principalText),
		Status:      ParseStatus(statusLabel),
	}
	if item.SetRatio == 0 {
		item.SetRatio = constants.FallbackSetRatio
	}
	if item.Principal == 0 {
		item.Principal = DerivePrincipal(item.ClaimAmount, item.SetRatio)
	}
	return item
}

// DerivePrincipal back-calculates the drawn principal from the registered
// claim ceiling and the registration ratio, using integer division. A zero
// ratio falls back to 100 so the division is always defined.
func DerivePrincipal(claimAmount, setRatio int) int {
	if setRatio == 0 {
		setRatio = constants.FallbackSetRatio
	}
	return claimAmount * 100 / setRatio
}

// Active reports whether the item carries any information worth aggregating.
// Placeholder form rows (empty holder, zero amounts) are inactive regardless
// of their status selection.
func (item LienItem) Active() bool {
	return item.Holder != "" || item.ClaimAmount != 0 || item.Principal != 0
}
