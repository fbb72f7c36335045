// Package extract pulls structured hints out of real-estate registry
// document text: the property address, exclusive area, floor designator, and
// registered co-owners. Extraction is best-effort by design — registry
// layouts vary, so a failed match yields empty values rather than an error,
// and callers must treat every field as an untrusted pre-fill hint.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	addressPattern   = regexp.MustCompile(`\[집합건물\]\s*([^\n]+)`)
	areaPattern      = regexp.MustCompile(`(\d+\.\d+)\s*㎡`)
	floorPattern     = regexp.MustCompile(`제(\d+)층`)
	areaCleanPattern = regexp.MustCompile(`[^\d.]`)
)

// Owner is one registered co-owner: a name plus the leading digits of the
// registration number (birth-year prefix).
type Owner struct {
	Name        string `json:"name"`
	BirthPrefix string `json:"birthPrefix"`
}

// Fields holds the hints recovered from one registry document.
type Fields struct {
	Address     string  `json:"address"`
	AreaText    string  `json:"areaText"`
	FloorNumber int     `json:"floorNumber"`
	HasFloor    bool    `json:"hasFloor"`
	Owners      []Owner `json:"owners,omitempty"`
}

// CustomerName joins the first owner's name and birth prefix for form
// pre-fill. Empty when no owner was found.
func (f Fields) CustomerName() string {
	if len(f.Owners) == 0 {
		return ""
	}
	owner := f.Owners[0]
	return strings.TrimSpace(owner.Name + " " + owner.BirthPrefix)
}

// FromText scans a registry document's plain text for the collective-building
// address line, the last stated exclusive area, the floor designator within
// the address, and the co-owner entries.
func FromText(text string) Fields {
	var fields Fields

	if m := addressPattern.FindStringSubmatch(text); m != nil {
		fields.Address = strings.TrimSpace(m[1])
	}

	// The document restates the area several times; the last occurrence is
	// the exclusive-area figure.
	if matches := areaPattern.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		fields.AreaText = matches[len(matches)-1][1] + "㎡"
	}

	fields.FloorNumber, fields.HasFloor = FloorFromAddress(fields.Address)
	fields.Owners = ownersFromText(text)

	return fields
}

// FloorFromAddress returns the trailing 제N층 designator in an address. The
// last designator wins because the address nests building and unit floors.
func FloorFromAddress(address string) (int, bool) {
	matches := floorPattern.FindAllStringSubmatch(address, -1)
	if len(matches) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(matches[len(matches)-1][1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ownersFromText collects the owner entries that follow each 등록번호 column
// marker. The name sits four lines below the marker and the registration
// number prefix five lines below.
func ownersFromText(text string) []Owner {
	lines := strings.Split(text, "\n")
	var owners []Owner
	for i, line := range lines {
		if !strings.Contains(line, "등록번호") {
			continue
		}
		var name, prefix string
		if i+4 < len(lines) {
			name = strings.TrimSpace(lines[i+4])
		}
		if i+5 < len(lines) {
			prefix = strings.TrimSpace(lines[i+5])
		}
		if name == "" && prefix == "" {
			continue
		}
		owners = append(owners, Owner{Name: name, BirthPrefix: prefix})
	}
	return owners
}

// NormalizeArea strips everything but digits and the decimal point from an
// area entry and appends the ㎡ suffix. Already-suffixed or empty input is
// returned as-is.
func NormalizeArea(raw string) string {
	if raw == "" || strings.HasSuffix(raw, "㎡") {
		return raw
	}
	clean := areaCleanPattern.ReplaceAllString(raw, "")
	if clean == "" {
		return ""
	}
	return clean + "㎡"
}
