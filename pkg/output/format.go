// Package output provides utilities for formatting and displaying estimate
// results.
package output

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/young626-jang/LTV-Calculator/internal/ltv"
)

// PrettyFormat outputs a human-readable rendition of each report: the
// composed report text followed by a numeric summary table.
func PrettyFormat(reports []ltv.Report) {
	p := message.NewPrinter(language.Korean)
	for _, report := range reports {
		fmt.Printf("--- Results for %s ---\n", label(report))
		fmt.Println(report.Text)
		if len(report.Senior)+len(report.Subordinate) > 0 {
			fmt.Printf("Tier   | Ratio | Limit      | Available\n")
			fmt.Printf("____   | _____ | __________ | _________\n")
			for _, res := range report.Senior {
				_, _ = p.Printf("선순위 | %d%%   | %d만 | %d만\n", res.Ratio, res.Limit, res.Available)
			}
			for _, res := range report.Subordinate {
				_, _ = p.Printf("후순위 | %d%%   | %d만 | %d만\n", res.Ratio, res.Limit, res.Available)
			}
		}
		if len(reports) > 1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs one row per computed tier result in comma-separated
// value format.
func CsvFormat(reports []ltv.Report) {
	fmt.Printf("\"profile\",\"tier\",\"ratio\",\"limit\",\"available\"\n")
	for _, report := range reports {
		name := label(report)
		for _, res := range report.Senior {
			fmt.Printf("\"%s\",\"%s\",\"%d\",\"%d\",\"%d\"\n", name, ltv.TierSenior, res.Ratio, res.Limit, res.Available)
		}
		for _, res := range report.Subordinate {
			fmt.Printf("\"%s\",\"%s\",\"%d\",\"%d\",\"%d\"\n", name, ltv.TierSubordinate, res.Ratio, res.Limit, res.Available)
		}
	}
}

func label(report ltv.Report) string {
	if name := strings.TrimSpace(report.Request.Label); name != "" {
		return name
	}
	if name := strings.TrimSpace(report.Request.CustomerName); name != "" {
		return name
	}
	return "estimate"
}
