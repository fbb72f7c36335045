// Package amount parses and formats monetary amounts expressed in units of
// 10,000 KRW (만원), including the Korean large-unit words that appear in KB
// price quotes.
package amount

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonDigits       = regexp.MustCompile(`[^\d]`)
	eokPattern      = regexp.MustCompile(`(\d+)\s*억`)
	cheonManPattern = regexp.MustCompile(`(\d+)\s*천만`)
	manPattern      = regexp.MustCompile(`(\d+)\s*만`)
)

// ParseDigits extracts the digits from free-form text and returns them as a
// single integer. Empty or non-numeric text yields zero.
func ParseDigits(text string) int {
	clean := nonDigits.ReplaceAllString(text, "")
	if clean == "" {
		return 0
	}
	n, err := strconv.Atoi(clean)
	if err != nil {
		return 0
	}
	return n
}

// ParseKorean converts a price quote possibly mixing the unit words 억
// (x10,000), 천만 (x1,000), and 만 (x1) with plain digits into units of
// 10,000 KRW. Each unit word contributes its first occurrence only; bare
// digits are the fallback when no unit word matched.
func ParseKorean(text string) int {
	txt := strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	total := 0
	if m := eokPattern.FindStringSubmatch(txt); m != nil {
		n, _ := strconv.Atoi(m[1])
		total += n * 10000
	}
	if m := cheonManPattern.FindStringSubmatch(txt); m != nil {
		n, _ := strconv.Atoi(m[1])
		total += n * 1000
	}
	if m := manPattern.FindStringSubmatch(txt); m != nil {
		n, _ := strconv.Atoi(m[1])
		total += n
	}
	if total == 0 {
		if n, err := strconv.Atoi(txt); err == nil && n > 0 {
			total = n
		}
	}
	return total
}

// Comma formats an amount with thousands separators (e.g., "-1,234").
func Comma(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.Itoa(n)
	if len(s) > 3 {
		var builder strings.Builder
		for i, digit := range s {
			if i > 0 && (len(s)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		s = builder.String()
	}
	return sign + s
}

// FloorToUnit truncates a value toward negative infinity to a multiple of
// unit. A non-positive unit leaves the value unchanged.
func FloorToUnit(value, unit int) int {
	if unit <= 0 {
		return value
	}
	quotient := value / unit
	if value < 0 && value%unit != 0 {
		quotient--
	}
	return quotient * unit
}
