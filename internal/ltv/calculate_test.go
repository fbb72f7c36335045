package ltv

import (
	"testing"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name               string
		valuation          int
		deduction          int
		seniorPrincipalSum int
		maintainedClaimSum int
		ratio              int
		tier               Tier
		wantLimit          int
		wantAvailable      int
	}{
		{
			name:               "Senior tier with refinance principal",
			valuation:          50000,
			seniorPrincipalSum: 10000,
			ratio:              80,
			tier:               TierSenior,
			wantLimit:          40000,
			wantAvailable:      30000,
		},
		{
			name:               "Subordinate tier with maintained claim",
			valuation:          50000,
			maintainedClaimSum: 5000,
			ratio:              70,
			tier:               TierSubordinate,
			wantLimit:          30000,
			wantAvailable:      30000,
		},
		{
			name:          "Senior tier with deduction",
			valuation:     50000,
			deduction:     5500,
			ratio:         80,
			tier:          TierSenior,
			wantLimit:     34500,
			wantAvailable: 34500,
		},
		{
			name:               "Over-leveraged yields negative available",
			valuation:          10000,
			deduction:          2500,
			seniorPrincipalSum: 9000,
			ratio:              70,
			tier:               TierSenior,
			wantLimit:          4500,
			wantAvailable:      -4500,
		},
		{
			name:               "Maintained claim exceeds limit",
			valuation:          10000,
			maintainedClaimSum: 9000,
			ratio:              50,
			tier:               TierSubordinate,
			wantLimit:          -4000,
			wantAvailable:      -4000,
		},
		{
			name:          "Odd valuation truncates to tens",
			valuation:     33333,
			ratio:         77,
			tier:          TierSenior,
			wantLimit:     25660, // floor(33333*77/100) = 25666 -> 25660
			wantAvailable: 25660,
		},
		{
			name:      "Zero valuation",
			valuation: 0,
			ratio:     80,
			tier:      TierSenior,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.valuation, tt.deduction, tt.seniorPrincipalSum, tt.maintainedClaimSum, tt.ratio, tt.tier)
			if got.Limit != tt.wantLimit {
				t.Errorf("Calculate() limit = %d, want %d", got.Limit, tt.wantLimit)
			}
			if got.Available != tt.wantAvailable {
				t.Errorf("Calculate() available = %d, want %d", got.Available, tt.wantAvailable)
			}
			if got.Ratio != tt.ratio {
				t.Errorf("Calculate() ratio = %d, want %d", got.Ratio, tt.ratio)
			}
		})
	}
}

func TestCalculateTruncationLaw(t *testing.T) {
	// Every limit and available is a multiple of 10 and never exceeds the
	// untruncated figure.
	for valuation := 0; valuation <= 100000; valuation += 3333 {
		for _, ratio := range []int{1, 40, 77, 100} {
			res := Calculate(valuation, 2500, 7000, 4000, ratio, TierSubordinate)
			if res.Limit%10 != 0 || res.Available%10 != 0 {
				t.Fatalf("Calculate(%d, ..., %d) = %+v, figures not multiples of 10", valuation, ratio, res)
			}
			rawLimit := valuation*ratio/100 - 4000 - 2500
			if res.Limit > rawLimit {
				t.Fatalf("Calculate(%d, ..., %d) limit %d exceeds raw %d", valuation, ratio, res.Limit, rawLimit)
			}
		}
	}
}

func TestSelectRatios(t *testing.T) {
	tests := []struct {
		name   string
		ratios []int
		want   []int
	}{
		{
			name:   "Duplicates collapse to first occurrence",
			ratios: []int{80, 70, 80},
			want:   []int{80, 70},
		},
		{
			name:   "Out of range dropped",
			ratios: []int{0, 101, 80, -5},
			want:   []int{80},
		},
		{
			name:   "Empty input",
			ratios: nil,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectRatios(tt.ratios)
			if len(got) != len(tt.want) {
				t.Fatalf("SelectRatios(%v) = %v, want %v", tt.ratios, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SelectRatios(%v) = %v, want %v", tt.ratios, got, tt.want)
				}
			}
		})
	}
}

func TestParseRatios(t *testing.T) {
	got := ParseRatios("80", "", "abc", "70", "80", "0")
	want := []int{80, 70}
	if len(got) != len(want) {
		t.Fatalf("ParseRatios() = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("ParseRatios() = %v, want %v", got, want)
		}
	}
}
