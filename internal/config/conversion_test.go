package config

import (
	"testing"

	"github.com/young626-jang/LTV-Calculator/internal/ltv"
	"github.com/young626-jang/LTV-Calculator/pkg/constants"
)

func TestToRequest(t *testing.T) {
	conf := &Configuration{
		Regions:  map[string]int{"서울특별시": 5500},
		Rounding: RoundingConfig{Unit: 100},
	}

	profile := Profile{
		Name:         "sample",
		CustomerName: "김철수",
		Address:      "서울특별시 영등포구 제3층 제301호",
		Valuation:    "5억",
		Area:         "84.97㎡",
		Region:       "서울특별시",
		Ratios:       []int{80, 70},
		Liens: []LienEntry{
			{Holder: "국민은행", ClaimAmount: "12,000", SetRatio: "120", Status: "대환"},
		},
	}

	req := conf.ToRequest(profile)

	if req.Label != "sample" {
		t.Errorf("Label = %q, want sample", req.Label)
	}
	if req.Deduction != 5500 {
		t.Errorf("Deduction = %d, want 5500", req.Deduction)
	}
	if req.RoundingUnit != 100 {
		t.Errorf("RoundingUnit = %d, want 100", req.RoundingUnit)
	}
	if len(req.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(req.Items))
	}
	item := req.Items[0]
	if item.ClaimAmount != 12000 || item.Principal != 10000 || item.Status != ltv.StatusRefinance {
		t.Errorf("Items[0] = %+v", item)
	}
}

func TestToRequestManualDeductionWins(t *testing.T) {
	conf := &Configuration{Regions: map[string]int{"서울특별시": 5500}}

	req := conf.ToRequest(Profile{Region: "서울특별시", Deduction: "2,800"})
	if req.Deduction != 2800 {
		t.Errorf("Deduction = %d, want 2800", req.Deduction)
	}
}

func TestToRequestDefaultRatio(t *testing.T) {
	conf := &Configuration{}

	tests := []struct {
		name   string
		ratios []int
	}{
		{
			name: "No ratios",
		},
		{
			name:   "Only invalid ratios",
			ratios: []int{0, 150},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := conf.ToRequest(Profile{Ratios: tt.ratios})
			selected := ltv.SelectRatios(req.Ratios)
			if len(selected) != 1 || selected[0] != constants.DefaultLtvRatio {
				t.Errorf("selected ratios = %v, want [%d]", selected, constants.DefaultLtvRatio)
			}
		})
	}
}

func TestToRequestCapsLienRows(t *testing.T) {
	conf := &Configuration{}

	var liens []LienEntry
	for i := 0; i < constants.MaxLienItems+5; i++ {
		liens = append(liens, LienEntry{Holder: "은행", ClaimAmount: "1,200", SetRatio: "120", Status: "유지"})
	}

	req := conf.ToRequest(Profile{Liens: liens})
	if len(req.Items) != constants.MaxLienItems {
		t.Errorf("len(Items) = %d, want %d", len(req.Items), constants.MaxLienItems)
	}
}

func TestToRequestLabelFallsBackToCustomer(t *testing.T) {
	conf := &Configuration{}

	req := conf.ToRequest(Profile{CustomerName: "김철수"})
	if req.Label != "김철수" {
		t.Errorf("Label = %q, want 김철수", req.Label)
	}
}
