package ltv

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/young626-jang/LTV-Calculator/internal/extract"
	"github.com/young626-jang/LTV-Calculator/pkg/amount"
	"github.com/young626-jang/LTV-Calculator/pkg/constants"
)

// Price-type labels derived from the floor designator in the address.
const (
	PriceTypeLowFloor = "📉 하안가"
	PriceTypeStandard = "📈 일반가"
)

// Request is the full, immutable input for one estimation run. It is
// constructed once per computation; nothing in the pipeline mutates it.
type Request struct {
	Label         string
	CustomerName  string
	Address       string
	ValuationText string
	AreaText      string
	Deduction     int
	Items         []LienItem
	Ratios        []int
	RoundingUnit  int
}

// Report is the outcome of one pipeline run: the parsed valuation, the lien
// aggregates, the per-ratio results for each applicable tier, and the
// composed report text.
type Report struct {
	Request     Request
	Valuation   int
	FloorNumber int
	HasFloor    bool
	PriceType   string
	Aggregates  Aggregates
	Senior      []Result
	Subordinate []Result
	Text        string
}

// ParseRatios converts free-form ratio entries into the selected ratio list:
// non-numeric and out-of-range entries are dropped, duplicates collapse to
// the first occurrence.
func ParseRatios(values ...string) []int {
	var ratios []int
	for _, value := range values {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			continue
		}
		ratios = append(ratios, n)
	}
	return SelectRatios(ratios)
}

// SelectRatios drops out-of-range ratios and collapses duplicates while
// preserving first-seen order.
func SelectRatios(ratios []int) []int {
	var selected []int
	seen := make(map[int]bool)
	for _, ratio := range ratios {
		if ratio < constants.MinLtvRatio || ratio > constants.MaxLtvRatio {
			continue
		}
		if seen[ratio] {
			continue
		}
		seen[ratio] = true
		selected = append(selected, ratio)
	}
	return selected
}

// Estimate runs the classifier, calculator, and composer over one request.
// The three stages are strictly ordered; no stage reads a value a later
// stage produces. Identical requests always yield identical reports.
func Estimate(logger *zap.Logger, req Request) Report {
	if logger == nil {
		logger = zap.NewNop()
	}

	report := Report{Request: req}
	report.Valuation = amount.ParseKorean(req.ValuationText)
	report.FloorNumber, report.HasFloor = extract.FloorFromAddress(req.Address)
	if report.HasFloor && report.FloorNumber <= constants.LowFloorCutoff {
		report.PriceType = PriceTypeLowFloor
	} else {
		report.PriceType = PriceTypeStandard
	}

	report.Aggregates = Classify(req.Items)

	roundingUnit := req.RoundingUnit
	if roundingUnit <= 0 {
		roundingUnit = constants.DefaultRoundingUnit
	}

	ratios := SelectRatios(req.Ratios)
	agg := report.Aggregates
	for _, ratio := range ratios {
		// The senior tier is never computed while any maintained lien
		// exists; see the tier-selection policy in Classify's flags.
		if agg.HasSenior && !agg.HasMaintained {
			res := Calculate(report.Valuation, req.Deduction, agg.SeniorPrincipalSum, 0, ratio, TierSenior)
			report.Senior = append(report.Senior, floorResult(res, roundingUnit))
		}
		if agg.HasMaintained {
			res := Calculate(report.Valuation, req.Deduction, agg.SeniorPrincipalSum, agg.MaintainedClaimSum, ratio, TierSubordinate)
			report.Subordinate = append(report.Subordinate, floorResult(res, roundingUnit))
		}
	}

	report.Text = compose(report, ratios)

	logger.Debug("estimate computed",
		zap.String("op", "ltv.Estimate"),
		zap.Int("valuation", report.Valuation),
		zap.Int("activeItems", len(agg.ActiveItems)),
		zap.Ints("ratios", ratios),
	)

	return report
}

// compose assembles the report text in the fixed order consumed downstream:
// header, price line, itemized lien block, one result line per ratio per
// applicable tier, and the per-category principal totals.
func compose(report Report, ratios []int) string {
	req := report.Request
	var b strings.Builder

	fmt.Fprintf(&b, "고객명: %s\n주소: %s\n", req.CustomerName, req.Address)
	fmt.Fprintf(&b, "%s | KB시세: %s만 | 전용면적: %s | 방공제 금액: %s만\n",
		report.PriceType, amount.Comma(report.Valuation), req.AreaText, amount.Comma(req.Deduction))

	if len(report.Aggregates.ActiveItems) > 0 {
		b.WriteString("\n📋 대출 항목\n")
		for _, item := range report.Aggregates.ActiveItems {
			fmt.Fprintf(&b, "%s | 채권최고액: %s | 비율: %d%% | 원금: %s | %s\n",
				item.Holder, amount.Comma(item.ClaimAmount), item.SetRatio,
				amount.Comma(item.Principal), item.Status)
		}
	}

	seniorIdx, subIdx := 0, 0
	for range ratios {
		if seniorIdx < len(report.Senior) {
			res := report.Senior[seniorIdx]
			fmt.Fprintf(&b, "\n✅ 선순위 LTV %d%% ☞ 대출가능금액 %s 가용 %s",
				res.Ratio, amount.Comma(res.Limit), amount.Comma(res.Available))
			seniorIdx++
		}
		if subIdx < len(report.Subordinate) {
			res := report.Subordinate[subIdx]
			fmt.Fprintf(&b, "\n✅ 후순위 LTV %d%% ☞ 대출가능금액 %s 가용 %s",
				res.Ratio, amount.Comma(res.Limit), amount.Comma(res.Available))
			subIdx++
		}
	}

	b.WriteString("\n[진행구분별 원금 합계]\n")
	if report.Aggregates.RefinanceSum > 0 {
		fmt.Fprintf(&b, "대환: %s만\n", amount.Comma(report.Aggregates.RefinanceSum))
	}
	if report.Aggregates.PreCancelSum > 0 {
		fmt.Fprintf(&b, "선말소: %s만\n", amount.Comma(report.Aggregates.PreCancelSum))
	}

	return b.String()
}
