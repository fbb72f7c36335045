package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/young626-jang/LTV-Calculator/internal/config"
	"github.com/young626-jang/LTV-Calculator/internal/history"
	"github.com/young626-jang/LTV-Calculator/pkg/testutil"
)

func testHandler(store history.Store) http.Handler {
	conf := &config.Configuration{
		Regions: map[string]int{"서울특별시": 5500},
	}
	return NewHandler(zap.NewNop(), conf, store, "test")
}

func TestHandleEstimateJSON(t *testing.T) {
	handler := testHandler(nil)

	body := `{
		"customerName": "김철수",
		"address": "서울특별시 영등포구 제3층 제301호",
		"valuation": "5억",
		"area": "84.97㎡",
		"ratios": [80],
		"liens": [
			{"holder": "국민은행", "claimAmount": "12,000", "setRatio": "120", "status": "대환"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/estimate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp estimateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Valuation != 50000 {
		t.Errorf("valuation = %d, want 50000", resp.Valuation)
	}
	senior := testutil.FindResult(resp.Senior, 80)
	if senior == nil {
		t.Fatalf("no senior result for ratio 80: %+v", resp.Senior)
	}
	if senior.Limit != 40000 || senior.Available != 30000 {
		t.Errorf("senior = %+v, want limit 40000 available 30000", senior)
	}
	if !strings.Contains(resp.ReportText, "고객명: 김철수") {
		t.Errorf("report text missing header:\n%s", resp.ReportText)
	}
}

func TestHandleEstimateYAML(t *testing.T) {
	handler := testHandler(nil)

	body := `customerName: 김철수
address: 서울특별시
valuation: 5억
region: 서울특별시
ratios: [80]
liens:
  - holder: 국민은행
    claimAmount: "12,000"
    setRatio: "120"
    status: 대환
`
	req := httptest.NewRequest(http.MethodPost, "/api/estimate", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp estimateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// The region deduction was resolved server-side.
	if resp.Deduction != 5500 {
		t.Errorf("deduction = %d, want 5500", resp.Deduction)
	}
	if len(resp.Senior) != 1 || resp.Senior[0].Limit != 34500 {
		t.Errorf("senior = %+v, want limit 34500", resp.Senior)
	}
}

func TestHandleEstimateMethodNotAllowed(t *testing.T) {
	handler := testHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/estimate", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleEstimateMalformedBody(t *testing.T) {
	handler := testHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/estimate", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleEstimateSavesHistory(t *testing.T) {
	store := history.NewMemoryStore()
	handler := testHandler(store)

	body := `{"customerName": "김철수", "address": "서울특별시", "valuation": "5억", "ratios": [80], "save": true}`
	req := httptest.NewRequest(http.MethodPost, "/api/estimate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp estimateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Saved {
		t.Errorf("saved = false, want true")
	}

	histReq := httptest.NewRequest(http.MethodGet, "/api/history?name=김철수", nil)
	histRec := httptest.NewRecorder()
	handler.ServeHTTP(histRec, histReq)

	if histRec.Code != http.StatusOK {
		t.Fatalf("history status = %d, want 200; body: %s", histRec.Code, histRec.Body.String())
	}
	var record history.Record
	if err := json.Unmarshal(histRec.Body.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode history record: %v", err)
	}
	if record.ValuationText != "5억" {
		t.Errorf("ValuationText = %q, want 5억", record.ValuationText)
	}
}

func TestHandleHistoryDisabled(t *testing.T) {
	handler := testHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/history?name=김철수", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when history is disabled", rec.Code)
	}
}

func TestHandleExtract(t *testing.T) {
	handler := testHandler(nil)

	body := "[집합건물] 서울특별시 영등포구 여의도동 31 제3층 제301호\n전유부분 84.97㎡\n"
	req := httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var resp extractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Address != "서울특별시 영등포구 여의도동 31 제3층 제301호" {
		t.Errorf("address = %q", resp.Address)
	}
	if resp.AreaText != "84.97㎡" {
		t.Errorf("areaText = %q, want 84.97㎡", resp.AreaText)
	}
	if !resp.HasFloor || resp.FloorNumber != 3 {
		t.Errorf("floor = (%d, %v), want (3, true)", resp.FloorNumber, resp.HasFloor)
	}
}

func TestHandleRegions(t *testing.T) {
	handler := testHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/regions", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var regions map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &regions); err != nil {
		t.Fatalf("failed to decode regions: %v", err)
	}
	if regions["서울특별시"] != 5500 {
		t.Errorf("regions = %v, want 서울특별시 5500", regions)
	}
}

func TestHandleVersion(t *testing.T) {
	handler := testHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode version: %v", err)
	}
	if payload["version"] != "test" {
		t.Errorf("version = %q, want test", payload["version"])
	}
}
