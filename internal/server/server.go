// Package server exposes the estimation engine over a thin HTTP API. It is
// an external caller of the core: every request builds a fresh engine
// request, runs the pipeline, and returns the results; nothing is cached
// between calls.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/young626-jang/LTV-Calculator/internal/config"
	"github.com/young626-jang/LTV-Calculator/internal/extract"
	"github.com/young626-jang/LTV-Calculator/internal/history"
	"github.com/young626-jang/LTV-Calculator/internal/ltv"
	"github.com/young626-jang/LTV-Calculator/pkg/constants"
)

type handler struct {
	logger        *zap.Logger
	conf          *config.Configuration
	store         history.Store
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the estimate API. The
// history store may be nil, in which case the history endpoints report the
// feature as disabled.
func NewHandler(logger *zap.Logger, conf *config.Configuration, store history.Store, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxUploadSize := conf.Server.MaxUploadSizeBytes
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		conf:          conf,
		store:         store,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	// Estimate API endpoint (YAML or JSON request document)
	mux.HandleFunc("/api/estimate", h.handleEstimate)

	// Registry-document text extraction for form pre-fill
	mux.HandleFunc("/api/extract", h.handleExtract)

	// Region deduction table for form pre-fill
	mux.HandleFunc("/api/regions", h.handleRegions)

	// Saved-session endpoints
	mux.HandleFunc("/api/history", h.handleHistory)
	mux.HandleFunc("/api/history/customers", h.handleHistoryCustomers)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

// estimateDocument is the request body for /api/estimate. It mirrors the
// form fields: every amount arrives as free text.
type estimateDocument struct {
	CustomerName string         `yaml:"customerName" json:"customerName"`
	Address      string         `yaml:"address" json:"address"`
	Valuation    string         `yaml:"valuation" json:"valuation"`
	Area         string         `yaml:"area" json:"area"`
	Region       string         `yaml:"region" json:"region"`
	Deduction    string         `yaml:"deduction" json:"deduction"`
	Ratios       []int          `yaml:"ratios" json:"ratios"`
	Liens        []lienDocument `yaml:"liens" json:"liens"`
	Save         bool           `yaml:"save" json:"save"`
	Overwrite    bool           `yaml:"overwrite" json:"overwrite"`
}

type lienDocument struct {
	Holder      string `yaml:"holder" json:"holder"`
	ClaimAmount string `yaml:"claimAmount" json:"claimAmount"`
	SetRatio    string `yaml:"setRatio" json:"setRatio"`
	Principal   string `yaml:"principal" json:"principal"`
	Status      string `yaml:"status" json:"status"`
}

type estimateResponse struct {
	ReportText  string         `json:"reportText"`
	Valuation   int            `json:"valuation"`
	PriceType   string         `json:"priceType"`
	Deduction   int            `json:"deduction"`
	Senior      []ltv.Result   `json:"senior,omitempty"`
	Subordinate []ltv.Result   `json:"subordinate,omitempty"`
	Aggregates  ltv.Aggregates `json:"aggregates"`
	Saved       bool           `json:"saved,omitempty"`
	Duration    string         `json:"duration"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) handleEstimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err))
		return
	}

	doc, err := decodeEstimateDocument(r.Header.Get("Content-Type"), body)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse request: %v", err))
		return
	}

	profile := config.Profile{
		CustomerName: doc.CustomerName,
		Address:      doc.Address,
		Valuation:    doc.Valuation,
		Area:         doc.Area,
		Region:       doc.Region,
		Deduction:    doc.Deduction,
		Ratios:       doc.Ratios,
	}
	for _, lien := range doc.Liens {
		profile.Liens = append(profile.Liens, config.LienEntry{
			Holder:      lien.Holder,
			ClaimAmount: lien.ClaimAmount,
			SetRatio:    lien.SetRatio,
			Principal:   lien.Principal,
			Status:      lien.Status,
		})
	}

	req := h.conf.ToRequest(profile)
	report := ltv.Estimate(h.logger, req)

	resp := estimateResponse{
		ReportText:  report.Text,
		Valuation:   report.Valuation,
		PriceType:   report.PriceType,
		Deduction:   req.Deduction,
		Senior:      report.Senior,
		Subordinate: report.Subordinate,
		Aggregates:  report.Aggregates,
	}

	if doc.Save && h.store != nil {
		if _, err := h.store.Save(r.Context(), history.RecordFromReport(report), doc.Overwrite); err != nil {
			if errors.Is(err, history.ErrIncomplete) {
				h.logger.Debug("skipping history save for incomplete record",
					zap.String("op", "server.handleEstimate"),
				)
			} else {
				h.logger.Warn("failed to save history record",
					zap.String("op", "server.handleEstimate"),
					zap.Error(err),
				)
			}
		} else {
			resp.Saved = true
		}
	}

	resp.Duration = time.Since(start).String()
	h.logger.Info("estimate served",
		zap.String("op", "server.handleEstimate"),
		zap.Int("valuation", report.Valuation),
		zap.Int("activeItems", len(report.Aggregates.ActiveItems)),
		zap.String("duration", resp.Duration),
	)
	h.respondJSON(w, http.StatusOK, resp)
}

// decodeEstimateDocument parses the request body as JSON when the client
// says so and as YAML otherwise. YAML is a superset here, so curl users can
// post either without fiddling with headers.
func decodeEstimateDocument(contentType string, body []byte) (estimateDocument, error) {
	var doc estimateDocument
	if strings.Contains(contentType, "application/json") {
		if err := json.Unmarshal(body, &doc); err != nil {
			return doc, err
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return doc, err
	}
	return doc, nil
}

type extractResponse struct {
	extract.Fields
	CustomerName string `json:"customerName"`
}

// handleExtract accepts a registry document's plain text and returns the
// extracted form pre-fill hints. Extraction is best-effort; an empty result
// is a valid response, not an error.
func (h *handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("document exceeds limit of %d bytes", h.maxUploadSize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read document: %v", err))
		return
	}

	fields := extract.FromText(string(body))
	h.respondJSON(w, http.StatusOK, extractResponse{
		Fields:       fields,
		CustomerName: fields.CustomerName(),
	})
}

func (h *handler) handleRegions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	regions := h.conf.Regions
	if regions == nil {
		regions = map[string]int{}
	}
	h.respondJSON(w, http.StatusOK, regions)
}

func (h *handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if h.store == nil {
		h.respondError(w, http.StatusNotFound, "history is disabled")
		return
	}

	if name := r.URL.Query().Get("name"); name != "" {
		rec, found, err := h.store.LoadByCustomer(r.Context(), name)
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load history: %v", err))
			return
		}
		if !found {
			h.respondError(w, http.StatusNotFound, fmt.Sprintf("no history for customer %q", name))
			return
		}
		h.respondJSON(w, http.StatusOK, rec)
		return
	}

	keyword := r.URL.Query().Get("q")
	names, err := h.store.SearchByKeyword(r.Context(), keyword)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to search history: %v", err))
		return
	}
	h.respondJSON(w, http.StatusOK, map[string][]string{"customers": names})
}

func (h *handler) handleHistoryCustomers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if h.store == nil {
		h.respondError(w, http.StatusNotFound, "history is disabled")
		return
	}
	names, err := h.store.Customers(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list customers: %v", err))
		return
	}
	h.respondJSON(w, http.StatusOK, map[string][]string{"customers": names})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.respondJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, errorResponse{Error: msg})
}
