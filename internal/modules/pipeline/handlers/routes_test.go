package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aristath/productpulse/internal/modules/analysis"
	"github.com/aristath/productpulse/internal/modules/pipeline"
	"github.com/aristath/productpulse/internal/modules/prediction"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClassifier []float64

func (c fixedClassifier) PredictProba(prediction.FeatureVector) ([]float64, error) {
	return c, nil
}

func newRouter(t *testing.T) chi.Router {
	t.Helper()
	log := zerolog.Nop()
	service := pipeline.NewService(
		analysis.NewAnalyzer(analysis.DefaultSellerRegistry(), log),
		analysis.NewSummarizer(nil, log),
		prediction.NewSynthesizer(fixedClassifier{0.3, 0.7}, nil, log),
		nil,
		log,
	)

	router := chi.NewRouter()
	require.NotPanics(t, func() {
		NewHandler(service, log).RegisterRoutes(router)
	})
	return router
}

func post(router chi.Router, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterRoutes(t *testing.T) {
	router := newRouter(t)

	for _, path := range []string{"/api/analyze", "/api/analyze/search", "/api/features"} {
		t.Run(path, func(t *testing.T) {
			rec := post(router, path, "{}")
			assert.NotEqual(t, http.StatusNotFound, rec.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleAnalyze(t *testing.T) {
	router := newRouter(t)
	body := `{
		"product": {"product_name": "Kettle"},
		"observations": [
			{"seller": "Amazon", "price": "$40.00"},
			{"seller": "Shop B", "price": 50},
			{"seller": "Shop C", "price": 60}
		]
	}`

	rec := post(router, "/api/analyze", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report pipeline.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 3, report.Statistics.SellerCount)
	assert.Equal(t, prediction.DecisionBuy, report.Recommendation.FinalDecision)
	require.NotNil(t, report.Analysis.BestOffer)
	assert.Equal(t, "Amazon", report.Analysis.BestOffer.Seller)
}

func TestHandleAnalyze_Errors(t *testing.T) {
	router := newRouter(t)

	rec := post(router, "/api/analyze", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request body")

	rec = post(router, "/api/analyze", `{"product": {"product_name": "Kettle"}, "observations": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "malformed_input")
}

func TestHandleSearch_FetcherUnavailable(t *testing.T) {
	rec := post(newRouter(t), "/api/analyze/search", `{"product": {"product_name": "Kettle"}}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "fetcher_unavailable")
}

func TestHandleFeatures(t *testing.T) {
	body := `{"analysis": {"price_evaluation": {"price_gap_percent": -5}, "confidence_score": 0.9}}`
	rec := post(newRouter(t), "/api/features", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Features map[string]float64 `json:"features"`
		Vector   []float64          `json:"vector"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Vector, 6)
	assert.Equal(t, -5.0, resp.Vector[0])
	assert.Equal(t, 0.9, resp.Vector[5])
	assert.Equal(t, -5.0, resp.Features["price_gap_percent"])
}

func TestHandleAnalyze_ExtremePrices(t *testing.T) {
	router := newRouter(t)
	body := `{
		"product": {"product_name": "Kettle"},
		"observations": [
			{"seller": "Shop A", "price": 1e308},
			{"seller": "Shop B", "price": 1e308}
		]
	}`

	rec := post(router, "/api/analyze", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report pipeline.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 2, report.Statistics.SellerCount)
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	h := NewHandler(nil, zerolog.Nop())
	rec := httptest.NewRecorder()

	h.writeJSON(rec, http.StatusOK, map[string]float64{"average": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "failed to encode response"}`, rec.Body.String())
}
