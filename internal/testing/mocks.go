package testing

import (
	"context"
	"sync"

	"github.com/aristath/productpulse/internal/domain"
	"github.com/aristath/productpulse/internal/modules/prediction"
)

// MockNarrator is a mock implementation of domain.Narrator for testing
type MockNarrator struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

// NewMockNarrator creates a narrator that answers every prompt with response
func NewMockNarrator(response string) *MockNarrator {
	return &MockNarrator{response: response}
}

// SetError makes every call fail with err
func (m *MockNarrator) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Generate records the prompt and returns the configured response
func (m *MockNarrator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

// Calls returns the number of Generate calls
func (m *MockNarrator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// MockClassifier is a mock implementation of prediction.Classifier for testing
type MockClassifier struct {
	mu    sync.Mutex
	probs []float64
	err   error
	seen  []prediction.FeatureVector
}

// NewMockClassifier creates a classifier returning probs for every input
func NewMockClassifier(probs ...float64) *MockClassifier {
	return &MockClassifier{probs: probs}
}

// SetError makes every prediction fail with err
func (m *MockClassifier) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// PredictProba records the features and returns the configured probabilities
func (m *MockClassifier) PredictProba(features prediction.FeatureVector) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, features)
	if m.err != nil {
		return nil, m.err
	}
	return m.probs, nil
}

// LastFeatures returns the most recent feature vector
func (m *MockClassifier) LastFeatures() (prediction.FeatureVector, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.seen) == 0 {
		return prediction.FeatureVector{}, false
	}
	return m.seen[len(m.seen)-1], true
}

// MockListingFetcher is a mock implementation of domain.ListingFetcher for testing
type MockListingFetcher struct {
	mu           sync.Mutex
	observations []domain.PriceObservation
	err          error
	calls        int
}

// NewMockListingFetcher creates a fetcher returning observations
func NewMockListingFetcher(observations []domain.PriceObservation) *MockListingFetcher {
	return &MockListingFetcher{observations: observations}
}

// SetError makes every fetch fail with err
func (m *MockListingFetcher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// FetchListings returns the configured observations
func (m *MockListingFetcher) FetchListings(ctx context.Context, product domain.ProductInfo) ([]domain.PriceObservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.observations, nil
}

// Calls returns the number of FetchListings calls
func (m *MockListingFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
