package prediction

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/aristath/productpulse/pkg/embedded"
	"github.com/aristath/productpulse/pkg/formulas"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrClassifierUnavailable fails the prediction stage; there is no deterministic substitute
	ErrClassifierUnavailable = errors.New("classifier unavailable")

	// ErrInvalidProbabilities is returned for anything but two finite probabilities summing to 1
	ErrInvalidProbabilities = errors.New("classifier returned invalid probabilities")

	// ErrFeatureSchemaDrift is returned when an artifact was trained on a different feature order
	ErrFeatureSchemaDrift = errors.New("model feature order does not match feature builder")
)

// Classifier maps a feature vector to [P(WAIT), P(BUY)]
type Classifier interface {
	PredictProba(features FeatureVector) ([]float64, error)
}

// ModelArtifact is the on-disk form of a trained logistic model
type ModelArtifact struct {
	Name         string    `json:"name"`
	Version      string    `json:"version,omitempty"`
	Features     []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// LogisticModel is a binary logistic regression classifier.
// It is immutable after loading and safe for concurrent use.
type LogisticModel struct {
	name      string
	weights   *mat.VecDense
	intercept float64
}

// ParseModel validates an artifact and builds the model
func ParseModel(data []byte) (*LogisticModel, error) {
	var artifact ModelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}
	return NewLogisticModel(artifact)
}

// NewLogisticModel builds a model from an artifact, rejecting feature-order drift
func NewLogisticModel(artifact ModelArtifact) (*LogisticModel, error) {
	if len(artifact.Features) != FeatureCount {
		return nil, fmt.Errorf("%w: expected %d features, got %d", ErrFeatureSchemaDrift, FeatureCount, len(artifact.Features))
	}
	for i, name := range FeatureNames {
		if artifact.Features[i] != name {
			return nil, fmt.Errorf("%w: feature %d is %q, expected %q", ErrFeatureSchemaDrift, i, artifact.Features[i], name)
		}
	}
	if len(artifact.Coefficients) != FeatureCount {
		return nil, fmt.Errorf("expected %d coefficients, got %d", FeatureCount, len(artifact.Coefficients))
	}
	for _, c := range append([]float64{artifact.Intercept}, artifact.Coefficients...) {
		if !formulas.IsFinite(c) {
			return nil, fmt.Errorf("model has non-finite parameter %v", c)
		}
	}

	weights := make([]float64, FeatureCount)
	copy(weights, artifact.Coefficients)

	return &LogisticModel{
		name:      artifact.Name,
		weights:   mat.NewVecDense(FeatureCount, weights),
		intercept: artifact.Intercept,
	}, nil
}

// LoadModel reads an artifact from path
func LoadModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}
	return ParseModel(data)
}

// LoadDefaultModel loads the artifact embedded in the binary
func LoadDefaultModel() (*LogisticModel, error) {
	data, err := embedded.DefaultModel()
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded model: %w", err)
	}
	return ParseModel(data)
}

// Name returns the artifact name
func (m *LogisticModel) Name() string {
	return m.name
}

// PredictProba returns [1-p, p] where p = sigmoid(w·x + b)
func (m *LogisticModel) PredictProba(features FeatureVector) ([]float64, error) {
	x := mat.NewVecDense(FeatureCount, features.Slice())
	p := formulas.Sigmoid(mat.Dot(m.weights, x) + m.intercept)
	if math.IsNaN(p) {
		return nil, ErrInvalidProbabilities
	}
	return []float64{1 - p, p}, nil
}

// ValidateProbabilities checks the two-class contract
func ValidateProbabilities(probs []float64) error {
	if len(probs) != 2 {
		return fmt.Errorf("%w: expected 2 values, got %d", ErrInvalidProbabilities, len(probs))
	}
	for _, p := range probs {
		if !formulas.IsFinite(p) || p < 0 || p > 1 {
			return fmt.Errorf("%w: %v", ErrInvalidProbabilities, probs)
		}
	}
	if math.Abs(probs[0]+probs[1]-1) > 1e-6 {
		return fmt.Errorf("%w: %v does not sum to 1", ErrInvalidProbabilities, probs)
	}
	return nil
}
