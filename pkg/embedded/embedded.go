// Package embedded provides embedded static assets for the application.
package embedded

import (
	"embed"
)

// DefaultModelPath is the path of the default classifier artifact inside Files
const DefaultModelPath = "models/logistic_predictor.json"

// Files contains all files embedded in the Go binary:
//   - models/logistic_predictor.json - default BUY/WAIT classifier, used when MODEL_PATH is unset
//
//go:embed models
var Files embed.FS

// DefaultModel returns the raw bytes of the default classifier artifact
func DefaultModel() ([]byte, error) {
	return Files.ReadFile(DefaultModelPath)
}
