package output

import (
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/prevsim/internal/domain"
)

// JSONFormatter emits the full result with the same field names the API uses.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
