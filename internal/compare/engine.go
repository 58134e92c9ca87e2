package compare

import (
	"fmt"

	"github.com/rgehrsitz/prevsim/internal/calculation"
	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/internal/transform"
)

// CompareEngine orchestrates draft comparison
type CompareEngine struct {
	SimEngine         *calculation.SimulationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(simEngine *calculation.SimulationEngine) *CompareEngine {
	return &CompareEngine{
		SimEngine:         simEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseName   string   // Display name of the base draft
	Templates  []string // Template names, one alternative each
	Transforms []string // Transform specs, one alternative each
}

// Compare simulates the base draft and one alternative per template or
// transform spec, then ranks them against the base.
func (ce *CompareEngine) Compare(base *domain.SimulationDraft, options CompareOptions) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base draft cannot be nil")
	}

	baseName := options.BaseName
	if baseName == "" {
		baseName = "base"
	}

	baseSimulation := ce.SimEngine.Simulate(base)
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, baseSimulation)
	baseResult.Description = "Draft as entered"

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		alt := ce.MetricsCalculator.CalculateMetrics(baseName+"_"+templateName, ce.SimEngine.Simulate(modified))
		alt.Description = template.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	for _, spec := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transform %s: %w", spec, err)
		}

		modified, err := transform.ApplyTransforms(base, []transform.DraftTransform{t})
		if err != nil {
			return nil, err
		}

		alt := ce.MetricsCalculator.CalculateMetrics(baseName+"_"+t.Name(), ce.SimEngine.Simulate(modified))
		alt.Description = t.Description()
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	if fdc, ok := ce.MetricsCalculator.CompareFilingDates(baseSimulation); ok {
		compSet.FilingDates = fdc
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
