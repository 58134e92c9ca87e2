package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/prevsim/internal/domain"
)

// TemplateRegistry manages built-in draft templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []DraftTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in alphabetical order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with the common filing-date explorations
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	for _, months := range []int{6, 12, 24} {
		registry.Register(Template{
			Name:        fmt.Sprintf("reaffirm_%dmo", months),
			Description: fmt.Sprintf("Compare against a filing date reaffirmed %d months later", months),
			Transforms:  []DraftTransform{&ReaffirmIn{Months: months}},
		})
	}

	for _, years := range []int{1, 2, 3} {
		registry.Register(Template{
			Name:        fmt.Sprintf("postpone_%dyr", years),
			Description: fmt.Sprintf("Postpone filing by %d year(s) (%d months)", years, years*12),
			Transforms:  []DraftTransform{&PostponeFiling{Months: years * 12}},
		})
	}

	registry.Register(Template{
		Name:        "simplified",
		Description: "Run the draft in simplified mode",
		Transforms:  []DraftTransform{&SetSimplifiedMode{Enabled: true}},
	})

	registry.Register(Template{
		Name:        "postpone_1yr_reaffirm_12mo",
		Description: "Postpone filing 1 year and compare against another year of waiting",
		Transforms: []DraftTransform{
			&PostponeFiling{Months: 12},
			&ReaffirmIn{Months: 12},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base draft
func ApplyTemplate(base *domain.SimulationDraft, template Template) (*domain.SimulationDraft, error) {
	if len(template.Transforms) == 0 {
		return base.Clone(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available templates:\n\n")

	categories := map[string][]Template{}
	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "reaffirm_"):
			categories["Reaffirmed Filing Date"] = append(categories["Reaffirmed Filing Date"], template)
		case strings.HasPrefix(name, "postpone_") && !strings.Contains(name, "reaffirm"):
			categories["Filing Date"] = append(categories["Filing Date"], template)
		default:
			categories["Other"] = append(categories["Other"], template)
		}
	}

	for _, category := range []string{"Filing Date", "Reaffirmed Filing Date", "Other"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-30s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  prevsim compare draft.yaml --template reaffirm_12mo\n")
	sb.WriteString("  prevsim simulate draft.yaml --with reaffirm_in:months=6\n")

	return sb.String()
}
