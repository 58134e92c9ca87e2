package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/pkg/dateutil"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of draft, import and rule catalog files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// ruleCatalogFile is the on-disk shape of a rule catalog
type ruleCatalogFile struct {
	Rules domain.RuleCatalog `yaml:"rules"`
}

// LoadDraftFromFile loads a simulation draft from a YAML or JSON file
func (ip *InputParser) LoadDraftFromFile(filename string) (*domain.SimulationDraft, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseDraft(data)
}

// ParseDraft decodes and validates a draft document
func (ip *InputParser) ParseDraft(data []byte) (*domain.SimulationDraft, error) {
	var draft domain.SimulationDraft
	if err := yaml.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateDraft(&draft); err != nil {
		return nil, fmt.Errorf("draft validation failed: %w", err)
	}

	return &draft, nil
}

// ValidateDraft rejects structurally broken input. Missing optional data
// (birth date, reaffirmed date, empty lists) is valid and surfaces later as
// simulation alerts instead.
func (ip *InputParser) ValidateDraft(draft *domain.SimulationDraft) error {
	if err := ip.validateClaimant(&draft.Claimant); err != nil {
		return fmt.Errorf("claimant validation failed: %w", err)
	}
	for i, p := range draft.Periods {
		if err := ip.validatePeriod(&p); err != nil {
			return fmt.Errorf("period %d (%s) validation failed: %w", i, p.ID, err)
		}
	}
	for i, w := range draft.Wages {
		if err := ip.validateWage(&w); err != nil {
			return fmt.Errorf("wage %d (%s) validation failed: %w", i, w.ID, err)
		}
	}
	return nil
}

func (ip *InputParser) validateClaimant(claimant *domain.BasicClaimantData) error {
	if claimant.FilingDate.IsZero() {
		return fmt.Errorf("filing date is required")
	}
	if !claimant.Sex.Valid() {
		return fmt.Errorf("unknown sex %q", claimant.Sex)
	}
	if claimant.BirthDate != nil && claimant.BirthDate.After(claimant.FilingDate) {
		return fmt.Errorf("birth date cannot be after filing date")
	}
	if claimant.HasReaffirmedFilingDate() && claimant.ReaffirmedFilingDate.Before(claimant.FilingDate) {
		return fmt.Errorf("reaffirmed filing date cannot be before filing date")
	}
	for _, id := range claimant.TargetBenefitTypes {
		if id == "" {
			return fmt.Errorf("target benefit type cannot be empty")
		}
	}
	return nil
}

func (ip *InputParser) validatePeriod(p *domain.ContributionPeriod) error {
	if p.Start.IsZero() || p.End.IsZero() {
		return fmt.Errorf("start and end dates are required")
	}
	if p.End.Before(p.Start) {
		return fmt.Errorf("end date %s is before start date %s", dateutil.FormatDate(p.End), dateutil.FormatDate(p.Start))
	}
	if !p.Category.Valid() {
		return fmt.Errorf("unknown category %q", p.Category)
	}
	switch p.OverlapStatus {
	case "", domain.OverlapOK, domain.OverlapAdjusted:
	default:
		return fmt.Errorf("unknown overlap status %q", p.OverlapStatus)
	}
	return nil
}

func (ip *InputParser) validateWage(w *domain.WageRecord) error {
	if _, err := dateutil.ParseCompetency(w.Competency); err != nil {
		return err
	}
	return nil
}

// LoadImportBatch loads structured records produced by an upstream import step
func (ip *InputParser) LoadImportBatch(filename string) (*domain.ImportBatch, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var batch domain.ImportBatch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateImportBatch(&batch); err != nil {
		return nil, fmt.Errorf("import validation failed: %w", err)
	}
	return &batch, nil
}

// ValidateImportBatch checks the source and every record of a batch
func (ip *InputParser) ValidateImportBatch(batch *domain.ImportBatch) error {
	switch batch.Source {
	case domain.SourceCNIS, domain.SourceSpreadsheet, domain.SourceManual:
	default:
		return fmt.Errorf("source must be 'cnis', 'spreadsheet' or 'manual', got %q", batch.Source)
	}
	for i, p := range batch.Periods {
		if err := ip.validatePeriod(&p); err != nil {
			return fmt.Errorf("period %d (%s) validation failed: %w", i, p.ID, err)
		}
	}
	for i, w := range batch.Wages {
		if err := ip.validateWage(&w); err != nil {
			return fmt.Errorf("wage %d (%s) validation failed: %w", i, w.ID, err)
		}
	}
	return nil
}

// LoadRuleCatalog loads a rule catalog that replaces the built-in one
func (ip *InputParser) LoadRuleCatalog(filename string) (domain.RuleCatalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var file ruleCatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRuleCatalog(file.Rules); err != nil {
		return nil, fmt.Errorf("rule catalog validation failed: %w", err)
	}
	return file.Rules, nil
}

// ValidateRuleCatalog checks ids are unique and thresholds make sense
func (ip *InputParser) ValidateRuleCatalog(catalog domain.RuleCatalog) error {
	if len(catalog) == 0 {
		return fmt.Errorf("at least one rule is required")
	}

	seen := make(map[domain.RuleID]bool, len(catalog))
	for i, rule := range catalog {
		if rule.ID == "" {
			return fmt.Errorf("rule %d: id is required", i)
		}
		if seen[rule.ID] {
			return fmt.Errorf("duplicate rule id %s", rule.ID)
		}
		seen[rule.ID] = true

		if err := ip.validateRule(&rule); err != nil {
			return fmt.Errorf("rule %s: %w", rule.ID, err)
		}
	}
	return nil
}

func (ip *InputParser) validateRule(rule *domain.Rule) error {
	if rule.MinContributionMonths < 0 || rule.MinQualifyingMonths < 0 || rule.TollProxyMonths < 0 {
		return fmt.Errorf("month thresholds cannot be negative")
	}
	if rule.MinAge != nil && (rule.MinAge.Female < 0 || rule.MinAge.Male < 0) {
		return fmt.Errorf("minimum age cannot be negative")
	}
	if rule.RequiredPoints != nil && (rule.RequiredPoints.Female < 0 || rule.RequiredPoints.Male < 0) {
		return fmt.Errorf("required points cannot be negative")
	}

	switch rule.Coefficient.Kind {
	case "", domain.CoefficientFull:
	case domain.CoefficientProgressive:
		if !rule.Coefficient.Base.IsPositive() {
			return fmt.Errorf("progressive coefficient base must be positive")
		}
		if rule.Coefficient.StepPerYear.IsNegative() {
			return fmt.Errorf("progressive coefficient step cannot be negative")
		}
	default:
		return fmt.Errorf("coefficient kind must be 'full' or 'progressive'")
	}
	return nil
}

// SaveDraft writes a draft as YAML
func (ip *InputParser) SaveDraft(filename string, draft *domain.SimulationDraft) error {
	data, err := yaml.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
