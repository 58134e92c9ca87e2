package domain

import (
	"time"
)

// ImportSummary is an informational log entry of one ingestion batch
type ImportSummary struct {
	ID              string    `yaml:"id" json:"id"`
	Source          Source    `yaml:"source" json:"source"`
	FileName        string    `yaml:"file_name,omitempty" json:"fileName,omitempty"`
	PeriodsImported int       `yaml:"periods_imported" json:"periodsImported"`
	WagesImported   int       `yaml:"wages_imported" json:"wagesImported"`
	ImportedAt      time.Time `yaml:"imported_at" json:"importedAt"`
	Notes           string    `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// ImportBatch is what an upstream import step hands over: already structured
// records tagged with their source.
type ImportBatch struct {
	Source   Source               `yaml:"source" json:"source"`
	FileName string               `yaml:"file_name,omitempty" json:"fileName,omitempty"`
	Periods  []ContributionPeriod `yaml:"periods,omitempty" json:"periods,omitempty"`
	Wages    []WageRecord         `yaml:"wages,omitempty" json:"wages,omitempty"`
	Notes    string               `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// SimulationDraft is the claimant input aggregate. It is owned and mutated by
// the caller; the simulation engine only reads snapshots of it.
type SimulationDraft struct {
	ID        string               `yaml:"id,omitempty" json:"id,omitempty"`
	Claimant  BasicClaimantData    `yaml:"claimant" json:"claimant"`
	Periods   []ContributionPeriod `yaml:"periods" json:"periods"`
	Wages     []WageRecord         `yaml:"wages" json:"wages"`
	Imports   []ImportSummary      `yaml:"imports,omitempty" json:"imports,omitempty"`
	UpdatedAt time.Time            `yaml:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// NewSimulationDraft creates an empty draft for a session
func NewSimulationDraft(id string, at time.Time) *SimulationDraft {
	return &SimulationDraft{
		ID:        id,
		Periods:   []ContributionPeriod{},
		Wages:     []WageRecord{},
		Imports:   []ImportSummary{},
		UpdatedAt: at,
	}
}

// Touch records a modification time
func (d *SimulationDraft) Touch(at time.Time) {
	d.UpdatedAt = at
}

// AddPeriod appends a manually entered period
func (d *SimulationDraft) AddPeriod(p ContributionPeriod, at time.Time) {
	if p.Source == "" {
		p.Source = SourceManual
	}
	d.Periods = append(d.Periods, p)
	d.Touch(at)
}

// AddWage appends a manually entered wage record
func (d *SimulationDraft) AddWage(w WageRecord, at time.Time) {
	if w.Source == "" {
		w.Source = SourceManual
	}
	if w.Currency == "" {
		w.Currency = DefaultCurrency
	}
	d.Wages = append(d.Wages, w)
	d.Touch(at)
}

// ApplyImport merges an import batch into the draft and logs an ImportSummary for it.
// Records without a source inherit the batch source.
func (d *SimulationDraft) ApplyImport(id string, batch ImportBatch, at time.Time) ImportSummary {
	for _, p := range batch.Periods {
		if p.Source == "" {
			p.Source = batch.Source
		}
		d.Periods = append(d.Periods, p)
	}
	for _, w := range batch.Wages {
		if w.Source == "" {
			w.Source = batch.Source
		}
		if w.Currency == "" {
			w.Currency = DefaultCurrency
		}
		d.Wages = append(d.Wages, w)
	}

	summary := ImportSummary{
		ID:              id,
		Source:          batch.Source,
		FileName:        batch.FileName,
		PeriodsImported: len(batch.Periods),
		WagesImported:   len(batch.Wages),
		ImportedAt:      at,
		Notes:           batch.Notes,
	}
	d.Imports = append(d.Imports, summary)
	d.Touch(at)
	return summary
}

// Clone returns a deep copy so transforms can derive new drafts without touching the original
func (d *SimulationDraft) Clone() *SimulationDraft {
	clone := *d
	if d.Claimant.BirthDate != nil {
		birth := *d.Claimant.BirthDate
		clone.Claimant.BirthDate = &birth
	}
	if d.Claimant.ReaffirmedFilingDate != nil {
		reaffirmed := *d.Claimant.ReaffirmedFilingDate
		clone.Claimant.ReaffirmedFilingDate = &reaffirmed
	}
	clone.Claimant.TargetBenefitTypes = cloneSlice(d.Claimant.TargetBenefitTypes)
	clone.Periods = cloneSlice(d.Periods)
	clone.Wages = cloneSlice(d.Wages)
	for i := range clone.Wages {
		clone.Wages[i].InconsistencyReasons = cloneSlice(clone.Wages[i].InconsistencyReasons)
	}
	clone.Imports = cloneSlice(d.Imports)
	return &clone
}

// cloneSlice copies s, keeping a nil slice nil and an empty one empty
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
