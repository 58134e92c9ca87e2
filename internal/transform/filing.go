package transform

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/pkg/dateutil"
)

// PostponeFiling moves the current filing date forward by a number of months.
// Useful for "file one year later" explorations without a second scenario.
type PostponeFiling struct {
	Months int
}

func (pf *PostponeFiling) Name() string {
	return "postpone_filing"
}

func (pf *PostponeFiling) Description() string {
	return fmt.Sprintf("Postpone the filing date by %d months", pf.Months)
}

func (pf *PostponeFiling) Validate(base *domain.SimulationDraft) error {
	if pf.Months < 0 {
		return NewTransformError(pf.Name(), "validate", fmt.Sprintf("months must be non-negative, got %d", pf.Months), nil)
	}
	if base == nil {
		return NewTransformError(pf.Name(), "validate", "base draft cannot be nil", nil)
	}
	if base.Claimant.FilingDate.IsZero() {
		return NewTransformError(pf.Name(), "validate", "draft has no filing date", nil)
	}
	return nil
}

func (pf *PostponeFiling) Apply(base *domain.SimulationDraft) (*domain.SimulationDraft, error) {
	modified := base.Clone()
	modified.Claimant.FilingDate = base.Claimant.FilingDate.AddDate(0, pf.Months, 0)
	return modified, nil
}

// SetFilingDate replaces the current filing date with an absolute date
type SetFilingDate struct {
	Date time.Time
}

func (sfd *SetFilingDate) Name() string {
	return "set_filing_date"
}

func (sfd *SetFilingDate) Description() string {
	return fmt.Sprintf("Set the filing date to %s", dateutil.FormatDate(sfd.Date))
}

func (sfd *SetFilingDate) Validate(base *domain.SimulationDraft) error {
	if sfd.Date.IsZero() {
		return NewTransformError(sfd.Name(), "validate", "date cannot be zero", nil)
	}
	if base == nil {
		return NewTransformError(sfd.Name(), "validate", "base draft cannot be nil", nil)
	}
	return nil
}

func (sfd *SetFilingDate) Apply(base *domain.SimulationDraft) (*domain.SimulationDraft, error) {
	modified := base.Clone()
	modified.Claimant.FilingDate = sfd.Date
	return modified, nil
}

// SetReaffirmedDate sets the reaffirmed filing date, which adds a second scenario
type SetReaffirmedDate struct {
	Date time.Time
}

func (srd *SetReaffirmedDate) Name() string {
	return "set_reaffirmed_date"
}

func (srd *SetReaffirmedDate) Description() string {
	return fmt.Sprintf("Simulate a reaffirmed filing date of %s", dateutil.FormatDate(srd.Date))
}

func (srd *SetReaffirmedDate) Validate(base *domain.SimulationDraft) error {
	if srd.Date.IsZero() {
		return NewTransformError(srd.Name(), "validate", "date cannot be zero", nil)
	}
	if base == nil {
		return NewTransformError(srd.Name(), "validate", "base draft cannot be nil", nil)
	}
	if srd.Date.Before(base.Claimant.FilingDate) {
		return NewTransformError(srd.Name(), "validate",
			fmt.Sprintf("reaffirmed date %s is before the filing date %s",
				dateutil.FormatDate(srd.Date), dateutil.FormatDate(base.Claimant.FilingDate)), nil)
	}
	return nil
}

func (srd *SetReaffirmedDate) Apply(base *domain.SimulationDraft) (*domain.SimulationDraft, error) {
	modified := base.Clone()
	date := srd.Date
	modified.Claimant.ReaffirmedFilingDate = &date
	return modified, nil
}

// ReaffirmIn sets the reaffirmed filing date a number of months after the current filing date
type ReaffirmIn struct {
	Months int
}

func (ri *ReaffirmIn) Name() string {
	return "reaffirm_in"
}

func (ri *ReaffirmIn) Description() string {
	return fmt.Sprintf("Simulate reaffirming the filing date %d months later", ri.Months)
}

func (ri *ReaffirmIn) Validate(base *domain.SimulationDraft) error {
	if ri.Months <= 0 {
		return NewTransformError(ri.Name(), "validate", fmt.Sprintf("months must be positive, got %d", ri.Months), nil)
	}
	if base == nil {
		return NewTransformError(ri.Name(), "validate", "base draft cannot be nil", nil)
	}
	if base.Claimant.FilingDate.IsZero() {
		return NewTransformError(ri.Name(), "validate", "draft has no filing date", nil)
	}
	return nil
}

func (ri *ReaffirmIn) Apply(base *domain.SimulationDraft) (*domain.SimulationDraft, error) {
	modified := base.Clone()
	date := base.Claimant.FilingDate.AddDate(0, ri.Months, 0)
	modified.Claimant.ReaffirmedFilingDate = &date
	return modified, nil
}

// SetSimplifiedMode toggles the simplified-mode flag of the claimant
type SetSimplifiedMode struct {
	Enabled bool
}

func (ssm *SetSimplifiedMode) Name() string {
	return "simplified_mode"
}

func (ssm *SetSimplifiedMode) Description() string {
	if ssm.Enabled {
		return "Turn simplified mode on"
	}
	return "Turn simplified mode off"
}

func (ssm *SetSimplifiedMode) Validate(base *domain.SimulationDraft) error {
	if base == nil {
		return NewTransformError(ssm.Name(), "validate", "base draft cannot be nil", nil)
	}
	return nil
}

func (ssm *SetSimplifiedMode) Apply(base *domain.SimulationDraft) (*domain.SimulationDraft, error) {
	modified := base.Clone()
	modified.Claimant.SimplifiedMode = ssm.Enabled
	return modified, nil
}
