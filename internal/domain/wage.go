package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultCurrency is assumed when a wage record omits its currency
const DefaultCurrency = "BRL"

// WageRecord is the contribution wage of a single competency (year-month)
type WageRecord struct {
	ID                    string          `yaml:"id" json:"id"`
	Competency            string          `yaml:"competency" json:"competency"`
	Amount                decimal.Decimal `yaml:"amount" json:"amount"`
	Currency              string          `yaml:"currency,omitempty" json:"currency,omitempty"`
	Source                Source          `yaml:"source,omitempty" json:"source,omitempty"`
	InconsistencyReasons  []string        `yaml:"inconsistency_reasons,omitempty" json:"inconsistencyReasons,omitempty"`
	IsFlaggedInconsistent bool            `yaml:"is_flagged_inconsistent,omitempty" json:"isFlaggedInconsistent,omitempty"`
}

// IsPositive reports whether the wage can take part in an average
func (w WageRecord) IsPositive() bool {
	return w.Amount.GreaterThan(decimal.Zero)
}

// DiscardedCompetency is a wage removed from the average by the discard optimization
type DiscardedCompetency struct {
	Competency string          `yaml:"competency" json:"competency"`
	Amount     decimal.Decimal `yaml:"amount" json:"amount"`
}
