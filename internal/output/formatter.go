package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a simulation result into bytes for a specific output format.
type Formatter interface {
	Name() string
	Format(result *domain.SimulationResult) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(result *domain.SimulationResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(result *domain.SimulationResult) ([]byte, error) {
	return f.F(result)
}

var formatters = map[string]Formatter{
	"console-lite": ConsoleFormatter{},
	"console":      ConsoleVerboseFormatter{},
	"csv":          CSVRuleFormatter{},
	"json":         JSONFormatter{},
	"html":         HTMLFormatter{},
}

var formatAliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"lite":            "console-lite",
	"summary":         "console-lite",
}

// GetFormatterByName returns the formatter registered under name or alias, or nil.
func GetFormatterByName(name string) Formatter {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := formatAliases[key]; ok {
		key = target
	}
	return formatters[key]
}

// AvailableFormatterNames lists registered formatter names in sorted order.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists accepted aliases in sorted order.
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted renders result with f and writes it to a timestamped file in
// the working directory. It returns the file name.
func WriteFormatted(f Formatter, result *domain.SimulationResult, ext string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("benefit_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// FormatCurrency formats a decimal as a monthly amount in reais
func FormatCurrency(amount decimal.Decimal) string {
	return "R$ " + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

func scenarioLabel(kind domain.FilingDateKind) string {
	if kind == domain.FilingDateReaffirmed {
		return "REAFFIRMED FILING DATE"
	}
	return "CURRENT FILING DATE"
}

func eligibleCount(sc domain.ScenarioResult) int {
	n := 0
	for _, r := range sc.Rules {
		if r.Eligible {
			n++
		}
	}
	return n
}
