package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/pkg/dateutil"
)

// ConsoleFormatter prints one line per filing date plus the alert count.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "BENEFIT SIMULATION SUMMARY")
	fmt.Fprintln(&buf, "==========================")

	for _, sc := range result.Scenarios {
		best := "no eligible rule"
		if sc.BestEligibleOption != nil {
			best = fmt.Sprintf("%s %s", sc.BestEligibleOption.Name, FormatCurrency(sc.BestEligibleOption.BenefitAmountWithDiscard))
		}
		fmt.Fprintf(&buf, "%-10s %s  %s | %d/%d rules eligible\n",
			sc.FilingDateKind, dateutil.FormatDate(sc.FilingDate), best, eligibleCount(sc), len(sc.Rules))
	}

	if n := len(result.Alerts); n > 0 {
		fmt.Fprintf(&buf, "Alerts: %d (use --format console for details)\n", n)
	}
	return buf.Bytes(), nil
}
