package compare

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/shopspring/decimal"
)

func testComparisonSet() *ComparisonSet {
	compSet := &ComparisonSet{
		BaseScenarioName: "Base Draft",
		DraftPath:        "/path/to/draft.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName:  "Base Draft",
			FilingDate:    "2025-01-01",
			BestRuleID:    domain.RuleStandardPostReform,
			BestRuleName:  "Standard post-reform retirement",
			BestAmount:    decimal.NewFromInt(2100),
			EligibleRules: []domain.RuleID{domain.RuleStandardPostReform},
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:       "Base Draft_postpone_1yr",
				Description:        "Postpone filing by 1 year(s) (12 months)",
				FilingDate:         "2026-01-01",
				BestRuleID:         domain.RuleAgeBased,
				BestRuleName:       "Age-based retirement",
				BestAmount:         decimal.NewFromInt(3000),
				EligibleRules:      []domain.RuleID{domain.RuleAgeBased, domain.RuleStandardPostReform},
				AmountDiffFromBase: decimal.NewFromInt(900),
				AmountPctFromBase:  decimal.NewFromFloat(42.86),
				EligibleDiff:       1,
				NewlyEligible:      []domain.RuleID{domain.RuleAgeBased},
			},
		},
	}
	compSet.FilingDates, _ = NewMetricsCalculator().CompareFilingDates(testSimulationResult())
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}

func TestTableFormatter_Format(t *testing.T) {
	result := (&TableFormatter{}).Format(testComparisonSet())

	for _, want := range []string{
		"BENEFIT SCENARIO COMPARISON",
		"Base Scenario: Base Draft",
		"Draft: /path/to/draft.yaml",
		"Base Draft (base)",
		"R$ 2100.00",
		"COMPARISON TO BASE",
		"+R$ 900.00 (42.9%)",
		"Eligible Rules:   +1",
		"Newly Eligible:   age-based",
		"CURRENT (2025-01-01) vs REAFFIRMED (2025-07-01)",
		"RECOMMENDATIONS",
		"• Best Amount:",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	compSet := &ComparisonSet{
		BaseScenarioName: "Base",
		BaseResult:       &ComparisonResult{ScenarioName: "Base", FilingDate: "2025-01-01"},
	}

	result := (&TableFormatter{}).Format(compSet)

	if strings.Contains(result, "COMPARISON TO BASE") {
		t.Error("Should not include comparison section without alternatives")
	}
	if !strings.Contains(result, "none") {
		t.Error("Expected 'none' for a draft without eligible rules")
	}
}

func TestTableFormatter_FormatFilingDates_NegativeDelta(t *testing.T) {
	fdc := &FilingDateComparison{
		CurrentFilingDate:    "2025-01-01",
		ReaffirmedFilingDate: "2026-01-01",
		Rules: []RuleDelta{
			{Name: "Some rule", CurrentAmount: decimal.NewFromInt(100), ReaffirmedAmount: decimal.NewFromInt(50), AmountDiff: decimal.NewFromInt(-50)},
		},
	}

	result := (&TableFormatter{}).FormatFilingDates(fdc)

	if !strings.Contains(result, "-50.00") || strings.Contains(result, "--50.00") {
		t.Errorf("Expected a single minus sign, got:\n%s", result)
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	result := (&TableFormatter{}).FormatCompact(testComparisonSet())

	want := "Base: Base Draft | Base Draft_postpone_1yr: +R$ 900.00"
	if result != want {
		t.Errorf("Expected %q, got %q", want, result)
	}
}

func TestTableFormatter_truncate(t *testing.T) {
	tf := &TableFormatter{}

	if got := tf.truncate("short", 10); got != "short" {
		t.Errorf("Expected short, got %s", got)
	}
	if got := tf.truncate("a very long scenario name", 10); got != "a very ..." {
		t.Errorf("Expected truncated name, got %s", got)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	result, err := (&CSVFormatter{}).Format(testComparisonSet())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(result)).ReadAll()
	if err != nil {
		t.Fatalf("Expected valid CSV, got: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "Scenario" {
		t.Errorf("Unexpected header %v", records[0])
	}
	if records[1][1] != "base" || records[2][1] != "alternative" {
		t.Errorf("Unexpected row types %s / %s", records[1][1], records[2][1])
	}
	if records[2][4] != "3000.00" {
		t.Errorf("Expected best amount 3000.00, got %s", records[2][4])
	}
	if records[2][10] != "age-based" {
		t.Errorf("Expected newly eligible age-based, got %s", records[2][10])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	compSet := testComparisonSet()

	for _, pretty := range []bool{false, true} {
		result, err := (&JSONFormatter{Pretty: pretty}).Format(compSet)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal([]byte(result), &decoded); err != nil {
			t.Fatalf("Expected valid JSON, got: %v", err)
		}
		if decoded["baseScenarioName"] != "Base Draft" {
			t.Errorf("Unexpected base name %v", decoded["baseScenarioName"])
		}
		if _, ok := decoded["filingDates"]; !ok {
			t.Error("Expected filingDates in output")
		}
		if pretty != strings.Contains(result, "\n  ") {
			t.Errorf("Indentation should follow Pretty=%t", pretty)
		}
	}
}
