package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rgehrsitz/prevsim/internal/config"
)

const testDraftYAML = `
id: "cli-draft"
claimant:
  sex: female
  birth_date: 1963-06-01
  filing_date: 2025-01-01
periods:
  - id: p1
    start: 2000-01-01
    end: 2019-12-31
    category: common
    counts_toward_qualifying_period: true
    source: manual
wages:
  - id: w1
    competency: "2019-01"
    amount: 3000
  - id: w2
    competency: "2019-02"
    amount: 3000
`

const testBatchYAML = `
source: cnis
file_name: cnis.pdf
periods:
  - id: c1
    start: 1995-03-01
    end: 1999-12-31
    category: common
    counts_toward_qualifying_period: true
wages:
  - id: cw1
    competency: "1999-12"
    amount: 1200
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// resetFlags restores every flag to its default so tests sharing rootCmd
// do not leak settings into each other
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "prevsim" {
		t.Errorf("Expected root command use to be 'prevsim', got %s", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("Expected root command to have a short description")
	}
	if rootCmd.Long == "" {
		t.Error("Expected root command to have a long description")
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("Expected no error for help command, got %v", err)
	}
	if !strings.Contains(out, "simulate") {
		t.Errorf("Expected help to list the simulate command, got:\n%s", out)
	}
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{"simulate", "validate", "rules", "formats", "compare", "plan", "import", "serve", "version"}

	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		if !registered[name] {
			t.Errorf("Expected command %s to be registered", name)
		}
	}
}

func TestSimulateCommand_JSON(t *testing.T) {
	draft := writeFile(t, "draft.yaml", testDraftYAML)

	out, err := execute(t, "simulate", draft, "--format", "json")
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	for _, want := range []string{`"simulationId"`, `"scenarios"`, `"age-based"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected JSON output to contain %s", want)
		}
	}
}

func TestSimulateCommand_WithReaffirmedTransform(t *testing.T) {
	draft := writeFile(t, "draft.yaml", testDraftYAML)

	out, err := execute(t, "simulate", draft, "--format", "csv", "--with", "reaffirm_in:months=12")
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if !strings.Contains(out, "reaffirmed,2026-01-01") {
		t.Errorf("Expected a reaffirmed scenario row, got:\n%s", out)
	}
}

func TestSimulateCommand_DebugLogsEveryRule(t *testing.T) {
	draft := writeFile(t, "draft.yaml", testDraftYAML)

	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	if _, err := execute(t, "simulate", draft, "--debug", "--format", "json"); err != nil {
		t.Fatalf("simulate --debug failed: %v", err)
	}
	for _, want := range []string{"DEBUG: current age-based: eligible=false", "DEBUG: current disability: eligible=false"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("Expected debug log to contain %q, got:\n%s", want, logs.String())
		}
	}
}

func TestSimulateCommand_Errors(t *testing.T) {
	draft := writeFile(t, "draft.yaml", testDraftYAML)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown format", []string{"simulate", draft, "--format", "pdf"}, "unknown output format"},
		{"bad transform", []string{"simulate", draft, "--with", "teleport:months=1"}, "teleport"},
		{"missing file", []string{"simulate", "does-not-exist.yaml"}, "does-not-exist.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error to mention %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateCommand(t *testing.T) {
	draft := writeFile(t, "draft.yaml", testDraftYAML)

	out, err := execute(t, "validate", draft)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "is valid") {
		t.Errorf("Expected confirmation, got %s", out)
	}

	invalid := writeFile(t, "invalid.yaml", "id: x\nclaimant:\n  sex: female\n")
	if _, err := execute(t, "validate", invalid); err == nil {
		t.Error("Expected a draft without filing date to be rejected")
	}
}

func TestRulesCommand(t *testing.T) {
	out, err := execute(t, "rules")
	if err != nil {
		t.Fatalf("rules failed: %v", err)
	}
	for _, id := range []string{"age-based", "standard-post-reform", "points-transition", "toll-50-transition", "special-activity", "disability"} {
		if !strings.Contains(out, id) {
			t.Errorf("Expected rules output to contain %s", id)
		}
	}
}

func TestCompareCommand(t *testing.T) {
	draft := writeFile(t, "draft.yaml", testDraftYAML)

	out, err := execute(t, "compare", draft, "--template", "postpone_1yr")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !strings.Contains(out, "draft_postpone_1yr") {
		t.Errorf("Expected the alternative to be named after the draft file, got:\n%s", out)
	}
}

func TestCompareCommand_ListTemplates(t *testing.T) {
	out, err := execute(t, "compare", "--list-templates")
	if err != nil {
		t.Fatalf("compare --list-templates failed: %v", err)
	}
	if !strings.Contains(out, "postpone_1yr") {
		t.Errorf("Expected template list, got:\n%s", out)
	}
}

func TestCompareCommand_RequiresAlternatives(t *testing.T) {
	draft := writeFile(t, "draft.yaml", testDraftYAML)

	if _, err := execute(t, "compare", draft); err == nil {
		t.Error("Expected an error without --template or --with")
	}
	if _, err := execute(t, "compare"); err == nil {
		t.Error("Expected an error without a draft file")
	}
}

func TestPlanCommand(t *testing.T) {
	draft := writeFile(t, "draft.yaml", testDraftYAML)

	out, err := execute(t, "plan", draft, "--max-months", "12")
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	if !strings.Contains(out, "ELIGIBILITY TIMELINE") || !strings.Contains(out, "2025-06-01") {
		t.Errorf("Expected a timeline reaching 2025-06-01, got:\n%s", out)
	}

	out, err = execute(t, "plan", draft, "--goal", "earliest_eligible", "--format", "json")
	if err != nil {
		t.Fatalf("plan --goal failed: %v", err)
	}
	if !strings.Contains(out, `"postponeMonths": 5`) {
		t.Errorf("Expected eligibility after 5 months, got:\n%s", out)
	}

	if _, err := execute(t, "plan", draft, "--goal", "retire_early"); err == nil {
		t.Error("Expected an unknown goal to be rejected")
	}
}

func TestImportCommand(t *testing.T) {
	draft := writeFile(t, "draft.yaml", testDraftYAML)
	batch := writeFile(t, "cnis.yaml", testBatchYAML)
	merged := filepath.Join(t.TempDir(), "merged.yaml")

	out, err := execute(t, "import", draft, batch, "--out", merged)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out, "Imported 1 periods and 1 wages") {
		t.Errorf("Unexpected import output: %s", out)
	}

	loaded, err := config.NewInputParser().LoadDraftFromFile(merged)
	if err != nil {
		t.Fatalf("failed to reload merged draft: %v", err)
	}
	if len(loaded.Periods) != 2 || len(loaded.Wages) != 3 || len(loaded.Imports) != 1 {
		t.Errorf("Expected 2 periods, 3 wages and 1 import, got %d, %d and %d",
			len(loaded.Periods), len(loaded.Wages), len(loaded.Imports))
	}
}

func TestResolveServeSettings(t *testing.T) {
	t.Setenv("PREVSIM_PORT", "9090")
	t.Setenv("PREVSIM_DB", "env.db")
	t.Setenv("PREVSIM_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	s, err := resolveServeSettings(serveCmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Port != 9090 || s.DBPath != "env.db" {
		t.Errorf("Expected env settings, got %+v", s)
	}
	if len(s.AllowedOrigins) != 2 || s.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("Unexpected origins %v", s.AllowedOrigins)
	}

	if err := serveCmd.Flags().Set("port", "7070"); err != nil {
		t.Fatal(err)
	}
	s, _ = resolveServeSettings(serveCmd)
	if s.Port != 7070 {
		t.Errorf("Expected flag to override env, got %d", s.Port)
	}

	t.Setenv("PREVSIM_PORT", "not-a-port")
	resetFlags(rootCmd)
	if _, err := resolveServeSettings(serveCmd); err == nil {
		t.Error("Expected an invalid PREVSIM_PORT to be rejected")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "prevsim dev") {
		t.Errorf("Unexpected version output: %s", out)
	}
}
