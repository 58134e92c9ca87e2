package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/prevsim/internal/calculation"
	"github.com/rgehrsitz/prevsim/internal/config"
	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/internal/output"
	"github.com/rgehrsitz/prevsim/internal/transform"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "prevsim %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "prevsim",
	Short: "Social security benefit simulator",
	Long: `Simulates retirement eligibility and monthly benefit amounts under every
rule of the catalog, for the current and an optional reaffirmed filing date.`,
	SilenceUsage: true,
}

// newEngine builds a simulation engine, optionally from a rule catalog file
func newEngine(cmd *cobra.Command) (*calculation.SimulationEngine, error) {
	engine := calculation.NewSimulationEngine()

	rulesFile, _ := cmd.Flags().GetString("rules")
	if rulesFile != "" {
		parser := config.NewInputParser()
		catalog, err := parser.LoadRuleCatalog(rulesFile)
		if err != nil {
			return nil, err
		}
		engine = calculation.NewSimulationEngineWithCatalog(catalog)
	}

	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
		engine.Debug = true
	}
	return engine, nil
}

// loadDraft reads, validates and optionally transforms a draft file
func loadDraft(path string, transformSpecs []string) (*domain.SimulationDraft, error) {
	parser := config.NewInputParser()
	draft, err := parser.LoadDraftFromFile(path)
	if err != nil {
		return nil, err
	}
	if err := parser.ValidateDraft(draft); err != nil {
		return nil, fmt.Errorf("invalid draft %s: %w", path, err)
	}
	if len(transformSpecs) == 0 {
		return draft, nil
	}

	transforms, err := transform.NewTransformRegistry().ParseTransformSpecs(transformSpecs)
	if err != nil {
		return nil, err
	}
	return transform.ApplyTransforms(draft, transforms)
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [draft-file]",
	Short: "Simulate every rule for a draft",
	Long: `Simulate every retirement rule for a draft file.

Examples:
  prevsim simulate draft.yaml
  prevsim simulate draft.yaml --format json
  prevsim simulate draft.yaml --with reaffirm_in:months=12
  prevsim simulate draft.yaml --format html --write`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transformSpecs, _ := cmd.Flags().GetStringArray("with")
		draft, err := loadDraft(args[0], transformSpecs)
		if err != nil {
			return err
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		result := engine.Simulate(draft)

		outputFormat, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			return fmt.Errorf("unknown output format: %s (valid: %s)",
				outputFormat, strings.Join(output.AvailableFormatterNames(), ", "))
		}

		if write, _ := cmd.Flags().GetBool("write"); write {
			filename, err := output.WriteFormatted(f, result, fileExtension(f.Name()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
			return nil
		}

		data, err := f.Format(result)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func fileExtension(formatterName string) string {
	switch formatterName {
	case "csv", "json", "html":
		return formatterName
	}
	return "txt"
}

var validateCmd = &cobra.Command{
	Use:   "validate [draft-file]",
	Short: "Validate a draft file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadDraft(args[0], nil); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Draft file %s is valid\n", args[0])
		return nil
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rule catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := domain.DefaultRuleCatalog()
		if rulesFile, _ := cmd.Flags().GetString("rules"); rulesFile != "" {
			var err error
			catalog, err = config.NewInputParser().LoadRuleCatalog(rulesFile)
			if err != nil {
				return err
			}
		}
		writeCatalog(cmd.OutOrStdout(), catalog)
		return nil
	},
}

func writeCatalog(w io.Writer, catalog domain.RuleCatalog) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCONTRIB MONTHS\tQUALIFYING\tMIN AGE (F/M)\tPOINTS (F/M)\tDISCARD")
	for _, r := range catalog {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\t%t\n",
			r.ID, r.Name, r.MinContributionMonths, r.MinQualifyingMonths,
			threshold(r.MinAge), threshold(r.RequiredPoints), r.AllowsDiscard)
	}
	tw.Flush()
}

func threshold(t *domain.SexThreshold) string {
	if t == nil {
		return "-"
	}
	return fmt.Sprintf("%d/%d", t.Female, t.Male)
}

var listFormatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List output formats",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Formats: %s\n", strings.Join(output.AvailableFormatterNames(), ", "))
		fmt.Fprintf(cmd.OutOrStdout(), "Aliases: %s\n", strings.Join(output.AvailableFormatAliases(), ", "))
	},
}

func init() {
	simulateCmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, csv, json, html)")
	simulateCmd.Flags().StringArray("with", nil, "Transform to apply before simulating, repeatable (e.g. reaffirm_in:months=12)")
	simulateCmd.Flags().Bool("write", false, "Write the report to a timestamped file instead of stdout")
	simulateCmd.Flags().String("rules", "", "Path to a rule catalog file (default: built-in catalog)")
	simulateCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	rulesCmd.Flags().String("rules", "", "Path to a rule catalog file (default: built-in catalog)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(listFormatsCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
