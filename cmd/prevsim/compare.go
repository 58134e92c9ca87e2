package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/prevsim/internal/compare"
	"github.com/rgehrsitz/prevsim/internal/transform"
)

var compareCmd = &cobra.Command{
	Use:   "compare [draft-file]",
	Short: "Compare a draft against alternative filing strategies",
	Long: `Compare a draft against alternatives built from templates or transforms.

Examples:
  prevsim compare draft.yaml --template postpone_1yr,reaffirm_12mo
  prevsim compare draft.yaml --with reaffirm_in:months=18 --format csv
  prevsim compare --list-templates  # Show all available templates
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("draft file required for comparison (use --list-templates to see available templates)")
		}
		draftFile := args[0]

		templatesStr, _ := cmd.Flags().GetString("template")
		transformSpecs, _ := cmd.Flags().GetStringArray("with")
		templateNames := transform.ParseTemplateList(templatesStr)
		if len(templateNames) == 0 && len(transformSpecs) == 0 {
			return fmt.Errorf("--template or --with is required to specify alternatives")
		}

		draft, err := loadDraft(draftFile, nil)
		if err != nil {
			return err
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}

		baseName, _ := cmd.Flags().GetString("base")
		if baseName == "" {
			baseName = strings.TrimSuffix(filepath.Base(draftFile), filepath.Ext(draftFile))
		}

		comparisonSet, err := compare.NewCompareEngine(engine).Compare(draft, compare.CompareOptions{
			BaseName:   baseName,
			Templates:  templateNames,
			Transforms: transformSpecs,
		})
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}
		comparisonSet.DraftPath = draftFile

		out := cmd.OutOrStdout()
		outputFormat, _ := cmd.Flags().GetString("format")
		switch strings.ToLower(outputFormat) {
		case "csv":
			formatted, err := (&compare.CSVFormatter{}).Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format CSV: %w", err)
			}
			fmt.Fprint(out, formatted)

		case "json":
			formatted, err := (&compare.JSONFormatter{Pretty: true}).Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprint(out, formatted)

		case "compact":
			fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(comparisonSet))

		case "table", "console", "":
			fmt.Fprint(out, (&compare.TableFormatter{}).Format(comparisonSet))

		default:
			return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
		}
		return nil
	},
}

func init() {
	compareCmd.Flags().String("base", "", "Display name of the base draft (default: file name)")
	compareCmd.Flags().String("template", "", "Comma-separated list of templates to compare")
	compareCmd.Flags().StringArray("with", nil, "Transform spec to compare, repeatable (e.g. postpone_filing:months=6)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().Bool("list-templates", false, "List all available templates")
	compareCmd.Flags().String("rules", "", "Path to a rule catalog file (default: built-in catalog)")
	compareCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
}
