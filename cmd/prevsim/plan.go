package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/prevsim/internal/breakeven"
	"github.com/rgehrsitz/prevsim/internal/domain"
)

var planCmd = &cobra.Command{
	Use:   "plan [draft-file]",
	Short: "Find the filing date at which each rule is first met",
	Long: `Postpone the filing date month by month and report when each rule becomes
eligible, assuming no further contributions.

Examples:
  prevsim plan draft.yaml
  prevsim plan draft.yaml --goal maximize_benefit --max-months 120
  prevsim plan draft.yaml --rule standard-post-reform --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draft, err := loadDraft(args[0], nil)
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}

		constraints := breakeven.DefaultConstraints()
		constraints.MinMonths, _ = cmd.Flags().GetInt("min-months")
		constraints.MaxMonths, _ = cmd.Flags().GetInt("max-months")
		ruleID, _ := cmd.Flags().GetString("rule")
		constraints.RuleID = domain.RuleID(ruleID)

		solver := breakeven.NewDefaultSolver(engine)
		ctx := context.Background()
		outputFormat, _ := cmd.Flags().GetString("format")
		goalName, _ := cmd.Flags().GetString("goal")

		if goalName == "" {
			timeline, err := solver.EligibilityTimeline(ctx, draft, constraints)
			if err != nil {
				return err
			}
			return writePlan(cmd, outputFormat,
				func(tf *breakeven.TableFormatter) string { return tf.FormatTimeline(timeline) },
				func(jf *breakeven.JSONFormatter) (string, error) { return jf.FormatTimeline(timeline) })
		}

		goal, ok := breakeven.ParseGoal(goalName)
		if !ok {
			return fmt.Errorf("unknown goal: %s (valid: %s, %s)", goalName,
				breakeven.GoalEarliestEligible, breakeven.GoalMaximizeBenefit)
		}
		result, err := solver.Optimize(ctx, breakeven.OptimizationRequest{
			Draft:       draft,
			Goal:        goal,
			Constraints: constraints,
		})
		if err != nil {
			return err
		}
		return writePlan(cmd, outputFormat,
			func(tf *breakeven.TableFormatter) string { return tf.Format(result) },
			func(jf *breakeven.JSONFormatter) (string, error) { return jf.Format(result) })
	},
}

func writePlan(
	cmd *cobra.Command,
	outputFormat string,
	table func(*breakeven.TableFormatter) string,
	asJSON func(*breakeven.JSONFormatter) (string, error),
) error {
	switch strings.ToLower(outputFormat) {
	case "json":
		out, err := asJSON(&breakeven.JSONFormatter{Pretty: true})
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	case "table", "console", "":
		fmt.Fprint(cmd.OutOrStdout(), table(&breakeven.TableFormatter{}))
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, json)", outputFormat)
	}
	return nil
}

func init() {
	planCmd.Flags().String("goal", "", "Search goal (earliest_eligible, maximize_benefit); empty prints the full timeline")
	planCmd.Flags().String("rule", "", "Only consider this rule id")
	planCmd.Flags().Int("min-months", 0, "First postponement to evaluate, in months")
	planCmd.Flags().Int("max-months", 60, "Last postponement to evaluate, in months (at most 240)")
	planCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	planCmd.Flags().String("rules", "", "Path to a rule catalog file (default: built-in catalog)")
	planCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
}
