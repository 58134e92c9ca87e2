package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/prevsim/internal/config"
)

var importCmd = &cobra.Command{
	Use:   "import [draft-file] [batch-file]",
	Short: "Merge an import batch into a draft",
	Long: `Merge already-structured periods and wages (e.g. from a CNIS extract or a
spreadsheet) into a draft file. The draft is rewritten in place unless --out
is given.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		draftFile, batchFile := args[0], args[1]
		parser := config.NewInputParser()

		draft, err := parser.LoadDraftFromFile(draftFile)
		if err != nil {
			return err
		}
		batch, err := parser.LoadImportBatch(batchFile)
		if err != nil {
			return err
		}
		if err := parser.ValidateImportBatch(batch); err != nil {
			return fmt.Errorf("invalid import batch %s: %w", batchFile, err)
		}

		summary := draft.ApplyImport(uuid.NewString(), *batch, time.Now())

		outFile, _ := cmd.Flags().GetString("out")
		if outFile == "" {
			outFile = draftFile
		}
		if err := parser.SaveDraft(outFile, draft); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d periods and %d wages from %s (%s) into %s\n",
			summary.PeriodsImported, summary.WagesImported, batchFile, summary.Source, outFile)
		return nil
	},
}

func init() {
	importCmd.Flags().StringP("out", "o", "", "Write the merged draft to this file instead of the input draft")
}
