package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"asrlab/internal/evaluate"
	"asrlab/internal/store"
)

type cerEntry struct {
	Hypothesis string `json:"hypothesis"`
	evaluate.CERReport
}

func newCERCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var label string
	var mergeWindow float64

	cmd := &cobra.Command{
		Use:   "cer REF HYP...",
		Short: "Character error rate of one reference against one or more transcripts",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("merge-window") {
				mergeWindow = cfg.Compare.MergeWindowSeconds
			}

			ref, err := loadSubtitles(args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			entries := make([]cerEntry, 0, len(args)-1)
			for _, hypPath := range args[1:] {
				hyp, err := loadSubtitles(hypPath, cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				report := evaluate.EvaluateCER(ref, hyp, mergeWindow)

				runLabel := label
				if runLabel == "" {
					runLabel = defaultLabel(args[0], hypPath)
				}
				if err := ctx.recordRun(cmd.Context(), store.Run{
					Kind:        store.KindCER,
					Label:       runLabel,
					RefPath:     args[0],
					HypPath:     hypPath,
					MetricName:  "cer",
					MetricValue: report.CER,
				}, report); err != nil {
					return err
				}
				entries = append(entries, cerEntry{Hypothesis: hypPath, CERReport: report})
			}

			if jsonOutput {
				if len(entries) == 1 {
					return writeJSON(cmd, entries[0].CERReport)
				}
				return writeJSON(cmd, entries)
			}

			if len(entries) == 1 {
				report := entries[0].CERReport
				rows := [][]string{
					{"CER", formatFloat(report.CER)},
					{"Accuracy", formatFloat(report.Accuracy)},
					{"Substitutions", fmt.Sprintf("%d", report.Substitutions)},
					{"Deletions", fmt.Sprintf("%d", report.Deletions)},
					{"Insertions", fmt.Sprintf("%d", report.Insertions)},
					{"Reference length", fmt.Sprintf("%d", report.RefLength)},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.Hypothesis,
					formatFloat(entry.CER),
					formatFloat(entry.Accuracy),
					fmt.Sprintf("%d", entry.Substitutions),
					fmt.Sprintf("%d", entry.Deletions),
					fmt.Sprintf("%d", entry.Insertions),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Hypothesis", "CER", "Accuracy", "Sub", "Del", "Ins"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	cmd.Flags().StringVar(&label, "label", "", "Label stored with the run history entries")
	cmd.Flags().Float64Var(&mergeWindow, "merge-window", 0, "Merge window in seconds (defaults to the configured value)")
	return cmd
}
