package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"asrlab/internal/store"
	"asrlab/internal/subtitle"
	"asrlab/internal/textdist"
)

// werReport mirrors the classic S/D/I word-alignment breakdown.
type werReport struct {
	WER           float64 `json:"wer"`
	Substitutions int     `json:"substitutions"`
	Deletions     int     `json:"deletions"`
	Insertions    int     `json:"insertions"`
	RefWords      int     `json:"ref_words"`
	HypWords      int     `json:"hyp_words"`
}

func newWERCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var label string

	cmd := &cobra.Command{
		Use:   "wer REF HYP",
		Short: "Word error rate between two transcripts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := loadSubtitles(args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			hyp, err := loadSubtitles(args[1], cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			refWords := textdist.Words(subtitle.PlainText(ref))
			hypWords := textdist.Words(subtitle.PlainText(hyp))
			ops := textdist.WordOps(refWords, hypWords)
			report := werReport{
				WER:           textdist.WER(refWords, hypWords),
				Substitutions: ops.Substitutions,
				Deletions:     ops.Deletions,
				Insertions:    ops.Insertions,
				RefWords:      len(refWords),
				HypWords:      len(hypWords),
			}

			if label == "" {
				label = defaultLabel(args[0], args[1])
			}
			if err := ctx.recordRun(cmd.Context(), store.Run{
				Kind:        store.KindWER,
				Label:       label,
				RefPath:     args[0],
				HypPath:     args[1],
				MetricName:  "wer",
				MetricValue: report.WER,
			}, report); err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}

			rows := [][]string{
				{"WER", formatPercent(report.WER)},
				{"Substitutions", fmt.Sprintf("%d", report.Substitutions)},
				{"Deletions", fmt.Sprintf("%d", report.Deletions)},
				{"Insertions", fmt.Sprintf("%d", report.Insertions)},
				{"Reference words", fmt.Sprintf("%d", report.RefWords)},
				{"Hypothesis words", fmt.Sprintf("%d", report.HypWords)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	cmd.Flags().StringVar(&label, "label", "", "Label stored with the run history entry")
	return cmd
}
