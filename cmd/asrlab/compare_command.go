package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"asrlab/internal/evaluate"
	"asrlab/internal/segmatch"
	"asrlab/internal/store"
)

func newCompareCommand(ctx *commandContext) *cobra.Command {
	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two subtitle transcripts",
	}

	compareCmd.AddCommand(newCompareDetailCommand(ctx))
	compareCmd.AddCommand(newCompareSummaryCommand(ctx))

	return compareCmd
}

type compareDetailReport struct {
	Summary segmatch.Summary `json:"summary"`
	Matches []matchJSON      `json:"matches"`
}

func newCompareDetailCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var jsonOut string
	var label string
	var limit int

	cmd := &cobra.Command{
		Use:   "detail REF HYP",
		Short: "Classify every reference segment against the hypothesis",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ref, err := loadSubtitles(args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			hyp, err := loadSubtitles(args[1], cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			opts := segmatch.Options{
				OverlapThreshold:      cfg.Compare.OverlapThreshold,
				TextMatchThreshold:    cfg.Compare.TextMatchThreshold,
				NearIdentityThreshold: cfg.Compare.NearIdentityThreshold,
			}
			result, err := segmatch.Classify(ref, hyp, opts)
			if err != nil {
				return err
			}
			summary := result.Summary()

			if label == "" {
				label = defaultLabel(args[0], args[1])
			}
			matchRate := 0.0
			if len(ref) > 0 {
				matchRate = float64(summary.OneToOne) / float64(len(ref))
			}
			if err := ctx.recordRun(cmd.Context(), store.Run{
				Kind:        store.KindCompareDetail,
				Label:       label,
				RefPath:     args[0],
				HypPath:     args[1],
				MetricName:  "one_to_one_rate",
				MetricValue: matchRate,
			}, summary); err != nil {
				return err
			}

			report := compareDetailReport{Summary: summary, Matches: matchesJSON(result.Matches)}
			if jsonOut != "" {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("encode report: %w", err)
				}
				if err := os.WriteFile(jsonOut, append(data, '\n'), 0o644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote report to %s\n", jsonOut)
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}

			rows := [][]string{
				{"One-to-one", fmt.Sprintf("%d", summary.OneToOne)},
				{"Text diff only", fmt.Sprintf("%d", summary.TextDiffOnly)},
				{"Split", fmt.Sprintf("%d", summary.Split)},
				{"Merged", fmt.Sprintf("%d", summary.Merged)},
				{"Missing", fmt.Sprintf("%d", summary.Missing)},
				{"Timeline mismatch", fmt.Sprintf("%d", summary.TimelineMismatch)},
			}
			fmt.Fprintln(out, renderTable([]string{"Category", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))

			printMatchDetails(out, result, segmatch.KindTextDiffOnly, "Text differences (worst first)", limit)
			printMatchDetails(out, result, segmatch.KindSplit, "Split segments", limit)
			printMatchDetails(out, result, segmatch.KindMerged, "Merged segments", limit)
			printMatchDetails(out, result, segmatch.KindMissing, "Missing segments", limit)
			printMatchDetails(out, result, segmatch.KindTimelineMismatch, "Timeline mismatches", limit)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the full report as JSON")
	cmd.Flags().StringVar(&jsonOut, "json-out", "", "Write the full JSON report to a file")
	cmd.Flags().StringVar(&label, "label", "", "Label stored with the run history entry")
	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum entries listed per category (0 for all)")
	return cmd
}

func printMatchDetails(out io.Writer, result *segmatch.Result, kind segmatch.Kind, title string, limit int) {
	matches := result.ByKind(kind)
	if len(matches) == 0 {
		return
	}

	shown := matches
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	rows := make([][]string, 0, len(shown))
	for _, m := range shown {
		rows = append(rows, []string{
			matchTimeRange(m),
			formatFloat(m.Similarity),
			excerpt(matchText(m.Sources), 40),
			excerpt(matchText(m.Targets), 40),
		})
	}

	fmt.Fprintf(out, "%s (%d):\n", title, len(matches))
	fmt.Fprintln(out, renderTable(
		[]string{"Time", "Similarity", "Reference", "Hypothesis"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
	))
}

func newCompareSummaryCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var label string

	cmd := &cobra.Command{
		Use:   "summary REF HYP",
		Short: "Whole-file similarity and word error rate",
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

			summary := evaluate.Summarize(ref, hyp)

			if label == "" {
				label = defaultLabel(args[0], args[1])
			}
			if err := ctx.recordRun(cmd.Context(), store.Run{
				Kind:        store.KindCompareSummary,
				Label:       label,
				RefPath:     args[0],
				HypPath:     args[1],
				MetricName:  "similarity",
				MetricValue: summary.Similarity,
			}, summary); err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, summary)
			}

			rows := [][]string{
				{"Similarity", formatFloat(summary.Similarity)},
				{"WER", formatPercent(summary.WER)},
				{"Word loss rate", formatPercent(summary.WordLossRate)},
				{"Ref segments", fmt.Sprintf("%d", summary.Ref.Segments)},
				{"Hyp segments", fmt.Sprintf("%d", summary.Hyp.Segments)},
				{"Ref words", fmt.Sprintf("%d", summary.Ref.Words)},
				{"Hyp words", fmt.Sprintf("%d", summary.Hyp.Words)},
				{"Ref span", fmt.Sprintf("%s – %s", formatSeconds(summary.Ref.FirstStart), formatSeconds(summary.Ref.LastEnd))},
				{"Hyp span", fmt.Sprintf("%s – %s", formatSeconds(summary.Hyp.FirstStart), formatSeconds(summary.Hyp.LastEnd))},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the summary as JSON")
	cmd.Flags().StringVar(&label, "label", "", "Label stored with the run history entry")
	return cmd
}
