package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"asrlab/internal/audio"
	"asrlab/internal/config"
	"asrlab/internal/maskalign"
	"asrlab/internal/store"
	"asrlab/internal/vad"
)

func newVADCommand(ctx *commandContext) *cobra.Command {
	vadCmd := &cobra.Command{
		Use:   "vad",
		Short: "Build, apply, and compare speech masks",
	}

	vadCmd.AddCommand(newVADFilterCommand(ctx))
	vadCmd.AddCommand(newVADCompareCommand(ctx))
	vadCmd.AddCommand(newVADSegmentsCommand(ctx))

	return vadCmd
}

// vadFilterReport is the recorded outcome of one filter invocation.
type vadFilterReport struct {
	Input           string  `json:"input"`
	Output          string  `json:"output"`
	SegmentsPath    string  `json:"segments_path"`
	SampleRate      int     `json:"sample_rate"`
	DurationSeconds float64 `json:"duration_seconds"`
	SpeechSegments  int     `json:"speech_segments"`
	SpeechSeconds   float64 `json:"speech_seconds"`
	SilencedSeconds float64 `json:"silenced_seconds"`
}

func newVADFilterCommand(ctx *commandContext) *cobra.Command {
	var output string
	var segmentsPath string
	var threshold float64
	var windowMs float64
	var minSilence float64
	var label string

	cmd := &cobra.Command{
		Use:   "filter INPUT",
		Short: "Zero out long silences in a WAV file",
		Long: "Filter builds an RMS speech mask over the input, writes the speech\n" +
			"segments to a JSON sidecar, and rewrites the audio with every long\n" +
			"silence run zeroed. Timing is preserved: the output has exactly the\n" +
			"same duration as the input.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = cfg.VAD.SilenceThreshold
			}
			if !cmd.Flags().Changed("window-ms") {
				windowMs = cfg.VAD.RMSWindowMs
			}
			if !cmd.Flags().Changed("min-silence") {
				minSilence = cfg.VAD.MinSilenceSeconds
			}

			input, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve input path %q: %w", args[0], err)
			}
			if output == "" {
				output = replaceExt(input, ".filtered.wav")
			}
			if segmentsPath == "" {
				segmentsPath = replaceExt(output, ".segments.json")
			}

			rate, samples, err := audio.ReadMono(input)
			if err != nil {
				return err
			}
			if rate != cfg.VAD.SampleRate {
				logger.Info("resampling input",
					"component", "vad",
					"from_hz", rate,
					"to_hz", cfg.VAD.SampleRate)
				samples = audio.Resample(samples, rate, cfg.VAD.SampleRate)
				rate = cfg.VAD.SampleRate
			}

			mask, err := vad.BuildRMSMask(samples, rate, windowMs, threshold)
			if err != nil {
				return err
			}
			spans := vad.SegmentsFromMask(mask, rate)

			processed, silenced, err := vad.SuppressLongSilence(samples, mask, minSilence, rate)
			if err != nil {
				return err
			}
			if err := audio.WriteMono(output, rate, processed); err != nil {
				return err
			}
			if err := vad.WriteSegmentsFile(segmentsPath, rate, spans); err != nil {
				return err
			}

			report := vadFilterReport{
				Input:           input,
				Output:          output,
				SegmentsPath:    segmentsPath,
				SampleRate:      rate,
				DurationSeconds: float64(len(samples)) / float64(rate),
				SpeechSegments:  len(spans),
				SpeechSeconds:   totalSpanSeconds(spans),
				SilencedSeconds: float64(silenced) / float64(rate),
			}
			logger.Info("filtered audio",
				"component", "vad",
				"input", input,
				"output", output,
				"speech_segments", report.SpeechSegments,
				"silenced_seconds", report.SilencedSeconds)

			if label == "" {
				label = filepath.Base(input)
			}
			if err := ctx.recordRun(cmd.Context(), store.Run{
				Kind:        store.KindVADFilter,
				Label:       label,
				RefPath:     input,
				HypPath:     output,
				MetricName:  "silenced_seconds",
				MetricValue: report.SilencedSeconds,
			}, report); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"Duration", formatSeconds(report.DurationSeconds)},
				{"Speech segments", fmt.Sprintf("%d", report.SpeechSegments)},
				{"Speech", formatSeconds(report.SpeechSeconds)},
				{"Silenced", formatSeconds(report.SilencedSeconds)},
			}
			fmt.Fprintln(out, renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
			fmt.Fprintf(out, "Wrote filtered audio to %s\n", output)
			fmt.Fprintf(out, "Wrote speech segments to %s\n", segmentsPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output WAV path (defaults to INPUT with a .filtered.wav suffix)")
	cmd.Flags().StringVar(&segmentsPath, "segments", "", "Segments sidecar path (defaults next to the output)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "RMS threshold below which a sample counts as silence")
	cmd.Flags().Float64Var(&windowMs, "window-ms", 0, "RMS window in milliseconds")
	cmd.Flags().Float64Var(&minSilence, "min-silence", 0, "Minimum silence run to suppress, in seconds")
	cmd.Flags().StringVar(&label, "label", "", "Label stored with the run history entry")
	return cmd
}

// vadCompareReport pairs the chosen alignment offset with the post-alignment
// mask agreement statistics.
type vadCompareReport struct {
	OffsetSamples int             `json:"offset_samples"`
	OffsetMs      float64         `json:"offset_ms"`
	SampleRate    int             `json:"sample_rate"`
	Stats         maskalign.Stats `json:"stats"`
}

func newVADCompareCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var label string
	var maxShiftMs int
	var topRuns int
	var csvOut string

	cmd := &cobra.Command{
		Use:   "compare A B",
		Short: "Align and compare the speech masks of two WAV files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("max-shift-ms") {
				maxShiftMs = cfg.VAD.AlignMaxShiftMs
			}
			if !cmd.Flags().Changed("top") {
				topRuns = cfg.VAD.TopRuns
			}

			maskA, maskB, rate, err := loadMasks(args[0], args[1], cfg)
			if err != nil {
				return err
			}

			maxShift := maxShiftMs * rate / 1000
			offset, err := maskalign.BestOffset(maskA, maskB, maxShift)
			if err != nil {
				return err
			}
			aligned := maskalign.ShiftMask(maskB, offset)
			stats, err := maskalign.Compare(maskA, aligned, rate, topRuns)
			if err != nil {
				return err
			}

			report := vadCompareReport{
				OffsetSamples: offset,
				OffsetMs:      float64(offset) / float64(rate) * 1000,
				SampleRate:    rate,
				Stats:         stats,
			}

			if csvOut != "" {
				segments := map[string][]vad.Span{
					args[0]: vad.SegmentsFromMask(maskA, rate),
					args[1]: vad.SegmentsFromMask(aligned, rate),
				}
				if err := writeSegmentsCSV(csvOut, []string{args[0], args[1]}, segments); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote aligned segments to %s\n", csvOut)
			}

			if label == "" {
				label = defaultLabel(args[0], args[1])
			}
			if err := ctx.recordRun(cmd.Context(), store.Run{
				Kind:        store.KindVADCompare,
				Label:       label,
				RefPath:     args[0],
				HypPath:     args[1],
				MetricName:  "iou",
				MetricValue: stats.IoU,
			}, report); err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"Alignment offset", fmt.Sprintf("%d samples (%.1f ms)", report.OffsetSamples, report.OffsetMs)},
				{"IoU", formatFloat(stats.IoU)},
				{"Precision", formatFloat(stats.Precision)},
				{"Recall", formatFloat(stats.Recall)},
				{"Symmetric diff", formatSeconds(stats.SymmetricDiffSeconds)},
				{"A speech", fmt.Sprintf("%d samples", stats.ACount)},
				{"B speech", fmt.Sprintf("%d samples", stats.BCount)},
			}
			fmt.Fprintln(out, renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))

			printTopRuns(out, "Longest runs only in A", stats.AOnly)
			printTopRuns(out, "Longest runs only in B", stats.BOnly)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	cmd.Flags().StringVar(&label, "label", "", "Label stored with the run history entry")
	cmd.Flags().IntVar(&maxShiftMs, "max-shift-ms", 0, "Maximum alignment shift in milliseconds")
	cmd.Flags().IntVar(&topRuns, "top", 0, "Number of one-sided runs to report per side")
	cmd.Flags().StringVar(&csvOut, "csv", "", "Write the aligned speech segments of both files to a CSV file")
	return cmd
}

// writeSegmentsCSV exports per-file speech segments as
// file,index,start,end,duration rows.
func writeSegmentsCSV(path string, order []string, segments map[string][]vad.Span) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"file", "index", "start", "end", "duration"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, name := range order {
		for i, span := range segments[name] {
			record := []string{
				name,
				strconv.Itoa(i),
				strconv.FormatFloat(span.Start, 'f', 3, 64),
				strconv.FormatFloat(span.End, 'f', 3, 64),
				strconv.FormatFloat(span.Duration(), 'f', 3, 64),
			}
			if err := w.Write(record); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return file.Close()
}

// vadSegmentsReport wraps the positional span comparison with the inputs'
// sample rates so rate mismatches stay visible in the stored payload.
type vadSegmentsReport struct {
	SampleRateA int                `json:"sample_rate_a"`
	SampleRateB int                `json:"sample_rate_b"`
	Comparison  vad.SpanComparison `json:"comparison"`
}

func newVADSegmentsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var label string
	var toleranceMs int

	cmd := &cobra.Command{
		Use:   "segments A.json B.json",
		Short: "Compare two speech segment sidecar files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("tolerance-ms") {
				toleranceMs = cfg.VAD.SegmentToleranceMs
			}

			errOut := cmd.ErrOrStderr()
			rateA, spansA, err := loadSegmentsSidecar(args[0], errOut)
			if err != nil {
				return err
			}
			rateB, spansB, err := loadSegmentsSidecar(args[1], errOut)
			if err != nil {
				return err
			}
			if rateA != rateB {
				fmt.Fprintf(errOut, "Sample rates differ: %d vs %d; comparing in seconds regardless\n", rateA, rateB)
			}

			comparison := vad.CompareSpans(spansA, spansB, float64(toleranceMs)/1000)
			report := vadSegmentsReport{
				SampleRateA: rateA,
				SampleRateB: rateB,
				Comparison:  comparison,
			}

			matchRate := 0.0
			if comparison.Common > 0 {
				matchRate = float64(comparison.Matched) / float64(comparison.Common)
			}
			if label == "" {
				label = defaultLabel(args[0], args[1])
			}
			if err := ctx.recordRun(cmd.Context(), store.Run{
				Kind:        store.KindVADSegments,
				Label:       label,
				RefPath:     args[0],
				HypPath:     args[1],
				MetricName:  "match_rate",
				MetricValue: matchRate,
			}, report); err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"Segments in A", fmt.Sprintf("%d", len(spansA))},
				{"Segments in B", fmt.Sprintf("%d", len(spansB))},
				{"Compared pairs", fmt.Sprintf("%d", comparison.Common)},
				{"Matched", fmt.Sprintf("%d", comparison.Matched)},
				{"Mean start delta", formatSeconds(comparison.MeanStartDelta)},
				{"Mean end delta", formatSeconds(comparison.MeanEndDelta)},
			}
			fmt.Fprintln(out, renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))

			mismatchRows := make([][]string, 0)
			for _, pair := range comparison.Pairs {
				if pair.Match {
					continue
				}
				mismatchRows = append(mismatchRows, []string{
					fmt.Sprintf("%d", pair.Index),
					formatSpan(pair.A),
					formatSpan(pair.B),
					formatSeconds(pair.StartDelta),
					formatSeconds(pair.EndDelta),
				})
			}
			if len(mismatchRows) > 0 {
				fmt.Fprintln(out, "Mismatched pairs:")
				fmt.Fprintln(out, renderTable(
					[]string{"#", "A", "B", "Start delta", "End delta"},
					mismatchRows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight},
				))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	cmd.Flags().StringVar(&label, "label", "", "Label stored with the run history entry")
	cmd.Flags().IntVar(&toleranceMs, "tolerance-ms", 0, "Boundary tolerance in milliseconds")
	return cmd
}

// loadMasks reads both WAV files, brings them to the configured sample rate
// and a common length, and builds their RMS masks.
func loadMasks(pathA, pathB string, cfg *config.Config) ([]bool, []bool, int, error) {
	samplesA, err := loadResampled(pathA, cfg.VAD.SampleRate)
	if err != nil {
		return nil, nil, 0, err
	}
	samplesB, err := loadResampled(pathB, cfg.VAD.SampleRate)
	if err != nil {
		return nil, nil, 0, err
	}
	samplesA, samplesB = audio.TrimToShorter(samplesA, samplesB)

	rate := cfg.VAD.SampleRate
	maskA, err := vad.BuildRMSMask(samplesA, rate, cfg.VAD.RMSWindowMs, cfg.VAD.SilenceThreshold)
	if err != nil {
		return nil, nil, 0, err
	}
	maskB, err := vad.BuildRMSMask(samplesB, rate, cfg.VAD.RMSWindowMs, cfg.VAD.SilenceThreshold)
	if err != nil {
		return nil, nil, 0, err
	}
	return maskA, maskB, rate, nil
}

func loadResampled(path string, targetRate int) ([]float64, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %q: %w", path, err)
	}
	rate, samples, err := audio.ReadMono(expanded)
	if err != nil {
		return nil, err
	}
	if rate != targetRate {
		samples = audio.Resample(samples, rate, targetRate)
	}
	return samples, nil
}

func loadSegmentsSidecar(path string, errOut io.Writer) (int, []vad.Span, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return 0, nil, fmt.Errorf("resolve path %q: %w", path, err)
	}
	rate, spans, skipped, err := vad.ReadSegmentsFile(expanded)
	if err != nil {
		return 0, nil, err
	}
	if skipped > 0 {
		fmt.Fprintf(errOut, "Skipped %d malformed spans in %s\n", skipped, filepath.Base(expanded))
	}
	return rate, spans, nil
}

func printTopRuns(out io.Writer, title string, runs []maskalign.TimedRun) {
	if len(runs) == 0 {
		return
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{formatSeconds(run.Start), formatSeconds(run.Duration)})
	}
	fmt.Fprintf(out, "%s:\n", title)
	fmt.Fprintln(out, renderTable([]string{"Start", "Duration"}, rows, []columnAlignment{alignRight, alignRight}))
}

func formatSpan(span *vad.Span) string {
	if span == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f – %.3f", span.Start, span.End)
}

func totalSpanSeconds(spans []vad.Span) float64 {
	total := 0.0
	for _, span := range spans {
		total += span.Duration()
	}
	return total
}

// replaceExt swaps the file extension, appending when there is none.
func replaceExt(path, newExt string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + newExt
}
