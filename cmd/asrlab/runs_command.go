package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"asrlab/internal/store"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded comparison runs",
	}

	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))

	return runsCmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				runs, err := st.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet")
					return nil
				}

				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						shortID(run.ID),
						run.Kind,
						run.Label,
						run.MetricName,
						formatFloat(run.MetricValue),
						run.CreatedAt.Local().Format(time.DateTime),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Kind", "Label", "Metric", "Value", "Created"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum runs to list (0 for the default)")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one run including its full report payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				run, err := st.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:      %s\n", run.ID)
				fmt.Fprintf(out, "Kind:    %s\n", run.Kind)
				fmt.Fprintf(out, "Label:   %s\n", run.Label)
				fmt.Fprintf(out, "Ref:     %s\n", run.RefPath)
				fmt.Fprintf(out, "Hyp:     %s\n", run.HypPath)
				fmt.Fprintf(out, "Metric:  %s = %s\n", run.MetricName, formatFloat(run.MetricValue))
				fmt.Fprintf(out, "Created: %s\n", run.CreatedAt.Local().Format(time.DateTime))

				if run.PayloadJSON == "" {
					return nil
				}
				var pretty bytes.Buffer
				if err := json.Indent(&pretty, []byte(run.PayloadJSON), "", "  "); err != nil {
					fmt.Fprintln(out, run.PayloadJSON)
					return nil
				}
				fmt.Fprintln(out, pretty.String())
				return nil
			})
		},
	}
}

// shortID truncates a UUID for table display; `runs show` accepts the prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
