package governor

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/governor/chain"
	"github.com/smartcontractkit/governor/eventlog"
	"github.com/smartcontractkit/governor/simulation"
)

func newSimulateCmd(opts *rootOptions) *cobra.Command {
	var (
		scenarioPath string
		dbPath       string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a governance scenario",
		Long: `Deploy a token, timelock, governor and treasury from the configuration and replay the
steps of a scenario file against them. Committed events can be persisted to a SQLite database.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			c, err := opts.loadConfig()
			if err != nil {
				return err
			}
			deployment, err := c.Resolve()
			if err != nil {
				return err
			}

			scenario, err := simulation.LoadScenario(scenarioPath)
			if err != nil {
				return err
			}

			recorder := eventlog.NewRecorder()
			sinks := []chain.Sink{recorder}

			var store *eventlog.Store
			if dbPath != "" {
				if store, err = eventlog.Open(ctx, dbPath); err != nil {
					return err
				}
				defer store.Close()
				sinks = append(sinks, store)
			}

			report, runErr := simulation.Run(ctx, deployment, scenario, sinks...)
			if report != nil {
				if asJSON {
					if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
						return err
					}
				} else {
					printReport(cmd.OutOrStdout(), report, recorder.Logs())
				}
			}
			if runErr != nil {
				return runErr
			}

			if store != nil {
				if err := store.Err(); err != nil {
					return fmt.Errorf("event log: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "events stored in session %s\n", store.Session())
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to the scenario file")
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to a SQLite database to store events in")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

func printReport(w io.Writer, report *simulation.Report, logs []chain.Log) {
	ok := color.New(color.FgGreen)
	expected := color.New(color.FgYellow)

	for _, step := range report.Steps {
		if step.Error != "" {
			expected.Fprintf(w, "[%3d] block %-6d %-8s failed as expected: %s\n", step.Index, step.Block, step.Action, step.Error)
			continue
		}
		ok.Fprintf(w, "[%3d] block %-6d %-8s %s\n", step.Index, step.Block, step.Action, step.Detail)
	}

	counts := make(map[string]int)
	for _, log := range logs {
		counts[log.Event.EventName()]++
	}
	fmt.Fprintf(w, "%d events\n", len(logs))
	for _, name := range slices.Sorted(maps.Keys(counts)) {
		fmt.Fprintf(w, "  %-28s %d\n", name, counts[name])
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
