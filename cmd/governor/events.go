package governor

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/governor/eventlog"
)

func newEventsCmd() *cobra.Command {
	var (
		dbPath   string
		session  string
		filter   eventlog.Filter
		address  string
		sessions bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Query events stored by simulate",
		Long:  `List the sessions in an event database, or the events of one session. The latest session is used by default.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			store, err := eventlog.OpenReader(ctx, dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			all, err := store.Sessions(ctx)
			if err != nil {
				return err
			}

			if sessions {
				for _, id := range all {
					fmt.Fprintln(w, id)
				}

				return nil
			}

			var id uuid.UUID
			switch {
			case session != "":
				if id, err = uuid.Parse(session); err != nil {
					return fmt.Errorf("invalid session: %w", err)
				}
			case len(all) > 0:
				id = all[len(all)-1]
			default:
				return fmt.Errorf("no sessions in %s", dbPath)
			}

			if address != "" {
				if !common.IsHexAddress(address) {
					return fmt.Errorf("invalid address %q", address)
				}
				filter.Address = common.HexToAddress(address)
			}

			records, err := store.QuerySession(ctx, id, filter)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(w, records)
			}

			name := color.New(color.FgCyan)
			for _, r := range records {
				fmt.Fprintf(w, "%4d block %-6d %s ", r.Seq, r.Block, r.Address)
				name.Fprint(w, r.Name)
				fmt.Fprintf(w, " %s\n", r.Payload)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the SQLite event database")
	cmd.Flags().StringVar(&session, "session", "", "Session id, defaults to the latest")
	cmd.Flags().StringVar(&filter.Name, "name", "", "Only events with this name")
	cmd.Flags().StringVar(&address, "address", "", "Only events emitted by this contract")
	cmd.Flags().Uint64Var(&filter.FromBlock, "from-block", 0, "Only events from this block on")
	cmd.Flags().Uint64Var(&filter.ToBlock, "to-block", 0, "Only events up to this block")
	cmd.Flags().BoolVar(&sessions, "sessions", false, "List the sessions instead")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the events as JSON")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}
