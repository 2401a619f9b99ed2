package governor

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/governor/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the governor configuration",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd(opts))

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Default().Write(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "default configuration written to %s\n", out)

			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "governor.yaml", "Path to write the configuration to")

	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the configuration in blocks after overrides",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.loadConfig()
			if err != nil {
				return err
			}
			d, err := c.Resolve()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "block time:         %s\n", c.BlockTime)
			fmt.Fprintf(w, "token:              %s (%s)\n", d.TokenName, d.TokenSymbol)
			if d.MaxSupply != nil {
				fmt.Fprintf(w, "max supply:         %s\n", d.MaxSupply.Dec())
			}
			fmt.Fprintf(w, "governor:           %s on selector %d\n", d.Governor.Name, d.Governor.ChainSelector)
			fmt.Fprintf(w, "voting delay:       %d blocks\n", d.Governor.VotingDelay)
			fmt.Fprintf(w, "voting period:      %d blocks\n", d.Governor.VotingPeriod)
			fmt.Fprintf(w, "proposal threshold: %s\n", d.Governor.ProposalThreshold.Dec())
			fmt.Fprintf(w, "quorum:             %d%%\n", d.Governor.QuorumNumerator)
			fmt.Fprintf(w, "canceler:           %s\n", d.Governor.Canceler)
			fmt.Fprintf(w, "timelock delay:     %d blocks (min %d, max %d, grace %d)\n",
				d.Timelock.Delay, d.Timelock.MinimumDelay, d.Timelock.MaximumDelay, d.Timelock.GracePeriod)
			fmt.Fprintf(w, "deadline extension: max %d, base %d, decay %d%% every %d blocks\n",
				d.Governor.Extension.MaxDeadlineExtension, d.Governor.Extension.BaseDeadlineExtension,
				d.Governor.Extension.PercentDecay, d.Governor.Extension.DecayPeriod)

			return nil
		},
	}
}
