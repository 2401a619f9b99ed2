package governor

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	gov "github.com/smartcontractkit/governor"
	"github.com/smartcontractkit/governor/simulation"
	"github.com/smartcontractkit/governor/timelock"
	"github.com/smartcontractkit/governor/types"
)

func newHashActionsCmd() *cobra.Command {
	var (
		actionsPath string
		eta         uint64
	)

	cmd := &cobra.Command{
		Use:   "hash-actions",
		Short: "Hash the actions of a proposal",
		Long: `Encode the actions in a YAML or JSON file and print their calldata and the proposal actions
hash. Targets and address arguments are hex addresses or the names of the simulated contracts.
With --eta, also print the timelock transaction hash of each action.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := os.ReadFile(actionsPath)
			if err != nil {
				return fmt.Errorf("failed to read actions: %w", err)
			}
			var steps []simulation.ActionStep
			if err := yaml.Unmarshal(b, &steps); err != nil {
				return fmt.Errorf("failed to decode actions: %w", err)
			}

			actions, err := simulation.BuildActions(steps, simulation.Resolve)
			if err != nil {
				return err
			}
			hash, err := gov.HashActions(actions)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for i, a := range actions {
				fmt.Fprintf(w, "action %d: %s value %s calldata %s\n", i, a.Target, a.ValueOrZero().Dec(), hexutil.Encode(a.Calldata))
				if eta == 0 {
					continue
				}
				txHash, err := timelock.HashTransaction(types.Transaction{
					Target: a.Target,
					Value:  a.ValueOrZero(),
					Data:   a.Calldata,
					Eta:    eta,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "  timelock tx %s\n", txHash)
			}
			fmt.Fprintf(w, "actions hash %s\n", hash)

			return nil
		},
	}

	cmd.Flags().StringVar(&actionsPath, "actions", "", "Path to the actions file")
	cmd.Flags().Uint64Var(&eta, "eta", 0, "Eta to compute timelock transaction hashes for")
	_ = cmd.MarkFlagRequired("actions")

	return cmd
}
