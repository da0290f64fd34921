package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/trebuchet-org/chaindeploy/internal/cli/render"
)

// NewDeployCmd creates the deploy command.
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Compile and deploy the contract set",
		Long: `Compile the plan's contract sources and deploy them in dependency order.

Requires the private key to an account with enough balance to deploy all
contracts. The account is resolved from the keystore directory, interactively
when it holds more than one key.

The deployed address map is printed to stdout as JSON; everything else goes
to stderr.

Examples:
  # Deploy against a local node with defaults (port 8545, 4 GWei)
  chaindeploy deploy --keystore-path ~/.ethereum/keystore

  # Indented output, custom gas price and port
  chaindeploy deploy --keystore-path ./keystore --gas-price 10 --port 8546 --pretty

  # Deploy a manifest-declared contract set
  chaindeploy deploy --keystore-path ./keystore --plan deploy.yaml`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DeployContracts.Run(cmd.Context())
			if err != nil {
				return err
			}

			renderer := render.NewResultRenderer(os.Stdout, app.Config.Pretty)
			return renderer.Render(result)
		},
	}

	cmd.Flags().Bool("pretty", false, "Indent the JSON output with 2 spaces")
	cmd.Flags().Int64("gas-price", 4, "Gas price to use in GWei")
	cmd.Flags().Int("port", 8545, "JSON-RPC port of the node at 127.0.0.1")
	cmd.Flags().String("keystore-path", "", "Directory holding the keystore files (required)")
	cmd.Flags().String("address", "", "Address of the keystore account to sign with")
	cmd.Flags().Duration("timeout", 0, "Overall run timeout (0 uses the default)")

	_ = cmd.MarkFlagRequired("keystore-path")

	return cmd
}
