package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/trebuchet-org/chaindeploy/internal/cli/render"
)

// NewPlanCmd creates the plan command.
func NewPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the deployment execution order without deploying",
		Long: `Resolve the deployment plan (built-in or --plan manifest), topologically
sort it, and print the resulting execution order.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.PlanDeployment.Run(cmd.Context())
			if err != nil {
				return err
			}

			renderer := render.NewPlanRenderer(os.Stderr)
			return renderer.Render(result)
		},
	}
}
