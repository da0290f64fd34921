package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/trebuchet-org/chaindeploy/internal/app"
	"github.com/trebuchet-org/chaindeploy/internal/config"
)

// contextKey is the type for context keys
type contextKey string

// appKey is the context key for the app instance
const appKey contextKey = "app"

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chaindeploy",
		Short: "Deploy the payment channel smart contracts",
		Long: `Chaindeploy compiles the channel contract set with solc and deploys it to an
Ethereum node over JSON-RPC, signing with a key from a local keystore.
Libraries are deployed first and linked into their dependents; the resulting
address map is printed as JSON.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			// Best-effort .env load; a missing file is fine.
			_ = godotenv.Load()

			v := config.SetupViper()
			bindFlags(v, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().String("plan", "", "YAML deployment plan overriding the built-in contract set")
	rootCmd.PersistentFlags().String("contracts-dir", "contracts", "Directory holding the contract sources")

	rootCmd.AddCommand(NewDeployCmd())
	rootCmd.AddCommand(NewPlanCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// bindFlags binds command flags that have been set to viper.
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	for _, name := range []string{
		"debug", "non-interactive", "plan", "contracts-dir",
		"pretty", "gas-price", "port", "keystore-path", "address", "timeout",
	} {
		if f := cmd.Flag(name); f != nil && f.Changed {
			v.Set(flagKey(name), f.Value.String())
		}
	}
}

// flagKey maps a flag name to its viper key.
func flagKey(name string) string {
	switch name {
	case "non-interactive":
		return "non_interactive"
	case "contracts-dir":
		return "contracts_dir"
	case "gas-price":
		return "gas_price"
	case "keystore-path":
		return "keystore_path"
	default:
		return name
	}
}

// getApp retrieves the app instance from the command context.
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}
	return a, nil
}
