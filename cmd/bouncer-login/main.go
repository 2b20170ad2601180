package main

import (
	"fmt"
	"os"

	"github.com/bouncerio/bouncer-login/internal/auth"
	"github.com/bouncerio/bouncer-login/internal/config"
	"github.com/bouncerio/bouncer-login/internal/logger"
	"github.com/bouncerio/bouncer-login/internal/server"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func main() {
	Execute()
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bouncer-login",
	Short: "Example web app that signs users in with Bouncer",
	Long: `bouncer-login is a small web app demonstrating the OAuth2 authorization-code
flow against Bouncer: it renders a sign-in link, exchanges the authorization
code for a token on the callback, fetches the user's profile and shows a
welcome page.

Set BOUNCER_CLIENT_ID and BOUNCER_CLIENT_SECRET in the environment (a local
.env file is honored). The redirect URI registered with Bouncer must match
the app's callback URL, http://localhost:6543/auth/callback by default.`,
	RunE:          runServer,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Place version check in PreRun to ensure flags are parsed first
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			fmt.Println(config.GetVersionInfo())
			os.Exit(0)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd.Flags())
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")
}

// runServer loads the configuration and runs the app until interrupted
func runServer(cmd *cobra.Command, args []string) error {
	// A local .env file is a convenience for development; absence is fine
	_ = godotenv.Load()

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	if err := logger.InitLogger(&cfg.Logging); err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	app := fx.New(
		fx.Supply(cfg),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.GetLogger()}
		}),
		auth.Module,
		server.Module,
	)

	app.Run()
	return nil
}
