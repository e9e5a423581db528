// Package cli wires the cobra commands: run, list, shell and creds.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"pom_automation/application/runner"
	"pom_automation/infrastructure/config"
	"pom_automation/infrastructure/logging"
	"pom_automation/infrastructure/security"
	"pom_automation/infrastructure/storage"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds what PersistentPreRunE resolves for the subcommands
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *logrus.Logger

	// launcher builds the session factory; replaced in tests
	launcher func(cfg *config.Config, logger logrus.FieldLogger) runner.Launcher
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{
		v:        viper.New(),
		launcher: runner.BrowserLauncher,
	}

	cmd := &cobra.Command{
		Use:           "pom",
		Short:         "Page object test suite for public demo sites",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	flags.String("engine", "", "automation engine: playwright, selenium or chromedp")
	flags.String("browser", "", "browser: chromium, firefox or webkit")
	flags.Bool("headful", false, "show the browser window")
	flags.String("log-level", "", "debug, info, warn or error")

	_ = a.v.BindPFlag("browser.engine", flags.Lookup("engine"))
	_ = a.v.BindPFlag("browser.name", flags.Lookup("browser"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))

	cmd.AddCommand(
		newRunCmd(a),
		newListCmd(a),
		newShellCmd(a),
		newCredsCmd(a),
	)
	return cmd, a
}

// initialize loads .env and the configuration, applies flag overrides
// and builds the logger
func (a *app) initialize(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	if cmd.Flags().Changed("headful") {
		headful, _ := cmd.Flags().GetBool("headful")
		a.v.Set("browser.headless", !headful)
	}

	cfg, err := config.LoadViper(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.NewWithOutput(cmd.ErrOrStderr(), cfg.Log.Level)
	a.logger.Debugf("Using %s engine with %s", cfg.Browser.Engine, cfg.Browser.Name)
	return nil
}

func (a *app) guard() *security.SecurityLayer {
	return security.NewSecurityLayer(a.logger)
}

func (a *app) credentials() *storage.CredentialsManager {
	return storage.NewCredentialsManager(a.cfg.Credentials.File, a.logger)
}

func (a *app) runner(out io.Writer) *runner.Runner {
	return runner.NewRunner(
		runner.OptionsFromConfig(a.cfg),
		a.launcher(a.cfg, a.logger),
		a.credentials(),
		a.logger,
		out,
	)
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd, _ := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
