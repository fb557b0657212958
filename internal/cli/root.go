package cli

import (
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rohitvarshney-web/schengen-slots/internal/config"
	"github.com/rohitvarshney-web/schengen-slots/internal/logging"
	"github.com/rohitvarshney-web/schengen-slots/internal/slots"
	"github.com/rohitvarshney-web/schengen-slots/internal/store/jsonstore"
	"github.com/rohitvarshney-web/schengen-slots/internal/ui"
)

// app is the state shared by every subcommand once the root pre-run has
// loaded the configuration.
type app struct {
	v       *viper.Viper
	cfgFile string
	stdout  io.Writer
	stderr  io.Writer
	now     func() time.Time

	cfg      *config.Config
	provider *slots.Provider
	logs     io.Closer
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{v: config.New(), stdout: stdout, stderr: stderr, now: time.Now}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "schengen",
		Short: "Schengen visa appointment availability dashboard",
		Long: `schengen shows Schengen visa appointment availability per destination
country, with drill-down into application centres and dates.

Run without a subcommand to open the interactive dashboard. When no API is
configured or it cannot be reached, demo data is shown instead.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          noArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Name() == "tui" || !cmd.HasParent())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ~/.schengen/config.yaml)")
	pf.String("api-url", "", "base URL of the travel API")
	pf.String("citizenship", "", "applicant citizenship, ISO code")
	pf.String("residence", "", "applicant residence, ISO code")
	pf.Bool("demo", false, "show demo data without calling the API")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("theme", "", "colour theme (classic, neon, mono)")
	bind(a.v, pf, map[string]string{
		"api.base_url":    "api-url",
		"api.citizenship": "citizenship",
		"api.residence":   "residence",
		"demo.force":      "demo",
		"log.level":       "log-level",
		"ui.theme":        "theme",
	})

	root.AddCommand(
		tuiCmd(a),
		lsCmd(a),
		showCmd(a),
		bookCmd(a),
		serveCmd(a),
		exportCmd(a),
		versionCmd(a),
	)
	return root
}

// setup loads the config and builds the provider. Interactive runs log to
// a file so the terminal stays clean.
func (a *app) setup(interactive bool) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	ui.SetTheme(cfg.UI.Theme)
	ui.SetOutput(a.stdout, a.stderr)

	if interactive {
		a.logs, err = logging.InitForTUI(cfg.Log)
	} else {
		a.logs, err = logging.Init(cfg.Log, a.stderr)
	}
	if err != nil {
		return err
	}

	demo := slots.NewDemo(a.now)
	if cfg.Demo.File != "" {
		f, err := jsonstore.Load(cfg.Demo.File)
		if err != nil {
			return err
		}
		demo = slots.NewDemoFromFixture(f)
	}
	// without a base URL the client fails fast with ErrNotConfigured, which
	// selects its own advisory
	var live slots.Upstream
	if !cfg.Demo.Force {
		live = slots.NewClient(cfg.API)
	}
	a.provider = slots.NewProvider(live, demo)
	return nil
}

func (a *app) close() {
	if a.logs != nil {
		_ = a.logs.Close()
	}
}

func (a *app) fail(msg string) {
	ui.SetOutput(a.stdout, a.stderr)
	ui.Fail(msg)
}

func bind(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		_ = v.BindPFlag(key, fs.Lookup(flag))
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
