package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ftahirops/rebootcheck/config"
)

// Version is set at build time via ldflags.
var Version = "0.4.0"

// skipConfig marks commands that must run without loading the config file.
const skipConfig = "skip-config"

// app carries state shared by all commands of one invocation.
type app struct {
	v       *viper.Viper
	cfg     config.Config
	logger  *zap.Logger
	cfgFile string
	verbose bool
	quiet   bool
}

// Execute runs the command line and returns the error for main to report.
// An ExitCodeError asks for a specific exit status.
func Execute(ctx context.Context, args []string) error {
	root := newRootCmd(&app{v: viper.New()})
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "rebootcheck",
		Short: "Tell whether the system needs a reboot or a session restart",
		Long: `rebootcheck compares the running kernel with the installed kernel package and
checks whether critical packages were updated after boot or after login.

Run without a subcommand to perform a single check.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initLogger(); err != nil {
				return err
			}
			if cmd.Annotations[skipConfig] != "" {
				return nil
			}
			return a.loadConfig(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd)
		},
	}
	root.SetVersionTemplate("rebootcheck v{{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/rebootcheck/config.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "Only log errors")
	pf.StringP("output", "o", config.OutputText, "Output format: text, json, yaml, markdown, cron")
	pf.Bool("notify", false, "Send a desktop notification when action is needed")
	pf.Bool("exit-code", false, "Exit with the verdict as status (0 nothing, 1 restart session, 2 reboot, 3 kernel update)")
	pf.StringSlice("reboot-packages", nil, "Packages whose update requires a reboot")
	pf.StringSlice("session-packages", nil, "Packages whose update requires a session restart")
	pf.String("pacman-db", "", "Pacman local database directory")
	pf.String("utmp", "", "Login accounting file")
	pf.String("kernel", "", "Kernel release to check instead of the running one")

	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newWatchCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

// flagKeys maps persistent flags to config keys.
var flagKeys = map[string]string{
	"output":           config.KeyOutput,
	"notify":           config.KeyNotifyEnabled,
	"exit-code":        config.KeyExitCode,
	"reboot-packages":  config.KeyRebootPackages,
	"session-packages": config.KeySessionPackages,
	"pacman-db":        config.KeyPacmanDB,
	"utmp":             config.KeyUtmpPath,
	"kernel":           config.KeyKernel,
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	config.SetDefaults(a.v)
	for name, key := range flagKeys {
		// Only explicitly set flags override the file and environment.
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			if err := a.v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("config loaded",
		zap.String("file", a.v.ConfigFileUsed()),
		zap.String("pacman_db", cfg.PacmanDB),
		zap.String("output", cfg.Output))
	return nil
}

func (a *app) initLogger() error {
	if a.logger != nil {
		return nil
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.DisableStacktrace = true
	switch {
	case a.verbose:
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case a.quiet:
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rebootcheck v%s\n", Version)
		},
	}
}

// ExitCodeError signals a non-zero exit code without calling os.Exit directly.
type ExitCodeError struct{ Code int }

func (e ExitCodeError) Error() string { return fmt.Sprintf("exit %d", e.Code) }
