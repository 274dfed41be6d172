package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aglyzov/go-oplut/oplut"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envPrefix         = "OPLUT"
	defaultConfigName = ".oplut"
)

type app struct {
	cfgFile string
	v       *viper.Viper
	logger  *zap.Logger
	isa     *isa
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "oplut",
		Short:         "Compile opcode patterns into lookup tables and decode values with them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", fmt.Sprintf("config file (default is $HOME/%s)", defaultConfigName))
	flags.String("log-level", "error", "Log level: debug, info, warn, error")
	flags.Uint8("max-field-width", oplut.DefaultMaxFieldWidth, "log2 of the largest table at a single level")
	flags.Int("max-slots", 0, "Fail if more slots are needed (default: unlimited)")

	_ = a.v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("max_field_width", flags.Lookup("max-field-width"))
	_ = a.v.BindPFlag("max_slots", flags.Lookup("max-slots"))

	rootCmd.AddCommand(
		a.decodeCmd(),
		a.planCmd(),
		a.dumpCmd(),
	)

	return rootCmd
}

// init reads the config file and ENV variables if set.
func (a *app) init(_ *cobra.Command) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.SetConfigName(defaultConfigName)
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.AutomaticEnv()

	cfgErr := a.v.ReadInConfig()

	if err := a.initLogger(); err != nil {
		return err
	}

	var notFound viper.ConfigFileNotFoundError

	switch {
	case cfgErr == nil:
		a.logger.Debug("using config", zap.String("file", a.v.ConfigFileUsed()))
	case a.cfgFile == "" && errors.As(cfgErr, &notFound):
		a.logger.Debug("no config found, using the built-in AVR excerpt")
	default:
		return fmt.Errorf("read config: %w", cfgErr)
	}

	set, err := loadISA(a.v)
	if err != nil {
		return err
	}

	a.isa = set

	return nil
}

func (a *app) initLogger() error {
	lvl, err := zapcore.ParseLevel(a.v.GetString("log_level"))
	if err != nil {
		lvl = zapcore.ErrorLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	a.logger, err = cfg.Build()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	oplut.SetLogger(a.logger.Named("oplut"))

	return nil
}

func (a *app) create() (*oplut.LUT, error) {
	lut, err := oplut.Create(a.isa.patterns, a.isa.cfg)
	if err != nil {
		a.logger.Error("cannot compile patterns",
			zap.Int("patterns", len(a.isa.patterns)),
			zap.Strings("ambiguous", a.isa.explain(err)),
			zap.Error(err),
		)
		return nil, err
	}

	a.logger.Info("compiled patterns",
		zap.Int("patterns", len(a.isa.patterns)),
		zap.Int("slots", lut.Plan().Slots),
		zap.Int("tables", lut.Plan().Tables),
		zap.Int("depth", lut.Depth()),
	)

	return lut, nil
}

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <value>...",
		Short: "Print the mnemonic of every value",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals := make([]oplut.Op, len(args))

			for i, arg := range args {
				val, err := parseOp(arg)
				if err != nil {
					return fmt.Errorf("value %q: %w", arg, err)
				}
				vals[i] = val
			}

			lut, err := a.create()
			if err != nil {
				return err
			}
			defer lut.Release()

			for _, val := range vals {
				lut.Resolve(cmd.OutOrStdout(), val)
			}

			return nil
		},
	}
}

func (a *app) planCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the storage the patterns need",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := oplut.PlanFor(a.isa.patterns, a.isa.cfg)
			if err != nil {
				a.logger.Error("cannot plan patterns",
					zap.Strings("ambiguous", a.isa.explain(err)),
					zap.Error(err),
				)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "patterns: %d\nslots: %d\ntables: %d\n",
				len(a.isa.patterns), p.Slots, p.Tables)

			return nil
		},
	}
}

func (a *app) dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the tree of tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lut, err := a.create()
			if err != nil {
				return err
			}
			defer lut.Release()

			return lut.Dump(cmd.OutOrStdout())
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
