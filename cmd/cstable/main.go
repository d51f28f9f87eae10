// Command cstable inspects, loads, dumps, compacts and publishes column
// striped table segments.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hexbee-net/cstable"
	"github.com/hexbee-net/cstable/compression"
	"github.com/hexbee-net/cstable/internal/logging"
	"github.com/hexbee-net/errors"
)

var version = "0.1.0"

type app struct {
	conf    *viper.Viper
	logger  *zap.Logger
	storage *storage
	metrics *http.Server
}

func newApp() *app {
	conf := viper.New()
	conf.SetEnvPrefix("CSTABLE")
	conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	conf.AutomaticEnv()

	conf.SetDefault("log-level", "info")
	conf.SetDefault("log-format", "json")
	conf.SetDefault("codec", compression.CodecSnappy.String())
	conf.SetDefault("page-size", 64*1024)
	conf.SetDefault("http.timeout", 30*time.Second)

	return &app{
		conf:    conf,
		logger:  zap.NewNop(),
		storage: &storage{conf: conf},
	}
}

func (a *app) rootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "cstable",
		Short:         "Column striped table tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, configFile)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.shutdown()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "configuration file (yaml, json or toml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "json", "log format (json or console)")
	flags.String("metrics-addr", "", "serve prometheus metrics on this address")

	root.AddCommand(
		a.versionCommand(),
		a.inspectCommand(),
		a.dumpCommand(),
		a.loadCommand(),
		a.compactCommand(),
		a.publishCommand(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, configFile string) error {
	// cmd.Flags holds the inherited persistent flags once cobra parsed them
	if err := a.conf.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "failed to bind flags")
	}

	if configFile != "" {
		a.conf.SetConfigFile(configFile)

		if err := a.conf.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config %s", configFile)
		}
	}

	logger, err := logging.New(a.conf.GetString("log-level"), a.conf.GetString("log-format"))
	if err != nil {
		return errors.Wrap(err, "failed to build logger")
	}

	a.logger = logger

	if addr := a.conf.GetString("metrics-addr"); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		a.metrics = &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			if err := a.metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				a.logger.Error("metrics server failed", zap.Error(err))
			}
		}()

		a.logger.Info("serving metrics", zap.String("addr", addr))
	}

	return nil
}

func (a *app) shutdown() error {
	if a.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = a.metrics.Shutdown(ctx)
	}

	_ = a.logger.Sync()

	return nil
}

// tableOptions returns the options shared by the commands writing tables.
func (a *app) tableOptions() ([]cstable.Option, error) {
	codec, err := compression.ParseCodec(a.conf.GetString("codec"))
	if err != nil {
		return nil, err
	}

	return []cstable.Option{
		cstable.WithLogger(a.logger),
		cstable.WithCodec(codec),
		cstable.WithPageSize(a.conf.GetInt("page-size")),
	}, nil
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cstable v%s (format version %d)\n", version, cstable.FormatVersion)
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp()

	if err := a.rootCommand().ExecuteContext(ctx); err != nil {
		stop()
		a.logger.Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
