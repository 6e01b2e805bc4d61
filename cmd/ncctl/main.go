// ncctl is a command line client for the Namecheap API.
//
// Subcommands
//
//	domains list|create|check   – list, register and check domains
//	dns set-custom|list         – custom nameserver delegation
//	ssl create|list             – order and list SSL certificates
//	client-ip                   – print the IP sent as ClientIp
//
// Flags
//
//	--config        – YAML or TOML config file (see internal/config)
//	--sandbox       – use the sandbox endpoint
//	--json          – JSON output (default true); --json=false for text
//	--log-level     – debug, info, warn, error
//	--log-format    – text or json; logs go to stderr
//	--metrics-file  – write Prometheus metrics to this textfile on exit
//
// Credentials come from the config file or NAMECHEAP_API_USER and
// NAMECHEAP_API_KEY (both accept a _FILE suffix).
//
// Run examples
//
//	ncctl domains list --type expiring --sort -expire_date
//	ncctl domains check example.com example.net --json=false
//	ncctl dns set-custom example.co.uk dns1.example.net dns2.example.net
//	ncctl ssl create PositiveSSL --years 2
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/datum-labs/namecheap"
	"github.com/datum-labs/namecheap/internal/config"
	"github.com/datum-labs/namecheap/internal/metrics"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "ncctl:", err)
		stop()
		os.Exit(1)
	}
}

// cli carries flag values and the objects built from them.
type cli struct {
	configPath  string
	sandbox     bool
	jsonOut     bool
	logLevel    string
	logFormat   string
	metricsFile string

	stderr io.Writer
	cfg    *config.Config
	logger *slog.Logger
	client *namecheap.Client
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c := &cli{stderr: stderr}
	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	metrics.SetBuildInfo(version, runtime.Version())
	err := root.ExecuteContext(ctx)
	if c.metricsFile != "" {
		if werr := metrics.WriteTextfile(c.metricsFile); werr != nil && err == nil {
			err = errors.Wrap(werr, "writing metrics")
		}
	}
	return err
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "ncctl",
		Short:         "Namecheap API CLI",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	// Global flags
	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (.yaml, .yml or .toml)")
	pf.BoolVar(&c.sandbox, "sandbox", false, "use the sandbox API endpoint")
	pf.BoolVar(&c.jsonOut, "json", true, "emit JSON; set --json=false for text output")
	pf.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	pf.StringVar(&c.logFormat, "log-format", "", "log format: text or json (overrides config)")
	pf.StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(cmdDomains(c), cmdDNS(c), cmdSSL(c), cmdClientIP(c))
	return root
}

// setup loads configuration, applies flag overrides and builds the client.
func (c *cli) setup(cmd *cobra.Command) error {
	var overrides []config.Override
	flags := cmd.Flags()
	if flags.Changed("sandbox") {
		overrides = append(overrides, func(cfg *config.Config) { cfg.Sandbox = c.sandbox })
	}
	if flags.Changed("log-level") {
		overrides = append(overrides, func(cfg *config.Config) { cfg.LogLevel = c.logLevel })
	}
	if flags.Changed("log-format") {
		overrides = append(overrides, func(cfg *config.Config) { cfg.LogFormat = c.logFormat })
	}
	cfg, err := config.Load(c.configPath, overrides...)
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.logger = setupLogger(c.stderr, cfg.LogLevel, cfg.LogFormat)
	c.client = cfg.NewClient(c.logger)
	c.logger.Debug("configured client",
		slog.String("endpoint", c.client.Endpoint()),
		slog.String("username", c.client.UserName()),
	)
	return nil
}

// setupLogger builds the logger; anything other than "json" is text.
func setupLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(level)}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
