// Command purifier-ctl controls an air purifier on the local network.
//
// Usage:
//
//	purifier-ctl [flags] <command> [args]
//
// Commands:
//
//	get [names...]      Print the air state as JSON (optionally only some fields)
//	status              Print a readable status summary
//	set name=value...   Write parameters and print the echoed state
//	network             Print the network settings
//	params              List the settable parameters
//	discover            Browse the network for devices via mDNS
//	shell               Start an interactive shell
//
// Examples:
//
//	# Turn the device on and select manual mode at fan speed 2
//	purifier-ctl -host 192.168.1.21 set pwr=1 mode=M om=2
//
//	# Read two fields from the default device of the config file
//	purifier-ctl get pm25 iaql
//
//	# Record a protocol log while exploring in the shell
//	purifier-ctl -device kitchen -protocol-log session.plog shell
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/purifier-protocol/purifier-go/cmd/purifier-ctl/commands"
	"github.com/purifier-protocol/purifier-go/cmd/purifier-ctl/interactive"
	"github.com/purifier-protocol/purifier-go/pkg/client"
	"github.com/purifier-protocol/purifier-go/pkg/config"
	"github.com/purifier-protocol/purifier-go/pkg/discovery"
	"github.com/purifier-protocol/purifier-go/pkg/log"
	"github.com/purifier-protocol/purifier-go/pkg/transport"
	"github.com/purifier-protocol/purifier-go/pkg/version"
)

const usage = `purifier-ctl - Air Purifier Control

Usage:
  purifier-ctl [flags] <command> [args]

Commands:
  get [names...]      Print the air state as JSON (optionally only some fields)
  status              Print a readable status summary
  set name=value...   Write parameters and print the echoed state
  network             Print the network settings
  params              List the settable parameters
  discover            Browse the network for devices via mDNS
  shell               Start an interactive shell

Flags:
`

// Options holds the command-line flags. Empty values fall back to the
// config file.
type Options struct {
	ConfigFile  string
	Host        string
	Device      string
	Timeout     time.Duration
	LogLevel    string
	ProtocolLog string
	UseProxy    bool
	Version     bool
}

func parseFlags(args []string, output io.Writer) (Options, *flag.FlagSet, error) {
	var opts Options
	fs := flag.NewFlagSet("purifier-ctl", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.ConfigFile, "config", config.DefaultPath(), "Configuration file path")
	fs.StringVar(&opts.Host, "host", "", "Device host name or address")
	fs.StringVar(&opts.Device, "device", "", "Device name from the config file")
	fs.DurationVar(&opts.Timeout, "timeout", 0, "Request timeout (default from config, 10s)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&opts.ProtocolLog, "protocol-log", "", "Write protocol events to this .plog file")
	fs.BoolVar(&opts.UseProxy, "use-proxy", false, "Honour HTTP proxy environment variables")
	fs.BoolVar(&opts.Version, "version", false, "Print version and exit")

	err := fs.Parse(args)
	return opts, fs, err
}

// applyFlags overrides config values with the flags that were set.
func applyFlags(cfg *config.Config, opts Options) error {
	if opts.Timeout > 0 {
		cfg.Timeout = config.Duration(opts.Timeout)
	}
	if opts.LogLevel != "" {
		if _, err := config.ParseLevel(opts.LogLevel); err != nil {
			return err
		}
		cfg.LogLevel = opts.LogLevel
	}
	if opts.ProtocolLog != "" {
		cfg.ProtocolLog = opts.ProtocolLog
	}
	if opts.UseProxy {
		cfg.UseProxy = true
	}
	return nil
}

// selectHost picks the device host: -host wins over -device, which wins
// over the default device of the config file.
func selectHost(cfg config.Config, opts Options) (string, error) {
	if opts.Host != "" {
		return opts.Host, nil
	}
	if opts.Device != "" {
		d, ok := cfg.Device(opts.Device)
		if !ok {
			return "", fmt.Errorf("unknown device %q", opts.Device)
		}
		return d.Host, nil
	}
	return cfg.ResolveHost("")
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level()}))
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if opts.Version {
		fmt.Fprintln(stdout, version.UserAgent())
		return 0
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := applyFlags(&cfg, opts); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger := newLogger(cfg, stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &app{cfg: cfg, opts: opts, logger: logger, stdout: stdout}
	if err := app.dispatch(ctx, fs.Arg(0), fs.Args()[1:]); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type app struct {
	cfg    config.Config
	opts   Options
	logger *slog.Logger
	stdout io.Writer
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "params":
		return commands.RunParams(a.stdout)

	case "discover":
		timeout := time.Duration(a.cfg.Timeout)
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		b := discovery.NewMDNSBrowser(discovery.BrowserConfig{Service: a.cfg.MDNSService, Logger: a.logger})
		n, err := commands.RunDiscover(ctx, b, a.stdout)
		if err != nil {
			return err
		}
		a.logger.Info("browse finished", "services", n, "timeout", timeout)
		return nil

	case "shell":
		session, closeLog, err := a.session(false)
		if err != nil {
			return err
		}
		defer closeLog()
		return interactive.New(session, a.stdout).Run(ctx)

	case "get", "status", "set", "network":
		// Validate writes before touching the network.
		if cmd == "set" {
			if _, err := commands.ParseAssignments(args); err != nil {
				return err
			}
		}

		session, closeLog, err := a.session(true)
		if err != nil {
			return err
		}
		defer closeLog()

		if err := session.Connect(ctx, ""); err != nil {
			return err
		}
		defer session.Disconnect()

		switch cmd {
		case "get":
			return commands.RunGet(ctx, session, args, a.stdout)
		case "status":
			return commands.RunStatus(ctx, session, a.stdout)
		case "set":
			return commands.RunSet(ctx, session, args, a.stdout)
		default:
			return commands.RunNetwork(ctx, session, a.stdout)
		}

	default:
		return fmt.Errorf("unknown command: %s (see purifier-ctl -help)", cmd)
	}
}

// session builds a Session for the selected device. The returned func
// closes the protocol log, if one was opened. Without requireHost a
// missing device is allowed; the shell connects later.
func (a *app) session(requireHost bool) (*client.Session, func(), error) {
	host, err := selectHost(a.cfg, a.opts)
	if err != nil && (requireHost || !errors.Is(err, config.ErrNoDevice)) {
		return nil, nil, fmt.Errorf("%w (use -host or -device)", err)
	}

	var plog log.Logger
	closeLog := func() {}
	if a.cfg.ProtocolLog != "" {
		fl, err := log.NewFileLogger(a.cfg.ProtocolLog)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open protocol log: %w", err)
		}
		plog = fl
		closeLog = func() {
			if err := fl.Close(); err != nil {
				a.logger.Warn("closing protocol log failed", "error", err)
			}
			if n := fl.WriteErrors(); n > 0 {
				a.logger.Warn("protocol log write errors", "count", n)
			}
		}
		a.logger.Debug("protocol logging enabled", "path", fl.Path())
	}

	timeout := time.Duration(a.cfg.Timeout)
	session := client.New(client.Config{
		Host: host,
		Transport: transport.NewHTTPClient(transport.ClientConfig{
			Timeout:  timeout,
			UseProxy: a.cfg.UseProxy,
			Logger:   a.logger,
		}),
		Resolver: discovery.NewResolver(discovery.ResolverConfig{
			Service: a.cfg.MDNSService,
			Logger:  a.logger,
		}),
		Logger:         a.logger,
		ProtocolLogger: plog,
	})
	return session, closeLog, nil
}
